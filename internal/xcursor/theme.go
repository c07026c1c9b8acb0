package xcursor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const DefaultComment = "Cursor theme converted from Windows cursors by ani2xcursor"

// IndexTheme is the content of a theme's index.theme file.
type IndexTheme struct {
	Name     string
	Comment  string
	Inherits string
}

func (t IndexTheme) String() string {
	comment := t.Comment
	if comment == "" {
		comment = DefaultComment
	}
	inherits := t.Inherits
	if inherits == "" {
		inherits = "default"
	}

	var b strings.Builder
	b.WriteString("[Icon Theme]\n")
	fmt.Fprintf(&b, "Name=%s\n", t.Name)
	fmt.Fprintf(&b, "Comment=%s\n", comment)
	fmt.Fprintf(&b, "Inherits=%s\n", inherits)
	return b.String()
}

// WriteIndexTheme writes dir/index.theme.
func WriteIndexTheme(dir string, t IndexTheme) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.theme"), []byte(t.String()), 0o644)
}

// CreateAliases links every alias in dir to primary with a relative symlink.
// Names that already exist are left alone. Failures are returned as warnings.
func CreateAliases(dir, primary string, aliases []string) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		warnings = append(warnings, msg)
		slog.Warn(msg)
	}

	if _, err := os.Lstat(filepath.Join(dir, primary)); err != nil {
		warn("xcursor: cannot create aliases, primary cursor %q does not exist", primary)
		return warnings
	}

	for _, alias := range aliases {
		if alias == primary {
			continue
		}
		path := filepath.Join(dir, alias)
		if _, err := os.Lstat(path); err == nil {
			slog.Debug("alias exists", "alias", alias)
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			warn("xcursor: alias %q: %v", alias, err)
			continue
		}
		if err := os.Symlink(primary, path); err != nil {
			warn("xcursor: symlink %s -> %s: %v", alias, primary, err)
		}
	}
	return warnings
}
