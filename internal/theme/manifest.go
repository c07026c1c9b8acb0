// Package theme builds complete cursor themes from a role manifest.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cam-per/ani2xcursor/internal/convert"
	"github.com/cam-per/ani2xcursor/internal/preview"
	"github.com/cam-per/ani2xcursor/internal/xcursor"
)

const (
	ManifestName = "theme.yaml"
	DefaultName  = "cursor_theme"
)

var (
	ErrMissingRoles = errors.New("theme: required roles are not mapped")
	ErrNothingBuilt = errors.New("theme: no cursors were converted")
)

// Manifest maps Windows cursor roles to files relative to the manifest.
type Manifest struct {
	Name     string            `yaml:"name"`
	Comment  string            `yaml:"comment,omitempty"`
	Inherits string            `yaml:"inherits,omitempty"`
	Cursors  map[string]string `yaml:"cursors"`
}

// Optional roles may be left unmapped without failing the build.
func Optional(role string) bool {
	return role == "person" || role == "pin"
}

func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for role, p := range m.Cursors {
		m.Cursors[role] = NormalizePath(p)
	}
	return m, nil
}

func Load(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (m *Manifest) Save(file string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

// NormalizePath turns Windows separators into slashes and drops a leading "./".
func NormalizePath(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean(p), "./")
}

// ThemeName is the manifest name, falling back to the input directory name.
func (m *Manifest) ThemeName(inputDir string) string {
	if m.Name != "" {
		return m.Name
	}
	if abs, err := filepath.Abs(inputDir); err == nil {
		inputDir = abs
	}
	if base := filepath.Base(inputDir); base != "." && base != string(filepath.Separator) {
		return base
	}
	return DefaultName
}

// Missing lists known roles without a file, in table order.
func (m *Manifest) Missing() (required, optional []string) {
	for _, role := range xcursor.Roles() {
		if m.Cursors[role] != "" {
			continue
		}
		if Optional(role) {
			optional = append(optional, role)
		} else {
			required = append(required, role)
		}
	}
	return required, optional
}

// Roles returns the mapped roles: known roles in table order, then any
// others sorted by name.
func (m *Manifest) Roles() []string {
	var roles, extra []string
	for _, role := range xcursor.Roles() {
		if m.Cursors[role] != "" {
			roles = append(roles, role)
		}
	}
	for role, p := range m.Cursors {
		if p != "" && !xcursor.Known(role) {
			extra = append(extra, role)
		}
	}
	sort.Strings(extra)
	return append(roles, extra...)
}

// Scan drafts a manifest for dir by guessing each cursor file's role from its
// name. The first file per role wins; files are visited in name order.
func Scan(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Cursors: map[string]string{}}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || convert.KindOf(entry.Name()) == convert.KindUnknown {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		role := preview.GuessRole(stem)
		if role == "" {
			continue
		}
		if _, ok := m.Cursors[role]; !ok {
			m.Cursors[role] = entry.Name()
		}
	}
	m.Name = m.ThemeName(dir)
	return m, nil
}
