package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam-per/ani2xcursor/cursor/sizes"
	"github.com/cam-per/ani2xcursor/internal/fixture"
	"github.com/cam-per/ani2xcursor/internal/xcursor"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

// fullManifest maps every required role to the same cursor file.
func fullManifest(file string) *Manifest {
	m := &Manifest{Name: "Test", Cursors: map[string]string{}}
	for _, role := range xcursor.Roles() {
		if !Optional(role) {
			m.Cursors[role] = file
		}
	}
	return m
}

func TestParseManifest(t *testing.T) {
	m, err := Parse([]byte(`
name: Oxy
comment: Converted
cursors:
  pointer: Normal.cur
  busy: 'anim\Busy.ani'
  text: ./Text.cur
`))
	require.NoError(t, err)
	assert.Equal(t, "Oxy", m.Name)
	assert.Equal(t, "Converted", m.Comment)
	assert.Equal(t, "anim/Busy.ani", m.Cursors["busy"])
	assert.Equal(t, "Text.cur", m.Cursors["text"])
	assert.Equal(t, []string{"pointer", "busy", "text"}, m.Roles())

	_, err = Parse([]byte("cursors: [1, 2"))
	assert.Error(t, err)
}

func TestManifestSaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), ManifestName)
	m := &Manifest{Name: "Round", Inherits: "Adwaita", Cursors: map[string]string{"link": "Link.cur", "custom": "x.cur"}}
	require.NoError(t, m.Save(file))

	loaded, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, m, loaded)
	assert.Equal(t, []string{"link", "custom"}, loaded.Roles())
}

func TestMissing(t *testing.T) {
	m := fullManifest("a.cur")
	required, optional := m.Missing()
	assert.Empty(t, required)
	assert.Equal(t, []string{"person", "pin"}, optional)

	delete(m.Cursors, "help")
	required, _ = m.Missing()
	assert.Equal(t, []string{"help"}, required)
}

func TestThemeName(t *testing.T) {
	assert.Equal(t, "Named", (&Manifest{Name: "Named"}).ThemeName("/tmp/x"))
	assert.Equal(t, "Blue Glass", (&Manifest{}).ThemeName("/data/Blue Glass"))
}

func TestScan(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Oxygen")
	writeFile(t, dir, "Arrow.cur", []byte("x"))
	writeFile(t, dir, "Busy.ani", []byte("x"))
	writeFile(t, dir, "Normal.cur", []byte("x"))
	writeFile(t, dir, "readme.txt", []byte("help"))

	m, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, "Oxygen", m.Name)
	assert.Equal(t, map[string]string{"pointer": "Arrow.cur", "busy": "Busy.ani"}, m.Cursors)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXcursor, f)

	f, err = ParseFormat("Source")
	require.NoError(t, err)
	assert.Equal(t, FormatSource, f)

	_, err = ParseFormat("svg")
	assert.Error(t, err)
}

func TestBuildXcursor(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeFile(t, in, "Normal.cur", fixture.CUR(fixture.Image{Size: 32, HX: 1, HY: 2}))
	writeFile(t, in, "Busy.ani", fixture.ANI(
		fixture.CUR(fixture.Image{Size: 32, Fill: 1}),
		fixture.CUR(fixture.Image{Size: 32, Fill: 2}),
	))

	m := fullManifest("Normal.cur")
	m.Cursors["busy"] = "Busy.ani"
	m.Comment = "made in tests"

	report, err := Build(context.Background(), m, Options{
		InputDir:  in,
		OutputDir: out,
		Selection: sizes.Selection{Filter: sizes.All},
	})
	require.NoError(t, err)
	assert.Nil(t, report.Failed)
	assert.Equal(t, filepath.Join(out, "Test"), report.Dir)
	assert.Contains(t, report.Converted, "left_ptr")
	assert.Contains(t, report.Converted, "watch")

	cursors := filepath.Join(report.Dir, "cursors")
	f, err := os.Open(filepath.Join(cursors, "watch"))
	require.NoError(t, err)
	defer f.Close()
	decoder, err := xcursor.NewDecoder(f)
	require.NoError(t, err)
	images, err := decoder.Images()
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, uint32(167), images[0].Delay)

	target, err := os.Readlink(filepath.Join(cursors, "wait"))
	require.NoError(t, err)
	assert.Equal(t, "watch", target)

	index, err := os.ReadFile(filepath.Join(report.Dir, "index.theme"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "Name=Test\n")
	assert.Contains(t, string(index), "Comment=made in tests\n")
}

func TestBuildMissingRoles(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "Normal.cur", fixture.CUR(fixture.Image{Size: 32}))
	m := &Manifest{Name: "Partial", Cursors: map[string]string{"pointer": "Normal.cur"}}

	_, err := Build(context.Background(), m, Options{InputDir: in, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, ErrMissingRoles)

	report, err := Build(context.Background(), m, Options{InputDir: in, OutputDir: t.TempDir(), SkipBroken: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"left_ptr"}, report.Converted)
}

func TestBuildSkipBroken(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "Normal.cur", fixture.CUR(fixture.Image{Size: 32}))
	writeFile(t, in, "Broken.cur", []byte{0, 0, 9, 9})

	m := fullManifest("Normal.cur")
	m.Cursors["text"] = "Broken.cur"
	m.Cursors["help"] = "Missing.cur"

	_, err := Build(context.Background(), m, Options{InputDir: in, OutputDir: t.TempDir()})
	require.Error(t, err)

	report, err := Build(context.Background(), m, Options{InputDir: in, OutputDir: t.TempDir(), SkipBroken: true})
	require.NoError(t, err)
	require.NotNil(t, report.Failed)
	assert.Len(t, report.Failed.Errors, 2)
	assert.NotContains(t, report.Converted, "xterm")
	assert.Contains(t, report.Converted, "left_ptr")
}

func TestBuildNothingConverted(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "Broken.cur", []byte("junk"))

	_, err := Build(context.Background(), fullManifest("Broken.cur"), Options{InputDir: in, OutputDir: t.TempDir(), SkipBroken: true})
	assert.ErrorIs(t, err, ErrNothingBuilt)
}

func TestBuildSource(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "Normal.cur", fixture.CUR(fixture.Image{Size: 24}, fixture.Image{Size: 48}))

	report, err := Build(context.Background(), fullManifest("Normal.cur"), Options{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Selection: sizes.Selection{Filter: sizes.All},
		Format:    FormatSource,
	})
	require.NoError(t, err)

	for _, name := range []string{"config/left_ptr.cursor", "png/48/left_ptr.png", "svg/left_ptr.svg", "cursorList", "index.theme"} {
		_, err := os.Stat(filepath.Join(report.Dir, filepath.FromSlash(name)))
		assert.NoError(t, err, name)
	}

	list, err := os.ReadFile(filepath.Join(report.Dir, "cursorList"))
	require.NoError(t, err)
	assert.Contains(t, string(list), "default left_ptr\n")
}

func TestBuildCanceled(t *testing.T) {
	in := t.TempDir()
	writeFile(t, in, "Normal.cur", fixture.CUR(fixture.Image{Size: 32}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, fullManifest("Normal.cur"), Options{InputDir: in, OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
