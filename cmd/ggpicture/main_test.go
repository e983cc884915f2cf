package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// runCmd runs the CLI with a config path that does not exist, so the
// user's own config never leaks into tests.
func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"-config", filepath.Join(t.TempDir(), "none.toml")}, args...)
	err := run(full, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeDemo(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.ggpic")
	args := append([]string{"demo", "-o", path, "-width", "320", "-height", "240"}, extra...)
	stdout, _, err := runCmd(t, args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+path)
	return path
}

func TestRunMissingCommand(t *testing.T) {
	_, stderr, err := runCmd(t)
	require.Error(t, err)
	assert.Contains(t, stderr, "usage: ggpicture")
}

func TestRunUnknownCommand(t *testing.T) {
	_, _, err := runCmd(t, "paint")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "paint"`)
}

func TestDemoAndInfo(t *testing.T) {
	for _, comp := range []string{"none", "zstd"} {
		t.Run(comp, func(t *testing.T) {
			path := writeDemo(t, "-compression", comp)

			stdout, _, err := runCmd(t, "info", path)
			require.NoError(t, err)
			assert.Contains(t, stdout, "size:        320x240")
			assert.Contains(t, stdout, "compression: "+comp)
			assert.Contains(t, stdout, "1 recordings")
		})
	}
}

func TestDemoBadCompression(t *testing.T) {
	_, _, err := runCmd(t, "demo", "-o", filepath.Join(t.TempDir(), "x"), "-compression", "lz4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown compression")
}

func TestDumpText(t *testing.T) {
	path := writeDemo(t)

	stdout, _, err := runCmd(t, "dump", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, "picture 320x240", lines[0])
	assert.Contains(t, stdout, "FillPath")
	assert.Contains(t, stdout, "DrawText")
}

func TestDumpYAML(t *testing.T) {
	path := writeDemo(t)

	stdout, _, err := runCmd(t, "dump", "-format", "yaml", path)
	require.NoError(t, err)

	var doc dumpDoc
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, 320, doc.Width)
	assert.Equal(t, 240, doc.Height)
	require.NotEmpty(t, doc.Commands)
	assert.Equal(t, "SetFillStyle", doc.Commands[0].Op)
}

func TestDumpBadFormat(t *testing.T) {
	path := writeDemo(t)
	_, _, err := runCmd(t, "dump", "-format", "xml", path)
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	path := writeDemo(t)
	out := filepath.Join(t.TempDir(), "out.png")

	_, _, err := runCmd(t, "render", "-o", out, "-background", "#000000", path)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestRenderThumbnail(t *testing.T) {
	path := writeDemo(t)
	out := filepath.Join(t.TempDir(), "thumb.png")

	_, _, err := runCmd(t, "render", "-o", out, "-thumb", "64", path)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestRenderCorruptInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ggpic")
	require.NoError(t, os.WriteFile(path, []byte("not a picture at all, sorry"), 0o600))

	_, _, err := runCmd(t, "render", "-o", filepath.Join(t.TempDir(), "x.png"), path)
	require.Error(t, err)
}

func TestRenderMissingInput(t *testing.T) {
	_, _, err := runCmd(t, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one input file")
}

func TestThumbnailSize(t *testing.T) {
	tests := []struct {
		w, h, limit int
		wantW       int
		wantH       int
	}{
		{800, 600, 200, 200, 150},
		{600, 800, 200, 150, 200},
		{100, 50, 200, 100, 50},
		{1000, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := thumbnailSize(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.wantW, w, "%dx%d@%d", tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.wantH, h, "%dx%d@%d", tt.w, tt.h, tt.limit)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		data := `
compression = "zstd"
background = "#ffffff"
system_fonts = true
thumbnail = 128
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "zstd", cfg.Compression)
		assert.Equal(t, "#ffffff", cfg.Background)
		assert.True(t, cfg.SystemFonts)
		assert.Equal(t, 128, cfg.Thumbnail)
		assert.Equal(t, "text", cfg.Format)
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("compression = "), 0o600))
		_, err := loadConfig(path)
		require.Error(t, err)
	})
}

func TestConfigDrivesDemo(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`compression = "zstd"`), 0o600))
	out := filepath.Join(dir, "demo.ggpic")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", cfgPath, "demo", "-o", out}, &stdout, &stderr))
	stdout.Reset()
	require.NoError(t, run([]string{"-config", cfgPath, "info", out}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "compression: zstd")
}
