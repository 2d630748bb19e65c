package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/touch-widgets/internal/rgb565"
)

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func pixel(img image.Image, x, y int) rgb565.Color {
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return rgb565.Pack(c.R, c.G, c.B)
}

func TestSnapshotDemoDefaults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.png")
	require.NoError(t, Snapshot(Config{SnapshotPath: out}))

	img := decode(t, out)
	require.Equal(t, image.Rect(0, 0, SnapshotWidth, SnapshotHeight), img.Bounds())
	// Inside the File button, clear of its label and outline.
	require.Equal(t, rgb565.Blue, pixel(img, 12, 20))
	// Page background.
	require.Equal(t, rgb565.Black, pixel(img, 160, 120))
}

func TestSnapshotUsesLayoutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dots.png")
	cfg := Config{
		LayoutPath:   filepath.Join("..", "layout", "testdata", "dots.yaml"),
		SnapshotPath: out,
		Width:        200,
		Height:       100,
	}
	require.NoError(t, Snapshot(cfg))
	require.Equal(t, image.Rect(0, 0, 200, 100), decode(t, out).Bounds())
}

func TestSnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	err := Snapshot(Config{LayoutPath: filepath.Join(dir, "missing.toml"), SnapshotPath: filepath.Join(dir, "x.png")})
	require.Error(t, err)

	err = Snapshot(Config{SnapshotPath: filepath.Join(dir, "no", "such", "dir.png")})
	require.Error(t, err)
}

func TestRunRejectsUnknownLayout(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "layout.json")
	require.Error(t, Run(Config{LayoutPath: bad}))
}
