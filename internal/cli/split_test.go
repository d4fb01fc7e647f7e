package cli

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-grid/internal/errors"
)

func TestSplit_WritesTiles(t *testing.T) {
	c := testCLI(t)
	src := writeImage(t, 100, 70, color.NRGBA{200, 100, 50, 255})
	out := filepath.Join(t.TempDir(), "tiles")

	stdout, err := execute(t, c, "--config", writeConfig(t, smallConfig),
		"split", src, "--rows", "2", "--cols", "2", "--out", out, "--format", "png")
	require.NoError(t, err)

	assert.Contains(t, stdout, fmt.Sprintf("Split image into 4 tiles in '%s'", out))
	for i := 1; i <= 4; i++ {
		path := filepath.Join(out, fmt.Sprintf("tile_%d.png", i))
		assert.Contains(t, stdout, path)
		assert.Equal(t, image.Pt(48, 30), decodeSize(t, path), "40 wide plus two 4px safe zones")
	}
}

func TestSplit_PadEdgesJPEG(t *testing.T) {
	c := testCLI(t)
	src := writeImage(t, 120, 30, color.NRGBA{0, 0, 255, 255})
	out := t.TempDir()

	_, err := execute(t, c, "--config", writeConfig(t, smallConfig),
		"split", src, "--rows", "1", "--cols", "3", "--out", out, "--edge", "pad")
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		path := filepath.Join(out, fmt.Sprintf("tile_%d.jpg", i))
		assert.Equal(t, image.Pt(48, 30), decodeSize(t, path))
	}
}

func TestSplit_FlagsFromConfig(t *testing.T) {
	c := testCLI(t)
	src := writeImage(t, 80, 60, color.White)
	out := t.TempDir()
	cfg := writeConfig(t, smallConfig+"format: png\nedge: pad\n")

	_, err := execute(t, c, "--config", cfg, "split", src, "--rows", "2", "--cols", "2", "--out", out)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "tile_4.png"))
	assert.NoError(t, err, "format comes from the config file")
}

func TestSplit_UndersizedWithoutTerminal(t *testing.T) {
	c := testCLI(t)
	src := writeImage(t, 20, 20, color.Black)
	out := filepath.Join(t.TempDir(), "tiles")

	_, err := execute(t, c, "--config", writeConfig(t, smallConfig),
		"split", src, "--rows", "2", "--cols", "2", "--out", out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindValidation))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no tiles are written")
}

func TestSplit_UndersizedPad(t *testing.T) {
	c := testCLI(t)
	src := writeImage(t, 20, 20, color.White)
	out := t.TempDir()

	stdout, err := execute(t, c, "--config", writeConfig(t, smallConfig),
		"split", src, "--rows", "2", "--cols", "2", "--out", out, "--resize", "pad", "--format", "png")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Split image into 4 tiles")
	assert.Contains(t, stdout, "pad")
}

func TestSplit_Errors(t *testing.T) {
	src := writeImage(t, 80, 60, color.White)

	tests := []struct {
		name string
		args []string
		kind errors.Kind
	}{
		{"missing rows", []string{"--cols", "2"}, errors.KindValidation},
		{"negative cols", []string{"--rows", "1", "--cols", "-1"}, errors.KindValidation},
		{"bad edge", []string{"--rows", "1", "--cols", "1", "--edge", "glow"}, errors.KindInvalidMode},
		{"bad resize", []string{"--rows", "1", "--cols", "1", "--resize", "squash"}, errors.KindInvalidMode},
		{"bad anchor", []string{"--rows", "1", "--cols", "1", "--anchor", "left"}, errors.KindInvalidMode},
		{"bad format", []string{"--rows", "1", "--cols", "1", "--format", "gif"}, errors.KindInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCLI(t)
			args := append([]string{"--config", writeConfig(t, smallConfig), "split", src,
				"--out", t.TempDir()}, tt.args...)
			_, err := execute(t, c, args...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err))
		})
	}
}

func TestSplit_UndecodableSource(t *testing.T) {
	c := testCLI(t)
	src := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(src, []byte("not an image"), 0o644))

	_, err := execute(t, c, "--config", writeConfig(t, smallConfig),
		"split", src, "--rows", "1", "--cols", "1", "--out", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.KindDecode))
}

func TestSplit_RequiresImage(t *testing.T) {
	_, err := execute(t, testCLI(t), "split", "--rows", "1", "--cols", "1")
	assert.Error(t, err)
}
