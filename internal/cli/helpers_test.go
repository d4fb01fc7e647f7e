package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	dimaging "github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// smallConfig is a platform small enough that a 2x2 grid fits in 80x60.
const smallConfig = `content-width: 40
content-height: 30
safe-zone: 4
border: 4
blur-radius: 1
`

// writeConfig writes a YAML config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image-grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeImage saves a solid image of the given size as PNG and returns its path.
func writeImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.png")
	require.NoError(t, dimaging.Save(dimaging.New(width, height, c), path))
	return path
}

// nonTerminal returns a regular file to stand in for a redirected stdin.
func nonTerminal(t *testing.T) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

// testCLI returns a CLI with a non-terminal stdin and no home config.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	c := New(&bytes.Buffer{}, LogInfo)
	c.In = nonTerminal(t)
	return c
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, err := dimaging.Open(path)
	require.NoError(t, err)
	return img.Bounds().Size()
}
