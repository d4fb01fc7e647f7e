package imaging

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-grid/internal/errors"
)

// Output formats understood by DirSink.
const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 95

// DirSink writes finished tiles into a directory as tile_{index}.{jpg|png}.
//
// The directory is created on the first write. Existing files with the same
// name are overwritten.
type DirSink struct {
	Dir     string
	Format  string
	Quality int

	mu      sync.Mutex
	written []string
}

// NewDirSink returns a sink writing into dir. An empty format means JPEG and
// a quality outside 1..100 means DefaultQuality.
func NewDirSink(dir, format string, quality int) (*DirSink, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return &DirSink{Dir: dir, Format: f, Quality: quality}, nil
}

// ParseFormat normalizes an output format name. "jpg" is accepted for JPEG.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", errors.New(errors.KindInvalidMode, "unknown output format %q (expected jpeg or png)", s)
	}
}

// Extension returns the file extension for the sink's format.
func (s *DirSink) Extension() string {
	if s.Format == FormatPNG {
		return "png"
	}
	return "jpg"
}

// TilePath returns the path a tile with the given emission index is written to.
func (s *DirSink) TilePath(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("tile_%d.%s", index, s.Extension()))
}

// WriteTile encodes tile and writes it to TilePath(index).
func (s *DirSink) WriteTile(ctx context.Context, index int, tile image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrap(errors.KindEncode, err, "failed to create output directory").AtStage(errors.StageSink).AtTile(index)
	}

	path := s.TilePath(index)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.KindEncode, err, "failed to create tile file").AtStage(errors.StageSink).AtTile(index)
	}

	encodeErr := s.encode(f, tile)
	closeErr := f.Close()
	if encodeErr != nil {
		os.Remove(path)
		return errors.Wrap(errors.KindEncode, encodeErr, "failed to encode tile").AtStage(errors.StageSink).AtTile(index)
	}
	if closeErr != nil {
		return errors.Wrap(errors.KindEncode, closeErr, "failed to write tile file").AtStage(errors.StageSink).AtTile(index)
	}

	s.mu.Lock()
	s.written = append(s.written, path)
	s.mu.Unlock()
	return nil
}

func (s *DirSink) encode(f *os.File, tile image.Image) error {
	if s.Format == FormatPNG {
		return imaging.Encode(f, tile, imaging.PNG)
	}
	return imaging.Encode(f, tile, imaging.JPEG, imaging.JPEGQuality(s.Quality))
}

// Written returns the paths written so far, in emission order.
func (s *DirSink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.written))
	copy(out, s.written)
	return out
}
