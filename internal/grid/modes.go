package grid

import (
	"strings"

	"github.com/ironsheep/image-grid/internal/errors"
)

// EdgeMode selects the safe-zone treatment applied to every tile.
type EdgeMode string

const (
	EdgeBlur EdgeMode = "blur" // blurred bleed of the tile's own edge strips
	EdgePad  EdgeMode = "pad"  // solid border
)

// ResizeMode selects how an undersized source is brought up to the target size.
type ResizeMode string

const (
	ResizeStretch ResizeMode = "resize" // scale to target, aspect ratio ignored
	ResizePad     ResizeMode = "pad"    // center on a filled canvas
)

// Anchor selects which region of an oversized source is kept.
type Anchor string

const (
	AnchorCenter Anchor = "center"
	AnchorSmart  Anchor = "smart"
)

// EdgeModes lists the accepted edge mode tokens.
var EdgeModes = []EdgeMode{EdgeBlur, EdgePad}

// ResizeModes lists the accepted resize mode tokens.
var ResizeModes = []ResizeMode{ResizeStretch, ResizePad}

// Anchors lists the accepted anchor tokens.
var Anchors = []Anchor{AnchorCenter, AnchorSmart}

// ParseEdgeMode converts a token into an EdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch m := EdgeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case EdgeBlur, EdgePad:
		return m, nil
	}
	return "", errors.New(errors.KindInvalidMode, "invalid edge mode %q (want blur or pad)", s)
}

// ParseResizeMode converts a token into a ResizeMode.
func ParseResizeMode(s string) (ResizeMode, error) {
	switch m := ResizeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ResizeStretch, ResizePad:
		return m, nil
	}
	return "", errors.New(errors.KindInvalidMode, "invalid resize mode %q (want resize or pad)", s)
}

// ParseAnchor converts a token into an Anchor. An empty token means center.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return AnchorCenter, nil
	case AnchorCenter, AnchorSmart:
		return a, nil
	}
	return "", errors.New(errors.KindInvalidMode, "invalid anchor %q (want center or smart)", s)
}
