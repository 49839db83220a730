package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/zmkgrid/internal/keymap"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
	FormatGrid Format = "grid"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatHCL, FormatGrid}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q: must be 'json', 'hcl' or 'grid'", s)
}

// Write renders cfg to w in the given format.
func Write(w io.Writer, format Format, cfg *keymap.KeymapConfig) error {
	switch format {
	case FormatJSON:
		return JSON(w, cfg)
	case FormatHCL:
		return HCL(w, cfg)
	case FormatGrid:
		return Grid(w, cfg)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
