package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vk/zmkgrid/internal/keyid"
	"github.com/vk/zmkgrid/internal/keymap"
)

// MaxCellWidth is the widest a grid cell gets; longer labels are truncated.
const MaxCellWidth = 10

const ellipsis = "…"

// Grid draws every layer as a Rows x Columns table of key labels. Slots with
// no physical key are left blank. Cell width follows the display width of
// the widest label in the layer, so wide glyphs stay aligned.
func Grid(w io.Writer, cfg *keymap.KeymapConfig) error {
	if cfg == nil {
		return fmt.Errorf("export: nil keymap config")
	}

	bw := bufio.NewWriter(w)
	for i, layer := range cfg.Layers {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writeLayerGrid(bw, i, &layer)
	}
	return bw.Flush()
}

func writeLayerGrid(w *bufio.Writer, index int, layer *keymap.Layer) {
	cells := layerCells(index, layer)

	width := 1
	for _, row := range cells {
		for _, c := range row {
			if cw := runewidth.StringWidth(c); cw > width {
				width = cw
			}
		}
	}

	fmt.Fprintf(w, "Layer %s: %s\n", layer.ID, layer.Name)
	border := "+" + strings.Repeat(strings.Repeat("-", width+2)+"+", keymap.Columns)
	w.WriteString(border)
	w.WriteByte('\n')
	for _, row := range cells {
		w.WriteByte('|')
		for _, c := range row {
			w.WriteByte(' ')
			w.WriteString(runewidth.FillRight(c, width))
			w.WriteString(" |")
		}
		w.WriteByte('\n')
		w.WriteString(border)
		w.WriteByte('\n')
	}
}

// layerCells returns the label text of every grid slot.
func layerCells(index int, layer *keymap.Layer) [keymap.Rows][keymap.Columns]string {
	var cells [keymap.Rows][keymap.Columns]string
	for row := 0; row < keymap.Rows; row++ {
		for col := 0; col < keymap.Columns; col++ {
			if !keymap.HasKey(row, col) {
				continue
			}
			b, ok := layer.Keys[keyid.New(index, row, col).String()]
			if !ok {
				continue
			}
			cells[row][col] = runewidth.Truncate(cellText(b), MaxCellWidth, ellipsis)
		}
	}
	return cells
}

func cellText(b keymap.Binding) string {
	if b.Kind == keymap.KindNone {
		return ""
	}
	if b.Label != "" {
		return b.Label
	}
	return b.Code
}
