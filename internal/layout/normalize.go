package layout

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/zmkgrid/internal/binding"
	"github.com/vk/zmkgrid/internal/keyid"
	"github.com/vk/zmkgrid/internal/keymap"
)

// CountError reports a layer whose binding count does not fill the board.
// Range is the layer node's source span; it is not part of the message.
type CountError struct {
	Layer string
	Got   int
	Want  int
	Range hcl.Range
}

func (e *CountError) Error() string {
	return fmt.Sprintf("Layer %q has %d bindings, expected %d", e.Layer, e.Got, e.Want)
}

// Normalize converts raw layers into board layers. Layer ids are the 0-based
// source order. It fails on the first layer whose binding count is not
// keymap.TotalKeys and returns no layers in that case.
func Normalize(c *binding.Classifier, raws []keymap.RawLayer) ([]keymap.Layer, error) {
	positions := keymap.Positions()
	layers := make([]keymap.Layer, 0, len(raws))

	for index, raw := range raws {
		if len(raw.Bindings) != keymap.TotalKeys {
			return nil, &CountError{Layer: raw.Name, Got: len(raw.Bindings), Want: keymap.TotalKeys, Range: raw.Range}
		}

		keys := make(map[string]keymap.Binding, keymap.TotalKeys)
		for i, pos := range positions {
			id := keyid.New(index, pos.Row, pos.Col).String()
			keys[id] = c.Classify(raw.Bindings[i])
		}

		layers = append(layers, keymap.Layer{
			ID:   strconv.Itoa(index),
			Name: raw.Name,
			Keys: keys,
		})
	}

	return layers, nil
}
