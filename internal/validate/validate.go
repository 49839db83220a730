// Package validate runs advisory checks over keymap source text. It reports
// every problem it finds as a human-readable message and never fails, so a
// caller can show all diagnostics before attempting a full parse.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/zmkgrid/internal/dts"
	"github.com/vk/zmkgrid/internal/keymap"
)

// Result is the outcome of a validation run. Errors is never nil.
type Result struct {
	Valid  bool     `cty:"valid"`
	Errors []string `cty:"errors"`
}

// Validate checks content for the structure the parser needs.
func Validate(content string) Result {
	errs := []string{}

	missingKeymap := !strings.Contains(content, "keymap")
	if missingKeymap {
		errs = append(errs, "Missing keymap block")
	}
	if !strings.Contains(content, "bindings") {
		errs = append(errs, "Missing bindings definition")
	}

	layers, err := dts.ExtractLayers(content)
	if err != nil && !(missingKeymap && errors.Is(err, dts.ErrNoKeymapBlock)) {
		errs = append(errs, err.Error())
	}

	if len(layers) == 0 {
		errs = append(errs, "No layers found")
	}

	for index, layer := range layers {
		if len(layer.Bindings) != keymap.TotalKeys {
			errs = append(errs, fmt.Sprintf("Layer %d (%q) has %d bindings, expected %d",
				index, layer.Name, len(layer.Bindings), keymap.TotalKeys))
		}
		for position, token := range layer.Bindings {
			if dts.Preprocess(token) == "" {
				errs = append(errs, fmt.Sprintf("Layer %d has empty binding at position %d", index, position))
			}
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}
