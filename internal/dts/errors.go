package dts

import (
	"errors"

	"github.com/hashicorp/hcl/v2"
)

// ErrNoKeymapBlock is returned when the input has no `keymap { ... }` node.
var ErrNoKeymapBlock = errors.New("No keymap block found in file")

func syntaxError(rng hcl.Range, summary, detail string) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}
