// Package keymap defines the format-agnostic model produced by the keymap
// parser: layers, per-key bindings and file metadata, together with the fixed
// geometry of the 42-key split board the parser targets.
//
// The model is the single output of the parsing pipeline. Values are built
// fresh for every parse and are not mutated afterwards; editing a binding is
// the job of whatever consumes the model.
package keymap
