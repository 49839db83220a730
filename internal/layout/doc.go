// Package layout places a layer's flat, row-major binding list onto the key
// slots of the 42-key split board and classifies each binding on the way.
//
// The thumb row is the only irregular part: its six bindings are split into
// columns 0-2 and 9-11, and columns 3-8 of that row never receive a binding.
package layout
