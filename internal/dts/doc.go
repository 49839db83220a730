// Package dts reads the device-tree-like text format ZMK keymaps are written
// in. It is deliberately small: it knows how to skip comments and
// preprocessor lines, how to balance braces, and how to pull the `bindings`
// list out of every layer node under the `keymap` node. Everything else in a
// keymap file is tokenized and stepped over.
//
// Positions are reported with hcl.Pos and hcl.Range so syntax problems come
// back as hcl.Diagnostics carrying line and column information.
package dts
