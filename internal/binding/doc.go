// Package binding classifies raw ZMK binding tokens such as `&kp TAB` or
// `&mt LSHIFT A` into keymap.Binding values.
//
// Classification is total: matchers are tried in a fixed priority order and
// a token no matcher accepts is kept verbatim as a keycode binding.
package binding
