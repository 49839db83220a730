// Package zmk is the entry point to the keymap parsing pipeline.
//
// ParseKeymapFile turns ZMK keymap text into a keymap.KeymapConfig;
// ValidateKeymapFile reports problems without parsing; ParseBinding
// classifies a single binding token. A Parser carries the options (symbol
// table, metadata, logger) the package-level functions use defaults for.
package zmk
