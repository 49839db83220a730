// Package export renders a parsed keymap.KeymapConfig for people and tools:
// JSON through cty, HCL through hclwrite, and a plain text grid per layer.
package export
