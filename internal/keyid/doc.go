// internal/keyid/doc.go

/*
Package keyid provides a structured representation for the identifiers that
address one binding slot within one layer.

The canonical format is `L{layer}_R{row}C{col}`, e.g. `L0_R3C9`. The same
row/column addressing is reused on every layer, so `L0_R1C4` and `L2_R1C4`
name the same physical key on different layers.

This package centralizes formatting and parsing so the normalizer, the
exporters and the HTTP service agree on one spelling.
*/
package keyid
