// internal/keyid/types.go
package keyid

// ID is the structured form of a key identifier.
type ID struct {
	Layer int
	Row   int
	Col   int
}

// New creates an ID for the given layer index and board position.
func New(layer, row, col int) ID {
	return ID{Layer: layer, Row: row, Col: col}
}
