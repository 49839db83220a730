// internal/keyid/id.go
package keyid

import (
	"strconv"
	"strings"
)

// String serializes the ID into its canonical form.
func (id ID) String() string {
	var sb strings.Builder
	sb.WriteByte('L')
	sb.WriteString(strconv.Itoa(id.Layer))
	sb.WriteString("_R")
	sb.WriteString(strconv.Itoa(id.Row))
	sb.WriteByte('C')
	sb.WriteString(strconv.Itoa(id.Col))
	return sb.String()
}

// Less orders IDs by layer, then row-major within the layer.
func (id ID) Less(other ID) bool {
	if id.Layer != other.Layer {
		return id.Layer < other.Layer
	}
	if id.Row != other.Row {
		return id.Row < other.Row
	}
	return id.Col < other.Col
}
