package keymap

// Geometry of the supported board: a 42-key split with three 12-key rows and
// a six-key thumb row. The thumb row is split into a left cluster on columns
// 0-2 and a right cluster on columns 9-11; columns 3-8 of that row do not
// exist.
const (
	Rows      = 4
	Columns   = 12
	TotalKeys = 42

	ThumbRow = 3
	// ThumbSplit is the number of thumb keys on the left half.
	ThumbSplit = 3
	// ThumbOffset is added to the column of every right-half thumb key.
	ThumbOffset = 6
)

// RowKeyCounts is the number of bindings each row consumes.
var RowKeyCounts = [Rows]int{12, 12, 12, 6}

// Position is one physical key slot.
type Position struct {
	Row int
	Col int
}

// Positions returns every key slot in the order bindings are consumed from a
// layer's binding list.
func Positions() []Position {
	out := make([]Position, 0, TotalKeys)
	for row := 0; row < Rows; row++ {
		for i := 0; i < RowKeyCounts[row]; i++ {
			col := i
			if row == ThumbRow && i >= ThumbSplit {
				col = i + ThumbOffset
			}
			out = append(out, Position{Row: row, Col: col})
		}
	}
	return out
}

// HasKey reports whether a physical key exists at row, col.
func HasKey(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return false
	}
	if row == ThumbRow {
		return col < ThumbSplit || col >= ThumbSplit+ThumbOffset
	}
	return true
}
