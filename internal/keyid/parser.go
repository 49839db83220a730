// internal/keyid/parser.go
package keyid

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var idRegex = regexp.MustCompile(`^L(\d+)_R(\d+)C(\d+)$`)

// Parse creates an ID by parsing its canonical string representation.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("key id cannot be empty")
	}

	matches := idRegex.FindStringSubmatch(raw)
	if matches == nil {
		return ID{}, fmt.Errorf("invalid key id format: %q", raw)
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			// Only reachable on overflow, the regex guarantees digits.
			return ID{}, fmt.Errorf("invalid key id %q: %w", raw, err)
		}
		parts[i] = n
	}

	return ID{Layer: parts[0], Row: parts[1], Col: parts[2]}, nil
}

// SortStrings sorts canonical key ids in layer, row, column order. Strings
// that do not parse are placed last in lexical order.
func SortStrings(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, errA := Parse(ids[i])
		b, errB := Parse(ids[j])
		switch {
		case errA != nil && errB != nil:
			return ids[i] < ids[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a.Less(b)
	})
}
