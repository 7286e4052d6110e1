package utils

import (
	"strconv"
)

// ParseID parses a positive path id; ok is false for anything else.
// Ids are capped at the bigint range of the primary keys.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 63)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
