package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// MultiIndex is a set of non-negative sheet numbers expressed on the
// command line as comma-separated integers and/or ranges ("1,3,5-9"),
// "all" when unset, or "none" when explicitly empty.
type MultiIndex struct {
	all     bool
	members map[int]struct{}
}

// AllSheets is a MultiIndex that contains every sheet number.
func AllSheets() MultiIndex {
	return MultiIndex{all: true}
}

// NoSheets is a MultiIndex that contains no sheet number.
func NoSheets() MultiIndex {
	return MultiIndex{members: map[int]struct{}{}}
}

// ParseMultiIndex parses the multi-index grammar: "all", "none", or a
// comma-separated list of integers and inclusive "a-b" ranges.
func ParseMultiIndex(s string) (MultiIndex, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "all":
		return AllSheets(), nil
	case "", "none":
		return NoSheets(), nil
	}

	members := map[int]struct{}{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dash := strings.IndexByte(part, '-'); dash > 0 {
			lo, err := strconv.Atoi(strings.TrimSpace(part[:dash]))
			if err != nil {
				return MultiIndex{}, fmt.Errorf("invalid multi-index range %q: %w", part, err)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(part[dash+1:]))
			if err != nil {
				return MultiIndex{}, fmt.Errorf("invalid multi-index range %q: %w", part, err)
			}
			if hi < lo {
				lo, hi = hi, lo
			}
			for i := lo; i <= hi; i++ {
				members[i] = struct{}{}
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return MultiIndex{}, fmt.Errorf("invalid multi-index entry %q: %w", part, err)
		}
		members[n] = struct{}{}
	}
	return MultiIndex{members: members}, nil
}

// Contains reports whether sheet n is a member.
func (m MultiIndex) Contains(n int) bool {
	if m.all {
		return true
	}
	_, ok := m.members[n]
	return ok
}
