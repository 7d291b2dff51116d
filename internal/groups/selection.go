// SPDX-License-Identifier: MPL-2.0

package groups

import (
	"slices"
	"strings"
)

// DefaultSelection enables the base Windows 11 fonts and their supplement.
const DefaultSelection = "win11,win11_other"

// Selection is the set of enabled group names.
type Selection struct {
	names map[string]struct{}
}

// ParseSelection splits a comma-separated list of group names. Surrounding
// whitespace and empty items are ignored.
func ParseSelection(csv string) Selection {
	s := Selection{names: make(map[string]struct{})}
	for item := range strings.SplitSeq(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			s.names[item] = struct{}{}
		}
	}
	return s
}

// Enabled reports whether name was selected.
func (s Selection) Enabled(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Names returns the selected names, sorted.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
