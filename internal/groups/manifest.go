// SPDX-License-Identifier: MPL-2.0

package groups

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix is the variable prefix of the font arrays in the AUR PKGBUILD.
const DefaultPrefix = "_ttf_ms_"

var (
	// ErrNoGroups is returned when a manifest declares no font groups.
	ErrNoGroups = errors.New("no font groups found in manifest")
	// ErrUnterminatedGroup is the sentinel error wrapped by UnterminatedGroupError.
	ErrUnterminatedGroup = errors.New("font group is not terminated")

	commentPattern = regexp.MustCompile(`#.*$`)
)

type (
	// FontGroup is one named file list from the manifest.
	FontGroup struct {
		Name  string
		Files []string
	}

	// Manifest holds the groups in declaration order.
	Manifest struct {
		groups []FontGroup
		index  map[string]int
	}

	// UnterminatedGroupError is returned when a group array has no closing ")".
	UnterminatedGroupError struct {
		Group string
		Line  int
	}
)

func (e *UnterminatedGroupError) Error() string {
	return fmt.Sprintf("font group %q opened on line %d is never closed", e.Group, e.Line)
}

// Unwrap returns ErrUnterminatedGroup for errors.Is.
func (e *UnterminatedGroupError) Unwrap() error { return ErrUnterminatedGroup }

// Parse reads every <prefix><name>=( ... ) array from text. Arrays may span
// lines; "#" starts a comment and the first ")" anywhere on a line closes
// the array, so file names cannot contain ")". Items are
// separated by whitespace and may be quoted. The prefix is stripped from the
// group name, and an empty prefix accepts any variable name. A name declared
// twice keeps its first position and its last file list.
func Parse(text, prefix string) (*Manifest, error) {
	opening := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(prefix) + `([^=\s(#]+)=\((.*)$`)
	m := &Manifest{index: make(map[string]int)}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		match := opening.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		name, rest := match[1], match[2]
		start := i + 1

		var body []string
		closed := false
		for {
			rest = commentPattern.ReplaceAllString(rest, "")
			if before, _, found := strings.Cut(rest, ")"); found {
				body = append(body, before)
				closed = true
				break
			}
			body = append(body, rest)
			if i+1 >= len(lines) {
				break
			}
			i++
			rest = lines[i]
		}
		if !closed {
			return nil, &UnterminatedGroupError{Group: name, Line: start}
		}

		m.add(FontGroup{Name: name, Files: splitItems(strings.Join(body, "\n"))})
	}

	if len(m.groups) == 0 {
		return nil, ErrNoGroups
	}
	return m, nil
}

func splitItems(body string) []string {
	fields := strings.Fields(body)
	items := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `'"`)
		if f != "" {
			items = append(items, f)
		}
	}
	return items
}

func (m *Manifest) add(g FontGroup) {
	if i, ok := m.index[g.Name]; ok {
		m.groups[i] = g
		return
	}
	m.index[g.Name] = len(m.groups)
	m.groups = append(m.groups, g)
}

// Groups returns the groups in declaration order.
func (m *Manifest) Groups() []FontGroup {
	out := make([]FontGroup, len(m.groups))
	copy(out, m.groups)
	return out
}

// Group looks up a group by name.
func (m *Manifest) Group(name string) (FontGroup, bool) {
	i, ok := m.index[name]
	if !ok {
		return FontGroup{}, false
	}
	return m.groups[i], true
}

// Len is the number of distinct groups.
func (m *Manifest) Len() int { return len(m.groups) }
