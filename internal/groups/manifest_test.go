// SPDX-License-Identifier: MPL-2.0

package groups

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const pkgbuildExcerpt = `# Maintainer: someone
pkgname=ttf-ms-win11-auto
_ttf_ms_win11=(
'arial.ttf' 'arialbd.ttf'   # Arial
"times.ttf"
# 'commented.ttf'
)
_ttf_ms_win11_other=(
'segoeui.ttf'
)
_ttf_ms_win11_japanese=('msgothic.ttc' 'YuGothR.ttc')
source=("${_ttf_ms_win11[@]}")
`

func TestParse_PKGBUILD(t *testing.T) {
	t.Parallel()

	m, err := Parse(pkgbuildExcerpt, DefaultPrefix)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []FontGroup{
		{Name: "win11", Files: []string{"arial.ttf", "arialbd.ttf", "times.ttf"}},
		{Name: "win11_other", Files: []string{"segoeui.ttf"}},
		{Name: "win11_japanese", Files: []string{"msgothic.ttc", "YuGothR.ttc"}},
	}
	if diff := cmp.Diff(want, m.Groups()); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyPrefix(t *testing.T) {
	t.Parallel()

	m, err := Parse("win11=(a.ttf b.ttf)\nwin11_other=(c.ttf)\n", "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g, ok := m.Group("win11_other")
	if !ok || !cmp.Equal(g.Files, []string{"c.ttf"}) {
		t.Errorf("Group(win11_other) = %+v, %v", g, ok)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestParse_DuplicateNameKeepsPositionTakesLastList(t *testing.T) {
	t.Parallel()

	m, err := Parse("a=(1.ttf)\nb=(2.ttf)\na=(3.ttf 4.ttf)\n", "")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := []FontGroup{
		{Name: "a", Files: []string{"3.ttf", "4.ttf"}},
		{Name: "b", Files: []string{"2.ttf"}},
	}
	if diff := cmp.Diff(want, m.Groups()); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CommentedParenDoesNotClose(t *testing.T) {
	t.Parallel()

	m, err := Parse("_ttf_ms_x=(\n'a.ttf' # see (notes)\n'b.ttf'\n)\n", DefaultPrefix)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g, _ := m.Group("x")
	if !cmp.Equal(g.Files, []string{"a.ttf", "b.ttf"}) {
		t.Errorf("Files = %v", g.Files)
	}
}

func TestParse_ParenMidLineCloses(t *testing.T) {
	t.Parallel()

	m, err := Parse("_ttf_ms_x=('a.ttf'\n'b (old).ttf'\n'c.ttf'\n)\n", DefaultPrefix)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	g, _ := m.Group("x")
	if !cmp.Equal(g.Files, []string{"a.ttf", "b", "(old"}) {
		t.Errorf("Files = %v, want the array closed at the first \")\"", g.Files)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Parse("pkgname=foo\n", DefaultPrefix); !errors.Is(err, ErrNoGroups) {
		t.Errorf("Parse() without groups = %v, want ErrNoGroups", err)
	}

	_, err := Parse("ok=(a.ttf)\n\nbroken=(\n'a.ttf'\n", "")
	var unterminated *UnterminatedGroupError
	if !errors.As(err, &unterminated) {
		t.Fatalf("Parse() = %v, want *UnterminatedGroupError", err)
	}
	if unterminated.Group != "broken" || unterminated.Line != 3 {
		t.Errorf("UnterminatedGroupError = %+v, want group broken on line 3", unterminated)
	}
}

func TestParseSelection(t *testing.T) {
	t.Parallel()

	sel := ParseSelection(" win11 ,, win11_other,win11 ,")
	if diff := cmp.Diff([]string{"win11", "win11_other"}, sel.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if !sel.Enabled("win11_other") || sel.Enabled("") || sel.Enabled("win11_zh") {
		t.Error("Enabled() gave an unexpected answer")
	}
	if len(ParseSelection("").Names()) != 0 {
		t.Error("empty selection should enable nothing")
	}
}
