package textmate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustTheme(t *testing.T, raw RawTheme) *Theme {
	t.Helper()
	theme, err := BuildTheme(raw)
	if err != nil {
		t.Fatalf("BuildTheme: %v", err)
	}
	return theme
}

// TestMatchDeeperMatchPriority checks that a deeper main-rule match
// outranks a shallower parentScopes-qualified match at the same scope.
func TestMatchDeeperMatchPriority(t *testing.T) {
	theme := mustTheme(t, RawTheme{Settings: []RawThemeSetting{
		{Scope: nil, Settings: RawSettings{Foreground: "#100000", Background: "#200000"}},
		{Scope: "punctuation.definition.string.begin.html", Settings: RawSettings{Foreground: "#300000"}},
		{Scope: "meta.tag punctuation.definition.string", Settings: RawSettings{Foreground: "#400000"}},
	}})

	matches := theme.Match("punctuation.definition.string.begin.html")
	if assert.Len(t, matches, 2) {
		assert.Equal(t, 5, matches[0].ScopeDepth)
		assert.Nil(t, matches[0].ParentScopes)
		assert.Equal(t, "#300000", theme.Color(matches[0].Foreground))

		assert.Equal(t, 3, matches[1].ScopeDepth)
		assert.Equal(t, []string{"meta.tag"}, matches[1].ParentScopes)
		assert.Equal(t, "#400000", theme.Color(matches[1].Foreground))
	}
}

// TestMatchParentMatchPriority checks that among equally deep candidates,
// the one with more specific parentScopes outranks a plain match.
func TestMatchParentMatchPriority(t *testing.T) {
	theme := mustTheme(t, RawTheme{Settings: []RawThemeSetting{
		{Scope: nil, Settings: RawSettings{Foreground: "#100000", Background: "#200000"}},
		{Scope: "c a", Settings: RawSettings{Foreground: "#300000"}},
		{Scope: "d a.b", Settings: RawSettings{Foreground: "#400000"}},
		{Scope: "a", Settings: RawSettings{Foreground: "#500000"}},
	}})

	matches := theme.Match("a.b")
	if assert.Len(t, matches, 3) {
		assert.Equal(t, 2, matches[0].ScopeDepth)
		assert.Equal(t, []string{"d"}, matches[0].ParentScopes)
		assert.Equal(t, "#400000", theme.Color(matches[0].Foreground))

		assert.Equal(t, 1, matches[1].ScopeDepth)
		assert.Equal(t, []string{"c"}, matches[1].ParentScopes)
		assert.Equal(t, "#300000", theme.Color(matches[1].Foreground))

		assert.Equal(t, 1, matches[2].ScopeDepth)
		assert.Nil(t, matches[2].ParentScopes)
		assert.Equal(t, "#500000", theme.Color(matches[2].Foreground))
	}
}

// TestMatchInheritance checks that a child scope inherits any attribute
// its parent sets but it does not itself override.
func TestMatchInheritance(t *testing.T) {
	theme := mustTheme(t, RawTheme{Settings: []RawThemeSetting{
		{Scope: nil, Settings: RawSettings{Foreground: "#F8F8F2", Background: "#272822"}},
		{Scope: "var", Settings: RawSettings{Foreground: "#ff0000", FontStyle: strPtr("bold")}},
		{Scope: "var.identifier", Settings: RawSettings{Foreground: "#00ff00"}},
	}})

	matches := theme.Match("var.identifier")
	if assert.Len(t, matches, 1) {
		got := matches[0]
		assert.Equal(t, 2, got.ScopeDepth)
		assert.Equal(t, FontStyleBold, got.FontStyle)
		assert.Equal(t, "#00FF00", theme.Color(got.Foreground))
		assert.Equal(t, ColorID(0), got.Background, "background was never set on this branch, so it stays unset rather than falling back to the theme defaults")
	}
}

// TestMatchNoMatch checks that a scope unrelated to any rule in the
// theme resolves to the single not-set rule.
func TestMatchNoMatch(t *testing.T) {
	theme := mustTheme(t, RawTheme{Settings: []RawThemeSetting{
		{Scope: "source", Settings: RawSettings{Foreground: "#ff0000"}},
	}})

	matches := theme.Match("bazz")
	assert.Equal(t, []TrieNodeRule{{ScopeDepth: 0, ParentScopes: nil, FontStyle: FontStyleNotSet, Foreground: 0, Background: 0}}, matches)
}

// TestParseRawThemeMultiSelectorSplitting checks that a comma-separated
// scope list expands into one parsed rule per selector, all sharing the
// same settings.
func TestParseRawThemeMultiSelectorSplitting(t *testing.T) {
	rules := ParseRawTheme(RawTheme{Settings: []RawThemeSetting{
		{Scope: "source, something", Settings: RawSettings{Background: "#100000"}},
	}})
	if assert.Len(t, rules, 2) {
		assert.Equal(t, "source", rules[0].Scope)
		assert.Equal(t, "something", rules[1].Scope)
		assert.Equal(t, rules[0].Background, rules[1].Background)
		assert.Equal(t, rules[0].Index, rules[1].Index)
	}
}

// TestTrieNodeRuleDiff checks that Diff reports only the fields that
// differ between the two rules, carrying the receiver's values.
func TestTrieNodeRuleDiff(t *testing.T) {
	a := TrieNodeRule{ScopeDepth: 2, FontStyle: FontStyleBold, Foreground: 5, Background: 7}
	b := TrieNodeRule{ScopeDepth: 2, FontStyle: FontStyleItalic, Foreground: 5, Background: 9}

	diff := a.Diff(b)
	assert.Nil(t, diff.ScopeDepth, "ScopeDepth is equal on both sides")
	if assert.NotNil(t, diff.FontStyle) {
		assert.Equal(t, FontStyleBold, *diff.FontStyle)
	}
	assert.Nil(t, diff.Foreground, "Foreground is equal on both sides")
	if assert.NotNil(t, diff.Background) {
		assert.Equal(t, ColorID(7), *diff.Background)
	}
}

func TestTrieNodeRuleDiffReportsChangeToZeroValue(t *testing.T) {
	a := TrieNodeRule{ScopeDepth: 0, FontStyle: FontStyleNone, Foreground: 0, Background: 0}
	b := TrieNodeRule{ScopeDepth: 3, FontStyle: FontStyleBold, Foreground: 4, Background: 6}

	diff := a.Diff(b)
	if assert.NotNil(t, diff.ScopeDepth) {
		assert.Equal(t, 0, *diff.ScopeDepth)
	}
	if assert.NotNil(t, diff.FontStyle) {
		assert.Equal(t, FontStyleNone, *diff.FontStyle)
	}
	if assert.NotNil(t, diff.Foreground) {
		assert.Equal(t, ColorID(0), *diff.Foreground)
	}
	if assert.NotNil(t, diff.Background) {
		assert.Equal(t, ColorID(0), *diff.Background)
	}
}

func strPtr(s string) *string { return &s }
