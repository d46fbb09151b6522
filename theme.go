package textmate

import (
	"fmt"
	"strings"
)

// Theme is a fully built, read-only theme: a colour table plus the trie of
// resolved rules derived from it. A *Theme is safe for concurrent use by
// multiple goroutines once BuildTheme/ThemeBuilder.Build has returned it.
type Theme struct {
	colors   *ColorMap
	trie     *ThemeTrie
	defaults TrieNodeRule
}

// ThemeBuilder accumulates raw theme documents before resolving them into
// a Theme: construction is cheap and repeatable, resolution happens once.
type ThemeBuilder struct {
	raws []RawTheme
}

// NewThemeBuilder returns an empty builder.
func NewThemeBuilder() *ThemeBuilder {
	return &ThemeBuilder{}
}

// AddRawTheme queues another raw theme document to be folded in, in the
// order added, when Build runs. Later documents' rules sort and insert
// alongside earlier ones as if they had been one document: the sort key
// compares style fields, scope and parentScopes first, and the
// settings-array index (which restarts at 0 in each document) only
// separates rules that agree on all of those.
func (b *ThemeBuilder) AddRawTheme(raw RawTheme) *ThemeBuilder {
	b.raws = append(b.raws, raw)
	return b
}

// Build parses and resolves every queued raw theme into a Theme. It never
// errors today: malformed input degrades gracefully rather than failing.
// It returns an error to leave room for a future theme source (e.g.
// tmTheme plist decoding) that can fail on its own terms.
func (b *ThemeBuilder) Build() (*Theme, error) {
	colors := NewColorMap()
	var rules []ParsedRule
	for _, raw := range b.raws {
		rules = append(rules, ParseRawTheme(raw)...)
	}
	trie, defaults := buildTrie(rules, colors)
	return &Theme{colors: colors, trie: trie, defaults: defaults}, nil
}

// BuildTheme is a convenience wrapper for the common case of a single raw
// theme document.
func BuildTheme(raw RawTheme) (*Theme, error) {
	return NewThemeBuilder().AddRawTheme(raw).Build()
}

// MustBuildTheme is like BuildTheme but panics on error, for callers
// building a theme from a trusted, embedded document.
func MustBuildTheme(raw RawTheme) *Theme {
	theme, err := BuildTheme(raw)
	if err != nil {
		panic(err)
	}
	return theme
}

// Defaults returns the D0 rule: the baseline fontStyle/foreground/
// background every scope falls back to absent any more specific match.
func (t *Theme) Defaults() TrieNodeRule {
	return t.defaults
}

// Colors returns the theme's interned colour table, index 0 is always "".
func (t *Theme) Colors() []string {
	return t.colors.Colors()
}

// Color resolves a ColorID back to its canonical "#RRGGBB" string, or ""
// for id 0.
func (t *Theme) Color(id ColorID) string {
	return t.colors.GetColor(int(id))
}

// Match returns the ranked candidate rules for scope with no ancestry
// filtering applied: most specific first. Callers that also have a scope
// stack should use MatchScopeStack instead, which picks the single
// winner.
func (t *Theme) Match(scope string) []TrieNodeRule {
	return t.trie.match(scope)
}

// MatchScopeStack resolves scope against the theme, filtering the
// candidate rules by ancestors (the enclosing scopes, outermost first,
// that scope actually appears under), and returns the first (most
// specific) candidate whose ParentScopes are satisfied. A rule with
// ParentScopes == nil is unconstrained and always satisfied, so this
// always returns a value; when nothing more specific matches it falls
// back to the node's main rule, and a scope that reaches no trie node at
// all yields the not-set rule (not the theme's defaults).
func (t *Theme) MatchScopeStack(ancestors []string, scope string) TrieNodeRule {
	for _, candidate := range t.trie.match(scope) {
		if scopesMatch(candidate.ParentScopes, ancestors) {
			return candidate
		}
	}
	return t.defaults
}

// scopesMatch reports whether parentScopes, an ordered sequence of
// ancestor selectors nearest-last, appears as an in-order subsequence of
// ancestors (outermost first): each entry of parentScopes must match some
// ancestor, later entries matching strictly later ancestors than earlier
// ones. A nil parentScopes is unconstrained and always matches.
func scopesMatch(parentScopes []string, ancestors []string) bool {
	if parentScopes == nil {
		return true
	}
	pos := 0
	for _, want := range parentScopes {
		found := false
		for pos < len(ancestors) {
			candidate := ancestors[pos]
			pos++
			if scopeSegmentsArePrefix(want, candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// scopeSegmentsArePrefix reports whether prefix's dot-separated segments
// are a prefix of scope's: "meta.tag" matches "meta.tag.structure.any",
// but not "meta.taggable", since the match is segment-wise, not a raw
// string prefix.
func scopeSegmentsArePrefix(prefix, scope string) bool {
	if prefix == scope {
		return true
	}
	return strings.HasPrefix(scope, prefix+".")
}

// String renders a TrieNodeRule for debugging/logging.
func (r TrieNodeRule) String() string {
	return fmt.Sprintf("TrieNodeRule{depth:%d parents:%v style:%s fg:%d bg:%d}",
		r.ScopeDepth, r.ParentScopes, r.FontStyle, r.Foreground, r.Background)
}
