package textmate

import "strings"

// RawSettings is the settings object attached to one theme rule: the
// subset of style attributes a rule may assign. FontStyle is a pointer so
// the parser can tell "key absent" (nil, FontStyleNotSet) apart from "key
// present but empty" (non-nil "", FontStyleNone).
type RawSettings struct {
	Foreground string
	Background string
	FontStyle  *string
}

func (s RawSettings) isEmpty() bool {
	return s.Foreground == "" && s.Background == "" && s.FontStyle == nil
}

// RawThemeSetting is one entry of a raw theme document. Scope holds
// either a single selector string, a []string of selectors, or nil
// (absent), the shape a theme file loader hands to this package after
// decoding JSON or a tmTheme property list. Loaders that decoded JSON
// arrays of interface{} may instead populate []any, which is accepted
// identically.
type RawThemeSetting struct {
	Scope    any
	Settings RawSettings
}

// RawTheme is the ordered input to BuildTheme.
type RawTheme struct {
	Settings []RawThemeSetting
}

// ParsedRule is one normalized theme rule with exactly one target
// selector. ParentScopes is nil when the rule is unconstrained by
// ancestry; FontStyle is FontStyleNotSet, and Foreground/Background are
// "", when the rule does not set that attribute.
type ParsedRule struct {
	Scope        string
	ParentScopes []string
	Index        int
	FontStyle    FontStyle
	Foreground   Colour
	Background   Colour
}

// ParseRawTheme normalizes a raw theme document into a flat, ordered list
// of ParsedRule values. It never errors: malformed selector pieces and
// colours are skipped or preserved as-given rather than rejected.
func ParseRawTheme(raw RawTheme) []ParsedRule {
	var rules []ParsedRule
	for i, entry := range raw.Settings {
		if entry.Scope == nil {
			if entry.Settings.isEmpty() {
				continue
			}
			rules = append(rules, newParsedRule("", nil, i, entry.Settings))
			continue
		}
		for _, piece := range scopePieces(entry.Scope) {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue // empty scope piece after splitting is skipped
			}
			segments := strings.Fields(piece)
			scope := segments[len(segments)-1]
			var parentScopes []string
			if len(segments) > 1 {
				parentScopes = append([]string(nil), segments[:len(segments)-1]...)
			}
			rules = append(rules, newParsedRule(scope, parentScopes, i, entry.Settings))
		}
	}
	return rules
}

// scopePieces splits a RawThemeSetting.Scope into its individual selector
// strings: a string is split on ",", while a sequence is used as given
// without further splitting.
func scopePieces(scope any) []string {
	switch v := scope.(type) {
	case string:
		return strings.Split(v, ",")
	case []string:
		return v
	case []any:
		pieces := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				pieces = append(pieces, s)
			}
		}
		return pieces
	default:
		return nil
	}
}

func newParsedRule(scope string, parentScopes []string, index int, settings RawSettings) ParsedRule {
	rule := ParsedRule{
		Scope:        scope,
		ParentScopes: parentScopes,
		Index:        index,
		FontStyle:    FontStyleNotSet,
		Foreground:   ParseColour(settings.Foreground),
		Background:   ParseColour(settings.Background),
	}
	if settings.FontStyle != nil {
		rule.FontStyle = ParseFontStyle(*settings.FontStyle)
	}
	return rule
}

// compareParsedRules implements the pre-insertion sort key: (fontStyle,
// foreground, background, scope, parentScopes, index), ascending, each
// field resolved left-to-right. It is a strict weak ordering suitable
// for a stable sort; ties are broken by Index so that earlier source
// ordinals win.
func compareParsedRules(a, b ParsedRule) int {
	if a.FontStyle != b.FontStyle {
		return int(a.FontStyle) - int(b.FontStyle)
	}
	if r := Strcmp(string(a.Foreground), string(b.Foreground)); r != 0 {
		return r
	}
	if r := Strcmp(string(a.Background), string(b.Background)); r != 0 {
		return r
	}
	if r := Strcmp(a.Scope, b.Scope); r != 0 {
		return r
	}
	if r := StrArrCmp(a.ParentScopes, b.ParentScopes); r != 0 {
		return r
	}
	return a.Index - b.Index
}
