package textmate

import "strings"

// FontStyle is a bitset of italic/bold/underline, plus a sentinel used
// during rule folding to mean "inherit".
type FontStyle int8

const (
	// FontStyleNotSet marks a rule field that should inherit from its
	// ancestor rather than override it. A TrieNodeRule carries it when no
	// rule on its path set a font style: the trie root starts with it, and
	// the not-set rule returned for an unmatched scope has it.
	FontStyleNotSet FontStyle = -1

	FontStyleNone      FontStyle = 0
	FontStyleItalic    FontStyle = 1 << 0
	FontStyleBold      FontStyle = 1 << 1
	FontStyleUnderline FontStyle = 1 << 2
)

// Has reports whether every bit of other is set in s. s must be concrete
// (not FontStyleNotSet).
func (s FontStyle) Has(other FontStyle) bool {
	return s&other == other
}

func (s FontStyle) String() string {
	if s == FontStyleNotSet {
		return "NotSet"
	}
	if s == FontStyleNone {
		return "None"
	}
	var parts []string
	if s.Has(FontStyleItalic) {
		parts = append(parts, "italic")
	}
	if s.Has(FontStyleBold) {
		parts = append(parts, "bold")
	}
	if s.Has(FontStyleUnderline) {
		parts = append(parts, "underline")
	}
	return strings.Join(parts, " ")
}

// ParseFontStyle parses the whitespace-separated fontStyle grammar:
// "italic", "bold", "underline" combine freely; an empty string is
// FontStyleNone; any unrecognized token resets the whole result to
// FontStyleNone rather than failing.
//
// Callers distinguish "key present but empty" (FontStyleNone) from "key
// absent" (FontStyleNotSet) themselves. That distinction lives one layer
// up, in how a ParsedRule's fields are initialized, not in this grammar.
func ParseFontStyle(s string) FontStyle {
	if strings.TrimSpace(s) == "" {
		return FontStyleNone
	}
	var style FontStyle
	for _, tok := range strings.Fields(s) {
		switch tok {
		case "italic":
			style |= FontStyleItalic
		case "bold":
			style |= FontStyleBold
		case "underline":
			style |= FontStyleUnderline
		default:
			return FontStyleNone
		}
	}
	return style
}
