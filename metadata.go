package textmate

// Bit layout of the packed metadata word, LSB first. This layout is the
// external contract with tokenizers and must not change.
const (
	metaIsDefaultOffset  = 0
	metaLanguageIDOffset = 1
	metaTokenTypeOffset  = 9
	metaFontStyleOffset  = 12
	metaForegroundOffset = 15
	metaBackgroundOffset = 24

	metaLanguageIDMask = 1<<8 - 1
	metaTokenTypeMask  = 1<<3 - 1
	metaFontStyleMask  = 1<<3 - 1
	metaForegroundMask = 1<<9 - 1
	metaBackgroundMask = 1<<8 - 1
)

// ScopeMetadata is the per-field outcome of resolving one token's scope
// against a theme. Each field is either concrete or carries its layer's
// "unset" sentinel (FontStyleNotSet, or 0 for
// languageId/tokenType/foreground/background), meaning "inherit from the
// enclosing scope".
type ScopeMetadata struct {
	LanguageID int
	TokenType  int
	FontStyle  FontStyle
	Foreground ColorID
	Background ColorID
}

// EncodeMetadata packs a fully resolved set of fields into a 32-bit word.
// Out-of-range field values are truncated to their bit width rather than
// rejected, matching the packer's role as a pure bit-twiddling step with
// no validation responsibilities of its own.
func EncodeMetadata(isDefault bool, languageID, tokenType int, fontStyle FontStyle, foreground, background ColorID) uint32 {
	var word uint32
	if isDefault {
		word |= 1 << metaIsDefaultOffset
	}
	word |= uint32(languageID&metaLanguageIDMask) << metaLanguageIDOffset
	word |= uint32(tokenType&metaTokenTypeMask) << metaTokenTypeOffset
	word |= uint32(int(fontStyle)&metaFontStyleMask) << metaFontStyleOffset
	word |= uint32(int(foreground)&metaForegroundMask) << metaForegroundOffset
	word |= uint32(int(background)&metaBackgroundMask) << metaBackgroundOffset
	return word
}

func metaIsDefault(word uint32) bool {
	return (word>>metaIsDefaultOffset)&1 != 0
}

func metaLanguageID(word uint32) int {
	return int((word >> metaLanguageIDOffset) & metaLanguageIDMask)
}

func metaTokenType(word uint32) int {
	return int((word >> metaTokenTypeOffset) & metaTokenTypeMask)
}

func metaFontStyle(word uint32) FontStyle {
	return FontStyle((word >> metaFontStyleOffset) & metaFontStyleMask)
}

func metaForeground(word uint32) ColorID {
	return ColorID((word >> metaForegroundOffset) & metaForegroundMask)
}

func metaBackground(word uint32) ColorID {
	return ColorID((word >> metaBackgroundOffset) & metaBackgroundMask)
}

// ScopeListElement is one frame of a token's scope stack. Parent chains
// outward to enclosing scopes, and Metadata is that frame's
// already-resolved packed word.
type ScopeListElement struct {
	Parent   *ScopeListElement
	Scope    string
	Metadata uint32
}

// Scopes returns the element's scope chain, outermost first, matching the
// ancestors argument shape MatchScopeStack expects.
func (e *ScopeListElement) Scopes() []string {
	var out []string
	for cur := e; cur != nil; cur = cur.Parent {
		out = append(out, cur.Scope)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// MergeMetadata combines an outer scope's metadata with a newly resolved
// rule. Each field is taken from incoming if set, else inherited from
// parent's metadata, or, if parent is nil (there is no enclosing scope
// yet), from oldMeta. isDefault always carries over from that same base
// word; resolving a rule never turns a default token into a non-default
// one on its own.
func MergeMetadata(oldMeta uint32, parent *ScopeListElement, incoming ScopeMetadata) uint32 {
	base := oldMeta
	if parent != nil {
		base = parent.Metadata
	}

	languageID := incoming.LanguageID
	if languageID == 0 {
		languageID = metaLanguageID(base)
	}
	tokenType := incoming.TokenType
	if tokenType == 0 {
		tokenType = metaTokenType(base)
	}
	fontStyle := incoming.FontStyle
	if fontStyle == FontStyleNotSet {
		fontStyle = metaFontStyle(base)
	}
	foreground := incoming.Foreground
	if foreground == 0 {
		foreground = metaForeground(base)
	}
	background := incoming.Background
	if background == 0 {
		background = metaBackground(base)
	}

	return EncodeMetadata(metaIsDefault(base), languageID, tokenType, fontStyle, foreground, background)
}
