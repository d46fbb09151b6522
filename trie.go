package textmate

import (
	"sort"
	"strings"
)

// ColorID is a colour identifier interned by a ColorMap; 0 means unset.
type ColorID int

// TrieNodeRule is the resolved (inheritance-applied) style attributes
// attached to one trie node: either the node's main rule (ParentScopes ==
// nil) or one of its parentScopes-qualified rules.
type TrieNodeRule struct {
	ScopeDepth   int
	ParentScopes []string
	FontStyle    FontStyle
	Foreground   ColorID
	Background   ColorID
}

// TrieNodeRuleDiff reports which fields differ between two TrieNodeRule
// values, as returned by TrieNodeRule.Diff. A nil field means
// "unchanged"; a non-nil field carries the receiver's value for that
// field, even when that value happens to be the type's own zero value.
type TrieNodeRuleDiff struct {
	ScopeDepth *int
	FontStyle  *FontStyle
	Foreground *ColorID
	Background *ColorID
}

// Diff reports the fields of r that differ from other, a debugging aid
// for explaining why two scopes resolved differently; it is not used by
// matching itself.
func (r TrieNodeRule) Diff(other TrieNodeRule) TrieNodeRuleDiff {
	var out TrieNodeRuleDiff
	if r.ScopeDepth != other.ScopeDepth {
		v := r.ScopeDepth
		out.ScopeDepth = &v
	}
	if r.FontStyle != other.FontStyle {
		v := r.FontStyle
		out.FontStyle = &v
	}
	if r.Foreground != other.Foreground {
		v := r.Foreground
		out.Foreground = &v
	}
	if r.Background != other.Background {
		v := r.Background
		out.Background = &v
	}
	return out
}

// notSetRule is returned by ThemeTrie.match when a scope makes no progress
// at all into the trie.
var notSetRule = TrieNodeRule{ScopeDepth: 0, ParentScopes: nil, FontStyle: FontStyleNotSet, Foreground: 0, Background: 0}

// trieNode is one node of the scope trie. It is mutable during
// construction and never mutated afterwards; ThemeTrie exposes only the
// read-only match operation once built.
type trieNode struct {
	mainRule  TrieNodeRule
	qualified []TrieNodeRule
	children  map[string]*trieNode
}

func newTrieNode(mainRule TrieNodeRule, qualified []TrieNodeRule) *trieNode {
	return &trieNode{
		mainRule:  mainRule,
		qualified: append([]TrieNodeRule(nil), qualified...),
		children:  map[string]*trieNode{},
	}
}

// insert walks the remaining scope segments from n, creating child nodes
// lazily and seeding each new child with a copy of n's current state,
// which is how a child inherits its parent's resolved attributes. depth
// is the number of segments already consumed (the eventual ScopeDepth
// once the target is reached).
func (n *trieNode) insert(depth int, segments []string, parentScopes []string, fontStyle FontStyle, fg, bg ColorID) {
	if len(segments) == 0 {
		n.insertHere(depth, parentScopes, fontStyle, fg, bg)
		return
	}
	head := segments[0]
	child, ok := n.children[head]
	if !ok {
		child = newTrieNode(n.mainRule, n.qualified)
		n.children[head] = child
	}
	child.insert(depth+1, segments[1:], parentScopes, fontStyle, fg, bg)
}

func (n *trieNode) insertHere(depth int, parentScopes []string, fontStyle FontStyle, fg, bg ColorID) {
	if parentScopes == nil {
		old := n.mainRule
		n.mainRule = acceptOverwrite(old, depth, fontStyle, fg, bg)
		n.propagateMain(old, n.mainRule)
		return
	}
	rule := seedQualifiedRule(n.mainRule, depth, parentScopes, fontStyle, fg, bg)
	n.qualified = upsertQualified(n.qualified, rule)
	n.propagateQualified(rule)
}

// propagateMain fixes up already-created descendants after n's main rule
// changes from old to new. A descendant whose field still equals old's,
// meaning nothing has locally overridden it, inherits new's value,
// exactly as it would have if the descendant had been created after this
// merge instead of before it.
func (n *trieNode) propagateMain(old, new TrieNodeRule) { //nolint:predeclared
	for _, child := range n.children {
		next := child.mainRule
		if next.ScopeDepth == old.ScopeDepth {
			next.ScopeDepth = new.ScopeDepth
		}
		if next.FontStyle == old.FontStyle {
			next.FontStyle = new.FontStyle
		}
		if next.Foreground == old.Foreground {
			next.Foreground = new.Foreground
		}
		if next.Background == old.Background {
			next.Background = new.Background
		}
		child.mainRule = next
		child.propagateMain(old, new)
	}
}

// propagateQualified pushes a newly inserted qualified rule into every
// already-existing descendant, since qualified rules apply at any depth
// at or below the target. A descendant that already carries an entry for
// the same parentScopes, because it was defined there directly, or
// inherited earlier from a closer ancestor, keeps its own entry;
// descendants below it were seeded from that entry already, so
// propagation stops there too.
func (n *trieNode) propagateQualified(rule TrieNodeRule) {
	for _, child := range n.children {
		if hasParentScopes(child.qualified, rule.ParentScopes) {
			continue
		}
		child.qualified = upsertQualified(child.qualified, rule)
		child.propagateQualified(rule)
	}
}

func hasParentScopes(list []TrieNodeRule, parentScopes []string) bool {
	for _, r := range list {
		if StrArrCmp(r.ParentScopes, parentScopes) == 0 {
			return true
		}
	}
	return false
}

// acceptOverwrite merges an incoming field set into an existing rule: the
// depth only ever grows, and each of fontStyle/foreground/background is
// overwritten only when the incoming value is concrete.
func acceptOverwrite(old TrieNodeRule, depth int, fontStyle FontStyle, fg, bg ColorID) TrieNodeRule {
	out := old
	if depth > out.ScopeDepth {
		out.ScopeDepth = depth
	}
	if fontStyle != FontStyleNotSet {
		out.FontStyle = fontStyle
	}
	if fg != 0 {
		out.Foreground = fg
	}
	if bg != 0 {
		out.Background = bg
	}
	return out
}

// seedQualifiedRule builds a new qualified rule, inheriting any field the
// incoming rule leaves unset from the node's current main rule: the same
// "inherit from here down" semantics a freshly created child node gets.
func seedQualifiedRule(main TrieNodeRule, depth int, parentScopes []string, fontStyle FontStyle, fg, bg ColorID) TrieNodeRule {
	out := TrieNodeRule{ScopeDepth: depth, ParentScopes: parentScopes, FontStyle: fontStyle, Foreground: fg, Background: bg}
	if out.FontStyle == FontStyleNotSet {
		out.FontStyle = main.FontStyle
	}
	if out.Foreground == 0 {
		out.Foreground = main.Foreground
	}
	if out.Background == 0 {
		out.Background = main.Background
	}
	return out
}

// upsertQualified inserts rule into list, merging into an existing entry
// for the same parentScopes instead of duplicating it, and keeps the
// result sorted by descending specificity (scopeDepth, then
// parentScopes).
func upsertQualified(list []TrieNodeRule, rule TrieNodeRule) []TrieNodeRule {
	for i, existing := range list {
		if StrArrCmp(existing.ParentScopes, rule.ParentScopes) == 0 {
			merged := acceptOverwrite(existing, rule.ScopeDepth, rule.FontStyle, rule.Foreground, rule.Background)
			merged.ParentScopes = existing.ParentScopes
			list[i] = merged
			return list
		}
	}
	list = append(list, rule)
	sortQualifiedDesc(list)
	return list
}

func sortQualifiedDesc(list []TrieNodeRule) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].ScopeDepth != list[j].ScopeDepth {
			return list[i].ScopeDepth > list[j].ScopeDepth
		}
		return StrArrCmp(list[i].ParentScopes, list[j].ParentScopes) > 0
	})
}

// ThemeTrie answers "what are the candidate rules for this scope" queries
// in time proportional to the scope's depth.
type ThemeTrie struct {
	root *trieNode
}

// buildTrie folds the defaults-only rules into D0, sorts the rest, and
// inserts them one at a time. D0 is kept only as the Theme-level
// fallback; the trie itself starts every field unset, so a node's
// resolved mainRule reflects only what theme rules actually reached it.
// A node that never had its background set stays unset even though the
// theme's defaults have a concrete one.
func buildTrie(rules []ParsedRule, colors *ColorMap) (*ThemeTrie, TrieNodeRule) {
	defaults := TrieNodeRule{
		ScopeDepth: 0,
		FontStyle:  FontStyleNone,
		Foreground: ColorID(colors.GetID("#000000")),
		Background: ColorID(colors.GetID("#FFFFFF")),
	}

	rest := make([]ParsedRule, 0, len(rules))
	for _, r := range rules {
		if r.Scope == "" {
			if r.ParentScopes == nil {
				defaults = acceptOverwrite(defaults, 0, r.FontStyle, ColorID(colors.GetID(string(r.Foreground))), ColorID(colors.GetID(string(r.Background))))
			}
			continue
		}
		rest = append(rest, r)
	}

	sort.SliceStable(rest, func(i, j int) bool { return compareParsedRules(rest[i], rest[j]) < 0 })

	root := newTrieNode(TrieNodeRule{ScopeDepth: 0, FontStyle: FontStyleNotSet}, nil)
	for _, r := range rest {
		segments := strings.Split(r.Scope, ".")
		fg := ColorID(colors.GetID(string(r.Foreground)))
		bg := ColorID(colors.GetID(string(r.Background)))
		root.insert(0, segments, r.ParentScopes, r.FontStyle, fg, bg)
	}

	return &ThemeTrie{root: root}, defaults
}

// match returns the ranked candidate rules for scope: the deepest
// reachable node's own main rule and qualified rules, most specific first,
// or a single not-set rule if the walk made no progress at all.
func (t *ThemeTrie) match(scope string) []TrieNodeRule {
	segments := strings.Split(scope, ".")
	node := t.root
	progressed := false
	for _, seg := range segments {
		child, ok := node.children[seg]
		if !ok {
			break
		}
		node = child
		progressed = true
	}
	if !progressed {
		return []TrieNodeRule{notSetRule}
	}

	candidates := append([]TrieNodeRule(nil), node.qualified...)
	candidates = append(candidates, node.mainRule)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ScopeDepth != b.ScopeDepth {
			return a.ScopeDepth > b.ScopeDepth
		}
		return StrArrCmp(a.ParentScopes, b.ParentScopes) > 0
	})
	return candidates
}
