// Package textmate resolves TextMate-style theme rules against syntactic
// scope chains.
//
// A theme is built once from an ordered list of rules, each carrying a
// dotted scope selector and optional parent-scope constraints, and
// thereafter answers two kinds of query: "what rules apply to this scope
// string" and "which of those rules survives given the chain of enclosing
// scopes a tokenizer has pushed onto its stack". The result is packed into
// a 32-bit metadata word for cheap storage alongside each token.
//
// Building a theme, querying it, and packing metadata are pure,
// allocation-light, and safe to call concurrently once a Theme has been
// built; see Theme for the immutability guarantee.
package textmate
