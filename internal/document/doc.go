// Package document models the ConEmu master configuration file as an owned
// tree of key/value nodes.
//
// A Document is parsed once, mutated in place by the palette engine and
// serialised deterministically: attribute order is preserved exactly as read
// (or as set, for attributes added later), indentation is normalised to tabs
// and character data that is only whitespace is dropped.
//
// Only the root element and its contents are kept. The XML declaration is
// always rewritten as Header, and comments, directives or processing
// instructions that sit outside the root element are not retained on save.
package document
