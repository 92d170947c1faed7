// Package green implements the immutable, position-free value tree.
//
// A green tree records token kinds and text and nothing else: no offsets, no
// parent links. Values are never mutated after construction, so a tree can be
// shared freely between goroutines and between many versions of a document.
// Edits produce new nodes that reuse every unchanged subtree.
//
// Trees are usually assembled with a Builder, which routes every token and node
// through an Interner so that structurally identical subtrees share a single
// allocation.
package green
