// Package syntax holds the primitives shared by the green and red trees:
// kind tags and text ranges.
package syntax

import "strconv"

// Kind tags a token or node. The meaning of each value belongs to the
// language that produced the tree; the core only compares kinds.
type Kind uint16

// KindNamer maps a kind to a display name.
type KindNamer func(Kind) string

// NameOf returns namer(kind), or a numeric fallback when namer is nil or
// returns an empty string.
func NameOf(namer KindNamer, kind Kind) string {
	if namer != nil {
		if name := namer(kind); name != "" {
			return name
		}
	}
	return "KIND_" + strconv.Itoa(int(kind))
}

// KindTable builds a KindNamer from a slice indexed by kind.
// Kinds beyond the table, or with an empty entry, have no name.
func KindTable(names []string) KindNamer {
	return func(kind Kind) string {
		if int(kind) < len(names) {
			return names[kind]
		}
		return ""
	}
}
