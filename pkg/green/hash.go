package green

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// seed is fixed for the process so fingerprints are comparable across caches.
//
//nolint:gochecknoglobals // Process-wide hash seed
var seed = maphash.MakeSeed()

const (
	tagToken byte = 't'
	tagNode  byte = 'n'
)

func tokenHash(kind syntax.Kind, text string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeKind(&h, tagToken, kind)
	h.WriteString(text)
	return h.Sum64()
}

func nodeHash(kind syntax.Kind, children []Element) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeKind(&h, tagNode, kind)

	var buf [8]byte
	for _, child := range children {
		binary.LittleEndian.PutUint64(buf[:], child.fingerprint())
		h.Write(buf[:])
	}
	return h.Sum64()
}

func writeKind(h *maphash.Hash, tag byte, kind syntax.Kind) {
	h.WriteByte(tag)
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(kind))
	h.Write(buf[:])
}
