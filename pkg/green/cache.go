package green

import (
	"slices"
	"sync"

	"github.com/yaklabco/syntree/pkg/syntax"
)

// Interner produces green tokens and nodes, possibly reusing existing ones.
type Interner interface {
	// Token returns a token with the given kind and text.
	Token(kind syntax.Kind, text string) *Token

	// Node returns a node with the given kind and children.
	// Implementations must not retain the children slice.
	Node(kind syntax.Kind, children []Element) *Node
}

// Compile-time interface checks.
var (
	_ Interner = (*Cache)(nil)
	_ Interner = (*SyncCache)(nil)
)

// CacheStats counts interning activity.
type CacheStats struct {
	TokenHits   int
	TokenMisses int
	NodeHits    int
	NodeMisses  int

	// Tokens and Nodes are the number of distinct entries held.
	Tokens int
	Nodes  int
}

// HitRate returns the fraction of lookups served from the cache.
func (s CacheStats) HitRate() float64 {
	lookups := s.TokenHits + s.TokenMisses + s.NodeHits + s.NodeMisses
	if lookups == 0 {
		return 0
	}
	return float64(s.TokenHits+s.NodeHits) / float64(lookups)
}

// Cache deduplicates green values by structure.
//
// Entries are keyed by a structural fingerprint and compared for exact
// equality on lookup, so a fingerprint collision never merges different
// values. The cache only grows; drop it at the end of a build session.
//
// Cache is NOT safe for concurrent use. Use SyncCache when several builders
// share one cache.
type Cache struct {
	tokens map[uint64][]*Token
	nodes  map[uint64][]*Node
	stats  CacheStats
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		tokens: make(map[uint64][]*Token),
		nodes:  make(map[uint64][]*Node),
	}
}

// Token returns the cached token with this kind and text, inserting it on a miss.
func (c *Cache) Token(kind syntax.Kind, text string) *Token {
	hash := tokenHash(kind, text)
	for _, tok := range c.tokens[hash] {
		if tok.kind == kind && tok.text == text {
			c.stats.TokenHits++
			return tok
		}
	}

	tok := &Token{kind: kind, text: text, hash: hash}
	c.tokens[hash] = append(c.tokens[hash], tok)
	c.stats.TokenMisses++
	c.stats.Tokens++
	return tok
}

// Node returns the cached node with this kind and children, inserting it on a miss.
// The children slice is copied on insertion.
func (c *Cache) Node(kind syntax.Kind, children []Element) *Node {
	hash := nodeHash(kind, children)
	for _, node := range c.nodes[hash] {
		if node.kind == kind && sameChildren(node.children, children) {
			c.stats.NodeHits++
			return node
		}
	}

	node := newNode(kind, slices.Clone(children), hash)
	c.nodes[hash] = append(c.nodes[hash], node)
	c.stats.NodeMisses++
	c.stats.Nodes++
	return node
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	return c.stats
}

// Len returns the number of distinct tokens and nodes held.
func (c *Cache) Len() int {
	return c.stats.Tokens + c.stats.Nodes
}

func sameChildren(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// SyncCache is a Cache guarded by a mutex around each intern-or-insert step.
// It lets concurrent builder sessions share interned values.
type SyncCache struct {
	mu    sync.Mutex
	cache *Cache
}

// NewSyncCache creates an empty concurrent cache.
func NewSyncCache() *SyncCache {
	return &SyncCache{cache: NewCache()}
}

// Token implements Interner.
func (s *SyncCache) Token(kind syntax.Kind, text string) *Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Token(kind, text)
}

// Node implements Interner.
func (s *SyncCache) Node(kind syntax.Kind, children []Element) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Node(kind, children)
}

// Stats returns a snapshot of the cache counters.
func (s *SyncCache) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}
