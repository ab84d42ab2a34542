// Package cstree implements the lossless concrete syntax tree: an
// immutable, structurally-shared "green tree" plus a lazily constructed
// "red tree" overlay carrying parent pointers and absolute offsets (§3,
// §4.4).
//
// The green/red split and the sink that builds one from a parser's event
// stream are new relative to the teacher, which builds its AST directly
// with no intermediate lossless layer (robfig/soy's parse/node.go). The
// node kinds and traversal operations are grounded on spec.md §3 and §4.4;
// the interning cache is grounded on original_source's use of a
// content-addressed green tree (rslint_parser's rowan dependency), re-cast
// onto a concrete LRU from the example pack (playbymail-ottomap's go.mod)
// since Go has no rowan equivalent.
package cstree

import (
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rslint/rslint-sub006/token"
)

// GreenToken is an immutable leaf: a kind and a text length. Interned by
// (kind, length, text) so identical tokens across a tree share one value.
type GreenToken struct {
	kind   token.Kind
	length int
	text   string // only set when interning needs the literal spelling
}

func (t *GreenToken) Kind() token.Kind { return t.kind }
func (t *GreenToken) Length() int      { return t.length }

// GreenChild is either a token or a nested green node.
type GreenChild struct {
	Token *GreenToken
	Node  *GreenNode
}

func (c GreenChild) Length() int {
	if c.Token != nil {
		return c.Token.Length()
	}
	return c.Node.Length()
}

func (c GreenChild) Kind() token.Kind {
	if c.Token != nil {
		return c.Token.Kind()
	}
	return c.Node.Kind()
}

// GreenNode is an immutable composite: a kind plus an ordered list of
// children (tokens and/or nested nodes). Its total length is cached at
// construction. Two green nodes with identical (kind, children) are
// identical values after interning, letting unrelated subtrees (e.g. two
// occurrences of the same `;`) share storage.
type GreenNode struct {
	kind     token.Kind
	children []GreenChild
	length   int
}

func (n *GreenNode) Kind() token.Kind        { return n.kind }
func (n *GreenNode) Length() int             { return n.length }
func (n *GreenNode) Children() []GreenChild  { return n.children }

// Interner deduplicates green tokens and nodes built from parser output.
// It is not required for correctness, only for memory sharing, so a cache
// miss always falls back to allocating a fresh value.
type Interner struct {
	mu     sync.Mutex
	tokens *lru.Cache[tokenKey, *GreenToken]
	nodes  *lru.Cache[nodeKey, *GreenNode]
}

type tokenKey struct {
	kind token.Kind
	text string
}

// nodeKey identifies a node by kind and the identities of its children;
// green children are pointer-stable once interned, so this is cheap to
// compare and hash.
type nodeKey struct {
	kind     token.Kind
	childSig string
}

// NewInterner creates an interner holding up to capacity entries per
// cache (tokens, nodes).
func NewInterner(capacity int) *Interner {
	tok, _ := lru.New[tokenKey, *GreenToken](capacity)
	nod, _ := lru.New[nodeKey, *GreenNode](capacity)
	return &Interner{tokens: tok, nodes: nod}
}

// Token returns an interned green token for (kind, text), sharing storage
// with any previously built token carrying the same kind and spelling.
func (in *Interner) Token(kind token.Kind, text string) *GreenToken {
	key := tokenKey{kind: kind, text: text}
	in.mu.Lock()
	defer in.mu.Unlock()
	if t, ok := in.tokens.Get(key); ok {
		return t
	}
	t := &GreenToken{kind: kind, length: len(text), text: text}
	in.tokens.Add(key, t)
	return t
}

// Node returns an interned green node for (kind, children), sharing
// storage with any previously built node of identical shape.
func (in *Interner) Node(kind token.Kind, children []GreenChild) *GreenNode {
	sig := signature(children)
	key := nodeKey{kind: kind, childSig: sig}
	in.mu.Lock()
	defer in.mu.Unlock()
	if n, ok := in.nodes.Get(key); ok {
		return n
	}
	total := 0
	for _, c := range children {
		total += c.Length()
	}
	n := &GreenNode{kind: kind, children: children, length: total}
	in.nodes.Add(key, n)
	return n
}

// signature builds a cheap identity string for a child list out of each
// child's kind and pointer identity (tokens/nodes are already interned by
// the time this runs, so pointer equality implies structural equality).
func signature(children []GreenChild) string {
	var b strings.Builder
	for _, c := range children {
		fmt.Fprintf(&b, "%d:", c.Kind())
		if c.Token != nil {
			fmt.Fprintf(&b, "%p,", c.Token)
		} else {
			fmt.Fprintf(&b, "%p,", c.Node)
		}
	}
	return b.String()
}
