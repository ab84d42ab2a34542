package cstree

import "github.com/rslint/rslint-sub006/token"

// Node is a red-tree node: a lazily positioned view over a shared green
// node, carrying the absolute offset and parent link that the green tree
// itself cannot (since a green node may be shared by many positions). All
// tree traversal in this toolchain happens through Node/Token, never
// through the green layer directly (§4.4).
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
	// indexInParent is this node's position in parent.Children(), used to
	// compute the offsets of subsequent siblings lazily.
	indexInParent int
}

// NewRoot wraps a green node with no parent at offset 0.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green, offset: 0, indexInParent: -1}
}

func (n *Node) Kind() token.Kind  { return n.green.Kind() }
func (n *Node) Green() *GreenNode { return n.green }
func (n *Node) Offset() int       { return n.offset }
func (n *Node) EndOffset() int    { return n.offset + n.green.Length() }
func (n *Node) Parent() *Node     { return n.parent }

// Element is either a child Node or a child Token, mirroring GreenChild
// but positioned.
type Element struct {
	Node  *Node
	Token *Token
}

func (e Element) Offset() int {
	if e.Node != nil {
		return e.Node.Offset()
	}
	return e.Token.Offset()
}

func (e Element) EndOffset() int {
	if e.Node != nil {
		return e.Node.EndOffset()
	}
	return e.Token.EndOffset()
}

func (e Element) Kind() token.Kind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

// Token is a positioned leaf.
type Token struct {
	green         *GreenToken
	parent        *Node
	offset        int
	indexInParent int
}

func (t *Token) Kind() token.Kind   { return t.green.Kind() }
func (t *Token) Length() int        { return t.green.Length() }
func (t *Token) Offset() int        { return t.offset }
func (t *Token) EndOffset() int     { return t.offset + t.green.Length() }
func (t *Token) Parent() *Node      { return t.parent }
func (t *Token) Green() *GreenToken { return t.green }

// ChildrenWithTokens lazily positions every direct child (node or token)
// of n, in source order.
func (n *Node) ChildrenWithTokens() []Element {
	children := n.green.Children()
	out := make([]Element, len(children))
	off := n.offset
	for i, c := range children {
		if c.Token != nil {
			out[i] = Element{Token: &Token{green: c.Token, parent: n, offset: off, indexInParent: i}}
		} else {
			out[i] = Element{Node: &Node{green: c.Node, parent: n, offset: off, indexInParent: i}}
		}
		off += c.Length()
	}
	return out
}

// Children returns only the direct child nodes, skipping tokens.
func (n *Node) Children() []*Node {
	var out []*Node
	for _, e := range n.ChildrenWithTokens() {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// FirstToken returns the first leaf token under n, descending through
// child nodes, or nil if n has no tokens at all (an empty node).
func (n *Node) FirstToken() *Token {
	for _, e := range n.ChildrenWithTokens() {
		if e.Token != nil {
			return e.Token
		}
		if t := e.Node.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last leaf token under n.
func (n *Node) LastToken() *Token {
	els := n.ChildrenWithTokens()
	for i := len(els) - 1; i >= 0; i-- {
		e := els[i]
		if e.Token != nil {
			return e.Token
		}
		if t := e.Node.LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// DescendantsPreorder visits n and every descendant node in document
// order (pre-order, parent before children).
func (n *Node) DescendantsPreorder(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children() {
		c.DescendantsPreorder(visit)
	}
}

// CoveringElement returns the smallest node or token whose range fully
// contains [start, end), descending from n. Used to locate the rule
// context node for a diagnostic range and as the entry point for
// incremental reparse's "smallest enclosing reparsable node" search
// (§4.6).
func (n *Node) CoveringElement(start, end int) Element {
	cur := Element{Node: n}
	for {
		if cur.Node == nil {
			return cur
		}
		found := false
		for _, e := range cur.Node.ChildrenWithTokens() {
			if e.Offset() <= start && end <= e.EndOffset() {
				cur = e
				found = true
				break
			}
		}
		if !found {
			return cur
		}
	}
}

// SiblingsWithTokens returns the elements sharing n's parent, including n
// itself, in source order. Used by rules that need lookaround (e.g.
// no-unexpected-multiline checking the trivia just before a `(`).
func (n *Node) SiblingsWithTokens() []Element {
	if n.parent == nil {
		return []Element{{Node: n}}
	}
	return n.parent.ChildrenWithTokens()
}

func (t *Token) SiblingsWithTokens() []Element {
	if t.parent == nil {
		return nil
	}
	return t.parent.ChildrenWithTokens()
}

// Text recovers a node's source text by slicing src at its offsets — the
// tree stores no text of its own (§3).
func (n *Node) Text(src string) string { return src[n.Offset():n.EndOffset()] }

func (t *Token) Text(src string) string { return src[t.Offset():t.EndOffset()] }

// StructurallyEqualLossy compares two nodes for equality of kind and of
// their non-trivia child tokens' kinds/text, pairwise and recursively,
// ignoring absolute offsets and trivia tokens (whitespace, line breaks,
// comments).
func StructurallyEqualLossy(a, b *Node, srcA, srcB string) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	var ae, be []Element
	for _, e := range a.ChildrenWithTokens() {
		if e.Token == nil || !e.Token.Kind().IsTrivia() {
			ae = append(ae, e)
		}
	}
	for _, e := range b.ChildrenWithTokens() {
		if e.Token == nil || !e.Token.Kind().IsTrivia() {
			be = append(be, e)
		}
	}
	if len(ae) != len(be) {
		return false
	}
	for i := range ae {
		switch {
		case ae[i].Token != nil && be[i].Token != nil:
			if ae[i].Token.Kind() != be[i].Token.Kind() || ae[i].Token.Text(srcA) != be[i].Token.Text(srcB) {
				return false
			}
		case ae[i].Node != nil && be[i].Node != nil:
			if !StructurallyEqualLossy(ae[i].Node, be[i].Node, srcA, srcB) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
