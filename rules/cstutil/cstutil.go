// Package cstutil holds small CST navigation helpers shared by the
// concrete rule implementations under rules/groups/*. None of this is
// part of the public rule contract (§4.7); it exists so each rule file
// doesn't redefine "find the first child token of kind K" a dozen times.
package cstutil

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/token"
)

// FirstChildOfKind returns the first direct child node of n with the
// given kind, if any.
func FirstChildOfKind(n *cstree.Node, kind token.Kind) (*cstree.Node, bool) {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

// FirstTokenOfKind returns the first direct child token of n with the
// given kind, if any (not descending into child nodes).
func FirstTokenOfKind(n *cstree.Node, kind token.Kind) (*cstree.Token, bool) {
	for _, e := range n.ChildrenWithTokens() {
		if e.Token != nil && e.Token.Kind() == kind {
			return e.Token, true
		}
	}
	return nil, false
}

// HasDirectToken reports whether n has a direct (non-descendant) child
// token of the given kind.
func HasDirectToken(n *cstree.Node, kind token.Kind) bool {
	_, ok := FirstTokenOfKind(n, kind)
	return ok
}

// Name returns the identifier spelling of a NAME or NAME_REF node: the
// text of its first non-trivia token (leading trivia sits inside the node).
func Name(n *cstree.Node, src string) string {
	for _, e := range n.ChildrenWithTokens() {
		if e.Token != nil && !e.Token.Kind().IsTrivia() {
			return e.Token.Text(src)
		}
	}
	return ""
}

// SplitForHead splits a FOR_HEAD node's children into the init, test, and
// update sub-expressions of a C-style `for (init; test; update)`, using
// the two direct `;` tokens as separators. Any of the three may be nil
// (an omitted clause). FOR_HEAD's children are flattened expression
// fragments, not wrapper nodes, since parseExpr/parseBindingTarget emit
// their own node directly into the parent frame (parser/statement.go's
// parseFor).
func SplitForHead(head *cstree.Node) (init, test, update *cstree.Node) {
	var parts [3][]cstree.Element
	seg := 0
	for _, e := range head.ChildrenWithTokens() {
		if e.Token != nil && e.Token.Kind() == token.Semi {
			seg++
			continue
		}
		if seg > 2 {
			continue
		}
		parts[seg] = append(parts[seg], e)
	}
	pick := func(els []cstree.Element) *cstree.Node {
		for _, e := range els {
			if e.Node != nil {
				return e.Node
			}
		}
		return nil
	}
	return pick(parts[0]), pick(parts[1]), pick(parts[2])
}

// ContainsComment reports whether n has any LINE_COMMENT or BLOCK_COMMENT
// token anywhere in its subtree — used by autofix's CancelIfHasComments
// non-destructiveness check (§8).
func ContainsComment(n *cstree.Node) bool {
	found := false
	n.DescendantsPreorder(func(d *cstree.Node) {
		for _, e := range d.ChildrenWithTokens() {
			if e.Token != nil && (e.Token.Kind() == token.LineComment || e.Token.Kind() == token.BlockComment) {
				found = true
			}
		}
	})
	return found
}

// ClassMemberName returns the member-name text of a METHOD/GETTER/SETTER/
// CLASS_PROP node: the text of its NAME child, or "" for a computed name
// (COMPUTED_PROP_NAME members are never considered duplicates of one
// another since their keys aren't statically known).
func ClassMemberName(n *cstree.Node, src string) (name string, computed bool) {
	if nm, ok := FirstChildOfKind(n, token.NAME); ok {
		return Name(nm, src), false
	}
	return "", true
}

// IsStaticMember reports whether a class member node has a leading
// `static` token (parser/statement.go's parseClassMember bumps it as a
// direct child token before the member's own kind is decided).
func IsStaticMember(n *cstree.Node) bool {
	return HasDirectToken(n, token.Static)
}
