package cstree

// ReplaceNode rebuilds the ancestor chain from target's parent up to the
// root with target's green subtree swapped for newGreen, returning the
// new root green node. Untouched siblings keep their existing green
// pointers — only the spine from target to the root is rebuilt (§4.6's
// "incremental reparse" replace-with-structural-sharing requirement).
//
// Grounded on original_source/rslint_parser/src/incremental.rs's
// `prev_token.replace_with(new_token)` / `node.replace_with(green)`, which
// rowan implements the same way: rebuild the spine, share everything else.
func ReplaceNode(target *Node, newGreen *GreenNode, interner *Interner) *GreenNode {
	if target.parent == nil {
		return newGreen
	}
	return replaceChildAt(target.parent, target.indexInParent, GreenChild{Node: newGreen}, interner)
}

// ReplaceToken is ReplaceNode's counterpart for swapping a single leaf
// token's green value (the token-local reparse fast path).
func ReplaceToken(target *Token, newGreen *GreenToken, interner *Interner) *GreenNode {
	if target.parent == nil {
		panic("cstree: cannot replace a root token")
	}
	return replaceChildAt(target.parent, target.indexInParent, GreenChild{Token: newGreen}, interner)
}

func replaceChildAt(parent *Node, index int, newChild GreenChild, interner *Interner) *GreenNode {
	oldChildren := parent.green.Children()
	newChildren := make([]GreenChild, len(oldChildren))
	copy(newChildren, oldChildren)
	newChildren[index] = newChild

	newParentGreen := interner.Node(parent.green.Kind(), newChildren)
	if parent.parent == nil {
		return newParentGreen
	}
	return replaceChildAt(parent.parent, parent.indexInParent, GreenChild{Node: newParentGreen}, interner)
}
