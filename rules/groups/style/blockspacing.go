// Package style implements the `style` rule group (§4.7 ADDED): purely
// cosmetic checks with no error-proneness implication, each carrying an
// autofix suggestion. Grounded on the matching file named in
// _examples/original_source/_INDEX.md.
package style

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// BlockSpacing enforces a single space just inside `{`/`}` for a single-
// line block, function body, or object literal: `{ foo() }` rather than
// `{foo()}` or `{  foo() }`. Spacing is an Inferable preference per
// SPEC_FULL.md §9 — Infer inspects each CST's existing blocks to decide
// whether the project's convention is spaced or unspaced. Grounded on
// original_source/crates/rslint_core/src/groups/style/block_spacing.rs.
type BlockSpacing struct {
	// Always selects the required style: true requires `{ x }`, false
	// requires `{x}`. Set by config or by Infer's majority vote.
	Always bool
}

func (BlockSpacing) Name() string  { return "block-spacing" }
func (BlockSpacing) Group() string { return "style" }

var blockLikeKinds = map[token.Kind]bool{
	token.BLOCK_STMT:  true,
	token.OBJECT_EXPR: true,
	token.CLASS_BODY:  true,
	token.SWITCH_STMT: true,
}

func (r BlockSpacing) CheckNode(n *cstree.Node, ctx *rules.Context) {
	if !blockLikeKinds[n.Kind()] {
		return
	}
	open, close, ok := braceTokens(n)
	if !ok {
		return
	}
	if spansMultipleLines(open, close, ctx.Src) {
		return
	}
	if open.EndOffset() == close.Offset() {
		// `{}` empty block: spacing does not apply either way.
		return
	}
	gotSpaceAfterOpen := isSingleSpace(ctx.Src[open.EndOffset():firstNonTriviaAfter(n, open)])
	r.checkSide(n, open, true, gotSpaceAfterOpen, ctx)

	gotSpaceBeforeClose := isSingleSpace(ctx.Src[lastNonTriviaBefore(n, close):close.Offset()])
	r.checkSide(n, close, false, gotSpaceBeforeClose, ctx)
}

func (r BlockSpacing) checkSide(n *cstree.Node, brace *cstree.Token, afterOpen bool, got bool, ctx *rules.Context) {
	if got == r.Always {
		return
	}
	var msg string
	var fixRange textedit.Range
	var replacement string
	if r.Always {
		msg = "expected a space inside this brace"
		if afterOpen {
			fixRange = textedit.Range{Start: brace.EndOffset(), End: brace.EndOffset()}
		} else {
			fixRange = textedit.Range{Start: brace.Offset(), End: brace.Offset()}
		}
		replacement = " "
	} else {
		msg = "unexpected space inside this brace"
		if afterOpen {
			fixRange = textedit.Range{Start: brace.EndOffset(), End: firstNonTriviaAfter(n, brace)}
		} else {
			fixRange = textedit.Range{Start: lastNonTriviaBefore(n, brace), End: brace.Offset()}
		}
		replacement = ""
	}
	d := diagnostic.Warningf("block-spacing", msg)
	d.Primary(ctx.FileID, textedit.Range{Start: brace.Offset(), End: brace.EndOffset()}, msg)
	d.WithSuggestion(ctx.FileID, fixRange, msg, replacement, diagnostic.Always)
	ctx.Report(*d)
}

// braceTokens finds n's opening and closing single-char brace tokens
// (LBrace/RBrace for BLOCK_STMT/OBJECT_EXPR/CLASS_BODY; for SWITCH_STMT
// the parenthesized discriminant precedes the LBrace so FirstToken isn't
// usable, FirstTokenOfKind below still finds the direct child).
func braceTokens(n *cstree.Node) (open, close *cstree.Token, ok bool) {
	for _, e := range n.ChildrenWithTokens() {
		if e.Token == nil {
			continue
		}
		switch e.Token.Kind() {
		case token.LBrace:
			if open == nil {
				open = e.Token
			}
		case token.RBrace:
			close = e.Token
		}
	}
	return open, close, open != nil && close != nil
}

func spansMultipleLines(open, close *cstree.Token, src string) bool {
	return containsNewline(src[open.EndOffset():close.Offset()])
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			return true
		}
	}
	return false
}

func isSingleSpace(s string) bool { return s == " " }

// firstNonTriviaAfter returns the offset of the first non-trivia token
// inside n after brace, or close's offset if the block is effectively
// empty past brace.
func firstNonTriviaAfter(n *cstree.Node, brace *cstree.Token) int {
	els := n.ChildrenWithTokens()
	seen := false
	for _, e := range els {
		if e.Token == brace {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		if e.Token != nil {
			if e.Token.Kind() == token.Whitespace || e.Token.Kind() == token.LineBreak {
				continue
			}
			return e.Token.Offset()
		}
		// A node carries its leading trivia inside it: descend to its
		// first token that is not whitespace or a line break.
		for node := e.Node; node != nil; {
			var next *cstree.Node
			for _, c := range node.ChildrenWithTokens() {
				if c.Token == nil {
					next = c.Node
					break
				}
				if c.Token.Kind() != token.Whitespace && c.Token.Kind() != token.LineBreak {
					return c.Token.Offset()
				}
			}
			node = next
		}
		return e.Node.Offset()
	}
	return brace.EndOffset()
}

// lastNonTriviaBefore returns the end-offset of the last non-trivia
// element inside n before brace.
func lastNonTriviaBefore(n *cstree.Node, brace *cstree.Token) int {
	els := n.ChildrenWithTokens()
	last := brace.Offset()
	for _, e := range els {
		if e.Token == brace {
			break
		}
		if e.Token != nil {
			if e.Token.Kind() == token.Whitespace || e.Token.Kind() == token.LineBreak {
				continue
			}
			last = e.Token.EndOffset()
		} else {
			last = e.Node.EndOffset()
		}
	}
	return last
}

// Infer inspects root's single-line blocks and returns true (spaced) or
// false (unspaced) as its vote for this tree, or nil if root has no
// single-line blocks to learn from.
func (BlockSpacing) Infer(root *cstree.Node, src string) any {
	var vote any
	spaced, unspaced := 0, 0
	root.DescendantsPreorder(func(n *cstree.Node) {
		if !blockLikeKinds[n.Kind()] {
			return
		}
		open, close, ok := braceTokens(n)
		if !ok || spansMultipleLines(open, close, src) || open.EndOffset() == close.Offset() {
			return
		}
		if isSingleSpace(src[open.EndOffset():firstNonTriviaAfter(n, open)]) {
			spaced++
		} else {
			unspaced++
		}
	})
	if spaced == 0 && unspaced == 0 {
		return nil
	}
	if spaced >= unspaced {
		vote = true
	} else {
		vote = false
	}
	return vote
}
