// Package errors implements the `errors` rule group (§4.7 ADDED): a set
// of CST-level checks for constructs that are almost always programmer
// mistakes. Each rule is grounded on the matching file named in
// _examples/original_source/_INDEX.md for exact edge-case semantics,
// re-expressed in Go/CST terms rather than translated line-by-line.
package errors

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// ForDirection flags a C-style for loop whose counter moves the wrong way
// to ever satisfy its own test: `for (i = 0; i < 10; i--)`. Grounded on
// original_source/crates/rslint_core/src/groups/errors/for_direction.rs
// (spec.md §8 scenario 2 is this rule's worked example).
type ForDirection struct{}

func (ForDirection) Name() string  { return "for-direction" }
func (ForDirection) Group() string { return "errors" }

func (ForDirection) CheckNode(n *cstree.Node, ctx *rules.Context) {
	if n.Kind() != token.FOR_STMT {
		return
	}
	head, ok := cstutil.FirstChildOfKind(n, token.FOR_HEAD)
	if !ok {
		return
	}
	_, test, update := cstutil.SplitForHead(head)
	if test == nil || update == nil {
		return
	}

	counter, op, ok := comparisonAgainstSimpleName(test, ctx.Src)
	if !ok {
		return
	}
	dir, ok := updateDirection(update, counter, ctx.Src)
	if !ok {
		return
	}

	ascendingTest := op == token.Lt || op == token.LtEq
	wrong := (ascendingTest && dir < 0) || (!ascendingTest && dir > 0)
	if !wrong {
		return
	}

	d := diagnostic.Errorf("for-direction", "the update clause moves the counter in the wrong direction for this loop's condition")
	d.Primary(ctx.FileID, textedit.Range{Start: update.Offset(), End: update.EndOffset()}, "counter is updated here")
	d.Secondary(ctx.FileID, textedit.Range{Start: test.Offset(), End: test.EndOffset()}, "the condition requires the opposite direction")
	ctx.Report(*d)
}

// comparisonAgainstSimpleName recognizes `<name> <op> <expr>` or
// `<expr> <op> <name>` at the top of a BIN_EXPR test, returning the
// compared identifier's text and the comparison operator normalized so
// that it always reads "counter <op> bound" (an operator recorded as `>`
// or `>=` when the name was on the right is flipped to `<`/`<=` so the
// caller only has to reason about one orientation).
func comparisonAgainstSimpleName(test *cstree.Node, src string) (counter string, op token.Kind, ok bool) {
	if test.Kind() != token.BIN_EXPR {
		return "", 0, false
	}
	els := test.ChildrenWithTokens()
	var opTok *cstree.Token
	var opIdx int
	for i, e := range els {
		if e.Token != nil {
			switch e.Token.Kind() {
			case token.Lt, token.LtEq, token.Gt, token.GtEq:
				opTok = e.Token
				opIdx = i
			}
		}
	}
	if opTok == nil {
		return "", 0, false
	}
	var left, right *cstree.Node
	for i := opIdx - 1; i >= 0; i-- {
		if els[i].Node != nil {
			left = els[i].Node
			break
		}
	}
	for i := opIdx + 1; i < len(els); i++ {
		if els[i].Node != nil {
			right = els[i].Node
			break
		}
	}
	if left != nil && left.Kind() == token.NAME_REF {
		return cstutil.Name(left, src), opTok.Kind(), true
	}
	if right != nil && right.Kind() == token.NAME_REF {
		return cstutil.Name(right, src), flipComparison(opTok.Kind()), true
	}
	return "", 0, false
}

// flipComparison rewrites `bound <op> counter` into the equivalent
// `counter <flipped-op> bound` orientation so callers only reason about
// one side.
func flipComparison(k token.Kind) token.Kind {
	switch k {
	case token.Lt:
		return token.Gt
	case token.LtEq:
		return token.GtEq
	case token.Gt:
		return token.Lt
	case token.GtEq:
		return token.LtEq
	default:
		return k
	}
}

// updateDirection reports +1 for an update that increments counter, -1
// for one that decrements it, ok=false if update doesn't touch counter
// or its direction can't be determined statically (e.g. `i += f()`).
func updateDirection(update *cstree.Node, counter string, src string) (dir int, ok bool) {
	switch update.Kind() {
	case token.UPDATE_EXPR:
		operand, opTok := updateOperandAndOp(update)
		if operand == nil || cstutil.Name(operand, src) != counter {
			return 0, false
		}
		switch opTok {
		case token.PlusPlus:
			return 1, true
		case token.MinusMinus:
			return -1, true
		}
	case token.ASSIGN_EXPR:
		els := update.ChildrenWithTokens()
		if len(els) < 2 || els[0].Node == nil || cstutil.Name(els[0].Node, src) != counter {
			return 0, false
		}
		for _, e := range els {
			if e.Token != nil {
				switch e.Token.Kind() {
				case token.PlusAssign:
					return 1, true
				case token.MinusAssign:
					return -1, true
				}
			}
		}
	}
	return 0, false
}

func updateOperandAndOp(update *cstree.Node) (*cstree.Node, token.Kind) {
	var operand *cstree.Node
	var op token.Kind
	for _, e := range update.ChildrenWithTokens() {
		if e.Node != nil && operand == nil {
			operand = e.Node
		}
		if e.Token != nil && (e.Token.Kind() == token.PlusPlus || e.Token.Kind() == token.MinusMinus) {
			op = e.Token.Kind()
		}
	}
	return operand, op
}
