package errors

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// UseIsnan flags a direct comparison against the NaN identifier
// (`x == NaN`, `x !== NaN`, ...): NaN is the only JS value unequal to
// itself, so every such comparison always evaluates to the same constant
// regardless of x, which is never what the author meant. Extended per
// SPEC_FULL.md with EnforceForSwitchCase (a `switch (NaN) {...}` or
// `switch (x) { case NaN: }` is equally meaningless, since case uses
// strict equality) and EnforceForIndexOf (`arr.indexOf(NaN)`/
// `arr.lastIndexOf(NaN)` always return -1, since both also use strict
// equality).
// Grounded on
// original_source/crates/rslint_core/src/groups/errors/use_isnan.rs.
type UseIsnan struct {
	EnforceForSwitchCase bool
	EnforceForIndexOf    bool
}

func (UseIsnan) Name() string  { return "use-isnan" }
func (UseIsnan) Group() string { return "errors" }

var comparisonOps = map[token.Kind]bool{
	token.Eq:      true,
	token.EqEq:    true,
	token.NotEq:   true,
	token.NotEqEq: true,
	token.Lt:      true,
	token.LtEq:    true,
	token.Gt:      true,
	token.GtEq:    true,
}

func (r UseIsnan) CheckNode(n *cstree.Node, ctx *rules.Context) {
	switch n.Kind() {
	case token.BIN_EXPR:
		r.checkComparison(n, ctx)
	case token.SWITCH_STMT:
		if r.EnforceForSwitchCase {
			r.checkSwitch(n, ctx)
		}
	case token.CALL_EXPR:
		if r.EnforceForIndexOf {
			r.checkIndexOf(n, ctx)
		}
	}
}

func (r UseIsnan) checkComparison(n *cstree.Node, ctx *rules.Context) {
	els := n.ChildrenWithTokens()
	var opTok *cstree.Token
	for _, e := range els {
		if e.Token != nil && comparisonOps[e.Token.Kind()] {
			opTok = e.Token
		}
	}
	if opTok == nil {
		return
	}
	for _, e := range els {
		if e.Node != nil && isNaNRef(e.Node, ctx.Src) {
			r.report(n, ctx)
			return
		}
	}
}

func (r UseIsnan) checkSwitch(n *cstree.Node, ctx *rules.Context) {
	els := n.ChildrenWithTokens()
	for _, e := range els {
		if e.Node != nil && e.Node.Kind() != token.CASE_CLAUSE && e.Node.Kind() != token.DEFAULT_CLAUSE {
			if isNaNRef(e.Node, ctx.Src) {
				r.report(n, ctx)
				return
			}
		}
	}
	for _, c := range n.Children() {
		if c.Kind() != token.CASE_CLAUSE {
			continue
		}
		for _, cc := range c.Children() {
			if isNaNRef(cc, ctx.Src) {
				r.report(c, ctx)
			}
		}
	}
}

func (r UseIsnan) checkIndexOf(n *cstree.Node, ctx *rules.Context) {
	callee, ok := cstutil.FirstChildOfKind(n, token.DOT_EXPR)
	if !ok {
		return
	}
	names := dotChainNames(callee, ctx.Src)
	if len(names) == 0 {
		return
	}
	last := names[len(names)-1]
	if last != "indexOf" && last != "lastIndexOf" {
		return
	}
	argList, ok := cstutil.FirstChildOfKind(n, token.ARG_LIST)
	if !ok {
		return
	}
	args := argList.Children()
	if len(args) < 1 || !isNaNRef(args[0], ctx.Src) {
		return
	}
	r.report(n, ctx)
}

func (UseIsnan) report(n *cstree.Node, ctx *rules.Context) {
	d := diagnostic.Errorf("use-isnan", "use the isNaN function to compare with NaN")
	d.Primary(ctx.FileID, textedit.Range{Start: n.Offset(), End: n.EndOffset()}, "NaN is never equal to itself or anything else")
	ctx.Report(*d)
}

func isNaNRef(n *cstree.Node, src string) bool {
	return n.Kind() == token.NAME_REF && cstutil.Name(n, src) == "NaN"
}
