package errors

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// NoSetterReturn flags a `return <value>;` inside a setter body: a
// setter's return value is always discarded by the language, so
// returning one is always dead code and usually a copy-paste mistake
// from a getter. A bare `return;` (no value, used to exit early) is
// fine. Grounded on
// original_source/crates/rslint_core/src/groups/errors/no_setter_return.rs.
type NoSetterReturn struct{}

func (NoSetterReturn) Name() string  { return "no-setter-return" }
func (NoSetterReturn) Group() string { return "errors" }

func (NoSetterReturn) CheckNode(n *cstree.Node, ctx *rules.Context) {
	if n.Kind() != token.SETTER {
		return
	}
	body, ok := cstutil.FirstChildOfKind(n, token.BLOCK_STMT)
	if !ok {
		return
	}
	reportReturnsWithValue(body, ctx)
}

// reportReturnsWithValue walks stmt's subtree reporting every
// value-carrying return statement, without descending into a nested
// function/class body (those returns belong to a different callable).
func reportReturnsWithValue(n *cstree.Node, ctx *rules.Context) {
	if n.Kind() == token.RETURN_STMT && len(n.Children()) > 0 {
		d := diagnostic.Errorf("no-setter-return", "a setter's return value is discarded")
		d.Primary(ctx.FileID, textedit.Range{Start: n.Offset(), End: n.EndOffset()}, "remove this return value")
		ctx.Report(*d)
	}
	for _, c := range n.Children() {
		switch c.Kind() {
		case token.FN_DECL, token.FN_EXPR, token.ARROW_EXPR, token.CLASS_DECL, token.CLASS_EXPR,
			token.METHOD, token.GETTER, token.SETTER:
			continue
		}
		reportReturnsWithValue(c, ctx)
	}
}
