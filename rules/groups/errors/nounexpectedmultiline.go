package errors

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// NoUnexpectedMultiline flags a CALL_EXPR, BRACKET_EXPR, or TEMPLATE
// whose opening delimiter ("(", "[", or the template backtick) is
// separated from the preceding expression by a line break. Automatic
// semicolon insertion does NOT run before `(`, `[`, or a template
// backtick, so code like
//
//	let x = a
//	(b).toString()
//
// silently parses as a single call expression `a(b).toString()` rather
// than the two statements the line breaks suggest. Grounded on
// original_source/crates/rslint_core/src/groups/errors/no_unexpected_multiline.rs.
type NoUnexpectedMultiline struct{}

func (NoUnexpectedMultiline) Name() string  { return "no-unexpected-multiline" }
func (NoUnexpectedMultiline) Group() string { return "errors" }

func (NoUnexpectedMultiline) CheckNode(n *cstree.Node, ctx *rules.Context) {
	switch n.Kind() {
	case token.CALL_EXPR:
		checkGap(n, token.ARG_LIST, token.LParen, "call", ctx)
	case token.BRACKET_EXPR:
		checkGap(n, 0, token.LBracket, "property access", ctx)
	case token.TEMPLATE:
		checkGap(n, 0, token.TemplateBacktick, "template literal", ctx)
	}
}

// checkGap locates the delimiter token (a direct child token of n, or of
// n's innerNode-kind child when set) and reports if it is preceded by a
// line break.
func checkGap(n *cstree.Node, innerNode token.Kind, delim token.Kind, what string, ctx *rules.Context) {
	var delimTok *cstree.Token
	if innerNode != 0 {
		if inner, ok := cstutil.FirstChildOfKind(n, innerNode); ok {
			delimTok, _ = cstutil.FirstTokenOfKind(inner, delim)
		}
	} else {
		delimTok, _ = cstutil.FirstTokenOfKind(n, delim)
	}
	if delimTok == nil || !precededByLineBreak(delimTok) {
		return
	}
	d := diagnostic.Errorf("no-unexpected-multiline", "confusing multiline expression: "+what+" continues across a line break")
	d.Primary(ctx.FileID, textedit.Range{Start: delimTok.Offset(), End: delimTok.EndOffset()}, "this starts a new line but is parsed as continuing the expression above")
	ctx.Report(*d)
}

// precededByLineBreak walks t's preceding siblings through trivia only
// (Whitespace/LineComment/BlockComment), reporting true if a LineBreak
// token is found before any real token.
func precededByLineBreak(t *cstree.Token) bool {
	sibs := t.SiblingsWithTokens()
	idx := -1
	for i, e := range sibs {
		if e.Token == t {
			idx = i
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if sibs[i].Token == nil {
			return false
		}
		switch sibs[i].Token.Kind() {
		case token.LineBreak:
			return true
		case token.Whitespace, token.LineComment, token.BlockComment:
			continue
		default:
			return false
		}
	}
	return false
}
