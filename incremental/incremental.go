// Package incremental implements the two-fast-path incremental reparse
// strategy (§4.6): a token-local relex when an edit stays inside one
// token and doesn't change its kind, and a block-local reparse when the
// edit's covering node is one of a small set of "reparsable" node kinds
// with balanced braces, falling back to a full reparse otherwise.
//
// Grounded on original_source/rslint_parser/src/incremental.rs's
// incremental_reparse/reparse_token/reparse_block, re-expressed over this
// module's cstree green/red split and parser package instead of rowan.
package incremental

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/parser"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// Result is the outcome of a successful incremental reparse: the new root
// green node, diagnostics remapped to the new text, and the byte range of
// the old tree that was replaced (for the caller's own bookkeeping).
type Result struct {
	Green       *cstree.GreenNode
	Diagnostics []diagnostic.Diagnostic
	OldRange    textedit.Range
}

// Reparse attempts the token-local path, then the block-local path,
// returning ok=false if neither applies (the caller should fall back to a
// full Lex+Parse+Sink run).
func Reparse(root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, fileID int, interner *cstree.Interner) (Result, bool) {
	if res, ok := reparseToken(root, src, edit, oldDiags, fileID, interner); ok {
		return res, true
	}
	if res, ok := reparseBlock(root, src, edit, oldDiags, fileID, interner); ok {
		return res, true
	}
	return Result{}, false
}

// reparseToken relexes a single token in place: WHITESPACE, COMMENT,
// IDENT, STRING, and TEMPLATE_CHUNK are eligible (§4.6). It rejects the
// fast path (ok=false) whenever the edit would change the token's kind,
// promote an IDENT to a contextual keyword's spelling (since that changes
// how a *surrounding* production parses, not just this token), delete a
// line terminator from trivia (since that can merge what were two
// statements via ASI), or cause the edited token to swallow the
// following character into a longer token.
func reparseToken(root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, fileID int, interner *cstree.Interner) (Result, bool) {
	covering := root.CoveringElement(edit.Delete.Start, edit.Delete.End)
	tok := covering.Token
	if tok == nil {
		return Result{}, false
	}
	kind := tok.Kind()
	switch kind {
	case token.Whitespace, token.LineComment, token.BlockComment, token.Ident, token.String, token.TemplateChunk:
	default:
		return Result{}, false
	}

	if kind == token.Whitespace || kind == token.LineComment || kind == token.BlockComment {
		rel := textedit.Range{Start: edit.Delete.Start - tok.Offset(), End: edit.Delete.End - tok.Offset()}
		deletedText := tok.Text(src)[rel.Start:rel.End]
		if containsJSLineBreak(deletedText) {
			return Result{}, false
		}
	}

	newText := applyToTokenText(tok, src, edit)
	newKind, newTokDiags, ok := lexSingleToken(newText, fileID)
	if !ok {
		return Result{}, false
	}
	if newKind != kind {
		return Result{}, false
	}
	if newKind == token.Ident && isContextualKeyword(newText) {
		return Result{}, false
	}

	// Reject if the edited token would now swallow the next character
	// into a single longer token (e.g. editing an ident right up against
	// another ident with nothing between them).
	if tok.EndOffset() < len(src) {
		probe := newText + string(src[tok.EndOffset()])
		if _, _, ok := lexSingleToken(probe, fileID); ok {
			return Result{}, false
		}
	}

	newGreen := interner.Token(newKind, newText)
	newRoot := cstree.ReplaceToken(tok, newGreen, interner)
	oldRange := textedit.Range{Start: tok.Offset(), End: tok.EndOffset()}
	return Result{
		Green:       newRoot,
		Diagnostics: mergeErrors(oldDiags, newTokDiags, oldRange, edit),
		OldRange:    oldRange,
	}, true
}

// findReparser maps a reparsable node kind (optionally qualified by its
// parent's kind) to the parser entry point that reproduces it standalone.
// BLOCK_STMT is the one case needing a parent check: a function's body
// block must reparse with InFunction/return-allowed state, plain blocks
// don't (§4.6, mirroring the original's FN_DECL/FN_EXPR special case).
func findReparser(kind token.Kind, parentKind token.Kind, hasParent bool) (func(*parser.Parser), bool) {
	switch kind {
	case token.BLOCK_STMT:
		if hasParent && (parentKind == token.FN_DECL || parentKind == token.FN_EXPR) {
			return func(p *parser.Parser) { p.ParseFunctionBodyBlock() }, true
		}
		return func(p *parser.Parser) { p.ParseBlockStmt() }, true
	case token.OBJECT_EXPR:
		return func(p *parser.Parser) { p.ParseObjectExprStandalone() }, true
	case token.OBJECT_PATTERN:
		return func(p *parser.Parser) { p.ParseObjectPatternStandalone() }, true
	case token.CLASS_BODY:
		return func(p *parser.Parser) { p.ParseClassBodyStandalone() }, true
	default:
		return nil, false
	}
}

// reparseBlock re-lexes and re-parses the smallest ancestor node (of the
// edit's covering element) whose kind has a standalone reparser entry
// point, provided the new text's non-trivia token stream remains brace
// balanced (§4.6). Falling outside this set, or finding the new text
// unbalanced, rejects the fast path.
func reparseBlock(root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, fileID int, interner *cstree.Interner) (Result, bool) {
	node, reparseFn, ok := findReparsableNode(root, edit.Delete)
	if !ok {
		return Result{}, false
	}

	newText := applyToNodeText(node, src, edit)
	rawTokens, lexDiags, identText := lexer.Lex(fileID, newText)

	var nonTrivia []token.Kind
	for _, t := range rawTokens {
		if !t.Kind.IsTrivia() && t.Kind != token.EOF {
			nonTrivia = append(nonTrivia, t.Kind)
		}
	}
	if !isBalanced(nonTrivia) {
		return Result{}, false
	}

	ts := parser.NewTokenSource(rawTokens, identText)
	state := parser.NewState(false)
	p := parser.New(fileID, newText, ts, state)
	reparseFn(p)

	sink := cstree.NewSink(cstree.Source{Text: newText, Tokens: rawTokens}, interner)
	newGreen, sinkDiags := sink.Run(p.Events())

	newDiags := append(append([]diagnostic.Diagnostic{}, lexDiags...), sinkDiags...)
	newRoot := cstree.ReplaceNode(node, newGreen, interner)
	oldRange := textedit.Range{Start: node.Offset(), End: node.EndOffset()}
	return Result{
		Green:       newRoot,
		Diagnostics: mergeErrors(oldDiags, newDiags, oldRange, edit),
		OldRange:    oldRange,
	}, true
}

func findReparsableNode(root *cstree.Node, r textedit.Range) (*cstree.Node, func(*parser.Parser), bool) {
	covering := root.CoveringElement(r.Start, r.End)
	n := covering.Node
	if n == nil {
		n = covering.Token.Parent()
	}
	for n != nil {
		var parentKind token.Kind
		hasParent := n.Parent() != nil
		if hasParent {
			parentKind = n.Parent().Kind()
		}
		if fn, ok := findReparser(n.Kind(), parentKind, hasParent); ok {
			return n, fn, true
		}
		n = n.Parent()
	}
	return nil, nil, false
}

// isBalanced requires the token stream to open with `{` and close with a
// matching `}`, with every brace in between paired (§4.6's block-reparse
// sanity check, grounded on incremental.rs's is_balanced).
func isBalanced(kinds []token.Kind) bool {
	if len(kinds) == 0 || kinds[0] != token.LBrace || kinds[len(kinds)-1] != token.RBrace {
		return false
	}
	depth := 0
	for _, k := range kinds[1 : len(kinds)-1] {
		switch k {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func applyToTokenText(tok *cstree.Token, src string, edit textedit.Indel) string {
	rel := textedit.Indel{
		Delete: textedit.Range{Start: edit.Delete.Start - tok.Offset(), End: edit.Delete.End - tok.Offset()},
		Insert: edit.Insert,
	}
	text := tok.Text(src)
	out, err := textedit.Apply(text, []textedit.Indel{rel})
	if err != nil {
		return text
	}
	return out
}

func applyToNodeText(n *cstree.Node, src string, edit textedit.Indel) string {
	rel := textedit.Indel{
		Delete: textedit.Range{Start: edit.Delete.Start - n.Offset(), End: edit.Delete.End - n.Offset()},
		Insert: edit.Insert,
	}
	text := n.Text(src)
	out, err := textedit.Apply(text, []textedit.Indel{rel})
	if err != nil {
		return text
	}
	return out
}

// lexSingleToken lexes text in isolation and succeeds only if it produces
// exactly one non-EOF token spanning the whole string.
func lexSingleToken(text string, fileID int) (token.Kind, []diagnostic.Diagnostic, bool) {
	tokens, diags, _ := lexer.Lex(fileID, text)
	if len(tokens) != 2 || tokens[1].Kind != token.EOF {
		return token.Invalid, nil, false
	}
	if tokens[0].Length != len(text) {
		return token.Invalid, nil, false
	}
	return tokens[0].Kind, diags, true
}

func isContextualKeyword(text string) bool {
	switch text {
	case "await", "async", "yield", "let", "static", "get", "set", "of", "from", "as":
		return true
	default:
		return false
	}
}

func containsJSLineBreak(s string) bool {
	for _, r := range s {
		switch r {
		case '\n', '\r', '\u2028', '\u2029':
			return true
		}
	}
	return false
}

// mergeErrors shifts pre-existing diagnostics whose range lies at or past
// the reparsed region by the edit's net length delta, drops nothing, and
// appends the freshly produced diagnostics translated into the full
// file's coordinate space (§4.6's "diagnostic remapping").
func mergeErrors(old, fresh []diagnostic.Diagnostic, oldRange textedit.Range, edit textedit.Indel) []diagnostic.Diagnostic {
	shifted := make([]diagnostic.Diagnostic, len(old))
	for i, d := range old {
		shifted[i] = shiftDiagnostic(d, oldRange, edit)
	}
	for _, d := range fresh {
		shifted = append(shifted, translateDiagnostic(d, oldRange.Start))
	}
	return shifted
}

func shiftDiagnostic(d diagnostic.Diagnostic, oldRange textedit.Range, edit textedit.Indel) diagnostic.Diagnostic {
	delta := len(edit.Insert) - edit.Delete.Len()
	out := d
	out.Labels = make([]diagnostic.Label, len(d.Labels))
	for i, l := range d.Labels {
		nl := l
		if l.Range.End >= oldRange.Start {
			nl.Range = textedit.Range{Start: l.Range.Start + delta, End: l.Range.End + delta}
		}
		out.Labels[i] = nl
	}
	return out
}

func translateDiagnostic(d diagnostic.Diagnostic, base int) diagnostic.Diagnostic {
	out := d
	out.Labels = make([]diagnostic.Label, len(d.Labels))
	for i, l := range d.Labels {
		nl := l
		nl.Range = textedit.Range{Start: l.Range.Start + base, End: l.Range.End + base}
		out.Labels[i] = nl
	}
	return out
}
