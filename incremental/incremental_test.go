package incremental

import (
	"testing"

	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/parser"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

func parseFull(t *testing.T, src string, interner *cstree.Interner) *cstree.Node {
	t.Helper()
	rawTokens, _, identText := lexer.Lex(1, src)
	ts := parser.NewTokenSource(rawTokens, identText)
	p := parser.New(1, src, ts, parser.NewState(false))
	p.ParseScript()
	sink := cstree.NewSink(cstree.Source{Text: src, Tokens: rawTokens}, interner)
	green, _ := sink.Run(p.Events())
	return cstree.NewRoot(green)
}

func TestReparseTokenRenamesIdentifier(t *testing.T) {
	src := "let xs = 1;"
	interner := cstree.NewInterner(128)
	root := parseFull(t, src, interner)

	start := 4 // "xs"
	edit := textedit.Indel{Delete: textedit.Range{Start: start, End: start + 2}, Insert: "ys"}

	res, ok := Reparse(root, src, edit, nil, 1, interner)
	if !ok {
		t.Fatalf("expected token-local reparse to succeed")
	}
	newSrc, err := textedit.Apply(src, []textedit.Indel{edit})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	newRoot := cstree.NewRoot(res.Green)
	if got := newRoot.Text(newSrc); got != newSrc {
		t.Fatalf("lossless roundtrip broken: got %q want %q", got, newSrc)
	}
	if newRoot.Kind() != token.SCRIPT {
		t.Fatalf("expected SCRIPT root, got %v", newRoot.Kind())
	}
}

func TestReparseTokenRejectsKindChange(t *testing.T) {
	src := "let xs = 1;"
	interner := cstree.NewInterner(128)
	root := parseFull(t, src, interner)

	// A number literal is not one of the token kinds the fast path
	// relexes, and replacing it with an identifier would also change the
	// token's kind; the fast path must reject the edit.
	start := 9 // "1"
	edit := textedit.Indel{Delete: textedit.Range{Start: start, End: start + 1}, Insert: "x"}

	_, ok := reparseToken(root, src, edit, nil, 1, interner)
	if ok {
		t.Fatalf("expected token-local reparse to reject a kind-changing edit")
	}
}

func TestReparseTokenRejectsContextualKeywordPromotion(t *testing.T) {
	src := "let xs = 1;"
	interner := cstree.NewInterner(128)
	root := parseFull(t, src, interner)

	// Editing the "xs" identifier into "await" would change how the
	// surrounding statement parses; the fast path must reject it.
	start := 4
	edit := textedit.Indel{Delete: textedit.Range{Start: start, End: start + 2}, Insert: "await"}

	_, ok := reparseToken(root, src, edit, nil, 1, interner)
	if ok {
		t.Fatalf("expected token-local reparse to reject promotion to a contextual keyword")
	}
}

func TestReparseBlockEditsFunctionBody(t *testing.T) {
	src := "function f() { return 1; }"
	interner := cstree.NewInterner(128)
	root := parseFull(t, src, interner)

	insertAt := len("function f() { ")
	edit := textedit.Indel{Delete: textedit.Range{Start: insertAt, End: insertAt}, Insert: "let z = 2; "}

	res, ok := Reparse(root, src, edit, nil, 1, interner)
	if !ok {
		t.Fatalf("expected block-local reparse to succeed")
	}
	newSrc, err := textedit.Apply(src, []textedit.Indel{edit})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	newRoot := cstree.NewRoot(res.Green)
	if got := newRoot.Text(newSrc); got != newSrc {
		t.Fatalf("lossless roundtrip broken after block reparse: got %q want %q", got, newSrc)
	}
}

func TestIsBalancedRejectsUnbalancedBraces(t *testing.T) {
	if isBalanced([]token.Kind{token.LBrace, token.LBrace, token.RBrace}) {
		t.Fatalf("expected unbalanced token stream to be rejected")
	}
	if !isBalanced([]token.Kind{token.LBrace, token.LBrace, token.RBrace, token.RBrace}) {
		t.Fatalf("expected nested-balanced token stream to be accepted")
	}
}
