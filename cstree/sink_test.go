package cstree

import (
	"testing"

	"github.com/rslint/rslint-sub006/event"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/token"
)

// buildFlatTree lexes src, then hand-emits events for a trivial
// "one expression statement wrapping one token" tree, the way the
// parser would for e.g. a lone numeric literal statement.
func buildFlatTree(t *testing.T, src string) (*Node, string) {
	t.Helper()
	toks, diags, _ := lexer.Lex(0, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected lex diagnostics: %v", diags)
	}
	buf := event.NewBuffer()
	m := buf.Start()
	for _, tok := range toks {
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind == token.EOF {
			break
		}
		buf.Token(tok.Kind, tok.Length)
	}
	buf.Complete(m, token.EXPR_STMT)

	sink := NewSink(Source{Text: src, Tokens: toks}, nil)
	green, _ := sink.Run(buf.Events())
	return NewRoot(green), src
}

func TestSinkAttachesTriviaLosslessly(t *testing.T) {
	root, src := buildFlatTree(t, "  42  ")
	if got := root.Text(src); got != src {
		t.Fatalf("lossless roundtrip failed: got %q, want %q", got, src)
	}
	if root.Kind() != token.EXPR_STMT {
		t.Fatalf("expected trailing EOF trivia to stay inside the real root, got kind %v", root.Kind())
	}
}

func TestSinkForwardParentReparents(t *testing.T) {
	// Simulate precede(): parse `1`, complete as LITERAL, then decide to
	// wrap it (plus a following `+2`) in a BIN_EXPR via precede.
	src := "1+2"
	toks, diags, _ := lexer.Lex(0, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	buf := event.NewBuffer()
	stmt := buf.Start()
	lhsMark := buf.Start()
	buf.Token(token.Number, 1)
	lhs := buf.Complete(lhsMark, token.LITERAL)

	binMark := buf.Precede(lhs)
	buf.Token(token.Plus, 1)
	rhsMark := buf.Start()
	buf.Token(token.Number, 1)
	buf.Complete(rhsMark, token.LITERAL)
	buf.Complete(binMark, token.BIN_EXPR)
	buf.Complete(stmt, token.EXPR_STMT)

	sink := NewSink(Source{Text: src, Tokens: toks}, nil)
	green, _ := sink.Run(buf.Events())
	root := NewRoot(green)

	if root.Kind() != token.EXPR_STMT {
		t.Fatalf("root kind = %v, want EXPR_STMT", root.Kind())
	}
	children := root.Children()
	if len(children) != 1 || children[0].Kind() != token.BIN_EXPR {
		t.Fatalf("expected a single BIN_EXPR child, got %v", children)
	}
	bin := children[0]
	if got := bin.Text(src); got != "1+2" {
		t.Fatalf("BIN_EXPR text = %q, want %q", got, "1+2")
	}
	kids := bin.ChildrenWithTokens()
	if len(kids) != 3 {
		t.Fatalf("expected 3 elements under BIN_EXPR (lit, +, lit), got %d", len(kids))
	}
	if kids[0].Kind() != token.LITERAL || kids[2].Kind() != token.LITERAL {
		t.Fatalf("expected LITERAL operands, got %v / %v", kids[0].Kind(), kids[2].Kind())
	}
}

func TestInternerSharesIdenticalSubtrees(t *testing.T) {
	in := NewInterner(128)
	a := in.Token(token.Semi, ";")
	b := in.Token(token.Semi, ";")
	if a != b {
		t.Fatalf("expected identical tokens to be interned to the same pointer")
	}
}

func TestCoveringElement(t *testing.T) {
	root, _ := buildFlatTree(t, "  42  ")
	el := root.CoveringElement(2, 4)
	if el.Token == nil || el.Token.Kind() != token.Number {
		t.Fatalf("expected covering element to be the NUMBER token, got %+v", el)
	}
}
