package lexer

import (
	"testing"

	"github.com/rslint/rslint-sub006/token"
)

func kinds(toks []Tok) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func nonTrivia(toks []Tok) []token.Kind {
	var out []token.Kind
	for _, t := range toks {
		if !t.Kind.IsTrivia() {
			out = append(out, t.Kind)
		}
	}
	return out
}

func eq(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("at %d: got %v, want %v\nfull got: %v", i, got[i], want[i], got)
		}
	}
}

var regexDivisionTests = []struct {
	name string
	src  string
	want []token.Kind
}{
	{"regex-after-return", "return\n/a/g", []token.Kind{token.Return, token.Regex, token.EOF}},
	{"division-after-ident", "foo\n/a/g", []token.Kind{
		token.Ident, token.Slash, token.Ident, token.Slash, token.Ident, token.EOF,
	}},
	{"regex-after-assign", "x = /a/", []token.Kind{token.Ident, token.Assign, token.Regex, token.EOF}},
	{"division-after-paren", "(a) / b", []token.Kind{
		token.LParen, token.Ident, token.RParen, token.Slash, token.Ident, token.EOF,
	}},
	{"regex-after-brace-block", "{ } /a/", []token.Kind{
		token.LBrace, token.RBrace, token.Regex, token.EOF,
	}},
	{"division-after-brace-object", "x = {} / y", []token.Kind{
		token.Ident, token.Assign, token.LBrace, token.RBrace, token.Slash, token.Ident, token.EOF,
	}},
	{"regex-after-if-paren-inline-statement", "if (x) /y/.test(z);", []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.Regex, token.Dot, token.Ident,
		token.LParen, token.Ident, token.RParen, token.Semi, token.EOF,
	}},
	{"block-not-object-after-if-paren", "if (x) { } /y/", []token.Kind{
		token.If, token.LParen, token.Ident, token.RParen, token.LBrace, token.RBrace, token.Regex, token.EOF,
	}},
	{"division-after-call-paren-still-division", "f(x)/y/g", []token.Kind{
		token.Ident, token.LParen, token.Ident, token.RParen, token.Slash, token.Ident, token.Slash, token.Ident, token.EOF,
	}},
}

func TestRegexDivisionDisambiguation(t *testing.T) {
	for _, tc := range regexDivisionTests {
		t.Run(tc.name, func(t *testing.T) {
			toks, diags, _ := Lex(0, tc.src)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			eq(t, nonTrivia(toks), tc.want)
		})
	}
}

func TestTemplateLiteralNesting(t *testing.T) {
	toks, diags, _ := Lex(0, "`a${ `b${c}d` }e`")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []token.Kind{
		token.TemplateBacktick, token.TemplateChunk, token.TemplateSubstStart,
		token.TemplateBacktick, token.TemplateChunk, token.TemplateSubstStart,
		token.Ident, token.RBrace, token.TemplateChunk, token.TemplateBacktick,
		token.RBrace, token.TemplateChunk, token.TemplateBacktick,
		token.EOF,
	}
	eq(t, nonTrivia(toks), want)
}

func TestNumberLiterals(t *testing.T) {
	tests := []string{"0", "123", "0.5", "1e10", "1e-10", "0x1F", "0o17", "0b101", "10n", "0x1n", "1_000"}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			toks, diags, _ := Lex(0, src)
			if len(diags) != 0 {
				t.Fatalf("%q: unexpected diagnostics: %v", src, diags)
			}
			got := nonTrivia(toks)
			if len(got) != 2 || got[0] != token.Number || got[1] != token.EOF {
				t.Fatalf("%q: got %v", src, got)
			}
		})
	}
}

func TestIdentifierAfterNumberIsError(t *testing.T) {
	tests := []string{"123abc", "0x1Fg", "0o17z", "10n$"}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			toks, diags, _ := Lex(0, src)
			if len(diags) == 0 {
				t.Fatalf("%q: expected a diagnostic", src)
			}
			got := nonTrivia(toks)
			eq(t, got, []token.Kind{token.ERROR, token.EOF})
		})
	}
}

func TestInvalidBigIntSuffixOnNonInteger(t *testing.T) {
	tests := []string{"1.5n", "1e3n", "1.5e2n"}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			toks, diags, _ := Lex(0, src)
			if len(diags) == 0 {
				t.Fatalf("%q: expected a diagnostic", src)
			}
			got := nonTrivia(toks)
			eq(t, got, []token.Kind{token.ERROR, token.EOF})
		})
	}
}

func TestUnterminatedStringRecovers(t *testing.T) {
	toks, diags, _ := Lex(0, "\"abc")
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for unterminated string")
	}
	got := nonTrivia(toks)
	eq(t, got, []token.Kind{token.String, token.EOF})
}

func TestIdentifierUnicodeEscapeCanonicalizes(t *testing.T) {
	// The leading 'a' is written as a Unicode escape sequence; the decoded identifier must read
	// "abc", matching a plain "abc" written literally.
	toks, diags, idents := Lex(0, "\\u0061bc")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	got := nonTrivia(toks)
	eq(t, got, []token.Kind{token.Ident, token.EOF})
	if idents[0] != "abc" {
		t.Fatalf("got identifier text %q, want %q", idents[0], "abc")
	}
}

func TestShebangIsTrivia(t *testing.T) {
	toks, _, _ := Lex(0, "#!/usr/bin/env node\nvar x;")
	if toks[0].Kind != token.Shebang {
		t.Fatalf("expected first token to be Shebang, got %v", toks[0].Kind)
	}
	got := nonTrivia(toks)
	eq(t, got, []token.Kind{token.Var, token.Ident, token.Semi, token.EOF})
}

func TestKeywordsNotPromotedWithEscape(t *testing.T) {
	// "if" with its i escaped must lex as an identifier, not the if
	// keyword (keywords must be written literally, §4.1).
	toks, _, idents := Lex(0, "\\u0069f")
	got := nonTrivia(toks)
	eq(t, got, []token.Kind{token.Ident, token.EOF})
	if idents[0] != "if" {
		t.Fatalf("got %q", idents[0])
	}
}
