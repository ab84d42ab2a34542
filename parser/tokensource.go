// Package parser implements the hand-written recursive-descent parser
// (§4.2, §4.3): a trivia-filtering Token Source plus a Parser that emits a
// balanced event stream for the tree sink to consume.
//
// Grounded on _examples/robfig-soy/parse/parse.go's tree-builder (methods
// like state.next/backup/peek and its state.tree.recover(&errp) panic
// boundary), generalized from soy's one-token lookahead into the
// multi-token, checkpoint/rewind model spec.md requires, and on
// original_source/crates/rslint_parser/src/parse.rs for the marker/event
// API shape (Marker, CompletedMarker, Checkpoint).
package parser

import (
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/token"
)

// TokenSource wraps the raw (trivia-inclusive) lexer output with a
// trivia-filtered view indexed by non-trivia token position (§4.2).
type TokenSource struct {
	raw      []lexer.Tok
	nonTrivia []int // raw indices of non-trivia tokens, in order
	offsets  []int  // byte offset of each raw token
	identText map[int]string
}

// NewTokenSource builds a token source over a complete raw token stream.
func NewTokenSource(raw []lexer.Tok, identText map[int]string) *TokenSource {
	ts := &TokenSource{raw: raw, identText: identText}
	off := 0
	for i, t := range raw {
		ts.offsets = append(ts.offsets, off)
		off += t.Length
		if !t.Kind.IsTrivia() {
			ts.nonTrivia = append(ts.nonTrivia, i)
		}
	}
	return ts
}

// Len returns the number of non-trivia tokens (including the trailing EOF).
func (ts *TokenSource) Len() int { return len(ts.nonTrivia) }

// Kind returns the kind of the nth non-trivia token (clamped to EOF past
// the end).
func (ts *TokenSource) Kind(n int) token.Kind {
	if n < 0 || n >= len(ts.nonTrivia) {
		return token.EOF
	}
	return ts.raw[ts.nonTrivia[n]].Kind
}

// Length returns the byte length of the nth non-trivia token.
func (ts *TokenSource) Length(n int) int {
	if n < 0 || n >= len(ts.nonTrivia) {
		return 0
	}
	return ts.raw[ts.nonTrivia[n]].Length
}

// Text recovers the nth non-trivia token's source text.
func (ts *TokenSource) Text(n int, src string) string {
	if n < 0 || n >= len(ts.nonTrivia) {
		return ""
	}
	raw := ts.nonTrivia[n]
	off := ts.offsets[raw]
	return src[off : off+ts.raw[raw].Length]
}

// IdentText returns the canonicalized identifier text for the nth
// non-trivia token, if it is an identifier produced with a Unicode escape
// or needing NFC normalization; ok is false for ordinary spellings (the
// caller should fall back to Text).
func (ts *TokenSource) IdentText(n int) (string, bool) {
	if n < 0 || n >= len(ts.nonTrivia) {
		return "", false
	}
	s, ok := ts.identText[ts.nonTrivia[n]]
	return s, ok
}

// HadLineBreakBefore reports whether any raw LineBreak token occurs in
// the trivia immediately preceding the nth non-trivia token. The first
// token (n == 0) always reports true and a position past the end reports
// false. Used by the parser for ASI (§4.3 semi()) and for the no-line-
// break-here checks after return, throw, break/continue, yield, async and
// before postfix ++/--.
func (ts *TokenSource) HadLineBreakBefore(n int) bool {
	if n <= 0 || n >= len(ts.nonTrivia) {
		return n == 0
	}
	start := ts.nonTrivia[n-1] + 1
	end := ts.nonTrivia[n]
	for i := start; i < end; i++ {
		if ts.raw[i].Kind == token.LineBreak {
			return true
		}
	}
	return false
}
