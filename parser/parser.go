package parser

import (
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/event"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// Parser drives recursive descent over a TokenSource, emitting a balanced
// event stream (§4.3). It never panics on malformed input: productions
// report a diagnostic and continue, wrapping skipped tokens in an
// ERROR_NODE (recoverUntil, parsePrimary's fallback).
type Parser struct {
	src    string
	fileID int
	ts     *TokenSource
	pos    int // index into ts (non-trivia token stream)
	buf    *event.Buffer
	state  *State
}

// New creates a parser over src's token source, starting at state.
func New(fileID int, src string, ts *TokenSource, state *State) *Parser {
	return &Parser{src: src, fileID: fileID, ts: ts, buf: event.NewBuffer(), state: state}
}

// Checkpoint captures everything needed to restore the parser for a
// speculative attempt: event index, token position, and a deep copy of
// State (§4.3 checkpoint/rewind).
type Checkpoint struct {
	eventPos int
	tokenPos int
	state    *State
}

func (p *Parser) Checkpoint() Checkpoint {
	return Checkpoint{eventPos: p.buf.Len(), tokenPos: p.pos, state: p.state.Clone()}
}

func (p *Parser) Rewind(c Checkpoint) {
	p.buf.Truncate(c.eventPos)
	p.pos = c.tokenPos
	p.state = c.state
}

// Marker / CompletedMarker delegate straight to the event buffer; kept as
// parser methods so call sites read as p.start()/p.complete(...) the way
// the original does.
func (p *Parser) start() event.Marker                        { return p.buf.Start() }
func (p *Parser) complete(m event.Marker, k token.Kind) event.CompletedMarker {
	return p.buf.Complete(m, k)
}
func (p *Parser) abandon(m event.Marker)                    { p.buf.Abandon(m) }
func (p *Parser) precede(c event.CompletedMarker) event.Marker { return p.buf.Precede(c) }

// cur returns the kind of the current lookahead token.
func (p *Parser) cur() token.Kind { return p.ts.Kind(p.pos) }

// nth returns the kind n tokens ahead of the current position.
func (p *Parser) nth(n int) token.Kind { return p.ts.Kind(p.pos + n) }

func (p *Parser) at(k token.Kind) bool { return p.cur() == k }

func (p *Parser) atEOF() bool { return p.cur() == token.EOF }

func (p *Parser) curText() string { return p.ts.Text(p.pos, p.src) }

// bump consumes the current token unconditionally, emitting a Token event.
func (p *Parser) bump() {
	p.buf.Token(p.cur(), p.ts.Length(p.pos))
	p.pos++
}

// bumpRemap consumes the current token but reclassifies its kind — used
// to promote a contextual keyword (Ident) to its keyword kind at the
// point the parser consumes it (§4.2's bump_remap).
func (p *Parser) bumpRemap(kind token.Kind) {
	p.buf.Token(kind, p.ts.Length(p.pos))
	p.pos++
}

// eat consumes the current token if it matches kind, returning whether it did.
func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

// expect consumes kind, or else emits a diagnostic at the current token
// without consuming anything, and does not stop the parse.
func (p *Parser) expect(kind token.Kind) bool {
	if p.eat(kind) {
		return true
	}
	p.errorHere("expected-token", "expected "+kind.String()+", found "+p.cur().String())
	return false
}

// errorHere records a zero-width (or current-token) diagnostic at the
// parser's current position.
func (p *Parser) errorHere(code, msg string) {
	off := p.offsetAt(p.pos)
	end := off
	if !p.atEOF() {
		end = off + p.ts.Length(p.pos)
	}
	d := *diagnostic.Errorf(code, msg).Primary(p.fileID, textedit.Range{Start: off, End: end}, "")
	p.buf.Error(d)
}

func (p *Parser) offsetAt(n int) int {
	if n >= len(p.ts.nonTrivia) {
		n = len(p.ts.nonTrivia) - 1
	}
	if n < 0 {
		return 0
	}
	return p.ts.offsets[p.ts.nonTrivia[n]]
}

// isContextual reports whether the current token is an Ident spelled
// exactly like one of the contextual keywords (§4.3).
func (p *Parser) isContextual(word string) bool {
	return p.at(token.Ident) && p.curText() == word
}

// recoverUntil skips tokens until one in set (or EOF) is reached, wrapping
// the skipped region in an ERROR_NODE (§4.3 error recovery).
func (p *Parser) recoverUntil(set map[token.Kind]bool) {
	m := p.start()
	skipped := false
	for !p.atEOF() && !set[p.cur()] {
		p.bump()
		skipped = true
	}
	if skipped {
		p.complete(m, token.ERROR_NODE)
	} else {
		p.abandon(m)
	}
}

var stmtRecoverySet = map[token.Kind]bool{
	token.Semi: true, token.RBrace: true, token.EOF: true,
	token.Var: true, token.Let: true, token.Const: true, token.If: true,
	token.For: true, token.While: true, token.Return: true, token.Function: true,
}

// semi implements the ASI helper: an explicit `;`, a preceding line
// break, EOF, or a following `}` all satisfy it; anything else is
// reported but not fatal (§4.3).
func (p *Parser) semi() {
	if p.eat(token.Semi) {
		return
	}
	if p.atEOF() || p.at(token.RBrace) || p.ts.HadLineBreakBefore(p.pos) {
		return
	}
	p.errorHere("missing-semicolon", "missing semicolon")
}

// Events returns the finished event buffer (for the tree sink).
func (p *Parser) Events() []event.Event { return p.buf.Events() }

// ParseScript parses a whole script: zero or more statements until EOF,
// with a leading "use strict" directive prologue check (§4.3).
func (p *Parser) ParseScript() {
	m := p.start()
	p.parseDirectivePrologue()
	for !p.atEOF() {
		p.parseStatement()
	}
	p.complete(m, token.SCRIPT)
}

// ParseModule parses a module body: module parsing starts in strict mode
// already (State.Strict == StrictModule), so no prologue upgrade is
// needed, but a redundant "use strict" directive is still a warning.
func (p *Parser) ParseModule() {
	m := p.start()
	p.parseDirectivePrologue()
	for !p.atEOF() {
		p.parseStatement()
	}
	p.complete(m, token.MODULE)
}

// ParseExpression parses a single expression followed by EOF — the
// external "parse a standalone expression" entry point (§6).
func (p *Parser) ParseExpression() {
	m := p.start()
	p.parseExpr()
	for !p.atEOF() {
		p.recoverUntil(map[token.Kind]bool{token.EOF: true})
	}
	p.complete(m, token.EXPR_STMT)
}

// parseDirectivePrologue consumes leading string-literal expression
// statements, upgrading Strict when a "use strict" directive appears as
// the first statement, and warning on a duplicate (§4.3).
func (p *Parser) parseDirectivePrologue() {
	seenUseStrict := false
	for p.at(token.String) {
		text := p.curText()
		isUseStrict := text == `"use strict"` || text == `'use strict'`
		litStart := p.offsetAt(p.pos)
		litRange := textedit.Range{Start: litStart, End: litStart + p.ts.Length(p.pos)}
		m := p.start()
		lit := p.start()
		p.bump()
		p.complete(lit, token.LITERAL)
		p.semi()
		p.complete(m, token.EXPR_STMT)
		if isUseStrict {
			if seenUseStrict || p.state.Strict != NotStrict {
				p.buf.Error(*diagnostic.Warningf("duplicate-use-strict", "duplicate 'use strict' directive").
					Primary(p.fileID, litRange, ""))
			} else {
				p.state.Strict = StrictDirective
			}
			seenUseStrict = true
		} else {
			break
		}
	}
}
