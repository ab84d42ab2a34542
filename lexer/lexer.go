// Package lexer turns a byte stream into a sequence of tagged tokens with
// lengths and trivia classification (§4.1).
//
// Grounded on _examples/robfig-soy/parse/lexer.go's stateFn-driven scanner
// (the "Lexer design from text/template" comment in that file), adapted
// from a goroutine+channel item stream into a synchronous, eagerly-built
// token slice: the whole source must be available before parsing begins
// (the parser needs checkpoint/rewind over the full token stream for
// speculative parsing, §4.3), so a streaming channel would only add
// goroutine-lifetime bookkeeping with no benefit, and would leak a
// goroutine whenever a speculative parse abandons the lex before EOF.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
	"golang.org/x/text/unicode/norm"
)

const eof = -1

// Tok is a syntactic category tag plus a length in bytes (§3). Tokens
// carry no text; callers recover it via Source.
type Tok struct {
	Kind   token.Kind
	Length int
}

// ctxKind is an entry in the small context stack the lexer keeps to
// disambiguate `/` and to know what a `}` closes (§4.1, "Lexer State").
type ctxKind int

const (
	ctxBlock     ctxKind = iota // statement-position `{`
	ctxObject                   // expression-position `{` (object literal/pattern)
	ctxParen                    // `(` of a call/group/parenthesized expression
	ctxStmtParen                // `(` following a statement keyword (if/while/for/with/catch)
	ctxTemplate                 // `${` inside a template literal
)

// Lexer holds the scanning state for one source string.
type Lexer struct {
	src   string
	pos   int
	start int

	exprAllowed bool // may the next `/` begin a regex?
	ctx         []ctxKind
	lastKind    token.Kind // most recently emitted non-trivia token, used to classify a `(` as statement-keyword-driven or not

	tokens []Tok
	diags  []diagnostic.Diagnostic

	// identText, populated by Lex after scanning an identifier, maps a
	// token index to its canonicalized (NFC-normalized, escape-decoded)
	// text, used for identity comparisons per SPEC_FULL.md.
	identText map[int]string
}

// Lex scans src in its entirety, producing a token slice (terminated by an
// EOF token) and any lex diagnostics. No lex diagnostic is fatal; the
// token stream always continues to EOF (§4.1 Failure mode).
func Lex(fileID int, src string) (tokens []Tok, diags []diagnostic.Diagnostic, identText map[int]string) {
	l := &Lexer{src: src, exprAllowed: true, identText: map[int]string{}}
	l.run(fileID)
	return l.tokens, l.diags, l.identText
}

func (l *Lexer) run(fileID int) {
	if strings.HasPrefix(l.src, "#!") {
		l.start = l.pos
		i := strings.IndexByte(l.src, '\n')
		if i < 0 {
			i = len(l.src)
		} else {
			i++
		}
		l.pos = i
		l.emitTrivia(token.Shebang)
	}

	for l.pos < len(l.src) {
		l.start = l.pos
		l.lexOne(fileID)
	}
	l.start = l.pos
	l.tokens = append(l.tokens, Tok{Kind: token.EOF, Length: 0})
}

func (l *Lexer) errf(fileID int, code, msg string) {
	l.diags = append(l.diags, *diagnostic.Errorf(code, msg).
		Primary(fileID, textedit.Range{Start: l.start, End: l.pos}, ""))
}

func (l *Lexer) emit(kind token.Kind) {
	l.tokens = append(l.tokens, Tok{Kind: kind, Length: l.pos - l.start})
	if !kind.IsTrivia() {
		l.updateExprAllowed(kind)
		l.lastKind = kind
	}
}

func (l *Lexer) emitTrivia(kind token.Kind) {
	l.tokens = append(l.tokens, Tok{Kind: kind, Length: l.pos - l.start})
}

// updateExprAllowed recomputes whether the next `/` begins a regex, from
// the kind of the token just emitted and the context stack (§4.1).
// Skipping this update for trivia is essential to correct regex/division
// disambiguation across comments (§9 Implementer note).
func (l *Lexer) updateExprAllowed(kind token.Kind) {
	switch kind {
	case token.LBrace:
		ctx := ctxBlock
		// A `{` immediately after `)` is always a block (function body,
		// if/while/for/catch body, class body after `extends foo()`), never
		// an object literal, regardless of exprAllowed. So is a `{` in
		// statement position: at the start of input, after `;`, after
		// `else`/`try`/`finally`/`do`, or after a `{`/`}` whose enclosing
		// context is a block or the top level.
		isBlock := false
		switch l.lastKind {
		case token.RParen, token.Invalid, token.Semi, token.Else, token.Try, token.Finally, token.Do:
			isBlock = true
		case token.LBrace, token.RBrace:
			top, ok := l.peekCtx()
			isBlock = !ok || top == ctxBlock
		}
		if l.exprAllowed && !isBlock {
			ctx = ctxObject
		}
		l.ctx = append(l.ctx, ctx)
		l.exprAllowed = true
	case token.RBrace:
		ctx := ctxBlock
		if n := len(l.ctx); n > 0 {
			ctx = l.ctx[n-1]
			l.ctx = l.ctx[:n-1]
		}
		l.exprAllowed = ctx != ctxObject
	case token.LParen:
		ctx := ctxParen
		if isStmtParenKeyword(l.lastKind) {
			ctx = ctxStmtParen
		}
		l.ctx = append(l.ctx, ctx)
		l.exprAllowed = true
	case token.RParen:
		ctx := ctxParen
		if n := len(l.ctx); n > 0 {
			ctx = l.ctx[n-1]
			l.ctx = l.ctx[:n-1]
		}
		// A call/group paren is followed by an operator position (division,
		// not regex): `f(x)/y/` is `f(x) / y /`. A statement paren's `)` is
		// followed by a statement, which starts in expression position:
		// `if (x) /y/.test(z)` must lex `/y/` as a regex.
		l.exprAllowed = ctx == ctxStmtParen
	default:
		l.exprAllowed = !kind.EndsExpression()
	}
}

// isStmtParenKeyword reports whether kind is one of the statement keywords
// whose parenthesized clause is followed by a statement, not an operator
// (§4.1 Lexer State): `if (x) /y/.test(z)` must re-enter expression
// position after the `)`, unlike a call or grouping paren.
func isStmtParenKeyword(kind token.Kind) bool {
	switch kind {
	case token.If, token.While, token.For, token.With, token.Catch:
		return true
	}
	return false
}

func (l *Lexer) peekCtx() (ctxKind, bool) {
	if n := len(l.ctx); n > 0 {
		return l.ctx[n-1], true
	}
	return 0, false
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.src) {
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += w
	return r
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *Lexer) peekAt(off int) rune {
	p := l.pos + off
	if p >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[p:])
	return r
}

func (l *Lexer) lexOne(fileID int) {
	r := l.peek()
	switch {
	case r == eof:
		return
	case r == '\n' || r == ' ' || r == ' ':
		l.next()
		l.emitTrivia(token.LineBreak)
	case r == '\r':
		l.next()
		if l.peek() == '\n' {
			l.next()
		}
		l.emitTrivia(token.LineBreak)
	case isSpace(r):
		for isSpace(l.peek()) {
			l.next()
		}
		l.emitTrivia(token.Whitespace)
	case r == '/' && l.peekAt(1) == '/':
		l.lexLineComment()
	case r == '/' && l.peekAt(1) == '*':
		l.lexBlockComment(fileID)
	case r == '/' && l.exprAllowed:
		l.lexRegex(fileID)
	case r == '`':
		l.next()
		l.emit(token.TemplateBacktick)
		l.lexTemplateChunk(fileID)
	case r == '"' || r == '\'':
		l.lexString(fileID, r)
	case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
		l.lexNumber(fileID)
	case isIdentStart(r):
		l.lexIdent()
	default:
		l.lexPunct(fileID)
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\v' || r == '\f' || r == ' ' || r == 0xFEFF ||
		(r > 127 && unicode.Is(unicode.Zs, r))
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || r == '\\' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '$' || r == '_' || r == '\\' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

func (l *Lexer) lexLineComment() {
	for {
		r := l.peek()
		if r == eof || r == '\n' || r == '\r' || r == ' ' || r == ' ' {
			break
		}
		l.next()
	}
	l.emitTrivia(token.LineComment)
}

func (l *Lexer) lexBlockComment(fileID int) {
	l.next()
	l.next() // consume /*
	terminated := false
	for {
		r := l.peek()
		if r == eof {
			break
		}
		if r == '*' && l.peekAt(1) == '/' {
			l.next()
			l.next()
			terminated = true
			break
		}
		l.next()
	}
	if !terminated {
		l.errf(fileID, "unterminated-comment", "unterminated multi-line comment")
	}
	l.emitTrivia(token.BlockComment)
}

// lexIdent scans an identifier (possibly containing Unicode escapes),
// decodes and NFC-canonicalizes it for identity comparisons (§3, SPEC_FULL.md).
func (l *Lexer) lexIdent() {
	var raw strings.Builder
	hadEscape := false
	for {
		r := l.peek()
		if r == '\\' && l.peekAt(1) == 'u' {
			hadEscape = true
			decoded, ok := l.decodeUnicodeEscape()
			if ok {
				raw.WriteRune(decoded)
				continue
			}
		}
		if !isIdentPart(r) {
			break
		}
		raw.WriteRune(r)
		l.next()
	}
	kindIdx := len(l.tokens)
	name := l.src[l.start:l.pos]
	canon := name
	if hadEscape {
		canon = raw.String()
	}
	canon = norm.NFC.String(canon)

	if kw, ok := token.Keywords[canon]; ok && !hadEscape {
		l.emit(kw)
		return
	}
	l.identText[kindIdx] = canon
	l.emit(token.Ident)
}

// decodeUnicodeEscape decodes a `\uXXXX` or `\u{X...}` escape at l.pos,
// advancing past it. Returns ok=false (and does not advance) if malformed.
func (l *Lexer) decodeUnicodeEscape() (rune, bool) {
	save := l.pos
	l.next() // backslash
	l.next() // u
	if l.peek() == '{' {
		l.next()
		start := l.pos
		for isHex(l.peek()) {
			l.next()
		}
		hexStr := l.src[start:l.pos]
		if l.peek() != '}' || hexStr == "" {
			l.pos = save
			return 0, false
		}
		l.next()
		v := parseHex(hexStr)
		return rune(v), true
	}
	start := l.pos
	for i := 0; i < 4 && isHex(l.peek()); i++ {
		l.next()
	}
	if l.pos-start != 4 {
		l.pos = save
		return 0, false
	}
	v := parseHex(l.src[start:l.pos])
	return rune(v), true
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func parseHex(s string) int64 {
	var v int64
	for _, c := range s {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int64(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int64(c-'A') + 10
		}
	}
	return v
}

func (l *Lexer) lexString(fileID int, quote rune) {
	l.next()
	for {
		r := l.peek()
		if r == eof || r == '\n' || r == '\r' {
			l.errf(fileID, "unterminated-string", "unterminated string literal")
			break
		}
		if r == quote {
			l.next()
			break
		}
		if r == '\\' {
			l.next()
			if l.peek() != eof {
				l.next()
			}
			continue
		}
		l.next()
	}
	l.emit(token.String)
}

func (l *Lexer) lexPunct(fileID int) {
	r := l.next()
	switch r {
	case '(':
		l.emit(token.LParen)
	case ')':
		l.emit(token.RParen)
	case '{':
		l.emit(token.LBrace)
	case '}':
		if ctx, ok := l.peekCtx(); ok && ctx == ctxTemplate {
			l.emit(token.RBrace)
			l.lexTemplateChunk(fileID)
			return
		}
		l.emit(token.RBrace)
	case '[':
		l.emit(token.LBracket)
	case ']':
		l.emit(token.RBracket)
	case ';':
		l.emit(token.Semi)
	case ',':
		l.emit(token.Comma)
	case '~':
		l.emit(token.Tilde)
	case '.':
		if l.peek() == '.' && l.peekAt(1) == '.' {
			l.next()
			l.next()
			l.emit(token.DotDotDot)
		} else {
			l.emit(token.Dot)
		}
	case ':':
		l.emit(token.Colon)
	case '?':
		switch {
		case l.peek() == '.' && !isDigit(l.peekAt(1)):
			l.next()
			l.emit(token.QuestionDot)
		case l.peek() == '?':
			l.next()
			if l.peek() == '=' {
				l.next()
				l.emit(token.QQAssign)
			} else {
				l.emit(token.QuestionQuestion)
			}
		default:
			l.emit(token.Question)
		}
	case '+':
		switch {
		case l.peek() == '+':
			l.next()
			l.emit(token.PlusPlus)
		case l.peek() == '=':
			l.next()
			l.emit(token.PlusAssign)
		default:
			l.emit(token.Plus)
		}
	case '-':
		switch {
		case l.peek() == '-':
			l.next()
			l.emit(token.MinusMinus)
		case l.peek() == '=':
			l.next()
			l.emit(token.MinusAssign)
		default:
			l.emit(token.Minus)
		}
	case '*':
		switch {
		case l.peek() == '*':
			l.next()
			if l.peek() == '=' {
				l.next()
				l.emit(token.StarStarAssign)
			} else {
				l.emit(token.StarStar)
			}
		case l.peek() == '=':
			l.next()
			l.emit(token.StarAssign)
		default:
			l.emit(token.Star)
		}
	case '/':
		if l.peek() == '=' {
			l.next()
			l.emit(token.SlashAssign)
		} else {
			l.emit(token.Slash)
		}
	case '%':
		if l.peek() == '=' {
			l.next()
			l.emit(token.PercentAssign)
		} else {
			l.emit(token.Percent)
		}
	case '=':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.EqEq)
		case l.peek() == '=':
			l.next()
			l.emit(token.Eq)
		case l.peek() == '>':
			l.next()
			l.emit(token.Arrow)
		default:
			l.emit(token.Assign)
		}
	case '!':
		switch {
		case l.peek() == '=' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.NotEqEq)
		case l.peek() == '=':
			l.next()
			l.emit(token.NotEq)
		default:
			l.emit(token.Bang)
		}
	case '<':
		switch {
		case l.peek() == '<' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.ShlAssign)
		case l.peek() == '<':
			l.next()
			l.emit(token.Shl)
		case l.peek() == '=':
			l.next()
			l.emit(token.LtEq)
		default:
			l.emit(token.Lt)
		}
	case '>':
		switch {
		case l.peek() == '>' && l.peekAt(1) == '>' && l.peekAt(2) == '=':
			l.next()
			l.next()
			l.next()
			l.emit(token.UShrAssign)
		case l.peek() == '>' && l.peekAt(1) == '>':
			l.next()
			l.next()
			l.emit(token.UShr)
		case l.peek() == '>' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.ShrAssign)
		case l.peek() == '>':
			l.next()
			l.emit(token.Shr)
		case l.peek() == '=':
			l.next()
			l.emit(token.GtEq)
		default:
			l.emit(token.Gt)
		}
	case '&':
		switch {
		case l.peek() == '&' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.AndAssign)
		case l.peek() == '&':
			l.next()
			l.emit(token.AmpAmp)
		case l.peek() == '=':
			l.next()
			l.emit(token.AmpAssign)
		default:
			l.emit(token.Amp)
		}
	case '|':
		switch {
		case l.peek() == '|' && l.peekAt(1) == '=':
			l.next()
			l.next()
			l.emit(token.OrAssign)
		case l.peek() == '|':
			l.next()
			l.emit(token.PipePipe)
		case l.peek() == '=':
			l.next()
			l.emit(token.PipeAssign)
		default:
			l.emit(token.Pipe)
		}
	case '^':
		if l.peek() == '=' {
			l.next()
			l.emit(token.CaretAssign)
		} else {
			l.emit(token.Caret)
		}
	default:
		l.errf(fileID, "invalid-char", "unexpected character")
		l.emit(token.ERROR)
	}
}

// lexNumber scans a numeric literal: decimal, hex/octal/binary with a
// radix prefix, an optional fractional part and exponent, numeric
// separators (`_`), and a trailing BigInt `n` suffix. Grounded on
// original_source/rslint-parse/src/lexer/numbers.rs's state machine,
// flattened into a single scan since Go's lexer is not coroutine-driven.
func (l *Lexer) lexNumber(fileID int) {
	if l.peek() == '0' && (lower(l.peekAt(1)) == 'x' || lower(l.peekAt(1)) == 'o' || lower(l.peekAt(1)) == 'b') {
		l.next()
		l.next()
		radix := lower(rune(l.src[l.pos-1]))
		digitOK := func(r rune) bool {
			switch radix {
			case 'x':
				return isHex(r)
			case 'o':
				return r >= '0' && r <= '7'
			default:
				return r == '0' || r == '1'
			}
		}
		count := 0
		for digitOK(l.peek()) || l.peek() == '_' {
			if l.peek() != '_' {
				count++
			}
			l.next()
		}
		if count == 0 {
			l.errf(fileID, "invalid-number", "missing digits after radix prefix")
		}
		// BigInt suffix: 0x1n is legal, 0x1.5n is not (numbers.rs rejects a
		// fractional part combined with the radix-prefixed BigInt suffix).
		if l.peek() == 'n' {
			l.next()
		}
		if isIdentStart(l.peek()) {
			l.consumeIdentAfterNumber(fileID)
			return
		}
		l.emit(token.Number)
		return
	}

	for isDigit(l.peek()) || l.peek() == '_' {
		l.next()
	}
	isBigInt := false
	if l.peek() == 'n' {
		// BigInt literal: no fractional part or exponent allowed.
		l.next()
		isBigInt = true
	}
	if !isBigInt && l.peek() == '.' {
		l.next()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.next()
		}
	}
	if !isBigInt && (l.peek() == 'e' || l.peek() == 'E') {
		save := l.pos
		l.next()
		if l.peek() == '+' || l.peek() == '-' {
			l.next()
		}
		if isDigit(l.peek()) {
			for isDigit(l.peek()) || l.peek() == '_' {
				l.next()
			}
		} else {
			l.pos = save
		}
	}
	if !isBigInt && l.peek() == 'n' {
		// Reaching here means a fractional part or exponent was scanned
		// above: a BigInt suffix on a non-integer literal (1.5n, 1e3n) is
		// invalid, unlike the plain-integer case handled above.
		l.next()
		l.errf(fileID, "invalid-bigint-suffix", "a BigInt literal cannot have a fractional part or exponent")
		l.emit(token.ERROR)
		return
	}
	if isIdentStart(l.peek()) {
		l.consumeIdentAfterNumber(fileID)
		return
	}
	l.emit(token.Number)
}

// consumeIdentAfterNumber reports the "identifier immediately after a
// numeric literal" error (e.g. `123abc`) and folds the illegal identifier
// characters into a single ERROR token for parser recovery, rather than
// silently emitting Number followed by an unrelated Ident.
func (l *Lexer) consumeIdentAfterNumber(fileID int) {
	for isIdentPart(l.peek()) {
		l.next()
	}
	l.errf(fileID, "invalid-number", "identifier starts immediately after numeric literal")
	l.emit(token.ERROR)
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// lexRegex scans a regex literal (only reachable when exprAllowed), up to
// its closing unescaped `/` plus trailing flags (§4.1).
func (l *Lexer) lexRegex(fileID int) {
	l.next() // opening /
	inClass := false
loop:
	for {
		switch r := l.peek(); {
		case r == eof || r == '\n' || r == '\r':
			l.errf(fileID, "unterminated-regex", "unterminated regular expression literal")
			break loop
		case r == '\\':
			l.next()
			if l.peek() != eof {
				l.next()
			}
		case r == '[':
			inClass = true
			l.next()
		case r == ']':
			inClass = false
			l.next()
		case r == '/' && !inClass:
			l.next()
			break loop
		default:
			l.next()
		}
	}
	for isIdentPart(l.peek()) {
		l.next()
	}
	l.emit(token.Regex)
}

// lexTemplateChunk scans literal template text up to the next `${`,
// closing backtick, or EOF (§4.1 Template literals).
func (l *Lexer) lexTemplateChunk(fileID int) {
	l.start = l.pos
	for {
		r := l.peek()
		switch {
		case r == eof:
			l.errf(fileID, "unterminated-template", "unterminated template literal")
			l.emitTrivia(token.TemplateChunk) // best-effort recovery
			return
		case r == '`':
			if l.pos > l.start {
				l.emitChunk()
				l.start = l.pos
			}
			l.next()
			l.emit(token.TemplateBacktick)
			return
		case r == '$' && l.peekAt(1) == '{':
			if l.pos > l.start {
				l.emitChunk()
				l.start = l.pos
			}
			l.next()
			l.next()
			l.ctx = append(l.ctx, ctxTemplate)
			l.emit(token.TemplateSubstStart)
			return
		case r == '\\':
			l.next()
			if l.peek() != eof {
				l.next()
			}
		default:
			l.next()
		}
	}
}

func (l *Lexer) emitChunk() {
	l.tokens = append(l.tokens, Tok{Kind: token.TemplateChunk, Length: l.pos - l.start})
}
