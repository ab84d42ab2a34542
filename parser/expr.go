package parser

import (
	"github.com/rslint/rslint-sub006/event"
	"github.com/rslint/rslint-sub006/token"
)

// parseExpr parses a (possibly comma-separated) sequence expression.
func (p *Parser) parseExpr() {
	m := p.start()
	p.parseAssignExpr()
	if !p.at(token.Comma) {
		p.abandon(m)
		return
	}
	for p.eat(token.Comma) {
		p.parseAssignExpr()
	}
	p.complete(m, token.SEQUENCE_EXPR)
}

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true,
	token.StarAssign: true, token.SlashAssign: true, token.PercentAssign: true,
	token.StarStarAssign: true, token.ShlAssign: true, token.ShrAssign: true,
	token.UShrAssign: true, token.AmpAssign: true, token.PipeAssign: true,
	token.CaretAssign: true, token.AndAssign: true, token.OrAssign: true,
	token.QQAssign: true,
}

// parseAssignExpr tries an arrow function first (via checkpoint/rewind
// since `(a, b)` is ambiguous with a parenthesized sequence expression
// until the `=>` is seen), then falls back to conditional-or-lower with a
// trailing assignment operator (§4.3 "disambiguated via checkpoint/rewind").
func (p *Parser) parseAssignExpr() {
	if p.tryParseArrow() {
		return
	}
	m := p.start()
	p.parseConditional()
	if assignOps[p.cur()] {
		p.bump()
		p.parseAssignExpr()
		p.complete(m, token.ASSIGN_EXPR)
		return
	}
	p.abandon(m)
}

// tryParseArrow speculatively parses `(params) => body` or `ident =>
// body` / `async (params) => body`; on failure it rewinds and returns
// false so the caller falls back to ordinary expression parsing.
func (p *Parser) tryParseArrow() bool {
	isAsync := p.isContextual("async") && !p.ts.HadLineBreakBefore(p.pos+1) &&
		(p.nth(1) == token.LParen || p.nth(1) == token.Ident)
	start := p.pos
	if isAsync {
		start++
	}
	if p.ts.Kind(start) != token.LParen && p.ts.Kind(start) != token.Ident {
		return false
	}

	cp := p.Checkpoint()
	m := p.start()
	if isAsync {
		p.bump()
		p.state.InAsync = true
	}
	ok := p.probeArrowParams()
	if !ok || p.cur() != token.Arrow {
		p.abandon(m)
		p.Rewind(cp)
		return false
	}
	p.bump() // =>
	if p.at(token.LBrace) {
		p.parseBlock()
	} else {
		p.parseAssignExpr()
	}
	p.complete(m, token.ARROW_EXPR)
	return true
}

// probeArrowParams consumes either a single identifier or a fully
// balanced parameter list; it never emits diagnostics of its own since a
// failed probe is silently rewound by the caller.
func (p *Parser) probeArrowParams() bool {
	if p.at(token.Ident) {
		nm := p.start()
		p.bump()
		p.complete(nm, token.NAME)
		return true
	}
	if !p.at(token.LParen) {
		return false
	}
	p.parseParamList()
	return true
}

func (p *Parser) parseConditional() {
	m := p.start()
	p.parseBinaryLevel(0)
	if !p.eat(token.Question) {
		p.abandon(m)
		return
	}
	p.parseAssignExpr()
	p.expect(token.Colon)
	p.parseAssignExpr()
	p.complete(m, token.COND_EXPR)
}

// precedenceLevels lists binary operator groups from lowest to highest
// precedence (§4.3 "standard JS precedence"); parseBinaryLevel climbs it
// by recursion depth rather than a numeric binding-power table. A run of
// operators from one level (`a + b - c`) is collected into a single flat
// BIN_EXPR holding every operand and operator in source order; it is not
// nested into left-associated pairs.
var precedenceLevels = []map[token.Kind]bool{
	{token.PipePipe: true, token.QuestionQuestion: true},
	{token.AmpAmp: true},
	{token.Pipe: true},
	{token.Caret: true},
	{token.Amp: true},
	{token.Eq: true, token.NotEq: true, token.EqEq: true, token.NotEqEq: true},
	{token.Lt: true, token.Gt: true, token.LtEq: true, token.GtEq: true, token.InstanceOf: true, token.In: true},
	{token.Shl: true, token.Shr: true, token.UShr: true},
	{token.Plus: true, token.Minus: true},
	{token.Star: true, token.Slash: true, token.Percent: true},
}

func (p *Parser) parseBinaryLevel(level int) {
	if level >= len(precedenceLevels) {
		p.parseExponent()
		return
	}
	m := p.start()
	p.parseBinaryLevel(level + 1)
	ops := precedenceLevels[level]
	matched := false
	for {
		op := p.cur()
		if op == token.In && !p.state.IncludeIn {
			break
		}
		if !ops[op] {
			break
		}
		p.bump()
		p.parseBinaryLevel(level + 1)
		matched = true
	}
	if matched {
		kind := token.BIN_EXPR
		p.complete(m, kind)
	} else {
		p.abandon(m)
	}
}

func (p *Parser) parseExponent() {
	m := p.start()
	p.parseUnary()
	if p.eat(token.StarStar) {
		p.parseExponent() // right-associative
		p.complete(m, token.BIN_EXPR)
		return
	}
	p.abandon(m)
}

var unaryOps = map[token.Kind]bool{
	token.Plus: true, token.Minus: true, token.Bang: true, token.Tilde: true,
	token.TypeOf: true, token.Void: true, token.Delete: true,
}

func (p *Parser) parseUnary() {
	if unaryOps[p.cur()] || p.at(token.PlusPlus) || p.at(token.MinusMinus) {
		m := p.start()
		isUpdate := p.at(token.PlusPlus) || p.at(token.MinusMinus)
		p.bump()
		p.parseUnary()
		if isUpdate {
			p.complete(m, token.UPDATE_EXPR)
		} else {
			p.complete(m, token.UNARY_EXPR)
		}
		return
	}
	if p.isContextual("await") {
		m := p.start()
		p.bump()
		p.parseUnary()
		p.complete(m, token.UNARY_EXPR)
		return
	}
	if p.isContextual("yield") && p.state.InGenerator {
		m := p.start()
		p.bumpRemap(token.Yield)
		p.eat(token.Star)
		if !p.at(token.Semi) && !p.at(token.RParen) && !p.at(token.RBracket) &&
			!p.at(token.RBrace) && !p.at(token.Comma) && !p.atEOF() &&
			!p.ts.HadLineBreakBefore(p.pos) {
			p.parseAssignExpr()
		}
		p.complete(m, token.UNARY_EXPR)
		return
	}
	p.parsePostfix()
}

func (p *Parser) parsePostfix() {
	m := p.start()
	p.parseLeftHandSideExpr()
	if (p.at(token.PlusPlus) || p.at(token.MinusMinus)) && !p.ts.HadLineBreakBefore(p.pos) {
		p.bump()
		p.complete(m, token.UPDATE_EXPR)
		return
	}
	p.abandon(m)
}


// parseLeftHandSideExpr parses new/call/member chains over a primary
// expression (§4.3). Each extension (`.x`, `[x]`, `(args)`, a tagged
// template) wraps the expression parsed so far by preceding its
// completed marker, so left-recursive chains like `a.b[c](d).e` build up
// without any of the parser's call sites needing to pass a "current
// expression" value around.
func (p *Parser) parseLeftHandSideExpr() event.CompletedMarker {
	var completed event.CompletedMarker
	if p.at(token.New) {
		completed = p.parseNewExpr()
	} else {
		completed = p.parsePrimary()
	}
	return p.parseCallTail(completed)
}

// parseNewExpr parses `new Target(args)` / `new Target` / `new.target`,
// returning the completed NEW_EXPR marker.
func (p *Parser) parseNewExpr() event.CompletedMarker {
	m := p.start()
	p.bump()
	if p.at(token.Dot) { // new.target
		p.bump()
		p.expect(token.Ident)
		return p.complete(m, token.NEW_EXPR)
	}
	var target event.CompletedMarker
	if p.at(token.New) {
		target = p.parseNewExpr()
	} else {
		target = p.parsePrimary()
	}
	target = p.parseMemberTail(target)
	_ = target
	if p.at(token.LParen) {
		p.parseArgList()
	}
	return p.complete(m, token.NEW_EXPR)
}

// parseMemberTail consumes `.name` / `?.name` / `[expr]` chains (no call
// parens) over an already-completed marker, via precede().
func (p *Parser) parseMemberTail(c event.CompletedMarker) event.CompletedMarker {
	for {
		switch {
		case p.at(token.Dot) || p.at(token.QuestionDot):
			m := p.precede(c)
			p.bump()
			p.expect(token.Ident)
			c = p.complete(m, token.DOT_EXPR)
		case p.at(token.LBracket):
			m := p.precede(c)
			p.bump()
			p.parseExpr()
			p.expect(token.RBracket)
			c = p.complete(m, token.BRACKET_EXPR)
		default:
			return c
		}
	}
}

// parseCallTail extends c with member access, calls, and tagged
// templates, left-associatively.
func (p *Parser) parseCallTail(c event.CompletedMarker) event.CompletedMarker {
	for {
		switch {
		case p.at(token.Dot) || p.at(token.QuestionDot):
			m := p.precede(c)
			p.bump()
			p.expect(token.Ident)
			c = p.complete(m, token.DOT_EXPR)
		case p.at(token.LBracket):
			m := p.precede(c)
			p.bump()
			p.parseExpr()
			p.expect(token.RBracket)
			c = p.complete(m, token.BRACKET_EXPR)
		case p.at(token.LParen):
			m := p.precede(c)
			p.parseArgList()
			c = p.complete(m, token.CALL_EXPR)
		case p.at(token.TemplateBacktick):
			m := p.precede(c)
			p.parseTemplate()
			c = p.complete(m, token.CALL_EXPR)
		default:
			return c
		}
	}
}

// parsePrimary parses the atoms of an expression grammar: identifiers,
// literals, `this`/`super`, parenthesized expressions, array and object
// literals, and template literals (§4.3).
func (p *Parser) parsePrimary() event.CompletedMarker {
	switch p.cur() {
	case token.Ident:
		m := p.start()
		p.bump()
		return p.complete(m, token.NAME_REF)
	case token.Number, token.String, token.Regex, token.Null, token.True, token.False:
		m := p.start()
		p.bump()
		return p.complete(m, token.LITERAL)
	case token.This, token.Super:
		m := p.start()
		p.bump()
		return p.complete(m, token.LITERAL)
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.TemplateBacktick:
		return p.parseTemplate()
	case token.Function:
		return p.parsePrimaryFunction()
	case token.Class:
		return p.parsePrimaryClass()
	default:
		if p.isContextual("async") && p.nth(1) == token.Function {
			return p.parsePrimaryFunction()
		}
		m := p.start()
		p.errorHere("expected-expression", "expected expression, found "+p.cur().String())
		if !p.atEOF() {
			p.bump()
		}
		return p.complete(m, token.ERROR_NODE)
	}
}

// parseParenExpr parses a parenthesized expression, `(expr)`; arrow
// function parameter lists are handled earlier by tryParseArrow, so by
// the time control reaches here the parens are known to wrap a plain
// expression (§4.3).
func (p *Parser) parseParenExpr() event.CompletedMarker {
	m := p.start()
	p.bump()
	p.parseExpr()
	p.expect(token.RParen)
	return p.complete(m, token.PAREN_EXPR)
}

func (p *Parser) parseArrayLiteral() event.CompletedMarker {
	m := p.start()
	p.bump()
	for !p.at(token.RBracket) && !p.atEOF() {
		if p.eat(token.Comma) {
			continue // elision
		}
		if p.at(token.DotDotDot) {
			sm := p.start()
			p.bump()
			p.parseAssignExpr()
			p.complete(sm, token.SPREAD_ELEMENT)
		} else {
			p.parseAssignExpr()
		}
		if !p.at(token.RBracket) {
			p.eat(token.Comma)
		}
	}
	p.expect(token.RBracket)
	return p.complete(m, token.ARRAY_EXPR)
}

// parseObjectLiteral parses `{ ... }` object expressions, including
// shorthand properties, computed keys, spread, and getter/setter
// accessors (§4.3; needed so rules like no-setter-return can see object
// literal accessors alongside class ones).
func (p *Parser) parseObjectLiteral() event.CompletedMarker {
	m := p.start()
	p.bump()
	prevAllow := p.state.AllowObjectExpr
	p.state.AllowObjectExpr = true
	for !p.at(token.RBrace) && !p.atEOF() {
		p.parseObjectMember()
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.state.AllowObjectExpr = prevAllow
	p.expect(token.RBrace)
	return p.complete(m, token.OBJECT_EXPR)
}

func (p *Parser) parseObjectMember() {
	m := p.start()
	if p.at(token.DotDotDot) {
		p.bump()
		p.parseAssignExpr()
		p.complete(m, token.SPREAD_PROP)
		return
	}

	isGetter := p.isContextual("get") && p.nth(1) != token.Colon && p.nth(1) != token.Comma &&
		p.nth(1) != token.RBrace && p.nth(1) != token.LParen
	isSetter := p.isContextual("set") && p.nth(1) != token.Colon && p.nth(1) != token.Comma &&
		p.nth(1) != token.RBrace && p.nth(1) != token.LParen
	if isGetter || isSetter {
		p.bump()
	}
	isGen := p.eat(token.Star)
	_ = isGen

	nameM := p.start()
	nameText := p.curText()
	if p.at(token.LBracket) {
		p.bump()
		p.parseAssignExpr()
		p.expect(token.RBracket)
		p.complete(nameM, token.COMPUTED_PROP_NAME)
	} else {
		p.bump()
		p.complete(nameM, token.NAME)
	}

	switch {
	case p.at(token.LParen):
		p.parseParamList()
		p.parseBlock()
		switch {
		case isGetter:
			p.complete(m, token.GETTER)
		case isSetter:
			p.complete(m, token.SETTER)
		default:
			p.complete(m, token.METHOD)
		}
	case p.eat(token.Colon):
		p.parseAssignExpr()
		p.complete(m, token.LITERAL_PROP)
	case p.eat(token.Assign):
		// CoverInitializedName, valid only inside a destructuring target
		// reinterpreted from an object literal; kept permissive here.
		p.parseAssignExpr()
		p.complete(m, token.SHORTHAND_PROP)
	default:
		_ = nameText
		p.complete(m, token.SHORTHAND_PROP)
	}
}

func (p *Parser) parsePrimaryFunction() event.CompletedMarker {
	m := p.start()
	p.parseFunctionInto()
	return p.complete(m, token.FN_EXPR)
}

// parseFunctionInto shares parseFunction's body but lets parsePrimary own
// the wrapping marker, since parseFunction already opens/completes its own.
func (p *Parser) parseFunctionInto() {
	if p.isContextual("async") {
		p.bump()
		p.state.InAsync = true
	}
	p.expect(token.Function)
	isGen := p.eat(token.Star)
	prevGen, prevAsync, prevFn := p.state.InGenerator, p.state.InAsync, p.state.InFunction
	p.state.InGenerator, p.state.InFunction = isGen, true

	if p.at(token.Ident) {
		nm := p.start()
		p.bump()
		p.complete(nm, token.NAME)
	}
	p.parseParamList()
	p.parseBlock()

	p.state.InGenerator, p.state.InAsync, p.state.InFunction = prevGen, prevAsync, prevFn
}

func (p *Parser) parsePrimaryClass() event.CompletedMarker {
	m := p.start()
	p.bump()
	if p.at(token.Ident) {
		nm := p.start()
		p.bump()
		p.complete(nm, token.NAME)
	}
	if p.eat(token.Extends) {
		p.parseLeftHandSideExpr()
	}
	p.parseClassBody()
	return p.complete(m, token.CLASS_EXPR)
}

// parseTemplate parses a template literal (bare or as a tagged-template
// call's argument): a backtick, alternating TemplateChunk and
// `${` expression `}` substitutions, and a closing backtick (§4.1's
// lexer context-stack handling of nested braces inside ${...}).
func (p *Parser) parseTemplate() event.CompletedMarker {
	m := p.start()
	p.bump() // opening `
	for {
		switch p.cur() {
		case token.TemplateChunk:
			em := p.start()
			p.bump()
			p.complete(em, token.TEMPLATE_ELEMENT)
		case token.TemplateSubstStart:
			p.bump() // ${
			p.parseExpr()
			p.expect(token.RBrace)
		case token.TemplateBacktick:
			p.bump() // closing `
			return p.complete(m, token.TEMPLATE)
		default:
			p.errorHere("unterminated-template", "unterminated template literal")
			return p.complete(m, token.TEMPLATE)
		}
	}
}

func (p *Parser) parseArgList() {
	m := p.start()
	p.expect(token.LParen)
	for !p.at(token.RParen) && !p.atEOF() {
		if p.at(token.DotDotDot) {
			sm := p.start()
			p.bump()
			p.parseAssignExpr()
			p.complete(sm, token.SPREAD_ELEMENT)
		} else {
			p.parseAssignExpr()
		}
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	p.complete(m, token.ARG_LIST)
}
