package parser

import "github.com/rslint/rslint-sub006/token"

// parseStatement dispatches on the current token to the right statement
// production, covering the grammar enumerated in SPEC_FULL.md §4.3.
func (p *Parser) parseStatement() {
	if p.isContextual("let") && p.declarationLikely() {
		p.parseVarDecl(token.Let)
		return
	}
	switch p.cur() {
	case token.LBrace:
		p.parseBlock()
	case token.Var, token.Const:
		p.parseVarDecl(p.cur())
	case token.If:
		p.parseIf()
	case token.For:
		p.parseFor()
	case token.While:
		p.parseWhile()
	case token.Do:
		p.parseDoWhile()
	case token.Return:
		p.parseReturn()
	case token.Break:
		p.parseBreakContinue(token.Break, token.BREAK_STMT)
	case token.Continue:
		p.parseBreakContinue(token.Continue, token.CONTINUE_STMT)
	case token.Throw:
		p.parseThrow()
	case token.Try:
		p.parseTry()
	case token.Switch:
		p.parseSwitch()
	case token.Function:
		p.parseFunction(false)
	case token.Class:
		p.parseClass(true)
	case token.Semi:
		m := p.start()
		p.bump()
		p.complete(m, token.EMPTY_STMT)
	case token.Debugger:
		m := p.start()
		p.bump()
		p.semi()
		p.complete(m, token.DEBUGGER_STMT)
	default:
		if p.isContextual("async") && p.nth(1) == token.Function {
			p.parseFunction(false)
			return
		}
		if p.at(token.Ident) && p.nth(1) == token.Colon {
			p.parseLabelled()
			return
		}
		p.parseExprStatement()
	}
}

// declarationLikely disambiguates `let` as a declaration keyword versus
// as a plain identifier (`let` is only a contextual reserved word):
// treated as a declaration unless followed by a token that could not
// start a binding (`(`, `.`, `=`, operators, `;` implying expression use).
func (p *Parser) declarationLikely() bool {
	switch p.nth(1) {
	case token.Ident, token.LBracket, token.LBrace:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBlock() {
	m := p.start()
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		p.parseStatement()
	}
	p.expect(token.RBrace)
	p.complete(m, token.BLOCK_STMT)
}

// parseVarDecl parses `var`/`let`/`const` NAME [= expr] (, NAME [= expr])* ;
func (p *Parser) parseVarDecl(kw token.Kind) {
	m := p.start()
	if kw == token.Let {
		// "let" lexes as a plain Ident (it is a contextual reserved word,
		// §4.3); promote it to Let in the tree at the point of consumption.
		p.bumpRemap(token.Let)
	} else {
		p.bump()
	}
	for {
		d := p.start()
		p.parseBindingTarget()
		if p.eat(token.Assign) {
			p.parseAssignExpr()
		}
		p.complete(d, token.DECLARATOR)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.semi()
	p.complete(m, token.VAR_DECL)
}

// parseBindingTarget parses a simple name or a destructuring pattern.
func (p *Parser) parseBindingTarget() {
	switch p.cur() {
	case token.LBracket:
		p.parseArrayPattern()
	case token.LBrace:
		p.parseObjectPattern()
	default:
		m := p.start()
		p.expect(token.Ident)
		p.complete(m, token.NAME)
	}
}

func (p *Parser) parseArrayPattern() {
	m := p.start()
	p.expect(token.LBracket)
	for !p.at(token.RBracket) && !p.atEOF() {
		if p.eat(token.Comma) {
			continue
		}
		if p.at(token.DotDotDot) {
			rm := p.start()
			p.bump()
			p.parseBindingTarget()
			p.complete(rm, token.REST_PATTERN)
		} else {
			p.parseBindingTarget()
			if p.eat(token.Assign) {
				p.parseAssignExpr()
			}
		}
		if !p.at(token.RBracket) {
			p.eat(token.Comma)
		}
	}
	p.expect(token.RBracket)
	p.complete(m, token.ARRAY_PATTERN)
}

func (p *Parser) parseObjectPattern() {
	m := p.start()
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.at(token.DotDotDot) {
			rm := p.start()
			p.bump()
			p.parseBindingTarget()
			p.complete(rm, token.REST_PATTERN)
		} else {
			pm := p.start()
			p.expect(token.Ident)
			if p.eat(token.Colon) {
				p.parseBindingTarget()
			}
			if p.eat(token.Assign) {
				p.parseAssignExpr()
			}
			p.complete(pm, token.SHORTHAND_PROP)
		}
		if !p.at(token.RBrace) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RBrace)
	p.complete(m, token.OBJECT_PATTERN)
}

func (p *Parser) parseIf() {
	m := p.start()
	p.bump()
	p.expect(token.LParen)
	p.parseExpr()
	p.expect(token.RParen)
	p.parseStatement()
	if p.eat(token.Else) {
		p.parseStatement()
	}
	p.complete(m, token.IF_STMT)
}

// parseFor covers C-style, for-in, and for-of: the head's first clause is
// parsed once, and the token after it (`of`, `in`, or `;`) picks the form.
func (p *Parser) parseFor() {
	m := p.start()
	p.bump()
	p.expect(token.LParen)
	head := p.start()

	prevIncludeIn := p.state.IncludeIn
	p.state.IncludeIn = false

	switch {
	case p.at(token.Semi):
		// no init
	case p.at(token.Var) || p.at(token.Const) || (p.isContextual("let") && p.declarationLikely()):
		if p.isContextual("let") {
			p.bumpRemap(token.Let)
		} else {
			p.bump()
		}
		p.parseBindingTarget()
		if p.eat(token.Assign) {
			p.parseAssignExpr()
		}
	default:
		p.parseExpr()
	}
	p.state.IncludeIn = prevIncludeIn

	if p.isContextual("of") {
		p.bump()
		p.parseAssignExpr()
		p.complete(head, token.FOR_HEAD)
		p.expect(token.RParen)
		p.parseStatement()
		p.complete(m, token.FOR_OF_STMT)
		return
	}
	if p.at(token.In) {
		p.bump()
		p.parseExpr()
		p.complete(head, token.FOR_HEAD)
		p.expect(token.RParen)
		p.parseStatement()
		p.complete(m, token.FOR_IN_STMT)
		return
	}

	p.expect(token.Semi)
	if !p.at(token.Semi) {
		p.parseExpr()
	}
	p.expect(token.Semi)
	if !p.at(token.RParen) {
		p.parseExpr()
	}
	p.complete(head, token.FOR_HEAD)
	p.expect(token.RParen)
	p.parseStatement()
	p.complete(m, token.FOR_STMT)
}

func (p *Parser) parseWhile() {
	m := p.start()
	p.bump()
	p.expect(token.LParen)
	p.parseExpr()
	p.expect(token.RParen)
	p.parseStatement()
	p.complete(m, token.WHILE_STMT)
}

func (p *Parser) parseDoWhile() {
	m := p.start()
	p.bump()
	p.parseStatement()
	p.expect(token.While)
	p.expect(token.LParen)
	p.parseExpr()
	p.expect(token.RParen)
	p.eat(token.Semi)
	p.complete(m, token.DO_WHILE_STMT)
}

func (p *Parser) parseReturn() {
	m := p.start()
	p.bump()
	if !p.at(token.Semi) && !p.at(token.RBrace) && !p.atEOF() && !p.ts.HadLineBreakBefore(p.pos) {
		p.parseExpr()
	}
	p.semi()
	p.complete(m, token.RETURN_STMT)
}

func (p *Parser) parseBreakContinue(kw token.Kind, node token.Kind) {
	m := p.start()
	p.bump()
	if p.at(token.Ident) && !p.ts.HadLineBreakBefore(p.pos) {
		p.bump()
	}
	p.semi()
	p.complete(m, node)
}

func (p *Parser) parseThrow() {
	m := p.start()
	p.bump()
	if p.ts.HadLineBreakBefore(p.pos) {
		p.errorHere("illegal-newline", "illegal newline after throw")
	}
	p.parseExpr()
	p.semi()
	p.complete(m, token.THROW_STMT)
}

func (p *Parser) parseTry() {
	m := p.start()
	p.bump()
	p.parseBlock()
	if p.at(token.Catch) {
		cm := p.start()
		p.bump()
		if p.eat(token.LParen) {
			p.parseBindingTarget()
			p.expect(token.RParen)
		}
		p.parseBlock()
		p.complete(cm, token.CATCH_CLAUSE)
	}
	if p.at(token.Finally) {
		fm := p.start()
		p.bump()
		p.parseBlock()
		p.complete(fm, token.FINALIZER)
	}
	p.complete(m, token.TRY_STMT)
}

func (p *Parser) parseSwitch() {
	m := p.start()
	p.bump()
	p.expect(token.LParen)
	p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.at(token.Case) {
			cm := p.start()
			p.bump()
			p.parseExpr()
			p.expect(token.Colon)
			for !p.at(token.Case) && !p.at(token.Default) && !p.at(token.RBrace) && !p.atEOF() {
				p.parseStatement()
			}
			p.complete(cm, token.CASE_CLAUSE)
		} else if p.at(token.Default) {
			dm := p.start()
			p.bump()
			p.expect(token.Colon)
			for !p.at(token.Case) && !p.at(token.Default) && !p.at(token.RBrace) && !p.atEOF() {
				p.parseStatement()
			}
			p.complete(dm, token.DEFAULT_CLAUSE)
		} else {
			p.recoverUntil(map[token.Kind]bool{token.Case: true, token.Default: true, token.RBrace: true})
		}
	}
	p.expect(token.RBrace)
	p.complete(m, token.SWITCH_STMT)
}

func (p *Parser) parseLabelled() {
	m := p.start()
	name := p.curText()
	p.bump()
	p.bump() // colon
	prev, had := p.state.Labels[name]
	p.state.Labels[name] = LabelInfo{}
	p.parseStatement()
	if had {
		p.state.Labels[name] = prev
	} else {
		delete(p.state.Labels, name)
	}
	p.complete(m, token.LABELLED_STMT)
}

func (p *Parser) parseExprStatement() {
	m := p.start()
	p.parseExpr()
	p.semi()
	p.complete(m, token.EXPR_STMT)
}

// parseFunction parses a function declaration or expression, including
// generator (`function*`) and async (`async function`) forms.
func (p *Parser) parseFunction(isExpr bool) {
	m := p.start()
	if p.isContextual("async") {
		p.bump() // async stays Ident-kinded in the tree; InAsync tracks its effect
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
	if isExpr {
		p.complete(m, token.FN_EXPR)
	} else {
		p.complete(m, token.FN_DECL)
	}
}

func (p *Parser) parseParamList() {
	m := p.start()
	p.expect(token.LParen)
	for !p.at(token.RParen) && !p.atEOF() {
		pm := p.start()
		if p.at(token.DotDotDot) {
			p.bump()
		}
		p.parseBindingTarget()
		p.parseOptionalTypeAnnotation()
		if p.eat(token.Assign) {
			p.parseAssignExpr()
		}
		p.complete(pm, token.PARAM)
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	p.complete(m, token.PARAM_LIST)
}

// parseOptionalTypeAnnotation implements the bounded TypeScript subset:
// a `:` followed by an unparsed run of tokens up to the next `,`, `)`,
// `=`, or `;` at bracket depth 0, wrapped as TS_TYPE_ANN (SPEC_FULL.md
// §4.3's recorded Open Question decision — no full TS type grammar).
func (p *Parser) parseOptionalTypeAnnotation() {
	if !p.at(token.Colon) {
		return
	}
	m := p.start()
	p.bump()
	tm := p.start()
	depth := 0
	for !p.atEOF() {
		switch p.cur() {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.Gt:
			if depth == 0 {
				goto done
			}
			depth--
		case token.Comma, token.Assign, token.Semi:
			if depth == 0 {
				goto done
			}
		}
		p.bump()
	}
done:
	p.complete(tm, token.TS_TYPE)
	p.complete(m, token.TS_TYPE_ANN)
}

// parseClass parses a minimal class declaration/expression: name,
// optional `extends` heritage, and a body of method/getter/setter/field
// members (enough to support no-dupe-class-members and no-setter-return).
func (p *Parser) parseClass(isDecl bool) {
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
	if isDecl {
		p.complete(m, token.CLASS_DECL)
	} else {
		p.complete(m, token.CLASS_EXPR)
	}
}

func (p *Parser) parseClassBody() {
	m := p.start()
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		if p.eat(token.Semi) {
			continue
		}
		p.parseClassMember()
	}
	p.expect(token.RBrace)
	p.complete(m, token.CLASS_BODY)
}

func (p *Parser) parseClassMember() {
	m := p.start()
	if p.isContextual("static") && p.nth(1) != token.LParen && p.nth(1) != token.Assign {
		p.bumpRemap(token.Static)
	}
	isGetter := p.isContextual("get") && p.nth(1) != token.LParen && p.nth(1) != token.Assign
	isSetter := p.isContextual("set") && p.nth(1) != token.LParen && p.nth(1) != token.Assign
	if isGetter || isSetter {
		p.bump()
	}
	p.eat(token.Star)

	nameM := p.start()
	if p.at(token.LBracket) {
		p.bump()
		p.parseAssignExpr()
		p.expect(token.RBracket)
		p.complete(nameM, token.COMPUTED_PROP_NAME)
	} else {
		p.bump()
		p.complete(nameM, token.NAME)
	}

	if p.at(token.LParen) {
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
		return
	}
	// field
	p.parseOptionalTypeAnnotation()
	if p.eat(token.Assign) {
		p.parseAssignExpr()
	}
	p.semi()
	p.complete(m, token.CLASS_PROP)
}
