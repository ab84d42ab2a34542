package parser

// Standalone re-entry points used by the incremental reparser (§4.6) to
// reproduce a single node kind in isolation, rather than an entire
// script. Each wraps the same production parseStatement/parseExpr use
// internally, just exported and run without any surrounding context.

// ParseBlockStmt reparses a `{ ... }` block on its own.
func (p *Parser) ParseBlockStmt() { p.parseBlock() }

// ParseFunctionBodyBlock reparses a function's body block with the
// generator/async/InFunction bits the enclosing function would have set.
// The incremental reparser doesn't have that context on hand, so it
// conservatively allows all three, matching the original's block_stmt
// reparse for FN_DECL/FN_EXPR parents.
func (p *Parser) ParseFunctionBodyBlock() {
	prevGen, prevAsync, prevFn := p.state.InGenerator, p.state.InAsync, p.state.InFunction
	p.state.InGenerator, p.state.InAsync, p.state.InFunction = true, true, true
	p.parseBlock()
	p.state.InGenerator, p.state.InAsync, p.state.InFunction = prevGen, prevAsync, prevFn
}

// ParseObjectExprStandalone reparses an object literal on its own.
func (p *Parser) ParseObjectExprStandalone() { p.parseObjectLiteral() }

// ParseObjectPatternStandalone reparses an object destructuring pattern
// on its own.
func (p *Parser) ParseObjectPatternStandalone() { p.parseObjectPattern() }

// ParseClassBodyStandalone reparses a class body on its own.
func (p *Parser) ParseClassBodyStandalone() { p.parseClassBody() }
