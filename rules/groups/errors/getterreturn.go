package errors

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
	"github.com/rslint/rslint-sub006/token"
)

// GetterReturn flags a getter body that never returns a value on some
// path, since a getter that falls through returns undefined, almost
// always a mistake (spec.md §8 scenario 3). Extended per SPEC_FULL.md to
// also check an `Object.defineProperty(obj, "x", { get: function(){} })`
// getter definition, and to support AllowImplicit (bare `return;` counts
// as returning; rslint.NewStore registers the rule with it set). Grounded on
// original_source/crates/rslint_core/src/groups/errors/getter_return.rs.
type GetterReturn struct {
	// AllowImplicit, when true (as rslint.NewStore sets it; the zero value
	// is false), treats a bare `return;`
	// with no value as satisfying the "must return" requirement.
	AllowImplicit bool
}

func (GetterReturn) Name() string  { return "getter-return" }
func (GetterReturn) Group() string { return "errors" }

func (r GetterReturn) CheckNode(n *cstree.Node, ctx *rules.Context) {
	switch n.Kind() {
	case token.GETTER:
		body, ok := cstutil.FirstChildOfKind(n, token.BLOCK_STMT)
		if !ok {
			return
		}
		r.checkBody(n, body, ctx)
	case token.CALL_EXPR:
		body, ok := definePropertyGetterBody(n, ctx.Src)
		if ok {
			r.checkBody(n, body, ctx)
		}
	}
}

func (r GetterReturn) checkBody(getter, body *cstree.Node, ctx *rules.Context) {
	if allPathsReturnValue(body, r.allowImplicit()) {
		return
	}
	d := diagnostic.Errorf("getter-return", "expected a return value in getter")
	d.Primary(ctx.FileID, textedit.Range{Start: getter.Offset(), End: getter.EndOffset()}, "getter does not always return a value")
	ctx.Report(*d)
}

func (r GetterReturn) allowImplicit() bool { return r.AllowImplicit }

// definePropertyGetterBody recognizes a
// `Object.defineProperty(obj, "key", { get: function(){...} })` (or
// `get: () => {...}`) call and returns the getter function's body block.
func definePropertyGetterBody(call *cstree.Node, src string) (*cstree.Node, bool) {
	callee, ok := cstutil.FirstChildOfKind(call, token.DOT_EXPR)
	if !ok {
		return nil, false
	}
	names := dotChainNames(callee, src)
	if len(names) != 2 || names[0] != "Object" || names[1] != "defineProperty" {
		return nil, false
	}
	argList, ok := cstutil.FirstChildOfKind(call, token.ARG_LIST)
	if !ok {
		return nil, false
	}
	args := argList.Children()
	if len(args) < 3 || args[2].Kind() != token.OBJECT_EXPR {
		return nil, false
	}
	for _, prop := range args[2].Children() {
		if prop.Kind() != token.LITERAL_PROP {
			continue
		}
		nameNode, ok := cstutil.FirstChildOfKind(prop, token.NAME)
		if !ok || cstutil.Name(nameNode, src) != "get" {
			continue
		}
		fn, ok := firstChildAny(prop, token.FN_EXPR, token.ARROW_EXPR)
		if !ok {
			continue
		}
		if body, ok := cstutil.FirstChildOfKind(fn, token.BLOCK_STMT); ok {
			return body, true
		}
	}
	return nil, false
}

func firstChildAny(n *cstree.Node, kinds ...token.Kind) (*cstree.Node, bool) {
	for _, c := range n.Children() {
		for _, k := range kinds {
			if c.Kind() == k {
				return c, true
			}
		}
	}
	return nil, false
}

// dotChainNames collects the identifier spellings of a left-to-right
// `a.b.c` DOT_EXPR chain: DOT_EXPR's children are [receiver, `.` token,
// `Ident` token] per parser/expr.go's parseMemberTail/parseCallTail.
func dotChainNames(n *cstree.Node, src string) []string {
	if n.Kind() == token.NAME_REF {
		return []string{cstutil.Name(n, src)}
	}
	if n.Kind() != token.DOT_EXPR {
		return nil
	}
	var recv *cstree.Node
	var propTok *cstree.Token
	for _, e := range n.ChildrenWithTokens() {
		if e.Node != nil && recv == nil {
			recv = e.Node
		}
		if e.Token != nil && e.Token.Kind() == token.Ident {
			propTok = e.Token
		}
	}
	if recv == nil || propTok == nil {
		return nil
	}
	return append(dotChainNames(recv, src), propTok.Text(src))
}

// allPathsReturnValue is a conservative structural walk (not full
// control-flow analysis): a block "always returns a value" if its last
// reachable statement does, recursing into if/else (both branches
// required), try/catch/finally (finally if present, else both try and
// catch), and switch (every case including a default, each falling
// through to return). allowImplicit controls whether a bare `return;`
// counts.
func allPathsReturnValue(block *cstree.Node, allowImplicit bool) bool {
	stmts := block.Children()
	for i := len(stmts) - 1; i >= 0; i-- {
		s := stmts[i]
		if s.Kind() == token.EMPTY_STMT {
			continue
		}
		return stmtAlwaysReturnsValue(s, allowImplicit)
	}
	return false
}

func stmtAlwaysReturnsValue(s *cstree.Node, allowImplicit bool) bool {
	switch s.Kind() {
	case token.RETURN_STMT:
		hasValue := len(s.Children()) > 0
		return hasValue || allowImplicit
	case token.BLOCK_STMT:
		return allPathsReturnValue(s, allowImplicit)
	case token.IF_STMT:
		kids := ifBranches(s)
		if kids.elseBranch == nil {
			return false
		}
		return stmtAlwaysReturnsValue(kids.thenBranch, allowImplicit) &&
			stmtAlwaysReturnsValue(kids.elseBranch, allowImplicit)
	case token.TRY_STMT:
		fin, ok := cstutil.FirstChildOfKind(s, token.FINALIZER)
		if ok {
			finBody, _ := cstutil.FirstChildOfKind(fin, token.BLOCK_STMT)
			if finBody != nil && allPathsReturnValue(finBody, allowImplicit) {
				return true
			}
		}
		tryBody, ok := cstutil.FirstChildOfKind(s, token.BLOCK_STMT)
		if !ok || !allPathsReturnValue(tryBody, allowImplicit) {
			return false
		}
		catch, ok := cstutil.FirstChildOfKind(s, token.CATCH_CLAUSE)
		if !ok {
			return false
		}
		catchBody, ok := cstutil.FirstChildOfKind(catch, token.BLOCK_STMT)
		return ok && allPathsReturnValue(catchBody, allowImplicit)
	case token.SWITCH_STMT:
		hasDefault := false
		for _, c := range s.Children() {
			if c.Kind() == token.DEFAULT_CLAUSE {
				hasDefault = true
			}
			if c.Kind() != token.CASE_CLAUSE && c.Kind() != token.DEFAULT_CLAUSE {
				continue
			}
			if !caseAlwaysReturnsValue(c, allowImplicit) {
				return false
			}
		}
		return hasDefault
	case token.THROW_STMT:
		return true
	default:
		return false
	}
}

func caseAlwaysReturnsValue(clause *cstree.Node, allowImplicit bool) bool {
	stmts := clause.Children()
	for i := len(stmts) - 1; i >= 0; i-- {
		return stmtAlwaysReturnsValue(stmts[i], allowImplicit)
	}
	return false // an empty case clause falls through, never satisfying this check alone
}

type branches struct {
	thenBranch, elseBranch *cstree.Node
}

// ifBranches extracts the then/else statement nodes of an IF_STMT:
// children are [test-expr, then-stmt, optional else-stmt] per
// parser/statement.go's parseIf (the `if`/`(`/`)`/`else` tokens are
// interleaved but only two or three Node children result).
func ifBranches(s *cstree.Node) branches {
	kids := s.Children()
	var b branches
	if len(kids) >= 2 {
		b.thenBranch = kids[1]
	}
	if len(kids) >= 3 {
		b.elseBranch = kids[2]
	}
	return b
}
