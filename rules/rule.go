// Package rules implements the rule-execution engine (§4.7): registration,
// scheduling, traversal, and diagnostic/fix collection for independent,
// side-effect-free checks over a lossless tree.
//
// Grounded on original_source/crates/rslint_core/src/rule.rs's Rule/CstRule
// trait split (metadata vs. hooks), re-expressed without typetag/serde
// reflection: a rule satisfies whichever of NodeRule/TokenRule/RootRule its
// concrete type implements, and the engine dispatches through those
// optional interfaces rather than inspecting a rule's concrete type (§9
// "Rule dispatch without dynamic downcasting"). Traversal itself reuses the
// recursive "for _, child := range parent.Children()" idiom from
// _examples/robfig-soy/parsepasses/datarefcheck.go and globals.go.
package rules

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
)

// Hooks is the metadata every rule must expose: a stable kebab-case name
// and a group name (§4.7).
type Hooks interface {
	Name() string
	Group() string
}

// NodeRule is implemented by a rule that inspects composite nodes.
type NodeRule interface {
	Hooks
	CheckNode(n *cstree.Node, ctx *Context)
}

// TokenRule is implemented by a rule that inspects individual tokens
// (including trivia — e.g. no-irregular-whitespace needs to see
// WHITESPACE tokens themselves).
type TokenRule interface {
	Hooks
	CheckToken(t *cstree.Token, ctx *Context)
}

// RootRule is implemented by a rule that needs to run exactly once per
// file, before the per-node/per-token walk (§4.7).
type RootRule interface {
	Hooks
	CheckRoot(root *cstree.Node, ctx *Context)
}

// Inferable is implemented by a rule that can propose its own
// configuration by observing the majority style in a tree (§4.7
// "Inference"). Infer runs in a dry mode: it must not report diagnostics,
// only return a candidate option value it would pick for this one tree
// (block-spacing returns a bool for its Always option).
type Inferable interface {
	Hooks
	Infer(root *cstree.Node, src string) any
}

// Context is the mutable per-rule, per-file accumulator a rule's hooks
// report into. Each enabled rule gets its own Context for one file so that
// "diagnostics produced by the same rule preserve source order" (§5) falls
// out of the traversal order with no extra bookkeeping.
type Context struct {
	FileID int
	Src    string

	ruleName string
	diags    []diagnostic.Diagnostic
}

// Report appends a diagnostic produced by the currently running rule.
func (c *Context) Report(d diagnostic.Diagnostic) {
	c.diags = append(c.diags, d)
}

// RuleName returns the name of the rule this context was built for, for
// rules that build their own diagnostic Code field dynamically (most just
// pass their own Name() literal to diagnostic.Errorf).
func (c *Context) RuleName() string { return c.ruleName }

// Text recovers a node's source text via the context's held source string.
func (c *Context) Text(n *cstree.Node) string { return n.Text(c.Src) }

// TokenText recovers a token's source text.
func (c *Context) TokenText(t *cstree.Token) string { return t.Text(c.Src) }
