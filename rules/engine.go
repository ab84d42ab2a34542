package rules

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
)

// Suppressor answers whether a (node, rule) pair is suppressed by an
// in-source directive (§4.8 "Effect on walk"). *directive.Table implements
// this; the interface lives here, not in package directive, so rules does
// not need to import directive (directive has no reason to import rules
// either — the two packages only meet inside the root facade).
type Suppressor interface {
	Suppressed(n *cstree.Node, rule string) bool
}

// RunResult is one file's accumulated rule-run output (§4.7 "Execution").
type RunResult struct {
	Diagnostics []diagnostic.Diagnostic
}

// Run executes every enabled rule in store against root: CheckRoot once,
// then a preorder walk invoking CheckNode per node and CheckToken per
// token, skipping any node (and its subtree) a directive suppresses for
// that specific rule. Diagnostics from warning-level rules are demoted
// from error to warning severity after the rule finishes (§4.7 "Rule
// level mapping").
//
// Per §5, rules are independent and may be parallelized; this
// implementation runs them sequentially for determinism and simplicity —
// nothing about the Context or Suppressor interfaces prevents a caller
// from sharding EnabledRules() across goroutines and merging the
// resulting RunResults, since each rule gets its own Context and the
// shared root/Suppressor are read-only during the walk.
func Run(root *cstree.Node, src string, fileID int, store *Store, suppressor Suppressor) RunResult {
	var all []diagnostic.Diagnostic
	for _, r := range store.EnabledRules() {
		ctx := &Context{FileID: fileID, Src: src, ruleName: r.Name()}
		if rr, ok := r.(RootRule); ok {
			rr.CheckRoot(root, ctx)
		}
		walk(root, r, suppressor, ctx)

		lvl, _ := store.Level(r.Name())
		if lvl == LevelWarning {
			for i := range ctx.diags {
				if ctx.diags[i].Severity == diagnostic.Error {
					ctx.diags[i].Severity = diagnostic.Warning
				}
			}
		}
		all = append(all, ctx.diags...)
	}
	return RunResult{Diagnostics: all}
}

func walk(n *cstree.Node, r Hooks, suppressor Suppressor, ctx *Context) {
	if suppressor != nil && suppressor.Suppressed(n, r.Name()) {
		return
	}
	if nr, ok := r.(NodeRule); ok {
		nr.CheckNode(n, ctx)
	}
	for _, e := range n.ChildrenWithTokens() {
		if e.Token != nil {
			if tr, ok := r.(TokenRule); ok {
				tr.CheckToken(e.Token, ctx)
			}
			continue
		}
		walk(e.Node, r, suppressor, ctx)
	}
}

// Infer runs every Inferable rule in store (regardless of whether it is
// currently enabled — inference is how a host decides the config in the
// first place) against each of trees in dry mode, and merges each rule's
// per-tree candidates by most-frequent value (§4.7 "Inference"). The
// result maps rule name to the chosen candidate; a rule with no opinion
// across any tree (Infer returned nil on every call) is omitted.
func Infer(trees []InferInput, store *Store) map[string]any {
	counts := map[string]map[any]int{}
	for _, r := range store.rules {
		inf, ok := r.(Inferable)
		if !ok {
			continue
		}
		for _, t := range trees {
			v := inf.Infer(t.Root, t.Src)
			if v == nil {
				continue
			}
			if counts[inf.Name()] == nil {
				counts[inf.Name()] = map[any]int{}
			}
			counts[inf.Name()][v]++
		}
	}
	out := map[string]any{}
	for name, byValue := range counts {
		var best any
		bestCount := -1
		for v, n := range byValue {
			if n > bestCount {
				best, bestCount = v, n
			}
		}
		out[name] = best
	}
	return out
}

// InferInput is one tree handed to Infer.
type InferInput struct {
	Root *cstree.Node
	Src  string
}
