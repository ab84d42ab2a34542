// Package autofix implements the Fixer helper vocabulary and the
// convergence-loop driver that turns rule-produced, Always-applicable
// suggestions into a final fixed source string (§4.9).
//
// Grounded on original_source/crates/rslint_core/src/autofix/mod.rs's
// Fixer/Indel shape and its recompile-on-change control flow (also
// echoed by _examples/robfig-soy/bundle.go's watch-and-recompile loop,
// generalized here from filesystem events to "did the last iteration's
// edits change anything").
package autofix

import (
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/parser"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/cstutil"
	"github.com/rslint/rslint-sub006/textedit"
)

// MaxIterations bounds the convergence loop (§9 Open Question decision 3:
// "a small constant").
const MaxIterations = 10

// State is the autofix state machine's current phase (§4.9 "state
// machine").
type State int

const (
	Idle State = iota
	Parsing
	Linting
	Fixing
)

// Unwrappable is implemented by node kinds the Fixer's Unwrap helper
// knows how to strip one layer of delimiters from (e.g. a parenthesized
// expression). Rules needing a custom unwrap register by implementing
// this on a small wrapper value; none of the shipped rules currently use
// Unwrap, but the hook exists per SPEC_FULL.md's Fixer surface.
type Unwrappable interface {
	// Unwrap returns the inner range to keep, dropping n's own delimiter
	// tokens.
	Unwrap(n *cstree.Node) textedit.Range
}

// Fixer accumulates the Indel edits for a single diagnostic's suggestion
// set. A fresh Fixer should be used per diagnostic; cancel the whole
// batch with CancelIfHasComments rather than trying to edit it down.
type Fixer struct {
	src     string
	edits   []textedit.Indel
	cancelled bool
}

// NewFixer creates a Fixer over src (needed for EatLeadingWhitespace/
// EatTrailingWhitespace and CancelIfHasComments, which must inspect
// source text and tree structure around the edit).
func NewFixer(src string) *Fixer { return &Fixer{src: src} }

// Replace replaces r with text.
func (f *Fixer) Replace(r textedit.Range, text string) *Fixer {
	f.edits = append(f.edits, textedit.NewReplace(r, text))
	return f
}

// ReplaceWith replaces dst with the source text covering src.
func (f *Fixer) ReplaceWith(dst, src textedit.Range) *Fixer {
	return f.Replace(dst, f.src[src.Start:src.End])
}

// Insert inserts text at offset.
func (f *Fixer) Insert(offset int, text string) *Fixer {
	f.edits = append(f.edits, textedit.NewInsert(offset, text))
	return f
}

// InsertBefore inserts text immediately before r.
func (f *Fixer) InsertBefore(r textedit.Range, text string) *Fixer {
	return f.Insert(r.Start, text)
}

// InsertAfter inserts text immediately after r.
func (f *Fixer) InsertAfter(r textedit.Range, text string) *Fixer {
	return f.Insert(r.End, text)
}

// Delete deletes r.
func (f *Fixer) Delete(r textedit.Range) *Fixer {
	f.edits = append(f.edits, textedit.NewDelete(r))
	return f
}

// DeleteMultiple deletes every range in rs as one edit batch.
func (f *Fixer) DeleteMultiple(rs ...textedit.Range) *Fixer {
	for _, r := range rs {
		f.Delete(r)
	}
	return f
}

// Wrap surrounds r with open+close, leaving r's own text untouched.
func (f *Fixer) Wrap(r textedit.Range, open, close string) *Fixer {
	return f.InsertBefore(r, open).InsertAfter(r, close)
}

// WrapWith is an alias for Wrap kept for symmetry with ReplaceWith in the
// original's naming.
func (f *Fixer) WrapWith(r textedit.Range, open, close string) *Fixer { return f.Wrap(r, open, close) }

// Unwrap strips one layer of delimiter by replacing n's whole range with
// the inner range u reports for it. u is called unconditionally, so it
// must be non-nil.
func (f *Fixer) Unwrap(n *cstree.Node, u Unwrappable) *Fixer {
	inner := u.Unwrap(n)
	return f.Replace(textedit.Range{Start: n.Offset(), End: n.EndOffset()}, f.src[inner.Start:inner.End])
}

// EatLeadingWhitespace extends a delete so it also consumes exactly one
// contiguous run of Whitespace trivia immediately before at.
func (f *Fixer) EatLeadingWhitespace(at int) *Fixer {
	start := at
	for start > 0 && isSpaceOrTab(f.src[start-1]) {
		start--
	}
	if start != at {
		f.Delete(textedit.Range{Start: start, End: at})
	}
	return f
}

// EatTrailingWhitespace extends a delete so it also consumes exactly one
// contiguous run of Whitespace trivia immediately after at.
func (f *Fixer) EatTrailingWhitespace(at int) *Fixer {
	end := at
	for end < len(f.src) && isSpaceOrTab(f.src[end]) {
		end++
	}
	if end != at {
		f.Delete(textedit.Range{Start: at, End: end})
	}
	return f
}

func isSpaceOrTab(b byte) bool { return b == ' ' || b == '\t' }

// CancelIfHasComments clears every pending edit if covering contains a
// comment token anywhere in its subtree, implementing the
// non-destructiveness property from §8: a fix must never silently eat a
// comment.
func (f *Fixer) CancelIfHasComments(covering *cstree.Node) *Fixer {
	if cstutil.ContainsComment(covering) {
		f.edits = nil
		f.cancelled = true
	}
	return f
}

// Indels returns the accumulated edits, or nil if CancelIfHasComments
// fired.
func (f *Fixer) Indels() []textedit.Indel { return f.edits }

// Cancelled reports whether CancelIfHasComments cleared this fixer.
func (f *Fixer) Cancelled() bool { return f.cancelled }

// Report is one convergence-loop run's final outcome.
type Report struct {
	FixedSource       string
	Iterations        int
	RemainingDiagnostics []diagnostic.Diagnostic
	DeferredEdits     int // edits dropped by Disjoint's conflict resolution on the final iteration
}

// Run drives the Idle -> Parsing -> Linting -> Fixing loop (§4.9): each
// iteration does a full lex+parse+sink, runs the directive parser and the
// rule engine, extracts Always-applicable suggestions as Indels, applies
// the maximal disjoint subset, and either loops (if anything changed) or
// stops (no new edits, or source unchanged after Apply, or MaxIterations
// reached). suppressorFor lets the caller rebuild a directive.Table each
// iteration without this package importing directive directly (avoiding
// the same cycle rules.Suppressor exists to avoid).
func Run(fileID int, src string, isModule bool, store *rules.Store, suppressorFor func(root *cstree.Node, src string) rules.Suppressor) Report {
	dirty := false
	prevSrc := src
	var prevDiags []diagnostic.Diagnostic
	for iter := 1; iter <= MaxIterations; iter++ {
		root, parseDiags, ok := parseTree(fileID, src, isModule)
		if !ok {
			if dirty {
				// A prior iteration's edit broke parsing: back off to the
				// last source that parsed rather than hand the caller
				// unparseable "fixed" source.
				return Report{FixedSource: prevSrc, Iterations: iter - 2, RemainingDiagnostics: prevDiags}
			}
			return Report{FixedSource: src, Iterations: iter - 1, RemainingDiagnostics: parseDiags}
		}

		suppressor := suppressorFor(root, src)
		result := rules.Run(root, src, fileID, store, suppressor)

		var candidates []textedit.Indel
		for _, d := range result.Diagnostics {
			for _, s := range d.Suggestions {
				if s.Applicability == diagnostic.Always {
					candidates = append(candidates, textedit.NewReplace(s.Range, s.Replacement))
				}
			}
		}
		if len(candidates) == 0 {
			return Report{FixedSource: src, Iterations: iter - 1, RemainingDiagnostics: result.Diagnostics}
		}

		kept, deferred := textedit.Disjoint(candidates)
		fixed, err := textedit.Apply(src, kept)
		if err != nil || fixed == src {
			return Report{FixedSource: src, Iterations: iter - 1, RemainingDiagnostics: result.Diagnostics, DeferredEdits: len(deferred)}
		}
		prevSrc, prevDiags = src, result.Diagnostics
		src = fixed
		dirty = true
	}
	root, _, ok := parseTree(fileID, src, isModule)
	var finalDiags []diagnostic.Diagnostic
	if ok {
		finalDiags = rules.Run(root, src, fileID, store, suppressorFor(root, src)).Diagnostics
	}
	return Report{FixedSource: src, Iterations: MaxIterations, RemainingDiagnostics: finalDiags}
}

// parseTree runs the full lex -> parse -> sink pipeline once, mirroring
// the facade package's ParseScript/ParseModule (kept independent here so
// autofix has no dependency on the root package, which itself depends on
// autofix).
func parseTree(fileID int, src string, isModule bool) (*cstree.Node, []diagnostic.Diagnostic, bool) {
	toks, lexDiags, identText := lexer.Lex(fileID, src)
	ts := parser.NewTokenSource(toks, identText)
	p := parser.New(fileID, src, ts, parser.NewState(isModule))
	if isModule {
		p.ParseModule()
	} else {
		p.ParseScript()
	}
	sink := cstree.NewSink(cstree.Source{Text: src, Tokens: toks}, nil)
	green, sinkDiags := sink.Run(p.Events())
	diags := append(append([]diagnostic.Diagnostic{}, lexDiags...), sinkDiags...)
	hasFatal := false
	for _, d := range diags {
		if d.Severity == diagnostic.Bug {
			hasFatal = true
		}
	}
	root := cstree.NewRoot(green)
	return root, diags, !hasFatal
}
