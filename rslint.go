// Package rslint is the external interface facade (§6): the eight
// parse/lint/autofix entry points a host (CLI, LSP shell, build-tool
// plugin) calls into, implemented as thin orchestration over the
// lexer/parser/cstree, incremental, and rules/directive/autofix
// packages.
//
// Grounded on _examples/robfig-soy/soy.go and bundle.go's facade role:
// soy.go's Tofu exposes the handful of public entry points
// (ParseGlobals, New) a host needs without the host ever touching
// parse/ast/template internals directly; this package plays the same
// role for a JavaScript source file instead of a compiled template set.
package rslint

import (
	"github.com/rslint/rslint-sub006/autofix"
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/diagnostic"
	"github.com/rslint/rslint-sub006/directive"
	"github.com/rslint/rslint-sub006/incremental"
	"github.com/rslint/rslint-sub006/lexer"
	"github.com/rslint/rslint-sub006/parser"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/groups/style"
	"github.com/rslint/rslint-sub006/textedit"
)

// ParseResult is the output of a one-shot Parse* call: the lossless red
// tree plus every lex/parse diagnostic collected while building it.
type ParseResult struct {
	FileID      int
	Root        *cstree.Node
	Diagnostics []diagnostic.Diagnostic
}

// ParseScript parses src as a classic (non-module) script (§6).
func ParseScript(fileID int, src string) ParseResult {
	return parseWith(fileID, src, false, func(p *parser.Parser) { p.ParseScript() })
}

// ParseModule parses src as an ES module (§6).
func ParseModule(fileID int, src string) ParseResult {
	return parseWith(fileID, src, true, func(p *parser.Parser) { p.ParseModule() })
}

// ParseExpression parses src as a single standalone expression (§6).
func ParseExpression(fileID int, src string) ParseResult {
	return parseWith(fileID, src, false, func(p *parser.Parser) { p.ParseExpression() })
}

func parseWith(fileID int, src string, isModule bool, drive func(*parser.Parser)) ParseResult {
	toks, lexDiags, identText := lexer.Lex(fileID, src)
	ts := parser.NewTokenSource(toks, identText)
	p := parser.New(fileID, src, ts, parser.NewState(isModule))
	drive(p)
	sink := cstree.NewSink(cstree.Source{Text: src, Tokens: toks}, nil)
	green, sinkDiags := sink.Run(p.Events())
	diags := append(append([]diagnostic.Diagnostic{}, lexDiags...), sinkDiags...)
	return ParseResult{FileID: fileID, Root: cstree.NewRoot(green), Diagnostics: diags}
}

// IncrementalReparseScript applies edit to a previously parsed script
// tree, falling back to a full ParseScript if neither incremental fast
// path applies (§4.6, §6).
func IncrementalReparseScript(fileID int, root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, interner *cstree.Interner) (ParseResult, string) {
	return incrementalReparse(fileID, root, src, edit, oldDiags, interner, false)
}

// IncrementalReparseModule is IncrementalReparseScript's module-grammar
// counterpart (§6).
func IncrementalReparseModule(fileID int, root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, interner *cstree.Interner) (ParseResult, string) {
	return incrementalReparse(fileID, root, src, edit, oldDiags, interner, true)
}

func incrementalReparse(fileID int, root *cstree.Node, src string, edit textedit.Indel, oldDiags []diagnostic.Diagnostic, interner *cstree.Interner, isModule bool) (ParseResult, string) {
	newSrc, err := textedit.Apply(src, []textedit.Indel{edit})
	if err != nil {
		return ParseResult{}, "error"
	}
	if res, ok := incremental.Reparse(root, src, edit, oldDiags, fileID, interner); ok {
		return ParseResult{FileID: fileID, Root: cstree.NewRoot(res.Green), Diagnostics: res.Diagnostics}, newSrc
	}
	var result ParseResult
	if isModule {
		result = ParseModule(fileID, newSrc)
	} else {
		result = ParseScript(fileID, newSrc)
	}
	return result, newSrc
}

// Config is the Go struct shape a host populates from its TOML/YAML/JSON
// config file and hands to LintFile (§6 "Config file format"); loading
// the file itself is the host's job, not this core's.
type Config struct {
	// ErrorRules and WarningRules name individually-enabled rules at each
	// severity.
	ErrorRules, WarningRules []string
	// ErrorGroups and WarningGroups enable every rule in the named groups
	// ("errors", "style") at that severity.
	ErrorGroups, WarningGroups []string
	// Allowed rules never fire regardless of group/individual activation
	// (§9 Open Question 2: "allowed always wins").
	Allowed []string
	// BlockSpacingAlways configures the style/block-spacing rule directly;
	// a zero-value Config with no rule/group entries still needs this
	// decided if block-spacing is enabled, so it isn't routed through
	// Allowed/ErrorRules like a bare on/off switch.
	BlockSpacingAlways bool
}

// NewStore builds a rules.Store from cfg, with every rule this core
// ships registered (§4.7's store holds all rules; config only decides
// which are enabled).
func NewStore(cfg Config) *rules.Store {
	store := rules.NewStore()
	store.Register(errors.ForDirection{})
	store.Register(errors.GetterReturn{AllowImplicit: true})
	store.Register(errors.UseIsnan{EnforceForSwitchCase: true})
	store.Register(errors.NoSetterReturn{})
	store.Register(errors.NoDupeClassMembers{})
	store.Register(errors.NoIrregularWhitespace{})
	store.Register(errors.NoUnexpectedMultiline{})
	store.Register(style.BlockSpacing{Always: cfg.BlockSpacingAlways})

	for _, g := range cfg.ErrorGroups {
		store.EnableGroup(g, rules.LevelError)
	}
	for _, g := range cfg.WarningGroups {
		store.EnableGroup(g, rules.LevelWarning)
	}
	store.EnableError(cfg.ErrorRules...)
	store.EnableWarning(cfg.WarningRules...)
	store.Allow(cfg.Allowed...)
	return store
}

// LintResult is one file's complete lint output (§6).
type LintResult struct {
	FileID             int
	Tree               *cstree.Node
	ParserDiagnostics  []diagnostic.Diagnostic
	DirectiveDiagnostics []diagnostic.Diagnostic
	RuleResults        []diagnostic.Diagnostic
	FixedSource        string // only set if autofix was requested and applied
}

// Outcome reduces r to the overall success/warning/failure classification
// (§6 "exit codes").
func (r LintResult) Outcome() diagnostic.Outcome {
	return diagnostic.MergeOutcomes(
		diagnostic.OutcomeOf(r.ParserDiagnostics),
		diagnostic.OutcomeOf(r.DirectiveDiagnostics),
		diagnostic.OutcomeOf(r.RuleResults),
	)
}

// LintFile parses src, builds the directive suppression table, and runs
// every enabled rule in store (§6). It does not apply fixes; call
// ApplyAutofixes for that.
func LintFile(fileID int, src string, isModule bool, store *rules.Store) LintResult {
	var pr ParseResult
	if isModule {
		pr = ParseModule(fileID, src)
	} else {
		pr = ParseScript(fileID, src)
	}
	table, dirDiags := directive.Parse(pr.Root, src, fileID, store.Names())
	result := rules.Run(pr.Root, src, fileID, store, table)
	return LintResult{
		FileID:               fileID,
		Tree:                 pr.Root,
		ParserDiagnostics:    pr.Diagnostics,
		DirectiveDiagnostics: dirDiags,
		RuleResults:          result.Diagnostics,
	}
}

// ApplyAutofixes runs LintFile's pipeline inside the autofix convergence
// loop (§4.9, §6), returning the fixed source alongside whatever
// diagnostics survive after the loop settles.
func ApplyAutofixes(fileID int, src string, isModule bool, store *rules.Store) LintResult {
	report := autofix.Run(fileID, src, isModule, store, func(root *cstree.Node, src string) rules.Suppressor {
		table, _ := directive.Parse(root, src, fileID, store.Names())
		return table
	})
	final := LintFile(fileID, report.FixedSource, isModule, store)
	final.FixedSource = report.FixedSource
	return final
}
