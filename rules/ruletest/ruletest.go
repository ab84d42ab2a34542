// Package ruletest is the shared table-driven harness for a single rule's
// tests, generalized from parse/lexer_test.go's err/ok-bucketed table style
// (_examples/robfig-soy/parse/lexer_test.go): a case is a source sample and
// the diagnostic count it must produce, rather than lexer items.
package ruletest

import (
	"testing"

	rslint "github.com/rslint/rslint-sub006"
	"github.com/rslint/rslint-sub006/rules"
)

// Case is one source sample for a single rule.
type Case struct {
	Name string
	Src  string
	// Want is the number of diagnostics the rule must produce against Src.
	Want int
	// Module parses Src with ParseModule (strict from the start) instead
	// of ParseScript. Neither grammar parses import or export declarations.
	Module bool
}

// Run parses each case, runs only rule against the resulting tree (no
// directive suppression), and fails the test if the rule's diagnostic
// count does not match Want.
func Run(t *testing.T, rule rules.Hooks, cases []Case) {
	t.Helper()
	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			store := rules.NewStore()
			store.Register(rule)
			store.EnableError(rule.Name())

			var pr rslint.ParseResult
			if c.Module {
				pr = rslint.ParseModule(1, c.Src)
			} else {
				pr = rslint.ParseScript(1, c.Src)
			}
			for _, d := range pr.Diagnostics {
				t.Fatalf("unexpected parse diagnostic: %+v", d)
			}

			result := rules.Run(pr.Root, c.Src, 1, store, nil)
			if len(result.Diagnostics) != c.Want {
				t.Fatalf("got %d diagnostics, want %d: %+v", len(result.Diagnostics), c.Want, result.Diagnostics)
			}
		})
	}
}
