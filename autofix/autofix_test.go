package autofix_test

import (
	"testing"

	"github.com/andreyvit/diff"

	"github.com/rslint/rslint-sub006/autofix"
	"github.com/rslint/rslint-sub006/cstree"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/groups/style"
)

func noSuppression(*cstree.Node, string) rules.Suppressor { return nil }

func TestRunConvergesBlockSpacing(t *testing.T) {
	store := rules.NewStore()
	store.Register(style.BlockSpacing{Always: true})
	store.EnableError("block-spacing")

	src := "function f() {return 1;}"
	report := autofix.Run(1, src, false, store, noSuppression)

	want := "function f() { return 1; }"
	if report.FixedSource != want {
		t.Fatalf("fixed source mismatch:\n%s", diff.LineDiff(want, report.FixedSource))
	}
	if len(report.RemainingDiagnostics) != 0 {
		t.Fatalf("expected no remaining diagnostics, got %+v", report.RemainingDiagnostics)
	}
}

func TestRunIsNoopWhenAlreadyClean(t *testing.T) {
	store := rules.NewStore()
	store.Register(style.BlockSpacing{Always: true})
	store.EnableError("block-spacing")

	src := "function f() { return 1; }"
	report := autofix.Run(1, src, false, store, noSuppression)

	if report.FixedSource != src {
		t.Fatalf("got %q, want unchanged %q", report.FixedSource, src)
	}
	if report.Iterations != 0 {
		t.Fatalf("expected 0 iterations for already-clean source, got %d", report.Iterations)
	}
}
