package rslint_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"

	rslint "github.com/rslint/rslint-sub006"
	"github.com/rslint/rslint-sub006/diagnostic"
)

func TestParseScriptNoDiagnosticsOnCleanSource(t *testing.T) {
	pr := rslint.ParseScript(1, "let x = 1;\n")
	if len(pr.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", pr.Diagnostics)
	}
	if pr.Root == nil {
		t.Fatal("expected a non-nil root")
	}
}

func codes(diags []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	sort.Strings(out)
	return out
}

func TestLintFileReportsEnabledRule(t *testing.T) {
	store := rslint.NewStore(rslint.Config{ErrorGroups: []string{"errors"}})
	result := rslint.LintFile(1, "for (i = 0; i < 10; i--) {}\n", false, store)
	if result.Outcome() != diagnostic.Failure {
		t.Fatalf("expected failure outcome, got %v", result.Outcome())
	}
	want := []string{"for-direction"}
	if diff := cmp.Diff(want, codes(result.RuleResults)); diff != "" {
		t.Fatalf("diagnostic codes mismatch (-want +got):\n%s", diff)
	}
}

func TestLintFileHonorsAllowedOverGroup(t *testing.T) {
	store := rslint.NewStore(rslint.Config{ErrorGroups: []string{"errors"}, Allowed: []string{"for-direction"}})
	result := rslint.LintFile(1, "for (i = 0; i < 10; i--) {}\n", false, store)
	if diff := cmp.Diff([]string{}, codes(result.RuleResults)); diff != "" {
		t.Fatalf("expected for-direction to be allowed (-want +got):\n%s", diff)
	}
}

func TestApplyAutofixesFixesBlockSpacing(t *testing.T) {
	store := rslint.NewStore(rslint.Config{ErrorGroups: []string{"style"}, BlockSpacingAlways: true})
	result := rslint.ApplyAutofixes(1, "function f() {return 1;}\n", false, store)
	want := "function f() { return 1; }\n"
	if result.FixedSource != want {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(want, result.FixedSource, false)
		t.Fatalf("fixed source mismatch:\n%s", dmp.DiffPrettyText(diffs))
	}
}
