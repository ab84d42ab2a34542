package directive_test

import (
	"testing"

	rslint "github.com/rslint/rslint-sub006"
	"github.com/rslint/rslint-sub006/directive"
	"github.com/rslint/rslint-sub006/rules"
	"github.com/rslint/rslint-sub006/rules/groups/errors"
)

func run(t *testing.T, src string) (withoutSuppression, withSuppression int, diags []string) {
	t.Helper()
	pr := rslint.ParseScript(1, src)
	for _, d := range pr.Diagnostics {
		t.Fatalf("unexpected parse diagnostic: %+v", d)
	}
	store := rules.NewStore()
	store.Register(errors.ForDirection{})
	store.EnableError("for-direction")

	bare := rules.Run(pr.Root, src, 1, store, nil)

	table, dirDiags := directive.Parse(pr.Root, src, 1, store.Names())
	for _, d := range dirDiags {
		diags = append(diags, d.Title)
	}
	suppressed := rules.Run(pr.Root, src, 1, store, table)
	return len(bare.Diagnostics), len(suppressed.Diagnostics), diags
}

func TestIgnoreNextSuppressesFollowingNode(t *testing.T) {
	src := "// rslint-ignore-next for-direction\nfor (i = 0; i < 10; i--) {}\n"
	bare, suppressed, _ := run(t, src)
	if bare != 1 {
		t.Fatalf("bare run: got %d diagnostics, want 1", bare)
	}
	if suppressed != 0 {
		t.Fatalf("suppressed run: got %d diagnostics, want 0", suppressed)
	}
}

func TestIgnoreWithoutRuleListSuppressesAll(t *testing.T) {
	src := "// rslint-ignore\nfor (i = 0; i < 10; i--) {}\n"
	bare, suppressed, _ := run(t, src)
	if bare != 1 {
		t.Fatalf("bare run: got %d diagnostics, want 1", bare)
	}
	if suppressed != 0 {
		t.Fatalf("suppressed run: got %d diagnostics, want 0", suppressed)
	}
}

func TestIgnoreUntilEOFIsFileWide(t *testing.T) {
	src := "// rslint-ignore until eof\nfor (i = 0; i < 10; i--) {}\nfor (j = 0; j < 10; j--) {}\n"
	_, suppressed, _ := run(t, src)
	if suppressed != 0 {
		t.Fatalf("suppressed run: got %d diagnostics, want 0", suppressed)
	}
}

func TestUnrelatedCommentIsNotADirective(t *testing.T) {
	src := "// just a regular comment\nfor (i = 0; i < 10; i--) {}\n"
	bare, suppressed, diags := run(t, src)
	if bare != 1 || suppressed != 1 {
		t.Fatalf("expected the diagnostic to survive untouched, got bare=%d suppressed=%d", bare, suppressed)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected directive diagnostics: %v", diags)
	}
}

func TestUnknownRuleNameIsReported(t *testing.T) {
	src := "// rslint-ignore no-such-rule\nfor (i = 0; i < 10; i--) {}\n"
	_, _, diags := run(t, src)
	if len(diags) != 1 {
		t.Fatalf("expected one directive diagnostic, got %v", diags)
	}
}
