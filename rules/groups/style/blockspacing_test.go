package style_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/style"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestBlockSpacingAlways(t *testing.T) {
	ruletest.Run(t, style.BlockSpacing{Always: true}, []ruletest.Case{
		{Name: "spaced_ok", Src: "function f() { return 1; }", Want: 0},
		{Name: "unspaced_open_wrong", Src: "function f() {return 1; }", Want: 1},
		{Name: "unspaced_close_wrong", Src: "function f() { return 1;}", Want: 1},
		{Name: "unspaced_both_wrong", Src: "function f() {return 1;}", Want: 2},
		{Name: "empty_block_ok", Src: "function f() {}", Want: 0},
		{Name: "multiline_block_ok", Src: "function f() {\n  return 1;\n}", Want: 0},
	})
}

func TestBlockSpacingNever(t *testing.T) {
	ruletest.Run(t, style.BlockSpacing{Always: false}, []ruletest.Case{
		{Name: "unspaced_ok", Src: "function f() {return 1;}", Want: 0},
		{Name: "spaced_open_wrong", Src: "function f() { return 1;}", Want: 1},
		{Name: "spaced_both_wrong", Src: "function f() { return 1; }", Want: 2},
	})
}
