package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestNoUnexpectedMultiline(t *testing.T) {
	ruletest.Run(t, errors.NoUnexpectedMultiline{}, []ruletest.Case{
		{Name: "call_same_line_ok", Src: "foo(bar);", Want: 0},
		{Name: "call_across_line_break_wrong", Src: "foo\n(bar);", Want: 1},
		{Name: "bracket_same_line_ok", Src: "foo[bar];", Want: 0},
		{Name: "bracket_across_line_break_wrong", Src: "foo\n[bar];", Want: 1},
		{Name: "template_same_line_ok", Src: "foo`bar`;", Want: 0},
		{Name: "template_across_line_break_wrong", Src: "foo\n`bar`;", Want: 1},
	})
}
