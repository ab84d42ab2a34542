package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestNoIrregularWhitespace(t *testing.T) {
	ruletest.Run(t, errors.NoIrregularWhitespace{}, []ruletest.Case{
		{Name: "ordinary_spacing_ok", Src: "let x = 1;\n", Want: 0},
		{Name: "nbsp_in_indentation_wrong", Src: "let x = 1;\n", Want: 1},
		{Name: "ideographic_space_wrong", Src: "let x　= 1;\n", Want: 1},
		{Name: "line_separator_wrong", Src: "let x = 1; let y = 2;\n", Want: 1},
	})
}
