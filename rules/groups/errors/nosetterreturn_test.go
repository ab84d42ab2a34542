package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestNoSetterReturn(t *testing.T) {
	ruletest.Run(t, errors.NoSetterReturn{}, []ruletest.Case{
		{Name: "bare_return_ok", Src: "class C { set x(v) { if (!v) return; this._x = v; } }", Want: 0},
		{Name: "value_return_wrong", Src: "class C { set x(v) { return v; } }", Want: 1},
		{Name: "no_return_ok", Src: "class C { set x(v) { this._x = v; } }", Want: 0},
		{Name: "nested_function_return_ignored", Src: "class C { set x(v) { const f = function() { return 1; }; } }", Want: 0},
	})
}
