package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestGetterReturn(t *testing.T) {
	ruletest.Run(t, errors.GetterReturn{AllowImplicit: true}, []ruletest.Case{
		{Name: "class_getter_ok", Src: "class C { get x() { return 1; } }", Want: 0},
		{Name: "class_getter_missing_return_wrong", Src: "class C { get x() { console.log(1); } }", Want: 1},
		{Name: "class_getter_if_both_branches_ok", Src: "class C { get x() { if (a) { return 1; } else { return 2; } } }", Want: 0},
		{Name: "class_getter_if_missing_else_wrong", Src: "class C { get x() { if (a) { return 1; } } }", Want: 1},
		{Name: "define_property_getter_ok", Src: "Object.defineProperty(obj, \"x\", { get: function() { return 1; } });", Want: 0},
		{Name: "define_property_getter_wrong", Src: "Object.defineProperty(obj, \"x\", { get: function() { console.log(1); } });", Want: 1},
	})
}

func TestGetterReturnDisallowImplicit(t *testing.T) {
	ruletest.Run(t, errors.GetterReturn{AllowImplicit: false}, []ruletest.Case{
		{Name: "bare_return_wrong", Src: "class C { get x() { return; } }", Want: 1},
		{Name: "value_return_ok", Src: "class C { get x() { return 1; } }", Want: 0},
	})
}
