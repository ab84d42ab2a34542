package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestNoDupeClassMembers(t *testing.T) {
	ruletest.Run(t, errors.NoDupeClassMembers{}, []ruletest.Case{
		{Name: "duplicate_method_wrong", Src: "class C { f() {} f() {} }", Want: 1},
		{Name: "getter_setter_pair_ok", Src: "class C { get x() { return 1; } set x(v) {} }", Want: 0},
		{Name: "different_names_ok", Src: "class C { f() {} g() {} }", Want: 0},
		{Name: "static_vs_instance_ok", Src: "class C { f() {} static f() {} }", Want: 0},
		{Name: "duplicate_static_method_wrong", Src: "class C { static f() {} static f() {} }", Want: 1},
		{Name: "duplicate_getter_wrong", Src: "class C { get x() { return 1; } get x() { return 2; } }", Want: 1},
	})
}
