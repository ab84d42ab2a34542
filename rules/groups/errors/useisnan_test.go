package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestUseIsnan(t *testing.T) {
	ruletest.Run(t, errors.UseIsnan{EnforceForSwitchCase: true, EnforceForIndexOf: true}, []ruletest.Case{
		{Name: "eqeq_wrong", Src: "x == NaN;", Want: 1},
		{Name: "noteq_wrong", Src: "x !== NaN;", Want: 1},
		{Name: "nan_on_left_wrong", Src: "NaN === x;", Want: 1},
		{Name: "isnan_call_ok", Src: "isNaN(x);", Want: 0},
		{Name: "switch_discriminant_wrong", Src: "switch (NaN) { case 1: break; }", Want: 1},
		{Name: "switch_case_wrong", Src: "switch (x) { case NaN: break; }", Want: 1},
		{Name: "switch_plain_ok", Src: "switch (x) { case 1: break; }", Want: 0},
		{Name: "indexof_wrong", Src: "arr.indexOf(NaN);", Want: 1},
		{Name: "lastindexof_wrong", Src: "arr.lastIndexOf(NaN);", Want: 1},
		{Name: "indexof_other_arg_ok", Src: "arr.indexOf(1);", Want: 0},
		{Name: "other_call_ok", Src: "arr.find(NaN);", Want: 0},
	})
}
