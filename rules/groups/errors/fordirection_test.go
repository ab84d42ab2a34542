package errors_test

import (
	"testing"

	"github.com/rslint/rslint-sub006/rules/groups/errors"
	"github.com/rslint/rslint-sub006/rules/ruletest"
)

func TestForDirection(t *testing.T) {
	ruletest.Run(t, errors.ForDirection{}, []ruletest.Case{
		{Name: "ascending_decrement_wrong", Src: "for (i = 0; i < 10; i--) {}", Want: 1},
		{Name: "descending_increment_wrong", Src: "for (i = 10; i > 0; i++) {}", Want: 1},
		{Name: "ascending_increment_ok", Src: "for (i = 0; i < 10; i++) {}", Want: 0},
		{Name: "descending_decrement_ok", Src: "for (i = 10; i > 0; i--) {}", Want: 0},
		{Name: "bound_on_left_flipped_ok", Src: "for (i = 0; 10 > i; i++) {}", Want: 0},
		{Name: "bound_on_left_flipped_wrong", Src: "for (i = 0; 10 > i; i--) {}", Want: 1},
		{Name: "plus_assign_wrong", Src: "for (i = 10; i > 0; i += 1) {}", Want: 1},
		{Name: "minus_assign_ok", Src: "for (i = 10; i > 0; i -= 1) {}", Want: 0},
		{Name: "non_simple_update_unreportable", Src: "for (i = 0; i < 10; i = f()) {}", Want: 0},
	})
}
