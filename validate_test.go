package rpncalc_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/rpncalc"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		v    rpncalc.Variant
		want string
	}{
		{"plain", "1+2", rpncalc.Standard(), "1+2"},
		{"spaces", " 1 +\t2\n", rpncalc.Standard(), "1+2"},
		{"unicode-space", "1 + 2", rpncalc.Standard(), "1+2"},
		{"parens", "(1 + 2) * 3", rpncalc.Standard(), "(1+2)*3"},
		{"fact", "5 !", rpncalc.Scientific(), "5!"},
		{"funcs", "exp log 8", rpncalc.Scientific(), "explog8"},
		{"intdiv", "7 // 2", rpncalc.Basic(), "integerDivide(7,2)"},
		{"intdiv-frac", "7.5//2.5", rpncalc.Basic(), "integerDivide(7.5,2.5)"},
		{"intdiv-twice", "8//3+9//4", rpncalc.Basic(), "integerDivide(8,3)+integerDivide(9,4)"},
		{"intdiv-neg", "-7//2", rpncalc.Basic(), "-integerDivide(7,2)"},
		{"intdiv-lead-dot", ".5//2", rpncalc.Default(), "integerDivide(.5,2)"},
		{"intdiv-trail-dot", "5. // 2", rpncalc.Basic(), "integerDivide(5.,2)"},
		{"intdiv-dot-divisor", "7//.5", rpncalc.Default(), "integerDivide(7,.5)"},
		{"digits-neg", "-1+2", rpncalc.Basic(), "-1+2"},
		{"operands-paren", "(1+2)*3", rpncalc.Default(), "(1+2)*3"},
		{"operands-fact", "-(3)!", rpncalc.Default(), "-(3)!"},
		{"operands-func", "log 8", rpncalc.Default(), "log8"},
		{"max-length", "1 + 2", rpncalc.Variant{MaxLength: 3}, "1+2"},
		{"max-terms", "1+2-3", rpncalc.Variant{MaxTerms: 3}, "1+2-3"},
		{"unlimited", strings.Repeat("1+", 1000) + "1", rpncalc.Variant{}, strings.Repeat("1+", 1000) + "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.v.Validate(c.src)
			if err != nil {
				t.Fatalf("%q failed to validate: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("%q normalized wrong: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		v    rpncalc.Variant
		err  rpncalc.InputError
		kind error
		pos  int
	}{
		{"too-long", strings.Repeat("1+", 250) + "1", rpncalc.Default(), new(rpncalc.LengthError), rpncalc.ErrExpressionTooLong, 0},
		{"too-many-terms", strings.Repeat("1+", 15) + "1", rpncalc.Scientific(), new(rpncalc.LengthError), rpncalc.ErrExpressionTooLong, 0},
		{"char", "1 + a", rpncalc.Default(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 3},
		{"char-unicode", "2×3", rpncalc.Default(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 2},
		{"fact-disabled", "5!", rpncalc.Standard(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 2},
		{"log-disabled", "log8", rpncalc.Basic(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 1},
		{"partial-name", "lo8", rpncalc.Default(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 1},
		{"intdiv-name", "integerDivide(7,2)", rpncalc.Default(), new(rpncalc.CharError), rpncalc.ErrInvalidCharacter, 1},
		{"intdiv-disabled", "7//2", rpncalc.Scientific(), new(rpncalc.OperatorError), rpncalc.ErrUnknownOperator, 2},
		{"intdiv-nonliteral", "(1+2)//3", rpncalc.Default(), new(rpncalc.OperatorError), rpncalc.ErrUnknownOperator, 6},
		{"intdiv-partial-number", "1.2.3//4", rpncalc.Default(), new(rpncalc.OperatorError), rpncalc.ErrUnknownOperator, 6},
		{"intdiv-chain", "8//4//2", rpncalc.Default(), new(rpncalc.OperatorError), rpncalc.ErrUnknownOperator, 19},
		{"unclosed", "(1+2", rpncalc.Default(), new(rpncalc.BalanceError), rpncalc.ErrUnbalancedParentheses, 5},
		{"unopened", "1+2)", rpncalc.Default(), new(rpncalc.BalanceError), rpncalc.ErrUnbalancedParentheses, 4},
		{"crossed", ")1(", rpncalc.Standard(), new(rpncalc.BalanceError), rpncalc.ErrUnbalancedParentheses, 1},
		{"digits-paren", "(1+2)*3", rpncalc.Basic(), new(rpncalc.BoundsError), rpncalc.ErrMalformedExpression, 1},
		{"digits-end", "1+", rpncalc.Basic(), new(rpncalc.BoundsError), rpncalc.ErrMalformedExpression, 2},
		{"operands-start", "*2", rpncalc.Default(), new(rpncalc.BoundsError), rpncalc.ErrMalformedExpression, 1},
		{"operands-end", "1+", rpncalc.Default(), new(rpncalc.BoundsError), rpncalc.ErrMalformedExpression, 2},
		{"operands-empty", "  ", rpncalc.Default(), new(rpncalc.BoundsError), rpncalc.ErrMalformedExpression, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.v.Validate(c.src)
			if got != "" {
				t.Errorf("%q validated non-empty to %q", c.src, got)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("error from %q is not %v: %v", c.src, c.kind, err)
			}
			var ie rpncalc.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("error from %q is not an InputError", c.src)
			}
			if ie.Pos() != c.pos {
				t.Errorf("wrong position from %q: want %d, got %d", c.src, c.pos, ie.Pos())
			}
		})
	}
}

func TestValidateWhitespaceOnly(t *testing.T) {
	// Without a bounds policy, an empty expression is left for evaluation
	// to reject.
	v := rpncalc.Standard()
	got, err := v.Validate(" \t\n")
	if err != nil || got != "" {
		t.Errorf("want empty expression and no error, got %q, %v", got, err)
	}
}
