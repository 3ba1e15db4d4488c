package rpncalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// Compile validates a raw expression and converts it to postfix order.
func (v *Variant) Compile(raw string) ([]Token, error) {
	expr, err := v.Validate(raw)
	if err != nil {
		return nil, err
	}
	return v.Convert(expr)
}

// Evaluate validates, converts, and evaluates a raw expression in float64
// arithmetic. If v is nil, Default() is used.
func Evaluate(raw string, v *Variant) (float64, error) {
	rpn, err := v.Compile(raw)
	if err != nil {
		return 0, err
	}
	return EvalRPN(rpn)
}

// EvaluateBig is like Evaluate, but computes with big.Float values of prec
// bits. If prec is 0, the precision is 64.
func EvaluateBig(raw string, v *Variant, prec uint) (*big.Float, error) {
	rpn, err := v.Compile(raw)
	if err != nil {
		return nil, err
	}
	return EvalRPNBig(rpn, prec)
}

// EvalRPN evaluates a postfix token sequence in float64 arithmetic.
//
// The base 2 logarithm of a non-positive operand is not an error: log 0 is
// -Inf and the log of a negative number is NaN, and either propagates
// through the rest of the expression. Callers that care must check the
// result with math.IsNaN and math.IsInf.
func EvalRPN(rpn []Token) (float64, error) {
	return evalRPN[float64](rpn, floatArith{})
}

// arith is the arithmetic an evaluation is carried out in. Operations may
// return a *DomainError without a position; the evaluator fills it in.
type arith[T any] interface {
	// num converts a numeric literal.
	num(text string) (T, error)
	// binary applies a binary operator.
	binary(code opcode, a, b T) (T, error)
	// unary applies a sign or function.
	unary(code opcode, a T) (T, error)
	// intdiv divides a by b, truncating toward zero.
	intdiv(a, b T) (T, error)
}

// evalRPN folds a postfix sequence over an operand stack.
func evalRPN[T any](rpn []Token, m arith[T]) (T, error) {
	var zero T
	st := newValstack[T]()
	for _, tok := range rpn {
		switch tok.Kind {
		case TokenNum:
			x, err := m.num(tok.Text)
			if err != nil {
				return zero, &LexError{Text: tok.Text, Kind: "number", Col: tok.Pos}
			}
			st.push(x)
		case TokenIntDiv:
			x, err := m.num(tok.Args[0])
			if err != nil {
				return zero, &LexError{Text: tok.Text, Kind: "integer division", Col: tok.Pos}
			}
			y, err := m.num(tok.Args[1])
			if err != nil {
				return zero, &LexError{Text: tok.Text, Kind: "integer division", Col: tok.Pos}
			}
			r, err := m.intdiv(x, y)
			if err != nil {
				return zero, at(err, tok.Pos)
			}
			st.push(r)
		case TokenOp, TokenFunc:
			need := int(tok.Op.Arity)
			if st.len() < need {
				return zero, &StackError{Col: tok.Pos, Operator: tok.Op.name(), Need: need, Have: st.len()}
			}
			var (
				r   T
				err error
			)
			if need == 2 {
				b := st.pop()
				a := st.pop()
				r, err = m.binary(tok.Op.code, a, b)
			} else {
				r, err = m.unary(tok.Op.code, st.pop())
			}
			if err != nil {
				return zero, at(err, tok.Pos)
			}
			st.push(r)
		case TokenOpen:
			return zero, &BracketError{Col: tok.Pos, Left: tok.Text}
		case TokenClose:
			return zero, &BracketError{Col: tok.Pos, Right: tok.Text}
		default:
			panic("rpncalc: invalid token in postfix sequence: " + tok.String())
		}
	}
	if st.len() != 1 {
		return zero, &ResultError{Count: st.len()}
	}
	return st.pop(), nil
}

// at sets the position of a domain error.
func at(err error, pos int) error {
	var d *DomainError
	if errors.As(err, &d) && d.Col == 0 {
		d.Col = pos
	}
	return err
}

// maxFact is the largest n for which n! is finite in float64.
const maxFact = 170

// floatArith is float64 arithmetic.
type floatArith struct{}

func (floatArith) num(text string) (float64, error) {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var nerr *strconv.NumError
		if errors.As(err, &nerr) && errors.Is(nerr.Err, strconv.ErrRange) {
			// Overlong literals become ±Inf, as in the arithmetic.
			return x, nil
		}
		return 0, err
	}
	return x, nil
}

func (floatArith) binary(code opcode, a, b float64) (float64, error) {
	switch code {
	case opAdd:
		return a + b, nil
	case opSub:
		return a - b, nil
	case opMul:
		return a * b, nil
	case opDiv:
		if b == 0 {
			return 0, &DomainError{X: fmtfloat(b), Func: "/"}
		}
		return a / b, nil
	case opPow:
		return math.Pow(a, b), nil
	default:
		panic("rpncalc: invalid binary operator " + Operator{code: code}.name())
	}
}

func (floatArith) unary(code opcode, a float64) (float64, error) {
	switch code {
	case opNeg:
		return -a, nil
	case opPos:
		return a, nil
	case opFact:
		if a < 0 || math.IsNaN(a) || a != math.Trunc(a) {
			return 0, &DomainError{X: fmtfloat(a), Func: "!"}
		}
		if a > maxFact {
			return math.Inf(1), nil
		}
		r := 1.0
		for i := 2.0; i <= a; i++ {
			r *= i
		}
		return r, nil
	case opLog:
		return math.Log2(a), nil
	case opExp:
		return math.Exp(a), nil
	default:
		panic("rpncalc: invalid unary operator " + Operator{code: code}.name())
	}
}

func (floatArith) intdiv(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &DomainError{X: fmtfloat(b), Func: "//"}
	}
	return math.Trunc(a / b), nil
}

func fmtfloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
