package rpncalc

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// DefaultPrec is the precision of arbitrary-precision evaluation when none
// is given.
const DefaultPrec = 64

// maxBigFact is the largest factorial computed in arbitrary precision.
const maxBigFact = 10000

// EvalRPNBig evaluates a postfix token sequence with big.Float values of
// prec bits, or DefaultPrec if prec is 0.
//
// big.Float has no NaN. Operations without a real result, such as log of a
// negative number or Inf-Inf, fail with a *DomainError that wraps ErrNaN.
// log 0 is -Inf, as in float64 evaluation.
func EvalRPNBig(rpn []Token, prec uint) (*big.Float, error) {
	if prec == 0 {
		prec = DefaultPrec
	}
	return evalRPN[*big.Float](rpn, bigArith{prec: prec})
}

// bigArith is arbitrary-precision arithmetic. Every operation allocates its
// result, so values on the operand stack are never shared.
type bigArith struct {
	prec uint
}

func (m bigArith) new() *big.Float {
	return new(big.Float).SetPrec(m.prec)
}

func (m bigArith) num(text string) (*big.Float, error) {
	r, _, err := m.new().Parse(text, 10)
	return r, err
}

// guard runs f, converting a big.ErrNaN panic into a domain error of the
// named operation. The result is rounded to the evaluation precision.
func (m bigArith) guard(name string, x *big.Float, f func() *big.Float) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := p.(error); ok && errors.As(e, &nan) {
			r, err = nil, &DomainError{X: x.Text('g', 10), Func: name, nan: true}
			return
		}
		panic(p)
	}()
	return f().SetPrec(m.prec), nil
}

func (m bigArith) binary(code opcode, a, b *big.Float) (*big.Float, error) {
	name := Operator{code: code}.name()
	switch code {
	case opAdd:
		return m.guard(name, b, func() *big.Float { return m.new().Add(a, b) })
	case opSub:
		return m.guard(name, b, func() *big.Float { return m.new().Sub(a, b) })
	case opMul:
		return m.guard(name, b, func() *big.Float { return m.new().Mul(a, b) })
	case opDiv:
		if b.Sign() == 0 {
			return nil, &DomainError{X: b.Text('g', 10), Func: name}
		}
		return m.guard(name, b, func() *big.Float { return m.new().Quo(a, b) })
	case opPow:
		return m.pow(a, b)
	default:
		panic("rpncalc: invalid binary operator " + name)
	}
}

// pow computes a^b. bigfloat.Pow requires a positive finite base, so zero,
// negative and infinite operands are handled here.
func (m bigArith) pow(a, b *big.Float) (*big.Float, error) {
	switch {
	case b.Sign() == 0:
		return m.new().SetInt64(1), nil
	case a.IsInf() || b.IsInf():
		// Infinities have no more precision than float64 has.
		x, _ := a.Float64()
		y, _ := b.Float64()
		return m.guard("^", a, func() *big.Float { return m.new().SetFloat64(math.Pow(x, y)) })
	case a.Sign() == 0:
		if b.Sign() < 0 {
			return m.new().SetInf(false), nil
		}
		return m.new(), nil
	case a.Sign() < 0:
		if !b.IsInt() {
			return nil, &DomainError{X: a.Text('g', 10), Func: "^", nan: true}
		}
		abs := m.new().Abs(a)
		r, err := m.guard("^", a, func() *big.Float { return bigfloat.Pow(m.new(), abs, b) })
		if err != nil {
			return nil, err
		}
		n, _ := b.Int(nil)
		if n.Bit(0) == 1 {
			r.Neg(r)
		}
		return r, nil
	default:
		return m.guard("^", a, func() *big.Float { return bigfloat.Pow(m.new(), a, b) })
	}
}

func (m bigArith) unary(code opcode, a *big.Float) (*big.Float, error) {
	switch code {
	case opNeg:
		return m.new().Neg(a), nil
	case opPos:
		return m.new().Set(a), nil
	case opFact:
		if a.Sign() < 0 || !a.IsInt() {
			return nil, &DomainError{X: a.Text('g', 10), Func: "!"}
		}
		n, acc := a.Int64()
		if acc != big.Exact || n > maxBigFact {
			return nil, &DomainError{X: a.Text('g', 10), Func: "!"}
		}
		return m.new().SetInt(new(big.Int).MulRange(1, n)), nil
	case opLog:
		switch {
		case a.Sign() < 0:
			return nil, &DomainError{X: a.Text('g', 10), Func: "log", nan: true}
		case a.Sign() == 0:
			return m.new().SetInf(true), nil
		case a.IsInf():
			return m.new().SetInf(false), nil
		}
		return m.guard("log", a, func() *big.Float {
			r := bigfloat.Log(m.new(), a)
			two := bigfloat.Log(m.new(), m.new().SetInt64(2))
			return r.Quo(r, two)
		})
	case opExp:
		if a.IsInf() {
			if a.Sign() < 0 {
				return m.new(), nil
			}
			return m.new().SetInf(false), nil
		}
		return m.guard("exp", a, func() *big.Float { return bigfloat.Exp(m.new(), a) })
	default:
		panic("rpncalc: invalid unary operator " + Operator{code: code}.name())
	}
}

func (m bigArith) intdiv(a, b *big.Float) (*big.Float, error) {
	if b.Sign() == 0 {
		return nil, &DomainError{X: b.Text('g', 10), Func: "//"}
	}
	return m.guard("//", b, func() *big.Float {
		// Int truncates toward zero.
		q, _ := m.new().Quo(a, b).Int(nil)
		return m.new().SetInt(q)
	})
}
