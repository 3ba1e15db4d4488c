package rpncalc

import "strconv"

// Operator describes how an operator or function token binds and what it
// computes.
type Operator struct {
	// Prec is the precedence value. Higher is more binding.
	Prec int8
	// Right indicates right-associativity.
	Right bool
	// Arity is the number of operands consumed, 1 or 2.
	Arity int8
	// Postfix is true for operators written after their operand.
	Postfix bool
	// code is the operation to apply.
	code opcode
}

type opcode int8

const (
	opNone opcode = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opNeg
	opPos
	opFact
	opLog
	opExp
)

// name is the text used for the operator in postfix output.
func (p Operator) name() string {
	switch p.code {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opPow:
		return "^"
	case opNeg:
		return "neg"
	case opPos:
		return "pos"
	case opFact:
		return "!"
	case opLog:
		return "log"
	case opExp:
		return "exp"
	default:
		return "op(" + strconv.Itoa(int(p.code)) + ")"
	}
}

// yieldsTo reports whether p, arriving at the converter, must first let top
// (the operator on top of the stack) be applied.
func (p Operator) yieldsTo(top Operator) bool {
	if top.Prec != p.Prec {
		return top.Prec > p.Prec
	}
	return !p.Right
}

// prefixprec is the precedence of prefix signs and functions. It equals the
// precedence of ^, and all of them are right-associative, so -2^2 is -(2^2)
// and 2^-2 is 2^(-2), while log 8*2 is (log 8)*2.
const prefixprec = 3

// binop gets a binary operator for a token string. ** is a synonym for ^.
// If there is no such operator, the result has code opNone.
func binop(text string) Operator {
	switch text {
	case "+":
		return Operator{1, false, 2, false, opAdd}
	case "-":
		return Operator{1, false, 2, false, opSub}
	case "*":
		return Operator{2, false, 2, false, opMul}
	case "/":
		return Operator{2, false, 2, false, opDiv}
	case "^", "**":
		return Operator{3, true, 2, false, opPow}
	default:
		return Operator{}
	}
}

// unop gets a prefix sign operator for a token string. If there is no such
// operator, the result has code opNone.
func unop(text string) Operator {
	switch text {
	case "-":
		return Operator{prefixprec, true, 1, false, opNeg}
	case "+":
		return Operator{prefixprec, true, 1, false, opPos}
	default:
		return Operator{}
	}
}

// funcop gets a function for a name. If there is no such function, the
// result has code opNone.
func funcop(name string) Operator {
	switch name {
	case "!":
		return Operator{prefixprec + 1, false, 1, true, opFact}
	case "log":
		return Operator{prefixprec, true, 1, false, opLog}
	case "exp":
		return Operator{prefixprec, true, 1, false, opExp}
	default:
		return Operator{}
	}
}

// Funcs is a set of unary functions enabled in a Variant.
type Funcs uint8

const (
	// FuncFact enables the postfix factorial, "5!".
	FuncFact Funcs = 1 << iota
	// FuncLog enables the base 2 logarithm, "log 8" or "log(8)".
	FuncLog
	// FuncExp enables the natural exponential, "exp 1" or "exp(1)".
	FuncExp

	// AllFuncs enables every function.
	AllFuncs = FuncFact | FuncLog | FuncExp
)

var funcnames = [...]struct {
	f    Funcs
	name string
}{
	{FuncFact, "!"},
	{FuncLog, "log"},
	{FuncExp, "exp"},
}

// funcbit gets the Funcs bit for a function name, or 0 if the name is not a
// function.
func funcbit(name string) Funcs {
	for _, n := range funcnames {
		if n.name == name {
			return n.f
		}
	}
	return 0
}

// Has reports whether every function in g is also in f.
func (f Funcs) Has(g Funcs) bool {
	return f&g == g
}

// Names returns the names of the functions in f.
func (f Funcs) Names() []string {
	var r []string
	for _, n := range funcnames {
		if f.Has(n.f) {
			r = append(r, n.name)
		}
	}
	return r
}
