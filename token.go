package rpncalc

import (
	"strconv"
	"strings"
)

// Token is a lexical unit of an expression. Tokens are produced by the lexer
// and are never modified afterward.
type Token struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind TokenKind
	// Text is the source text of the token. For TokenIntDiv, it is the
	// rewritten call text, e.g. "integerDivide(7,2)".
	Text string
	// Pos is the 1-based rune column of the token's first character.
	Pos int
	// Op is the operator for TokenOp and TokenFunc.
	Op Operator
	// Args holds the dividend and divisor texts of TokenIntDiv.
	Args [2]string
}

// TokenKind is the tag of a Token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a numeric literal.
	TokenNum
	// TokenOp is a binary operator or a prefix sign.
	TokenOp
	// TokenFunc is a unary function: postfix ! or prefix log or exp.
	TokenFunc
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenIntDiv is an atomic integer division of two literals.
	TokenIntDiv
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenFunc:
		return "Func"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenIntDiv:
		return "IntDiv"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// FormatRPN renders a postfix token sequence with tokens separated by
// spaces. Prefix signs are written as "neg" and "pos" so that they are
// distinguishable from the binary operators.
func FormatRPN(rpn []Token) string {
	var b strings.Builder
	for i, tok := range rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch tok.Kind {
		case TokenNum:
			b.WriteString(tok.Text)
		case TokenOp, TokenFunc:
			b.WriteString(tok.Op.name())
		case TokenIntDiv:
			b.WriteString(tok.Args[0])
			b.WriteByte(' ')
			b.WriteString(tok.Args[1])
			b.WriteString(" //")
		case TokenOpen, TokenClose:
			// Brackets never reach a postfix sequence, but show them rather
			// than hide a converter bug.
			b.WriteString(tok.Text)
		default:
			panic("rpncalc: invalid token kind " + tok.Kind.String())
		}
	}
	return b.String()
}
