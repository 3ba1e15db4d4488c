package rpncalc

import (
	"errors"
	"strconv"
)

// Error kinds. Every error returned by the package wraps exactly one of
// these, so errors.Is classifies failures without inspecting concrete types.
var (
	ErrInvalidCharacter      = errors.New("invalid character")
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrExpressionTooLong     = errors.New("expression too long")

	ErrUnmatchedParen  = errors.New("unmatched parenthesis")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrMalformedNumber = errors.New("malformed number")

	ErrInsufficientOperands    = errors.New("insufficient operands")
	ErrMalformedExpression     = errors.New("malformed expression")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrInvalidFactorialOperand = errors.New("invalid factorial operand")

	// ErrNaN is the kind of an arbitrary-precision operation that has no
	// real result, e.g. log of a negative number. Float64 evaluation
	// produces NaN instead.
	ErrNaN = errors.New("not a number")
)

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error, counted in the
	// normalized expression. Errors not tied to a token return 0.
	Pos() int
}

// CharError indicates a character that the variant does not allow.
type CharError struct {
	// Col is the position of the character.
	Col int
	// Char is the offending character.
	Char rune
}

func (err *CharError) Error() string {
	return errpos(err.Col, "invalid character "+strconv.QuoteRune(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

func (err *CharError) Unwrap() error {
	return ErrInvalidCharacter
}

// BalanceError indicates parentheses that do not balance, found before
// conversion.
type BalanceError struct {
	// Col is the position of the first close parenthesis without an open
	// one, or the length of the expression plus one if open parentheses
	// remain at the end.
	Col int
	// Depth is the nesting depth when the imbalance was detected: -1 for a
	// stray close parenthesis, otherwise the number left open.
	Depth int
}

func (err *BalanceError) Error() string {
	if err.Depth < 0 {
		return errpos(err.Col, "close parenthesis with no open parenthesis")
	}
	return errpos(err.Col, strconv.Itoa(err.Depth)+" unclosed parentheses")
}

func (err *BalanceError) Pos() int {
	return err.Col
}

func (err *BalanceError) Unwrap() error {
	return ErrUnbalancedParentheses
}

// LengthError indicates an expression exceeding a variant's size limits.
type LengthError struct {
	// Len is the measured size: runes if Terms is false, else additive
	// terms.
	Len int
	// Max is the limit that was exceeded.
	Max int
	// Terms indicates that the term count, not the length, was exceeded.
	Terms bool
}

func (err *LengthError) Error() string {
	what := "length"
	if err.Terms {
		what = "term count"
	}
	return "expression " + what + " " + strconv.Itoa(err.Len) + " exceeds limit " + strconv.Itoa(err.Max)
}

func (err *LengthError) Pos() int {
	return 0
}

func (err *LengthError) Unwrap() error {
	return ErrExpressionTooLong
}

// BoundsError indicates an expression that starts or ends with a character
// rejected by the variant's Bounds policy.
type BoundsError struct {
	// Col is the position of the rejected character.
	Col int
	// Policy is the policy that rejected the expression.
	Policy Bounds
	// End indicates the last character was rejected rather than the first.
	End bool
}

func (err *BoundsError) Error() string {
	which := "start"
	if err.End {
		which = "end"
	}
	return errpos(err.Col, "expression must "+which+" with "+err.Policy.describe(err.End))
}

func (err *BoundsError) Pos() int {
	return err.Col
}

func (err *BoundsError) Unwrap() error {
	return ErrMalformedExpression
}

// LexError indicates an invalid token.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "integer division", or the empty string if a token kind hadn't been
	// decided.
	Kind string
	// Col is the position of the start of the token.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return errpos(err.Col, "invalid token: "+err.Text)
	}
	return errpos(err.Col, "invalid "+err.Kind+" token: "+err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	if err.Kind == "" {
		return ErrInvalidCharacter
	}
	return ErrMalformedNumber
}

// OperatorError is an error indicating an operator or function that is not
// understood, or not enabled by the variant.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrUnknownOperator
}

// BracketError is an error indicating a parenthesis without a partner,
// found during conversion.
type BracketError struct {
	// Col is the position of the parenthesis.
	Col int
	// Left is "(" if an open parenthesis was never closed.
	Left string
	// Right is ")" if a close parenthesis had no open one.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close parenthesis "+err.Right+" with no open parenthesis")
	}
	return errpos(err.Col, "open parenthesis "+err.Left+" with no close parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrUnmatchedParen
}

// StackError indicates an operator applied with too few operands available.
type StackError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator's name in postfix form.
	Operator string
	// Need is the number of operands the operator requires.
	Need int
	// Have is the number of operands that were available.
	Have int
}

func (err *StackError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Operator)+" needs "+strconv.Itoa(err.Need)+" operands, have "+strconv.Itoa(err.Have))
}

func (err *StackError) Pos() int {
	return err.Col
}

func (err *StackError) Unwrap() error {
	return ErrInsufficientOperands
}

// ResultError indicates that evaluation did not leave exactly one value.
type ResultError struct {
	// Count is the number of values left on the operand stack.
	Count int
}

func (err *ResultError) Error() string {
	if err.Count == 0 {
		return "no expression"
	}
	return "expression leaves " + strconv.Itoa(err.Count) + " values"
}

func (err *ResultError) Pos() int {
	return 0
}

func (err *ResultError) Unwrap() error {
	return ErrMalformedExpression
}

// DomainError is an error returned when an operation is applied to operands
// outside its domain.
type DomainError struct {
	// Col is the position of the operator.
	Col int
	// X is the out-of-domain operand, formatted.
	X string
	// Func is the name of the operation.
	Func string

	// nan marks an operation with no real result, which is a NaN whatever
	// the operation.
	nan bool
}

func (err *DomainError) Error() string {
	if !err.nan && (err.Func == "/" || err.Func == "//") {
		return errpos(err.Col, "division by zero")
	}
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Unwrap() error {
	if err.nan {
		return ErrNaN
	}
	switch err.Func {
	case "/", "//":
		return ErrDivisionByZero
	case "!":
		return ErrInvalidFactorialOperand
	default:
		return ErrNaN
	}
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*BalanceError)(nil)
	_ InputError = (*LengthError)(nil)
	_ InputError = (*BoundsError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*StackError)(nil)
	_ InputError = (*ResultError)(nil)
	_ InputError = (*DomainError)(nil)
)
