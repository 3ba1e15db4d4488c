package rpncalc

import (
	"errors"
	"io"
	"strings"
)

// Convert lexes an expression and reorders its tokens into postfix order
// with the shunting-yard algorithm. Functions not enabled by the variant are
// rejected. Convert does not validate; use Validate first to apply the
// variant's limits, or Evaluate to run every stage.
//
// A + or - where an operand is expected, i.e. at the start, after an open
// parenthesis, or after another operator, is a prefix sign. The factorial is
// postfix and is emitted as soon as it is scanned, so it applies to the
// operand just completed. log and exp are prefix and bind like signs.
func (v *Variant) Convert(expr string) ([]Token, error) {
	v = v.orDefault()
	scan := lex(strings.NewReader(expr))
	ops := newOpstack()
	out := make([]Token, 0, len(expr))
	// operand is whether the next token should begin an operand.
	operand := true
	for {
		tok, err := scan.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
			operand = false
		case TokenIntDiv:
			if !v.IntegerDivision {
				return nil, &OperatorError{Col: tok.Pos, Operator: intdivname}
			}
			out = append(out, tok)
			operand = false
		case TokenOpen:
			ops.push(tok)
			operand = true
		case TokenClose:
			for {
				top, ok := ops.pop()
				if !ok {
					return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
				}
				if top.Kind == TokenOpen {
					break
				}
				out = append(out, top)
			}
			operand = false
		case TokenOp:
			if operand {
				if u := unop(tok.Text); u.code != opNone {
					tok.Op = u
					ops.push(tok)
					continue
				}
				// A binary operator where an operand belongs. Leave it for
				// the evaluator to report the missing operand.
			}
			out = popWhile(ops, out, tok.Op)
			ops.push(tok)
			operand = true
		case TokenFunc:
			if !v.Functions.Has(funcbit(tok.Text)) {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			if tok.Op.Postfix {
				if operand {
					// Nothing has been completed for it to apply to.
					return nil, &StackError{Col: tok.Pos, Operator: tok.Op.name(), Need: 1, Have: 0}
				}
				out = append(out, tok)
				operand = false
				continue
			}
			ops.push(tok)
			operand = true
		default:
			panic("rpncalc: unknown token: " + tok.String())
		}
	}
	for {
		top, ok := ops.pop()
		if !ok {
			break
		}
		if top.Kind == TokenOpen {
			return nil, &BracketError{Col: top.Pos, Left: top.Text}
		}
		out = append(out, top)
	}
	return out, nil
}

// popWhile moves operators from ops to out for as long as the operator on top
// binds at least as tightly as op, respecting op's associativity. It never
// pops past an open parenthesis.
func popWhile(ops opstack, out []Token, op Operator) []Token {
	for {
		top, ok := ops.peek()
		if !ok || top.Kind == TokenOpen || !op.yieldsTo(top.Op) {
			return out
		}
		ops.pop()
		out = append(out, top)
	}
}
