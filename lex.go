package rpncalc

import (
	"errors"
	"io"
	"strings"
	"unicode"
)

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/^"

// intdivname is the function name the validator rewrites a//b into.
const intdivname = "integerDivide"

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read so far.
	col int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF. On an error, the token holds only
// its position. Operator tokens always carry their
// binary meaning; the converter decides whether they are signs.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.col}
		switch {
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			if tok.Text == intdivname {
				return l.scanIntDiv(tok)
			}
			tok.Op = funcop(tok.Text)
			if tok.Op.code == opNone {
				return Token{Pos: tok.Pos}, &OperatorError{Col: tok.Pos, Operator: tok.Text}
			}
			tok.Kind = TokenFunc
			return tok, nil
		case r == '!':
			tok.Text = "!"
			tok.Kind = TokenFunc
			tok.Op = funcop(tok.Text)
			return tok, nil
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
			return tok, nil
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			if r == '*' && l.accept('*') {
				tok.Text = "**"
			}
			tok.Kind = TokenOp
			tok.Op = binop(tok.Text)
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("", tok.Pos)
		}
	}
}

// scanNum scans a maximal run of digits and dots into the buffer. The run
// must contain at least one digit and at most one dot.
func (l *lexer) scanNum(pos int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r != '.' && (r < '0' || '9' < r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		if r == '.' {
			if dot {
				return l.error("number", pos)
			}
			dot = true
			continue
		}
		dig = true
	}
	if !dig {
		return l.error("number", pos)
	}
	return nil
}

// scanIdent scans a run of letters, stopping as soon as the run spells a
// known function name. Whitespace is gone after validation, so "exp log 8"
// arrives as "explog8".
func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
		switch l.buf.String() {
		case "log", "exp", intdivname:
			return nil
		}
	}
}

// scanIntDiv scans the argument list of an integer division call. tok holds
// the already scanned function name.
func (l *lexer) scanIntDiv(tok Token) (Token, error) {
	bad := Token{Pos: tok.Pos}
	if err := l.expect('(', tok.Pos); err != nil {
		return bad, err
	}
	for i := range tok.Args {
		start := l.buf.Len()
		if err := l.scanNum(tok.Pos); err != nil {
			return bad, l.error("integer division", tok.Pos)
		}
		tok.Args[i] = l.buf.String()[start:]
		sep := ','
		if i == len(tok.Args)-1 {
			sep = ')'
		}
		if err := l.expect(sep, tok.Pos); err != nil {
			return bad, err
		}
	}
	tok.Text = l.buf.String()
	tok.Kind = TokenIntDiv
	return tok, nil
}

// accept consumes the next rune if it is want.
func (l *lexer) accept(want rune) bool {
	r, err := l.readRune()
	if err != nil {
		return false
	}
	if r != want {
		l.unreadRune()
		return false
	}
	return true
}

// expect reads one rune into the buffer and fails if it is not want.
func (l *lexer) expect(want rune, pos int) error {
	r, err := l.readRune()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err == nil {
		l.buf.WriteRune(r)
	}
	if err != nil || r != want {
		return l.error("integer division", pos)
	}
	return nil
}

func (l *lexer) error(kind string, pos int) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  pos,
	}
}
