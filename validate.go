package rpncalc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// allowed contains the characters every variant accepts.
const allowed = "0123456789.+-*/^()"

// intdivexpr matches an integer division of two decimal literals, spelled
// as the lexer reads numbers: 7, 7.5, 7. or .5.
var intdivexpr = regexp.MustCompile(`(\d+\.?\d*|\.\d+)//(\d+\.?\d*|\.\d+)`)

// Validate checks a raw expression against the variant and returns it
// normalized: whitespace removed and, if the variant has integer division,
// each a//b rewritten to the atomic call integerDivide(a,b). The checks run
// in order of cost: length and term limits, allowed characters, balanced
// parentheses, then the Bounds policy.
//
// Integer division applies only to two numeric literals. Any // left after
// rewriting, as in (1+2)//3 or 8//4//2, is an OperatorError.
func (v *Variant) Validate(raw string) (string, error) {
	v = v.orDefault()
	expr := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if n := utf8.RuneCountInString(expr); v.MaxLength > 0 && n > v.MaxLength {
		return "", &LengthError{Len: n, Max: v.MaxLength}
	}
	if v.MaxTerms > 0 {
		n := len(strings.FieldsFunc(expr, func(r rune) bool { return r == '+' || r == '-' }))
		if n > v.MaxTerms {
			return "", &LengthError{Len: n, Max: v.MaxTerms, Terms: true}
		}
	}
	if err := v.checkChars(expr); err != nil {
		return "", err
	}
	if err := checkBalance(expr); err != nil {
		return "", err
	}
	if err := v.checkBounds(expr); err != nil {
		return "", err
	}
	if v.IntegerDivision {
		expr = rewriteIntDiv(expr)
		if k := strings.Index(expr, "//"); k >= 0 {
			return "", &OperatorError{Col: utf8.RuneCountInString(expr[:k]) + 1, Operator: "//"}
		}
	}
	return expr, nil
}

// rewriteIntDiv replaces each a//b on literals with the call
// integerDivide(a,b). A match that is only part of a longer run of digits
// and dots, as in 1.2.3//4, is left alone so that the // is reported.
func rewriteIntDiv(expr string) string {
	var b strings.Builder
	last := 0
	for _, m := range intdivexpr.FindAllStringSubmatchIndex(expr, -1) {
		if m[0] > 0 && isnumrune(rune(expr[m[0]-1])) || m[1] < len(expr) && isnumrune(rune(expr[m[1]])) {
			continue
		}
		b.WriteString(expr[last:m[0]])
		b.WriteString(intdivname + "(" + expr[m[2]:m[3]] + "," + expr[m[4]:m[5]] + ")")
		last = m[1]
	}
	b.WriteString(expr[last:])
	return b.String()
}

// checkChars rejects characters outside the variant's alphabet. Letters are
// accepted only as part of an enabled function name.
func (v *Variant) checkChars(expr string) error {
	col := 0
	skip := 0
	for i, r := range expr {
		col++
		if skip > 0 {
			skip--
			continue
		}
		switch {
		case strings.ContainsRune(allowed, r):
			if r == '/' && strings.HasPrefix(expr[i+1:], "/") && !v.IntegerDivision {
				return &OperatorError{Col: col, Operator: "//"}
			}
		case r == '!' && v.Functions.Has(FuncFact):
		default:
			if name := v.funcPrefix(expr[i:]); name != "" {
				// Names are ASCII, so bytes and runes agree.
				skip = len(name) - 1
				continue
			}
			return &CharError{Col: col, Char: r}
		}
	}
	return nil
}

// funcPrefix returns the enabled prefix function name that s starts with,
// or the empty string if there is none.
func (v *Variant) funcPrefix(s string) string {
	for _, name := range [...]string{"log", "exp"} {
		if strings.HasPrefix(s, name) && v.Functions.Has(funcbit(name)) {
			return name
		}
	}
	return ""
}

// checkBalance scans parentheses with a depth counter which must never go
// negative and must end at zero.
func checkBalance(expr string) error {
	depth := 0
	col := 0
	for _, r := range expr {
		col++
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return &BalanceError{Col: col, Depth: -1}
			}
		}
	}
	if depth != 0 {
		return &BalanceError{Col: col + 1, Depth: depth}
	}
	return nil
}

// checkBounds applies the variant's Bounds policy to the first and last
// characters.
func (v *Variant) checkBounds(expr string) error {
	if v.Bounds == BoundsNone {
		return nil
	}
	if expr == "" {
		return &BoundsError{Col: 1, Policy: v.Bounds}
	}
	first, _ := utf8.DecodeRuneInString(expr)
	last, _ := utf8.DecodeLastRuneInString(expr)
	end := utf8.RuneCountInString(expr)
	switch v.Bounds {
	case BoundsDigits:
		if first == '-' && len(expr) > 1 {
			first = rune(expr[1])
		}
		if !isdigit(first) {
			return &BoundsError{Col: 1, Policy: v.Bounds}
		}
		if !isdigit(last) {
			return &BoundsError{Col: end, Policy: v.Bounds, End: true}
		}
	case BoundsOperands:
		if !isdigit(first) && !strings.ContainsRune(".(+-", first) && v.funcPrefix(expr) == "" {
			return &BoundsError{Col: 1, Policy: v.Bounds}
		}
		if !isdigit(last) && !strings.ContainsRune(".)!", last) {
			return &BoundsError{Col: end, Policy: v.Bounds, End: true}
		}
	default:
		panic("rpncalc: invalid bounds policy " + v.Bounds.String())
	}
	return nil
}

func isdigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isnumrune(r rune) bool {
	return isdigit(r) || r == '.'
}
