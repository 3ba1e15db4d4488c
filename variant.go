package rpncalc

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant selects the optional extensions and input limits of a calculator.
// A Variant is read-only during evaluation, so one value may be shared by
// concurrent calls.
type Variant struct {
	// IntegerDivision enables a//b on numeric literals.
	IntegerDivision bool `yaml:"integer_division"`
	// Functions is the set of enabled unary functions.
	Functions Funcs `yaml:"functions"`
	// MaxLength is the maximum number of runes after whitespace removal.
	// Zero means no limit.
	MaxLength int `yaml:"max_length"`
	// MaxTerms is the maximum estimated number of additive terms, counted as
	// the non-empty runs between + and - characters. Zero means no limit.
	MaxTerms int `yaml:"max_terms"`
	// Bounds restricts the first and last characters of an expression.
	Bounds Bounds `yaml:"bounds"`
}

// DefaultMaxLength is the length limit of the preset variants.
const DefaultMaxLength = 500

// Default returns the variant used when none is given: every extension
// enabled, operand bounds, and the default length limit.
func Default() Variant {
	return Variant{
		IntegerDivision: true,
		Functions:       AllFuncs,
		MaxLength:       DefaultMaxLength,
		Bounds:          BoundsOperands,
	}
}

// Basic returns a console calculator variant with integer division, whose
// expressions must start and end with a number.
func Basic() Variant {
	return Variant{
		IntegerDivision: true,
		MaxLength:       DefaultMaxLength,
		Bounds:          BoundsDigits,
	}
}

// Scientific returns a variant with factorial, log and exp, limited to 15
// additive terms.
func Scientific() Variant {
	return Variant{
		Functions: AllFuncs,
		MaxLength: DefaultMaxLength,
		MaxTerms:  15,
	}
}

// Standard returns a variant with only the arithmetic operators.
func Standard() Variant {
	return Variant{MaxLength: DefaultMaxLength}
}

// Presets returns the named preset variants.
func Presets() map[string]Variant {
	return map[string]Variant{
		"default":    Default(),
		"basic":      Basic(),
		"scientific": Scientific(),
		"standard":   Standard(),
	}
}

var defaultVariant = Default()

func (v *Variant) orDefault() *Variant {
	if v == nil {
		return &defaultVariant
	}
	return v
}

// Check reports whether v's settings are usable.
func (v *Variant) Check() error {
	if v.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", v.MaxLength)
	}
	if v.MaxTerms < 0 {
		return fmt.Errorf("max_terms must not be negative, got %d", v.MaxTerms)
	}
	if v.Functions&^AllFuncs != 0 {
		return fmt.Errorf("unknown function bits %#x", uint8(v.Functions&^AllFuncs))
	}
	if v.Bounds > BoundsOperands {
		return fmt.Errorf("unknown bounds policy %d", v.Bounds)
	}
	return nil
}

// Bounds is a policy for the first and last characters of an expression.
// It is a coarse guard against malformed input, not a correctness check;
// conversion and evaluation still report every malformed expression.
type Bounds int8

const (
	// BoundsNone accepts any first and last characters.
	BoundsNone Bounds = iota
	// BoundsDigits requires an optional minus sign and a digit first and a
	// digit last.
	BoundsDigits
	// BoundsOperands requires something that can begin an operand first and
	// something that can end one last.
	BoundsOperands
)

var boundsnames = [...]string{
	BoundsNone:     "none",
	BoundsDigits:   "digits",
	BoundsOperands: "operands",
}

func (b Bounds) String() string {
	if b < 0 || int(b) >= len(boundsnames) {
		return fmt.Sprintf("Bounds(%d)", int8(b))
	}
	return boundsnames[b]
}

// describe says what the policy requires at the start or end.
func (b Bounds) describe(end bool) string {
	switch {
	case b == BoundsDigits && !end:
		return "a digit or a minus sign and a digit"
	case b == BoundsDigits:
		return "a digit"
	case b == BoundsOperands && !end:
		return "a number, sign, function, or open parenthesis"
	case b == BoundsOperands:
		return "a number, close parenthesis, or factorial"
	default:
		return "anything"
	}
}

// UnmarshalYAML decodes a policy name.
func (b *Bounds) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for i, name := range boundsnames {
		if strings.EqualFold(s, name) {
			*b = Bounds(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown bounds policy %q", value.Line, s)
}

// MarshalYAML encodes the policy name.
func (b Bounds) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// UnmarshalYAML decodes a list of function names, e.g. ["!", log, exp], or
// the scalar "all".
func (f *Funcs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		switch s {
		case "all":
			*f = AllFuncs
		case "none", "":
			*f = 0
		default:
			return fmt.Errorf("line %d: functions must be a list, \"all\", or \"none\", got %q", value.Line, s)
		}
		return nil
	}
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	var r Funcs
	for _, name := range names {
		bit := funcbit(name)
		if bit == 0 {
			return fmt.Errorf("line %d: unknown function %q", value.Line, name)
		}
		r |= bit
	}
	*f = r
	return nil
}

// MarshalYAML encodes the list of function names.
func (f Funcs) MarshalYAML() (interface{}, error) {
	names := f.Names()
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// variantEntry is a variant in a file. Base names a preset whose settings
// are used for fields the entry does not set.
type variantEntry struct {
	Base    string `yaml:"base"`
	Variant `yaml:",inline"`
}

// LoadVariants reads named variants from a YAML document of the form
//
//	variants:
//	  school:
//	    base: basic
//	    max_length: 80
//	  lab:
//	    functions: [log, exp]
//	    bounds: operands
//
// Each entry starts from its base preset, or from the zero Variant if it
// has none, and fields present in the entry override it. The presets are
// included in the result unless the document redefines their names.
func LoadVariants(r io.Reader) (map[string]Variant, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading variants: %w", err)
	}
	var doc struct {
		Variants map[string]yaml.Node `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing variants: %w", err)
	}
	presets := Presets()
	names := make([]string, 0, len(doc.Variants))
	for name := range doc.Variants {
		names = append(names, name)
	}
	sort.Strings(names)
	loaded := make(map[string]Variant, len(names))
	for _, name := range names {
		node := doc.Variants[name]
		var e variantEntry
		// Decode the base first, then decode the whole entry over it so
		// that absent fields keep the base's settings.
		if err := node.Decode(&e); err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		if e.Base != "" {
			base, ok := presets[e.Base]
			if !ok {
				return nil, fmt.Errorf("variant %q: unknown base %q", name, e.Base)
			}
			e.Variant = base
			if err := node.Decode(&e); err != nil {
				return nil, fmt.Errorf("variant %q: %w", name, err)
			}
		}
		if err := e.Variant.Check(); err != nil {
			return nil, fmt.Errorf("variant %q: %w", name, err)
		}
		loaded[name] = e.Variant
	}
	for name, v := range loaded {
		presets[name] = v
	}
	return presets, nil
}
