package tankeroidz

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidModifier is matched by every ParseError.
var ErrInvalidModifier = errors.New("invalid modifier")

// ParseError reports a modifier spec that could not be parsed.
type ParseError struct {
	Spec string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tankeroidz: parse modifier %q: %v", e.Spec, e.Err)
}

// Unwrap exposes both ErrInvalidModifier and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidModifier, e.Err}
}

// Operator is the arithmetic a Modifier performs.
type Operator int

const (
	OpReplace Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// String returns the operator glyph used in modifier specs.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "="
	}
}

// Modifier is a reversible transform of one attribute. It never writes the
// attribute; Apply computes the effective value from the raw one.
type Modifier struct {
	Op    Operator
	Value float64
}

// NewModifier builds a modifier from an explicit operator and operand.
func NewModifier(op Operator, value float64) Modifier {
	return Modifier{Op: op, Value: value}
}

// ParseModifier parses the compact form "<op><number>" where op is one of
// + - * / =, or a bare "<number>" meaning replace.
func ParseModifier(spec string) (Modifier, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return Modifier{}, &ParseError{Spec: spec, Err: errors.New("empty spec")}
	}

	op := OpReplace
	switch s[0] {
	case '+':
		op = OpAdd
	case '-':
		op = OpSub
	case '*':
		op = OpMul
	case '/':
		op = OpDiv
	case '=':
		op = OpReplace
	default:
		// Bare number
		s = "=" + s
	}
	s = strings.TrimSpace(s[1:])

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Modifier{}, &ParseError{Spec: spec, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Modifier{}, &ParseError{Spec: spec, Err: errors.New("operand is not finite")}
	}
	if op == OpDiv && v == 0 {
		return Modifier{}, &ParseError{Spec: spec, Err: errors.New("division by zero")}
	}
	return Modifier{Op: op, Value: v}, nil
}

// Apply returns base transformed by the modifier.
func (m Modifier) Apply(base float64) float64 {
	switch m.Op {
	case OpAdd:
		return base + m.Value
	case OpSub:
		return base - m.Value
	case OpMul:
		return base * m.Value
	case OpDiv:
		return base / m.Value
	default:
		return m.Value
	}
}

// String returns the spec form of the modifier.
func (m Modifier) String() string {
	v := strconv.FormatFloat(m.Value, 'g', -1, 64)
	if m.Op == OpReplace {
		return v
	}
	return m.Op.String() + v
}
