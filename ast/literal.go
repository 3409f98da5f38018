package ast

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/token"
)

// LiteralKind discriminates the primitive payload carried by a
// Literal node.
type LiteralKind int

const (
	NullLiteral LiteralKind = iota
	BoolLiteral
	IntegerLiteral
	DecimalLiteral
	StringLiteral
	DateLiteral
	DateTimeLiteral
	TimeLiteral
	QuantityLiteral
)

// Literal is a constant value embedded directly in the expression
// text: numbers, strings, booleans, temporal and quantity literals,
// and the empty-collection literal `{}`.
type Literal struct {
	base
	Kind LiteralKind
	// Text is the literal's raw textual payload exactly as scanned
	// (e.g. "2.300" keeps its trailing zero for Decimal, "kg" is the
	// quantity unit). Materializing a value.Value from it is the
	// evaluator's job, not the AST's.
	Text string
	// Unit holds the quantity unit text when Kind == QuantityLiteral.
	Unit string
}

func NewLiteral(pos token.Position, kind LiteralKind, text string) *Literal {
	return &Literal{base: base{pos}, Kind: kind, Text: text}
}

func NewQuantityLiteral(pos token.Position, text, unit string) *Literal {
	return &Literal{base: base{pos}, Kind: QuantityLiteral, Text: text, Unit: unit}
}

func (l *Literal) String() string {
	switch l.Kind {
	case NullLiteral:
		return "{}"
	case StringLiteral:
		return "'" + l.Text + "'"
	case DateLiteral, DateTimeLiteral, TimeLiteral:
		return "@" + l.Text
	case QuantityLiteral:
		return fmt.Sprintf("%s '%s'", l.Text, l.Unit)
	default:
		return l.Text
	}
}

// EmptyCollection is the AST representation of the `{}` literal.
func EmptyCollection(pos token.Position) *Literal {
	return &Literal{base: base{pos}, Kind: NullLiteral}
}
