package ast

import "github.com/fhirpath-go/fhirpath/token"

// Identifier is a bare path segment name: `Patient`, `name`, or a
// back-tick-quoted reserved word used as an identifier.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{base: base{pos}, Name: name}
}

func (i *Identifier) String() string { return i.Name }

// VariableKind discriminates the five variable reference forms.
type VariableKind int

const (
	ThisVariable VariableKind = iota
	IndexVariable
	TotalVariable
	ContextVariable // %name or %`quoted`
	LambdaParamVariable
)

// Variable is a reference to $this, $index, $total, a lambda
// parameter, or a %-prefixed context/external variable.
type Variable struct {
	base
	Kind VariableKind
	Name string // populated for ContextVariable and LambdaParamVariable
}

func NewVariable(pos token.Position, kind VariableKind, name string) *Variable {
	return &Variable{base: base{pos}, Kind: kind, Name: name}
}

func (v *Variable) String() string {
	switch v.Kind {
	case ThisVariable:
		return "$this"
	case IndexVariable:
		return "$index"
	case TotalVariable:
		return "$total"
	case ContextVariable:
		return "%" + v.Name
	default:
		return v.Name
	}
}
