// Package operator implements the twenty FHIRPath binary operators and
// two unary operators: arithmetic, comparison, equality/equivalence,
// logic, union, and membership. Each operator carries metadata
// (precedence, associativity, empty-propagation policy) the same way
// the function registry carries FunctionMetadata, so the evaluator
// dispatches both through one uniform lookup-then-call shape.
package operator

import "github.com/fhirpath-go/fhirpath/ast"

// Associativity records how repeated applications of an operator at
// the same precedence level nest.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// EmptyPropagation controls what happens when one or both operands
// are the empty collection.
type EmptyPropagation int

const (
	// Propagate means any empty operand makes the whole result empty.
	Propagate EmptyPropagation = iota
	// NoPropagation means the operator has its own rule for empty
	// operands (e.g. `&` treats empty as the empty string; `|` treats
	// empty as an empty operand to concatenate).
	NoPropagation
	// ShortCircuit means a specific non-empty value on one side can
	// determine the result without consulting the other side (and/or).
	ShortCircuit
)

// Metadata describes one binary operator's dispatch policy.
type Metadata struct {
	Op         ast.BinaryOperator
	Precedence int
	Assoc      Associativity
	Empty      EmptyPropagation
}

var registry = map[ast.BinaryOperator]Metadata{
	ast.OpAdd:      {ast.OpAdd, 9, LeftAssoc, Propagate},
	ast.OpSub:      {ast.OpSub, 9, LeftAssoc, Propagate},
	ast.OpConcat:   {ast.OpConcat, 9, LeftAssoc, NoPropagation},
	ast.OpMul:      {ast.OpMul, 10, LeftAssoc, Propagate},
	ast.OpDiv:      {ast.OpDiv, 10, LeftAssoc, Propagate},
	ast.OpIntDiv:   {ast.OpIntDiv, 10, LeftAssoc, Propagate},
	ast.OpMod:      {ast.OpMod, 10, LeftAssoc, Propagate},
	ast.OpUnion:    {ast.OpUnion, 8, LeftAssoc, NoPropagation},
	ast.OpLt:       {ast.OpLt, 7, LeftAssoc, Propagate},
	ast.OpGt:       {ast.OpGt, 7, LeftAssoc, Propagate},
	ast.OpLtEq:     {ast.OpLtEq, 7, LeftAssoc, Propagate},
	ast.OpGtEq:     {ast.OpGtEq, 7, LeftAssoc, Propagate},
	ast.OpEq:            {ast.OpEq, 6, LeftAssoc, NoPropagation},
	ast.OpNotEq:         {ast.OpNotEq, 6, LeftAssoc, NoPropagation},
	ast.OpEquivalent:    {ast.OpEquivalent, 6, LeftAssoc, NoPropagation},
	ast.OpNotEquivalent: {ast.OpNotEquivalent, 6, LeftAssoc, NoPropagation},
	ast.OpAnd:           {ast.OpAnd, 3, LeftAssoc, ShortCircuit},
	ast.OpOr:            {ast.OpOr, 2, LeftAssoc, ShortCircuit},
	ast.OpXor:           {ast.OpXor, 2, LeftAssoc, Propagate},
	ast.OpImplies:       {ast.OpImplies, 1, RightAssoc, ShortCircuit},
	ast.OpIn:            {ast.OpIn, 4, LeftAssoc, NoPropagation},
	ast.OpContains:      {ast.OpContains, 4, LeftAssoc, NoPropagation},
}

// Lookup returns the registered metadata for op.
func Lookup(op ast.BinaryOperator) (Metadata, bool) {
	m, ok := registry[op]
	return m, ok
}
