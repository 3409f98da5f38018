package ast

import "github.com/fhirpath-go/fhirpath/token"

// BinaryOperator enumerates the 20 FHIRPath infix operators.
type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpConcat // &
	OpMul
	OpDiv
	OpIntDiv // div
	OpMod
	OpUnion // |
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpEq
	OpNotEq
	OpEquivalent
	OpNotEquivalent
	OpAnd
	OpOr
	OpXor
	OpImplies
	OpIn
	OpContains
)

var binaryOpText = map[BinaryOperator]string{
	OpAdd: "+", OpSub: "-", OpConcat: "&", OpMul: "*", OpDiv: "/",
	OpIntDiv: "div", OpMod: "mod", OpUnion: "|", OpLt: "<", OpGt: ">",
	OpLtEq: "<=", OpGtEq: ">=", OpEq: "=", OpNotEq: "!=",
	OpEquivalent: "~", OpNotEquivalent: "!~", OpAnd: "and", OpOr: "or",
	OpXor: "xor", OpImplies: "implies", OpIn: "in", OpContains: "contains",
}

func (op BinaryOperator) String() string { return binaryOpText[op] }

// BinaryOp is an infix expression. implies is parsed right-associative;
// every other operator is left-associative.
type BinaryOp struct {
	base
	Op    BinaryOperator
	Left  Node
	Right Node
}

func NewBinaryOp(pos token.Position, op BinaryOperator, left, right Node) *BinaryOp {
	return &BinaryOp{base: base{pos}, Op: op, Left: left, Right: right}
}

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnaryOperator enumerates the two prefix operators.
type UnaryOperator int

const (
	OpPlus UnaryOperator = iota
	OpNeg
)

func (op UnaryOperator) String() string {
	if op == OpNeg {
		return "-"
	}
	return "+"
}

// UnaryOp is a prefix `+` or `-` applied to its operand.
type UnaryOp struct {
	base
	Op      UnaryOperator
	Operand Node
}

func NewUnaryOp(pos token.Position, op UnaryOperator, operand Node) *UnaryOp {
	return &UnaryOp{base: base{pos}, Op: op, Operand: operand}
}

func (u *UnaryOp) String() string { return u.Op.String() + u.Operand.String() }

// TypeCheck is `expression is TypeName` (or `.is(TypeName)`).
type TypeCheck struct {
	base
	Expression Node
	TypeName   string // qualified, e.g. "FHIR.Patient" or "System.Boolean"
}

func NewTypeCheck(pos token.Position, expr Node, typeName string) *TypeCheck {
	return &TypeCheck{base: base{pos}, Expression: expr, TypeName: typeName}
}

func (t *TypeCheck) String() string { return t.Expression.String() + " is " + t.TypeName }

// TypeCast is `expression as TypeName` (or `.as(TypeName)`).
type TypeCast struct {
	base
	Expression Node
	TypeName   string
}

func NewTypeCast(pos token.Position, expr Node, typeName string) *TypeCast {
	return &TypeCast{base: base{pos}, Expression: expr, TypeName: typeName}
}

func (t *TypeCast) String() string { return t.Expression.String() + " as " + t.TypeName }
