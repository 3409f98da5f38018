package ast

import (
	"strings"

	"github.com/fhirpath-go/fhirpath/token"
)

// Path is dotted navigation: Base.Segment. Chained navigation
// (`a.b.c`) is represented as nested Path nodes, left-associative:
// Path{Path{a,b}, c}.
type Path struct {
	base
	Base    Node
	Segment Node // Identifier, FunctionCall, or Index
}

func NewPath(pos token.Position, base_ Node, segment Node) *Path {
	return &Path{base: base{pos}, Base: base_, Segment: segment}
}

func (p *Path) String() string { return p.Base.String() + "." + p.Segment.String() }

// FunctionCall is an invocation not preceded by a `.`: a top-level
// function such as `exists()`. A `.where(x)` call on a preceding
// result is parsed as a MethodCall instead.
type FunctionCall struct {
	base
	Name string
	Args []Node
}

func NewFunctionCall(pos token.Position, name string, args []Node) *FunctionCall {
	return &FunctionCall{base: base{pos}, Name: name, Args: args}
}

func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Index is subscript navigation: Collection[IndexExpr].
type Index struct {
	base
	Collection Node
	IndexExpr  Node
}

func NewIndex(pos token.Position, collection, indexExpr Node) *Index {
	return &Index{base: base{pos}, Collection: collection, IndexExpr: indexExpr}
}

func (ix *Index) String() string { return ix.Collection.String() + "[" + ix.IndexExpr.String() + "]" }
