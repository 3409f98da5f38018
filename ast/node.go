// Package ast defines the typed syntax tree produced by package parser
// and consumed by package evaluator. Nodes are immutable once built and
// own their children exclusively — there is no sharing and no parent
// pointer, each node owning exactly the children it points to.
package ast

import "github.com/fhirpath-go/fhirpath/token"

// Node is the sum type of every FHIRPath syntax tree node. The
// interface is closed over this package's concrete types; callers
// consume it by type-switching in Evaluate, never by adding new
// implementations.
type Node interface {
	// Pos returns the source position the node was parsed from, for
	// error reporting.
	Pos() token.Position

	// String renders a canonical, re-parseable form of the node. Used
	// by the parser round-trip test and by
	// diagnostic output.
	String() string

	node()
}

// base carries the common Pos field embedded in every concrete node.
type base struct {
	pos token.Position
}

func (b base) Pos() token.Position { return b.pos }
func (base) node()                 {}

// Equal reports whether two AST nodes are structurally identical.
// Node equality is defined over canonical string form, which is
// sufficient because String() is a faithful, unambiguous serialization
// of every variant below.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
