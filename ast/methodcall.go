package ast

import (
	"strings"

	"github.com/fhirpath-go/fhirpath/token"
)

// MethodCall is `.name(args)` applied to a receiver expression. The
// parser emits this (rather than nesting Path around a FunctionCall)
// whenever the postfix dot is immediately followed by an invocation,
// keeping function-argument lambdas (`where`, `select`, ...) directly
// reachable from the evaluator without unwrapping a Path first.
type MethodCall struct {
	base
	Receiver Node
	Name     string
	Args     []Node
}

func NewMethodCall(pos token.Position, receiver Node, name string, args []Node) *MethodCall {
	return &MethodCall{base: base{pos}, Receiver: receiver, Name: name, Args: args}
}

func (m *MethodCall) String() string {
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = a.String()
	}
	return m.Receiver.String() + "." + m.Name + "(" + strings.Join(parts, ", ") + ")"
}
