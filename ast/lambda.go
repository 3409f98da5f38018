package ast

import (
	"strings"

	"github.com/fhirpath-go/fhirpath/token"
)

// Lambda is an anonymous function expression. Params is empty for the
// anonymous forms `() => body` and `=> body`; FHIRPath function
// arguments that declare `is_expression` (where, select, ...) receive
// the body Node directly rather than a Lambda wrapper — Lambda nodes
// only appear where `=>` syntax is used directly as a plain argument
// expression.
type Lambda struct {
	base
	Params []string
	Body   Node
}

func NewLambda(pos token.Position, params []string, body Node) *Lambda {
	return &Lambda{base: base{pos}, Params: params, Body: body}
}

func (l *Lambda) String() string {
	switch len(l.Params) {
	case 0:
		return "=> " + l.Body.String()
	case 1:
		return l.Params[0] + " => " + l.Body.String()
	default:
		return "(" + strings.Join(l.Params, ", ") + ") => " + l.Body.String()
	}
}
