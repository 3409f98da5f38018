package operator

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

// Ternary is FHIRPath's three-valued logic state: True, False, or
// Unknown (the empty collection).
type Ternary int

const (
	Unknown Ternary = iota
	True
	False
)

// CoerceBoolean implements singleton-to-Boolean coercion: a
// one-element collection whose item is not itself a Boolean coerces to
// True (any non-empty singleton is truthy), matching the "runtime
// error only for multi-element coercion" rule. An empty collection
// coerces to Unknown.
func CoerceBoolean(c collection.Collection) (Ternary, error) {
	if c.IsEmpty() {
		return Unknown, nil
	}
	v, ok := c.Single1()
	if !ok {
		return Unknown, fmt.Errorf("operator: cannot coerce a multi-element collection to Boolean")
	}
	if b, ok := v.(value.Boolean); ok {
		if bool(b) {
			return True, nil
		}
		return False, nil
	}
	return True, nil
}

func (t Ternary) ToCollection() collection.Collection {
	switch t {
	case True:
		return collection.Single(value.Boolean(true))
	case False:
		return collection.Single(value.Boolean(false))
	default:
		return collection.Empty()
	}
}

// And implements the three-valued `and` truth table.
func And(a, b Ternary) Ternary {
	if a == False || b == False {
		return False
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return True
}

// Or implements the three-valued `or` truth table.
func Or(a, b Ternary) Ternary {
	if a == True || b == True {
		return True
	}
	if a == Unknown || b == Unknown {
		return Unknown
	}
	return False
}

// Not implements three-valued negation; Unknown stays Unknown.
func Not(a Ternary) Ternary {
	switch a {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// Xor has no empty-propagation special case beyond ordinary
// empty-operand propagation, handled by the caller before Xor is
// invoked; both operands here are assumed non-Unknown.
func Xor(a, b Ternary) Ternary {
	if a == b {
		return False
	}
	return True
}

// Implies is `(not A) or B`, right-associative at the AST level.
func Implies(a, b Ternary) Ternary {
	return Or(Not(a), b)
}
