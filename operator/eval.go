package operator

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

var arithmeticSymbol = map[ast.BinaryOperator]string{
	ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/",
	ast.OpIntDiv: "div", ast.OpMod: "mod",
}

var compareSymbol = map[ast.BinaryOperator]bool{
	ast.OpLt: true, ast.OpGt: true, ast.OpLtEq: true, ast.OpGtEq: true,
}

// Evaluate applies op to two already-evaluated operand collections and
// returns the result collection. It implements every BinaryOperator
// except none — `is`/`as` are not BinaryOperators (they carry a type
// name rather than a second expression) and are evaluated directly by
// the evaluator against a ModelProvider instead.
func Evaluate(op ast.BinaryOperator, left, right collection.Collection) (collection.Collection, error) {
	meta, ok := Lookup(op)
	if !ok {
		return collection.Collection{}, fmt.Errorf("operator: unknown operator %v", op)
	}

	switch op {
	case ast.OpAnd, ast.OpOr, ast.OpXor, ast.OpImplies:
		return evalLogic(op, left, right)
	case ast.OpUnion:
		return Union(left, right), nil
	case ast.OpIn:
		return evalIn(left, right)
	case ast.OpContains:
		return evalIn(right, left)
	case ast.OpEq:
		if left.IsEmpty() || right.IsEmpty() {
			return collection.Empty(), nil
		}
		eq, ok := CollectionEqual(left, right)
		if !ok {
			return collection.Empty(), nil
		}
		return ternaryCollection(eq), nil
	case ast.OpNotEq:
		if left.IsEmpty() || right.IsEmpty() {
			return collection.Empty(), nil
		}
		eq, ok := CollectionEqual(left, right)
		if !ok {
			return collection.Empty(), nil
		}
		return ternaryCollection(!eq), nil
	case ast.OpEquivalent:
		return ternaryCollection(collection.Equivalent(left, right)), nil
	case ast.OpNotEquivalent:
		return ternaryCollection(!collection.Equivalent(left, right)), nil
	}

	if op == ast.OpConcat {
		out, err := Concat(singletonOrEmpty(left), singletonOrEmpty(right))
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(out), nil
	}

	if meta.Empty == Propagate && (left.IsEmpty() || right.IsEmpty()) {
		return collection.Empty(), nil
	}

	lv, lok := left.Single1()
	rv, rok := right.Single1()
	if !lok || !rok {
		return collection.Collection{}, fmt.Errorf("operator: %v requires singleton operands", op)
	}

	if sym, ok := arithmeticSymbol[op]; ok {
		out, err := numericBinary(sym, lv, rv)
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(out), nil
	}

	if compareSymbol[op] {
		cmp, ok, err := Compare(lv, rv)
		if err != nil {
			return collection.Collection{}, err
		}
		if !ok {
			return collection.Empty(), nil
		}
		return ternaryCollection(compareResultMatches(op, cmp)), nil
	}

	return collection.Collection{}, fmt.Errorf("operator: unhandled operator %v", op)
}

func compareResultMatches(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.OpLt:
		return cmp < 0
	case ast.OpGt:
		return cmp > 0
	case ast.OpLtEq:
		return cmp <= 0
	case ast.OpGtEq:
		return cmp >= 0
	default:
		return false
	}
}

// singletonOrEmpty returns a collection's sole item, or value.Empty{}
// for a zero-length collection — used by `&`, which treats a missing
// operand as the empty string rather than propagating emptiness.
func singletonOrEmpty(c collection.Collection) value.Value {
	if v, ok := c.Single1(); ok {
		return v
	}
	return value.Empty{}
}

func ternaryCollection(b bool) collection.Collection {
	return collection.Single(value.Boolean(b))
}

func evalIn(needleColl, haystack collection.Collection) (collection.Collection, error) {
	v, ok := needleColl.Single1()
	if !ok {
		if needleColl.IsEmpty() {
			return collection.Empty(), nil
		}
		return collection.Collection{}, fmt.Errorf("operator: in/contains requires a singleton left operand")
	}
	return ternaryCollection(In(v, haystack)), nil
}

func evalLogic(op ast.BinaryOperator, left, right collection.Collection) (collection.Collection, error) {
	lt, err := CoerceBoolean(left)
	if err != nil {
		return collection.Collection{}, err
	}
	rt, err := CoerceBoolean(right)
	if err != nil {
		return collection.Collection{}, err
	}
	switch op {
	case ast.OpAnd:
		return And(lt, rt).ToCollection(), nil
	case ast.OpOr:
		return Or(lt, rt).ToCollection(), nil
	case ast.OpXor:
		if lt == Unknown || rt == Unknown {
			return collection.Empty(), nil
		}
		return Xor(lt, rt).ToCollection(), nil
	case ast.OpImplies:
		return Implies(lt, rt).ToCollection(), nil
	default:
		return collection.Collection{}, fmt.Errorf("operator: %v is not a logic operator", op)
	}
}
