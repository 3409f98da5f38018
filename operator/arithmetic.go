package operator

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/quantity"
	"github.com/fhirpath-go/fhirpath/value"
	"github.com/shopspring/decimal"
)

// numericBinary dispatches an arithmetic operator over two singleton
// operands, handling Integer/Integer, Integer/Decimal, Decimal/Decimal,
// and Quantity combinations per the promotion rules.
func numericBinary(op string, a, b value.Value) (value.Value, error) {
	aq, aIsQ := a.(value.Quantity)
	bq, bIsQ := b.(value.Quantity)
	if aIsQ || bIsQ {
		return quantityBinary(op, a, b, aq, bq, aIsQ, bIsQ)
	}

	ai, aIsInt := a.(value.Integer)
	bi, bIsInt := b.(value.Integer)
	if aIsInt && bIsInt && op != "/" {
		return integerBinary(op, int64(ai), int64(bi))
	}

	ad, err := toDecimal(a)
	if err != nil {
		return nil, err
	}
	bd, err := toDecimal(b)
	if err != nil {
		return nil, err
	}
	return decimalBinary(op, ad, bd)
}

func toDecimal(v value.Value) (decimal.Decimal, error) {
	switch t := v.(type) {
	case value.Integer:
		return decimal.NewFromInt(int64(t)), nil
	case value.Decimal:
		return t.D, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("operator: %T is not numeric", v)
	}
}

func integerBinary(op string, a, b int64) (value.Value, error) {
	switch op {
	case "+":
		return value.Integer(a + b), nil
	case "-":
		return value.Integer(a - b), nil
	case "*":
		return value.Integer(a * b), nil
	case "div":
		if b == 0 {
			return value.Empty{}, nil
		}
		return value.Integer(a / b), nil
	case "mod":
		if b == 0 {
			return value.Empty{}, nil
		}
		return value.Integer(a % b), nil
	default:
		return nil, fmt.Errorf("operator: unsupported integer operator %q", op)
	}
}

func decimalBinary(op string, a, b decimal.Decimal) (value.Value, error) {
	switch op {
	case "+":
		return value.NewDecimal(a.Add(b)), nil
	case "-":
		return value.NewDecimal(a.Sub(b)), nil
	case "*":
		return value.NewDecimal(a.Mul(b)), nil
	case "/":
		if b.IsZero() {
			return value.Empty{}, nil
		}
		return value.NewDecimal(a.Div(b)), nil
	case "div":
		if b.IsZero() {
			return value.Empty{}, nil
		}
		return value.Integer(a.Div(b).Truncate(0).IntPart()), nil
	case "mod":
		if b.IsZero() {
			return value.Empty{}, nil
		}
		return value.NewDecimal(a.Mod(b)), nil
	default:
		return nil, fmt.Errorf("operator: unsupported decimal operator %q", op)
	}
}

func quantityBinary(op string, a, b value.Value, aq, bq value.Quantity, aIsQ, bIsQ bool) (value.Value, error) {
	switch {
	case aIsQ && bIsQ:
		switch op {
		case "+":
			r, err := quantity.Add(aq, bq)
			if err != nil {
				return value.Empty{}, nil
			}
			return r, nil
		case "-":
			r, err := quantity.Subtract(aq, bq)
			if err != nil {
				return value.Empty{}, nil
			}
			return r, nil
		case "/":
			if !quantity.Comparable(aq, bq) {
				return nil, fmt.Errorf("operator: incompatible units %q and %q", aq.Code, bq.Code)
			}
			if bq.Value.IsZero() {
				return value.Empty{}, nil
			}
			return value.NewDecimal(aq.Value.Div(bq.Value)), nil
		default:
			return nil, fmt.Errorf("operator: unsupported quantity operator %q", op)
		}
	case aIsQ && !bIsQ:
		scalar, err := toDecimal(b)
		if err != nil {
			return nil, err
		}
		return scalarQuantity(op, aq, scalar)
	default: // !aIsQ && bIsQ
		scalar, err := toDecimal(a)
		if err != nil {
			return nil, err
		}
		return scalarQuantity(op, bq, scalar)
	}
}

func scalarQuantity(op string, q value.Quantity, scalar decimal.Decimal) (value.Value, error) {
	switch op {
	case "*":
		q.Value = q.Value.Mul(scalar)
		return q, nil
	case "/":
		if scalar.IsZero() {
			return value.Empty{}, nil
		}
		q.Value = q.Value.Div(scalar)
		return q, nil
	default:
		return nil, fmt.Errorf("operator: unsupported quantity/scalar operator %q", op)
	}
}

// Concat implements `&`: string concatenation treating an empty
// operand as the empty string rather than propagating emptiness.
func Concat(a, b value.Value) (value.Value, error) {
	as := stringOf(a)
	bs := stringOf(b)
	return value.NewString(as + bs), nil
}

func stringOf(v value.Value) string {
	if v == nil {
		return ""
	}
	if _, ok := v.(value.Empty); ok {
		return ""
	}
	return v.String()
}
