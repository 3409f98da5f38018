package value

// Equal implements FHIRPath's `=` comparison between two singleton
// values of possibly differing concrete Go types (e.g. Integer vs
// Decimal must compare numerically equal). It does not implement the
// three-valued empty-propagation wrapper around this — that lives in
// package operator, which calls Equal only once both operands are
// known non-empty singletons.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Empty:
		_, ok := b.(Empty)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return av == bv
		case Decimal:
			return bv.D.Equal(decimalFromInt(int64(av)))
		default:
			return false
		}
	case Decimal:
		switch bv := b.(type) {
		case Decimal:
			return av.D.Equal(bv.D)
		case Integer:
			return av.D.Equal(decimalFromInt(int64(bv)))
		default:
			return false
		}
	case String:
		bv, ok := b.(String)
		return ok && av.S == bv.S
	case Date:
		bv, ok := b.(Date)
		return ok && av == bv
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && av == bv
	case Quantity:
		bv, ok := b.(Quantity)
		return ok && av.Value.Equal(bv.Value) && normalizeUnit(av) == normalizeUnit(bv)
	case Resource:
		bv, ok := b.(Resource)
		return ok && deepEqualJSON(av.Data, bv.Data)
	default:
		return false
	}
}

func normalizeUnit(q Quantity) string {
	if q.Code != "" {
		return q.Code
	}
	return q.Unit
}

func deepEqualJSON(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !deepEqualJSON(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqualJSON(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
