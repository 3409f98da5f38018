package function

import (
	"fmt"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
)

func focus(call Call) collection.Collection { return call.Ctx.Focus }

func boolResult(b bool) collection.Collection {
	return collection.Single(value.Boolean(b))
}

func intResult(i int64) collection.Collection {
	return collection.Single(value.Integer(i))
}

func stringResult(s string) collection.Collection {
	return collection.Single(value.NewString(s))
}

// singletonString extracts the sole String item from c, erroring
// otherwise — used for functions whose focus must already be a single
// string (substring, upper, lower, ...).
func singletonString(c collection.Collection) (string, error) {
	if c.Len() > 1 {
		return "", fmt.Errorf("function: expected a single string, got %d items", c.Len())
	}
	v, ok := c.Single1()
	if !ok {
		return "", fmt.Errorf("function: expected a single string, got %d items", c.Len())
	}
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("function: expected a String value, got %T", v)
	}
	return s.S, nil
}

func singletonInt(c collection.Collection) (int64, bool, error) {
	v, ok := c.Single1()
	if !ok {
		return 0, false, nil
	}
	i, ok := v.(value.Integer)
	if !ok {
		return 0, false, fmt.Errorf("function: expected an Integer value, got %T", v)
	}
	return int64(i), true, nil
}
