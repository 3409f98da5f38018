package evalctx

import (
	"testing"

	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_LookupWalksParent(t *testing.T) {
	root := NewRootScope()
	child := root.Child("this", value.Integer(7))
	grandchild := child.Child("index", value.Integer(0))

	v, ok := grandchild.Lookup("this")
	require.True(t, ok)
	assert.Equal(t, value.Integer(7), v)

	_, ok = root.Lookup("this")
	assert.False(t, ok)
}

func TestScope_ChildShadows(t *testing.T) {
	root := NewRootScope().Child("x", value.Integer(1))
	shadowed := root.Child("x", value.Integer(2))

	v, _ := shadowed.Lookup("x")
	assert.Equal(t, value.Integer(2), v)
	v, _ = root.Lookup("x")
	assert.Equal(t, value.Integer(1), v)
}

func TestResolutionCache_GetOrComputeOnce(t *testing.T) {
	cache := NewResolutionCache()
	calls := 0
	compute := func() (any, error) {
		calls++
		return "resource", nil
	}

	v1, err := cache.GetOrCompute("Patient/1", compute)
	require.NoError(t, err)
	v2, err := cache.GetOrCompute("Patient/1", compute)
	require.NoError(t, err)

	assert.Equal(t, "resource", v1)
	assert.Equal(t, "resource", v2)
	assert.Equal(t, 1, calls)
}

func TestContext_ChildIsolatesScope(t *testing.T) {
	root := NewRoot(collection.Empty(), nil, Providers{})
	child := root.Child(collection.Single(value.Integer(3)), map[string]value.Value{
		"this": value.Integer(3),
	})

	v, ok := child.Scope.Lookup("this")
	require.True(t, ok)
	assert.Equal(t, value.Integer(3), v)

	_, ok = root.Scope.Lookup("this")
	assert.False(t, ok)
	assert.Same(t, root.Cache, child.Cache)
}
