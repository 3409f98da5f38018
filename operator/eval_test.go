package operator

import (
	"testing"

	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/value"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func single(v value.Value) collection.Collection { return collection.Single(v) }

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestEvaluate_Arithmetic(t *testing.T) {
	got, err := Evaluate(ast.OpAdd, single(value.Integer(2)), single(value.Integer(3)))
	require.NoError(t, err)
	v, _ := got.Single1()
	assert.Equal(t, value.Integer(5), v)
}

func TestEvaluate_DivisionByZeroIsEmpty(t *testing.T) {
	got, err := Evaluate(ast.OpDiv, single(value.Integer(1)), single(value.Integer(0)))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_IntegerModZero(t *testing.T) {
	got, err := Evaluate(ast.OpMod, single(value.Integer(5)), single(value.Integer(0)))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_EmptyPropagatesForArithmetic(t *testing.T) {
	got, err := Evaluate(ast.OpAdd, collection.Empty(), single(value.Integer(1)))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_ConcatTreatsEmptyAsEmptyString(t *testing.T) {
	got, err := Evaluate(ast.OpConcat, collection.Empty(), single(value.NewString("b")))
	require.NoError(t, err)
	v, ok := got.Single1()
	require.True(t, ok)
	assert.Equal(t, "b", v.(value.String).S)
}

func TestEvaluate_AndShortCircuitsOnFalse(t *testing.T) {
	got, err := Evaluate(ast.OpAnd, single(value.Boolean(false)), collection.Empty())
	require.NoError(t, err)
	v, ok := got.Single1()
	require.True(t, ok)
	assert.Equal(t, value.Boolean(false), v)
}

func TestEvaluate_AndEmptyWithTrueIsEmpty(t *testing.T) {
	got, err := Evaluate(ast.OpAnd, single(value.Boolean(true)), collection.Empty())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_OrEmptyWithFalseIsEmpty(t *testing.T) {
	got, err := Evaluate(ast.OpOr, single(value.Boolean(false)), collection.Empty())
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_Union(t *testing.T) {
	got, err := Evaluate(ast.OpUnion, single(value.Integer(1)), single(value.Integer(1)))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len()) // no dedup
}

func TestEvaluate_Equality(t *testing.T) {
	got, err := Evaluate(ast.OpEq, single(value.Integer(1)), single(value.NewDecimal(mustDecimal(t, "1"))))
	require.NoError(t, err)
	v, _ := got.Single1()
	assert.Equal(t, value.Boolean(true), v)
}

func TestEvaluate_EqualityEmptyYieldsEmpty(t *testing.T) {
	got, err := Evaluate(ast.OpEq, collection.Empty(), single(value.Integer(1)))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_EqualityAcrossTemporalPrecisionIsEmpty(t *testing.T) {
	year := value.Date{Year: 2024, Prec: value.PrecisionYear}
	day := value.Date{Year: 2024, Month: 6, Day: 15, Prec: value.PrecisionDay}

	got, err := Evaluate(ast.OpEq, single(year), single(day))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	got, err = Evaluate(ast.OpNotEq, single(year), single(day))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_EqualityAcrossConvertibleQuantityUnits(t *testing.T) {
	kg := value.NewQuantity(mustDecimal(t, "1"), "kg")
	g := value.NewQuantity(mustDecimal(t, "1000"), "g")

	got, err := Evaluate(ast.OpEq, single(kg), single(g))
	require.NoError(t, err)
	v, ok := got.Single1()
	require.True(t, ok)
	assert.Equal(t, value.Boolean(true), v)

	got, err = Evaluate(ast.OpNotEq, single(kg), single(g))
	require.NoError(t, err)
	v, ok = got.Single1()
	require.True(t, ok)
	assert.Equal(t, value.Boolean(false), v)
}

func TestEvaluate_EqualityAcrossIncompatibleQuantityUnitsIsEmpty(t *testing.T) {
	kg := value.NewQuantity(mustDecimal(t, "1"), "kg")
	m := value.NewQuantity(mustDecimal(t, "1"), "m")

	got, err := Evaluate(ast.OpEq, single(kg), single(m))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestEvaluate_Inequality(t *testing.T) {
	got, err := Evaluate(ast.OpLt, single(value.Integer(1)), single(value.Integer(2)))
	require.NoError(t, err)
	v, _ := got.Single1()
	assert.Equal(t, value.Boolean(true), v)
}

func TestEvaluate_InMembership(t *testing.T) {
	haystack := collection.FromValues(value.Integer(1), value.Integer(2), value.Integer(3))
	got, err := Evaluate(ast.OpIn, single(value.Integer(2)), haystack)
	require.NoError(t, err)
	v, _ := got.Single1()
	assert.Equal(t, value.Boolean(true), v)
}
