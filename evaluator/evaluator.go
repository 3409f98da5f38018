// Package evaluator walks an ast.Node tree against an evalctx.Context,
// producing the resulting collection.Collection. It is the one place
// that ties the ast, value, collection, operator, function, quantity,
// and temporal packages together into a single recursive Evaluate
// call, matching the shape package function's EvalFunc expects so the
// function registry can call back into it for lambda bodies.
package evaluator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fhirpath-go/fhirpath/ast"
	"github.com/fhirpath-go/fhirpath/collection"
	"github.com/fhirpath-go/fhirpath/evalctx"
	"github.com/fhirpath-go/fhirpath/fherrors"
	"github.com/fhirpath-go/fhirpath/fhirtype"
	"github.com/fhirpath-go/fhirpath/function"
	"github.com/fhirpath-go/fhirpath/operator"
	"github.com/fhirpath-go/fhirpath/temporal"
	"github.com/fhirpath-go/fhirpath/value"
)

func decimalFromText(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("evaluator: invalid decimal literal %q: %w", text, err)
	}
	return d, nil
}

// Evaluate dispatches node against ctx's current focus and scope. It
// has the same signature as function.EvalFunc and is passed as the
// Evaluate callback on every function.Call this package builds.
func Evaluate(std context.Context, ctx *evalctx.Context, node ast.Node) (collection.Collection, error) {
	select {
	case <-std.Done():
		return collection.Collection{}, fherrors.New(fherrors.Timeout, "evaluation canceled: %v", std.Err())
	default:
	}

	switch n := node.(type) {
	case *ast.Literal:
		return evalLiteral(n)
	case *ast.Identifier:
		return navigate(ctx.Focus, n.Name), nil
	case *ast.Variable:
		return evalVariable(ctx, n)
	case *ast.UnaryOp:
		return evalUnary(std, ctx, n)
	case *ast.BinaryOp:
		return evalBinary(std, ctx, n)
	case *ast.Path:
		return evalPath(std, ctx, n)
	case *ast.Index:
		return evalIndex(std, ctx, n)
	case *ast.FunctionCall:
		return evalFunctionCall(std, ctx, n.Name, n.Args, ctx.Focus)
	case *ast.MethodCall:
		receiver, err := Evaluate(std, ctx, n.Receiver)
		if err != nil {
			return collection.Collection{}, err
		}
		return evalFunctionCall(std, ctx.WithFocus(receiver), n.Name, n.Args, receiver)
	case *ast.TypeCheck:
		return evalTypeCheck(std, ctx, n)
	case *ast.TypeCast:
		return evalTypeCast(std, ctx, n)
	case *ast.Lambda:
		return evalLambda(std, ctx, n)
	default:
		return collection.Collection{}, fmt.Errorf("evaluator: unsupported node type %T", node)
	}
}

func evalLambda(std context.Context, ctx *evalctx.Context, n *ast.Lambda) (collection.Collection, error) {
	if len(n.Params) == 0 {
		return Evaluate(std, ctx, n.Body)
	}
	v, ok := ctx.Focus.Single1()
	if !ok {
		return collection.Empty(), nil
	}
	child := ctx.WithScope(ctx.Scope.Child(n.Params[0], v))
	return Evaluate(std, child, n.Body)
}

// navigate implements ordinary dotted property access: every Resource
// item in focus contributes its JSON property's expansion; a bare
// identifier matching the root resource's own type name is treated as
// a no-op pass-through rather than a property lookup (`Patient.name`
// on a Patient resource navigates straight to `name`).
func navigate(focus collection.Collection, name string) collection.Collection {
	var out []value.Value
	for _, item := range focus.Slice() {
		res, ok := item.(value.Resource)
		if !ok {
			continue
		}
		m, ok := res.Data.(map[string]any)
		if !ok {
			continue
		}
		if rt, _ := m["resourceType"].(string); rt == name {
			out = append(out, item)
			continue
		}
		prop, ok := m[name]
		if !ok {
			continue
		}
		out = append(out, value.FromJSONProperty(prop)...)
	}
	return collection.FromSlice(out)
}

func evalVariable(ctx *evalctx.Context, n *ast.Variable) (collection.Collection, error) {
	switch n.Kind {
	case ast.ThisVariable:
		if v, ok := ctx.Scope.Lookup("this"); ok {
			return collection.Single(v), nil
		}
		return ctx.Focus, nil
	case ast.IndexVariable:
		if v, ok := ctx.Scope.Lookup("index"); ok {
			return collection.Single(v), nil
		}
		return collection.Empty(), nil
	case ast.TotalVariable:
		if v, ok := ctx.Scope.Lookup("total"); ok {
			return collection.Single(v), nil
		}
		return collection.Empty(), nil
	case ast.ContextVariable:
		switch n.Name {
		case "context", "resource", "rootResource":
			if ctx.Root == nil {
				return collection.Empty(), nil
			}
			return collection.Single(value.NewResource(ctx.Root, fhirtype.TypeInfo{Namespace: fhirtype.FHIR, Singleton: true})), nil
		default:
			if v, ok := ctx.Scope.Lookup(n.Name); ok {
				return collection.Single(v), nil
			}
			return collection.Empty(), nil
		}
	default: // LambdaParamVariable
		if v, ok := ctx.Scope.Lookup(n.Name); ok {
			return collection.Single(v), nil
		}
		return collection.Empty(), nil
	}
}

func evalUnary(std context.Context, ctx *evalctx.Context, n *ast.UnaryOp) (collection.Collection, error) {
	operand, err := Evaluate(std, ctx, n.Operand)
	if err != nil {
		return collection.Collection{}, err
	}
	v, ok := operand.Single1()
	if !ok {
		return collection.Empty(), nil
	}
	switch n.Op {
	case ast.OpPlus:
		return collection.Single(v), nil
	case ast.OpNeg:
		switch num := v.(type) {
		case value.Integer:
			return collection.Single(value.Integer(-num)), nil
		case value.Decimal:
			return collection.Single(value.NewDecimal(num.D.Neg())), nil
		case value.Quantity:
			neg := num
			neg.Value = num.Value.Neg()
			return collection.Single(neg), nil
		default:
			return collection.Collection{}, fmt.Errorf("evaluator: unary - on non-numeric %T", v)
		}
	default:
		return collection.Collection{}, fmt.Errorf("evaluator: unknown unary operator %v", n.Op)
	}
}

func evalBinary(std context.Context, ctx *evalctx.Context, n *ast.BinaryOp) (collection.Collection, error) {
	left, err := Evaluate(std, ctx, n.Left)
	if err != nil {
		return collection.Collection{}, err
	}
	// `in`/`contains` evaluate their right operand against the same
	// focus but the operator itself decides singleton/collection
	// membership, so right is evaluated unconditionally like any other
	// binary operand — no short-circuiting is defined for these.
	right, err := Evaluate(std, ctx, n.Right)
	if err != nil {
		return collection.Collection{}, err
	}
	return operator.Evaluate(n.Op, left, right)
}

func evalPath(std context.Context, ctx *evalctx.Context, n *ast.Path) (collection.Collection, error) {
	base, err := Evaluate(std, ctx, n.Base)
	if err != nil {
		return collection.Collection{}, err
	}
	childCtx := ctx.WithFocus(base)
	switch seg := n.Segment.(type) {
	case *ast.Identifier:
		return navigate(base, seg.Name), nil
	case *ast.FunctionCall:
		return evalFunctionCall(std, childCtx, seg.Name, seg.Args, base)
	case *ast.Index:
		return evalIndex(std, childCtx, seg)
	default:
		return Evaluate(std, childCtx, n.Segment)
	}
}

func evalIndex(std context.Context, ctx *evalctx.Context, n *ast.Index) (collection.Collection, error) {
	coll, err := Evaluate(std, ctx, n.Collection)
	if err != nil {
		return collection.Collection{}, err
	}
	idxResult, err := Evaluate(std, ctx, n.IndexExpr)
	if err != nil {
		return collection.Collection{}, err
	}
	idxVal, ok := idxResult.Single1()
	if !ok {
		return collection.Empty(), nil
	}
	idx, ok := idxVal.(value.Integer)
	if !ok {
		return collection.Collection{}, fmt.Errorf("evaluator: index expression must be an Integer, got %T", idxVal)
	}
	if idx < 0 || int(idx) >= coll.Len() {
		return collection.Empty(), nil
	}
	return collection.Single(coll.At(int(idx))), nil
}

// evalFunctionCall resolves name in the function registry and builds
// the Call the registry entry expects: ArgCurrent functions get every
// argument pre-evaluated against focus; ArgLambda functions get the
// raw nodes and evaluate them (typically once per element) themselves.
func evalFunctionCall(std context.Context, ctx *evalctx.Context, name string, args []ast.Node, focus collection.Collection) (collection.Collection, error) {
	meta, ok := function.Lookup(name)
	if !ok {
		return collection.Collection{}, fmt.Errorf("evaluator: unknown function %q", name)
	}
	if len(args) < meta.MinArity || (meta.MaxArity >= 0 && len(args) > meta.MaxArity) {
		return collection.Collection{}, fherrors.New(fherrors.ArityMismatch, "%s() expects %d-%d arguments, got %d", name, meta.MinArity, meta.MaxArity, len(args))
	}
	if meta.Empty == function.PropagateFocus && focus.IsEmpty() {
		return collection.Empty(), nil
	}

	call := function.Call{
		Std:      std,
		Ctx:      ctx.WithFocus(focus),
		ArgNodes: args,
		Evaluate: Evaluate,
	}
	if meta.ArgMode == function.ArgCurrent {
		values := make([]collection.Collection, len(args))
		for i, arg := range args {
			v, err := Evaluate(std, ctx, arg)
			if err != nil {
				return collection.Collection{}, err
			}
			values[i] = v
		}
		call.ArgValues = values
	}
	return meta.Fn(call)
}

func evalTypeCheck(std context.Context, ctx *evalctx.Context, n *ast.TypeCheck) (collection.Collection, error) {
	_, matches, ok, err := checkType(std, ctx, n.Expression, n.TypeName)
	if err != nil {
		return collection.Collection{}, err
	}
	if !ok {
		return collection.Empty(), nil
	}
	return collection.Single(value.Boolean(matches)), nil
}

func evalTypeCast(std context.Context, ctx *evalctx.Context, n *ast.TypeCast) (collection.Collection, error) {
	v, matches, ok, err := checkType(std, ctx, n.Expression, n.TypeName)
	if err != nil {
		return collection.Collection{}, err
	}
	if !ok || !matches {
		return collection.Empty(), nil
	}
	return collection.Single(v), nil
}

// checkType evaluates expr, then reports whether its singleton result
// is assignable to typeName — via ModelProvider.IsAssignable when one
// is configured and the type is a FHIR type, or by direct namespace
// comparison for the eight System primitives.
func checkType(std context.Context, ctx *evalctx.Context, expr ast.Node, typeName string) (value.Value, bool, bool, error) {
	result, err := Evaluate(std, ctx, expr)
	if err != nil {
		return nil, false, false, err
	}
	v, ok := result.Single1()
	if !ok {
		return nil, false, false, nil
	}
	ns, name := fhirtype.SplitQualified(typeName)
	actual := v.Type()
	if ns == fhirtype.System || (ns == fhirtype.NoNamespace && fhirtype.IsSystemPrimitive(name)) {
		return v, actual.Namespace == fhirtype.System && actual.Name == name, true, nil
	}
	if ctx.Provider.Model == nil {
		return v, false, true, nil
	}
	want, found, err := ctx.Provider.Model.GetType(std, typeName)
	if err != nil {
		return nil, false, false, err
	}
	if !found {
		return v, false, true, nil
	}
	assignable, err := ctx.Provider.Model.IsAssignable(std, actual, want)
	if err != nil {
		return nil, false, false, err
	}
	return v, assignable, true, nil
}

func evalLiteral(n *ast.Literal) (collection.Collection, error) {
	switch n.Kind {
	case ast.NullLiteral:
		return collection.Empty(), nil
	case ast.BoolLiteral:
		return collection.Single(value.Boolean(n.Text == "true")), nil
	case ast.IntegerLiteral:
		var i int64
		if _, err := fmt.Sscanf(n.Text, "%d", &i); err != nil {
			return collection.Collection{}, fmt.Errorf("evaluator: invalid integer literal %q: %w", n.Text, err)
		}
		return collection.Single(value.Integer(i)), nil
	case ast.DecimalLiteral:
		d, err := decimalFromText(n.Text)
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(value.NewDecimal(d)), nil
	case ast.StringLiteral:
		return collection.Single(value.NewString(n.Text)), nil
	case ast.DateLiteral:
		d, err := temporal.ParseDate(n.Text)
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(d), nil
	case ast.DateTimeLiteral:
		dt, err := temporal.ParseDateTime(n.Text)
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(dt), nil
	case ast.TimeLiteral:
		t, err := temporal.ParseTime(n.Text)
		if err != nil {
			return collection.Collection{}, err
		}
		return collection.Single(t), nil
	case ast.QuantityLiteral:
		d, err := decimalFromText(n.Text)
		if err != nil {
			return collection.Collection{}, err
		}
		if temporal.IsCalendarUnit(n.Unit) {
			return collection.Single(value.NewCalendarQuantity(d, n.Unit)), nil
		}
		return collection.Single(value.NewQuantity(d, n.Unit)), nil
	default:
		return collection.Collection{}, fmt.Errorf("evaluator: unsupported literal kind %v", n.Kind)
	}
}
