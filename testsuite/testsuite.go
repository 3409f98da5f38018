// Package testsuite runs FHIRPath conformance-style test suites (§6.3)
// against an Engine: one JSON document describing named test cases,
// each an expression plus an input resource and an expected result.
// Test coverage reporting on top of these results is explicitly out of
// scope (spec.md's Non-goals) — this package only produces the
// Result values a reporter would consume.
package testsuite

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/fhirpath-go/fhirpath"
)

// Test is one named case within a Suite.
type Test struct {
	Name        string          `json:"name"`
	Expression  string          `json:"expression"`
	Input       json.RawMessage `json:"input,omitempty"`
	InputFile   string          `json:"inputfile,omitempty"`
	Expected    json.RawMessage `json:"expected"`
	ExpectError bool            `json:"expectError,omitempty"`
	InvalidKind string          `json:"invalidKind,omitempty"` // "semantic" | "syntax"
	Predicate   bool            `json:"predicate,omitempty"`
	OutputTypes []string        `json:"outputTypes,omitempty"`
	Disabled    bool            `json:"disabled,omitempty"`
}

// Suite is the top-level §6.3 document.
type Suite struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Tests       []Test `json:"tests"`
}

// Parse decodes a §6.3 JSON document.
func Parse(data []byte) (Suite, error) {
	var s Suite
	if err := json.Unmarshal(data, &s); err != nil {
		return Suite{}, fmt.Errorf("testsuite: invalid suite document: %w", err)
	}
	return s, nil
}

// Outcome is the sum type a single Test run produces. Exactly one of
// the embedded pointers is non-nil; use Kind to switch on which one.
type Outcome struct {
	Passed *PassedOutcome
	Failed *FailedOutcome
	Error  *ErrorOutcome
	Skipped *SkippedOutcome
}

type PassedOutcome struct{}

// FailedOutcome carries the expected and actual wire-rendered values
// for a test whose expression evaluated without error but produced a
// different result than the suite document declared.
type FailedOutcome struct {
	Expected any
	Actual   any
}

// ErrorOutcome carries a compile or evaluation failure's message.
type ErrorOutcome struct {
	Message string
}

// SkippedOutcome records why a test did not run.
type SkippedOutcome struct {
	Reason string
}

func passed() Outcome                { return Outcome{Passed: &PassedOutcome{}} }
func failed(expected, actual any) Outcome {
	return Outcome{Failed: &FailedOutcome{Expected: expected, Actual: actual}}
}
func errored(format string, args ...any) Outcome {
	return Outcome{Error: &ErrorOutcome{Message: fmt.Sprintf(format, args...)}}
}
func skipped(reason string) Outcome { return Outcome{Skipped: &SkippedOutcome{Reason: reason}} }

// Kind names which branch of Outcome is populated, for callers that
// want a single comparable value (e.g. for a pass/fail summary count)
// instead of switching on the pointer fields.
type Kind int

const (
	KindPassed Kind = iota
	KindFailed
	KindError
	KindSkipped
)

func (o Outcome) Kind() Kind {
	switch {
	case o.Failed != nil:
		return KindFailed
	case o.Error != nil:
		return KindError
	case o.Skipped != nil:
		return KindSkipped
	default:
		return KindPassed
	}
}

// Result pairs a Test's name with its Outcome.
type Result struct {
	Name    string
	Outcome Outcome
}

// InputResolver loads the named input fixture for a Test that
// specifies "inputfile" instead of an inline "input".
type InputResolver func(name string) (any, error)

// Run evaluates every non-disabled test in s against e, using resolve
// to load any "inputfile"-referenced fixtures, and returns one Result
// per test in s.Tests' original order. Independent tests run
// concurrently — up to runtime.GOMAXPROCS-many at a time — mirroring
// the teacher's Batch.runN concurrent-segment pattern
// (_teacher_copy/flow/batch.go), since test cases share only the
// read-only Engine and have no ordering dependency on each other.
func Run(ctx context.Context, e *fhirpath.Engine, s Suite, resolve InputResolver) []Result {
	results := make([]Result, len(s.Tests))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, tc := range s.Tests {
		i, tc := i, tc
		group.Go(func() error {
			results[i] = Result{Name: tc.Name, Outcome: runOne(groupCtx, e, tc, resolve)}
			return nil
		})
	}
	// Every runOne call turns its own errors into an ErrorOutcome and
	// every goroutine returns nil, so group.Wait never reports an error
	// and its result is ignored.
	_ = group.Wait()
	return results
}

func runOne(ctx context.Context, e *fhirpath.Engine, tc Test, resolve InputResolver) Outcome {
	if tc.Disabled {
		return skipped("disabled")
	}

	expr, err := e.Compile(tc.Expression)
	if err != nil {
		if tc.ExpectError && tc.InvalidKind == "syntax" {
			return passed()
		}
		return errored("compile: %v", err)
	}
	if tc.ExpectError && tc.InvalidKind == "syntax" {
		return failed("syntax error", "compiled successfully")
	}

	input, err := resolveInput(tc, resolve)
	if err != nil {
		return errored("resolving input: %v", err)
	}

	result, err := expr.Eval(ctx, e, input)
	if err != nil {
		if tc.ExpectError {
			return passed()
		}
		return errored("evaluate: %v", err)
	}
	if tc.ExpectError {
		return failed("evaluation error", "evaluated successfully")
	}

	if tc.Predicate {
		return judgePredicate(tc, result)
	}

	rendered, err := fhirpath.CollectionToJSON(result)
	if err != nil {
		return errored("rendering result: %v", err)
	}
	return judgeExpected(tc, rendered)
}

func resolveInput(tc Test, resolve InputResolver) (any, error) {
	if len(tc.Input) > 0 {
		var v any
		if err := json.Unmarshal(tc.Input, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	if tc.InputFile != "" {
		if resolve == nil {
			return nil, fmt.Errorf("no InputResolver configured for inputfile %q", tc.InputFile)
		}
		return resolve(tc.InputFile)
	}
	return nil, nil
}

func judgePredicate(tc Test, result any) Outcome {
	c, ok := result.(interface{ IsEmpty() bool })
	exists := !ok || !c.IsEmpty()
	var expectedBool bool
	if err := json.Unmarshal(tc.Expected, &expectedBool); err != nil {
		return errored("predicate test's expected field must be a bool: %v", err)
	}
	if exists != expectedBool {
		return failed(expectedBool, exists)
	}
	return passed()
}

func judgeExpected(tc Test, actual []any) Outcome {
	var expected any
	if len(tc.Expected) > 0 {
		if err := json.Unmarshal(tc.Expected, &expected); err != nil {
			return errored("unmarshaling expected: %v", err)
		}
	}
	if !jsonEqual(expected, actual) {
		return failed(expected, actual)
	}
	return passed()
}

// jsonEqual compares two already-decoded JSON values structurally.
// actual is normalized through one json.Marshal/Unmarshal round trip
// first so int64/string-rendered Decimal values produced by ToJSON
// compare against the same float64/map[string]any shapes
// encoding/json itself would have produced for expected.
func jsonEqual(expected, actual any) bool {
	raw, err := json.Marshal(actual)
	if err != nil {
		return false
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return false
	}
	return reflect.DeepEqual(expected, normalized)
}
