package scanner

import (
	"strings"
	"testing"

	"github.com/codegraphhq/codegraph/internal/model"
)

func TestGoBackendFunctionAndMethod(t *testing.T) {
	src := strings.Join([]string{
		"package sample",
		"",
		"type Counter struct{ n int }",
		"",
		"func NewCounter() *Counter { return &Counter{} }",
		"",
		"func (c *Counter) Increment() int {",
		"	c.bump()",
		"	return c.n",
		"}",
		"",
		"func (c *Counter) bump() { c.n++ }",
		"",
	}, "\n")

	res, err := Scan(src, "counter.go", Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	byName := map[string]model.Element{}
	for _, el := range res.Elements {
		byName[el.Name] = el
	}

	if el, ok := byName["NewCounter"]; !ok || el.Kind != model.KindFunction || !el.Exported {
		t.Errorf("expected exported function NewCounter, got %+v (ok=%v)", el, ok)
	}
	if el, ok := byName["Counter.Increment"]; !ok || el.Kind != model.KindMethod || !el.Exported {
		t.Errorf("expected exported method Counter.Increment, got %+v (ok=%v)", el, ok)
	}
	if el, ok := byName["Counter.bump"]; !ok || el.Kind != model.KindMethod || el.Exported {
		t.Errorf("expected unexported method Counter.bump, got %+v (ok=%v)", el, ok)
	}

	var sawBumpCall bool
	for _, c := range res.Calls {
		if c.CallerFunction == "Counter.Increment" && c.CalleeFunction == "bump" {
			sawBumpCall = true
		}
	}
	if !sawBumpCall {
		t.Errorf("expected a call edge from Increment to bump, got %+v", res.Calls)
	}
}

func TestGoBackendParseErrorReturnsParseError(t *testing.T) {
	_, err := Scan("package sample\nfunc broken( {\n", "broken.go", Options{})
	if err == nil {
		t.Fatal("expected a parse error for malformed Go source")
	}
	var pe *ParseError
	if !asParseError(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func asParseError(err error, target **ParseError) bool {
	pe, ok := err.(*ParseError)
	if ok {
		*target = pe
	}
	return ok
}
