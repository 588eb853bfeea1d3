package interp

import (
	"testing"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

func evalWith(t *testing.T, expression string, vars map[string]Value) Value {
	t.Helper()
	v, err := EvalExpression(expression, vars)
	if err != nil {
		t.Fatalf("EvalExpression(%q) failed: %v", expression, err)
	}
	return v
}

func evalStr(t *testing.T, expression string) string {
	t.Helper()
	return evalWith(t, expression, map[string]Value{}).String()
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 + 2", "3"},
		{"10 - 3", "7"},
		{"4 * 5", "20"},
		{"2 ** 10", "1024"},
		{"2 ** -1", "0.5"},
		{"7 % 3", "1"},
		{"-7 % 3", "2"},     // remainder takes the divisor's sign
		{"7 % -3", "-2"},
		{"1.5 + 2.5", "4.0"},
		{"2 * 1.5", "3.0"},
		{"-5", "-5"},
		{"+5", "5"},
		{"-2 ** 2", "-4"},
		{"10 + 5", "15"},
	}
	for _, tt := range tests {
		if got := evalStr(t, tt.expr); got != tt.want {
			t.Errorf("%q = %s, want %s", tt.expr, got, tt.want)
		}
	}
}

// TestTrueDivision: the quotient stays integer only when it divides evenly.
func TestTrueDivision(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"10 / 2", "5"},
		{"10 / 4", "2.5"},
		{"-10 / 2", "-5"},
		{"1 / 3", "0.3333333333333333"},
		{"9.0 / 3", "3.0"},
	}
	for _, tt := range tests {
		if got := evalStr(t, tt.expr); got != tt.want {
			t.Errorf("%q = %s, want %s", tt.expr, got, tt.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, expr := range []string{"1 / 0", "1 % 0", "1.5 / 0"} {
		if _, err := EvalExpression(expr, nil); err == nil {
			t.Errorf("%q did not fail", expr)
		}
	}
}

// TestBooleanOperators: and/or short-circuit and return truthiness, not the
// operand.
func TestBooleanOperators(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"True and True", "True"},
		{"True and False", "False"},
		{"False or True", "True"},
		{"False or False", "False"},
		{"1 and 2", "True"},   // truthiness, not the operand
		{"0 or 3", "True"},
		{"0 and 1", "False"},
		{"not 0", "True"},
		{"not [1]", "False"},
		{`"" or 0`, "False"},
	}
	for _, tt := range tests {
		if got := evalStr(t, tt.expr); got != tt.want {
			t.Errorf("%q = %s, want %s", tt.expr, got, tt.want)
		}
	}
}

// TestShortCircuitSkipsEvaluation: the right operand of a decided and/or is
// never evaluated, so its errors never surface.
func TestShortCircuitSkipsEvaluation(t *testing.T) {
	if got := evalStr(t, "False and 없는변수"); got != "False" {
		t.Errorf("and short-circuit = %s", got)
	}
	if got := evalStr(t, "True or 없는변수"); got != "True" {
		t.Errorf("or short-circuit = %s", got)
	}
}

func TestComparisonChaining(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1 < 2 < 3", "True"},
		{"1 < 2 < 2", "False"},
		{"3 > 2 >= 2", "True"},
		{"1 == 1.0", "True"},
		{"1 != 2", "True"},
		{`"a" < "b"`, "True"},
		{`"a" == "a"`, "True"},
		{"[1, 2] == [1, 2]", "True"},
		{"[1, 2] < [1, 3]", "True"},
	}
	for _, tt := range tests {
		if got := evalStr(t, tt.expr); got != tt.want {
			t.Errorf("%q = %s, want %s", tt.expr, got, tt.want)
		}
	}
}

func TestIncompatibleComparison(t *testing.T) {
	for _, expr := range []string{`1 == "a"`, `1 < "a"`, `[1] < (1,)`} {
		_, err := EvalExpression(expr, nil)
		if err == nil {
			t.Errorf("%q did not fail", expr)
			continue
		}
		if !nerr.IsKind(err, nerr.TypeError) {
			t.Errorf("%q: kind = %v, want TypeError", expr, err)
		}
	}
}

func TestIndexing(t *testing.T) {
	vars := map[string]Value{
		"lst": &ListValue{Elements: []Value{
			&IntegerValue{Value: 10}, &IntegerValue{Value: 20}, &IntegerValue{Value: 30},
		}},
		"m": &MapValue{Entries: []MapEntry{
			{Key: &StringValue{Value: "a"}, Value: &IntegerValue{Value: 1}},
		}},
		"s": &StringValue{Value: "한글"},
	}
	tests := []struct {
		expr string
		want string
	}{
		{"lst[0]", "10"},
		{"lst[-1]", "30"},
		{`m["a"]`, "1"},
		{"s[1]", "글"},
		{"[1, 2, 3][1]", "2"},
		{`{"k": 5}["k"]`, "5"},
		{"(1, 2)[0]", "1"},
	}
	for _, tt := range tests {
		if got := evalWith(t, tt.expr, vars).String(); got != tt.want {
			t.Errorf("%q = %s, want %s", tt.expr, got, tt.want)
		}
	}

	for _, expr := range []string{"lst[3]", "lst[-4]", `m["zz"]`, `lst["a"]`, "5[0]"} {
		if _, err := EvalExpression(expr, vars); err == nil {
			t.Errorf("%q did not fail", expr)
		}
	}
}

// TestUnboundVersusUnassigned: an unbound name and a declared-but-unassigned
// name raise distinct NameError messages.
func TestUnboundVersusUnassigned(t *testing.T) {
	vars := map[string]Value{"x": &NullValue{}}

	_, errUnbound := EvalExpression("y", vars)
	if errUnbound == nil || !nerr.IsKind(errUnbound, nerr.NameError) {
		t.Fatalf("unbound: %v", errUnbound)
	}
	_, errUnassigned := EvalExpression("x", vars)
	if errUnassigned == nil || !nerr.IsKind(errUnassigned, nerr.NameError) {
		t.Fatalf("unassigned: %v", errUnassigned)
	}
	if errUnbound.Error() == errUnassigned.Error() {
		t.Errorf("messages must differ: %v vs %v", errUnbound, errUnassigned)
	}
}

// TestWhitelist: attribute access, call syntax, and assignment forms are
// rejected as unsafe expressions.
func TestWhitelist(t *testing.T) {
	for _, expr := range []string{"a.b", "f(1)", "x = 1", "x += 1", "__import__", "a.b.c"} {
		_, err := EvalExpression(expr, map[string]Value{})
		if expr == "__import__" {
			// A lone dunder name is just an unbound identifier, not a parse
			// error.
			if err == nil || !nerr.IsKind(err, nerr.NameError) {
				t.Errorf("%q: %v", expr, err)
			}
			continue
		}
		if err == nil || !nerr.IsKind(err, nerr.EvalError) {
			t.Errorf("%q: err = %v, want EvalError", expr, err)
		}
	}
}

// TestCachePurity: evaluating the same expression twice yields equal results,
// with or without a warm cache.
func TestCachePurity(t *testing.T) {
	vars := map[string]Value{"x": &IntegerValue{Value: 4}}
	first := evalWith(t, "x * 2 + 1", vars)
	second := evalWith(t, "x * 2 + 1", vars)
	if first.String() != second.String() {
		t.Errorf("cache changed results: %s vs %s", first, second)
	}
}

// TestEvaluatorDoesNotMutate: evaluation leaves the variable view unchanged.
func TestEvaluatorDoesNotMutate(t *testing.T) {
	vars := map[string]Value{"x": &IntegerValue{Value: 1}}
	evalWith(t, "x + 1", vars)
	if len(vars) != 1 || vars["x"].String() != "1" {
		t.Errorf("vars mutated: %v", vars)
	}
}

func TestStringConcatenation(t *testing.T) {
	if got := evalStr(t, `"foo" + "bar"`); got != "foobar" {
		t.Errorf("concat = %s", got)
	}
	if got := evalStr(t, "[1] + [2]"); got != "[1, 2]" {
		t.Errorf("list concat = %s", got)
	}
	if _, err := EvalExpression(`"a" + 1`, nil); err == nil {
		t.Error(`"a" + 1 did not fail`)
	}
}
