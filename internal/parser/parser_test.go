package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) string {
	t.Helper()
	expr, err := New(input).ParseExpression()
	require.NoError(t, err, "input: %s", input)
	return expr.String()
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"-2 ** 2", "(-(2 ** 2))"},
		{"-a * b", "((-a) * b)"},
		{"10 % 3 + 1", "((10 % 3) + 1)"},
		{"a + b == c", "((a + b) == c)"},
		{"not a == b", "(not (a == b))"},
		{"a and b or c", "((a and b) or c)"},
		{"a or b and c", "(a or (b and c))"},
		{"x[0] + 1", "((x[0]) + 1)"},
		{"-x[0]", "(-(x[0]))"},
		{"a and b and c", "(a and b and c)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parse(t, tt.input), "input: %s", tt.input)
	}
}

func TestComparisonChaining(t *testing.T) {
	assert.Equal(t, "(1 < x <= 10)", parse(t, "1 < x <= 10"))
	assert.Equal(t, "(a == b == c)", parse(t, "a == b == c"))
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{`"hi"`, `"hi"`},
		{"True", "True"},
		{"False", "False"},
		{"None", "None"},
		{"[1, 2, 3]", "[1, 2, 3]"},
		{"[]", "[]"},
		{"(1, 2)", "(1, 2)"},
		{"(1,)", "(1)"},
		{"()", "()"},
		{`{"a": 1, "b": 2}`, `{"a": 1, "b": 2}`},
		{"{}", "{}"},
		{`{1: "x"}`, `{1: "x"}`},
		{"[1, [2, 3]]", "[1, [2, 3]]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parse(t, tt.input), "input: %s", tt.input)
	}
}

func TestRejectedSyntax(t *testing.T) {
	inputs := []string{
		"a.b",          // attribute access
		"f(x)",         // call syntax
		"x = 1",        // assignment
		"x += 1",       // augmented assignment
		"[i for i in x]", // comprehension reads as leftover tokens
		"1 +",
		"[1, 2",
		"{1: }",
		"(1, 2",
		"import os",
		"`x`",
	}
	for _, input := range inputs {
		_, err := New(input).ParseExpression()
		assert.Error(t, err, "input should be rejected: %s", input)
	}
}

func TestCache(t *testing.T) {
	ResetCache()
	first, err := Parse(" 1 + 2 ")
	require.NoError(t, err)
	second, err := Parse("1 + 2")
	require.NoError(t, err)
	assert.Same(t, first, second, "trimmed source must hit the same cache entry")

	_, err = Parse("1 +")
	assert.Error(t, err)
	_, err = Parse("1 +")
	assert.Error(t, err, "failed parses are not cached as successes")
}
