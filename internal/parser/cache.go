package parser

import (
	"strings"

	"github.com/nohlang/go-noh/internal/ast"
)

// astCache maps trimmed expression source text to its parsed AST. Entries are
// immutable and never evicted; the cache is a pure speedup. The interpreter is
// single-threaded, so no locking is needed.
var astCache = map[string]ast.Expression{}

// Parse returns the AST for the given expression source, consulting the
// process-wide cache first. Only successful parses are cached.
func Parse(expression string) (ast.Expression, error) {
	key := strings.TrimSpace(expression)
	if tree, ok := astCache[key]; ok {
		return tree, nil
	}
	tree, err := New(key).ParseExpression()
	if err != nil {
		return nil, err
	}
	astCache[key] = tree
	return tree, nil
}

// ResetCache clears the AST cache. Tests use it to exercise cache purity.
func ResetCache() {
	astCache = map[string]ast.Expression{}
}
