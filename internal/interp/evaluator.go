package interp

import (
	"math"

	"github.com/nohlang/go-noh/internal/ast"
	nerr "github.com/nohlang/go-noh/internal/errors"
	"github.com/nohlang/go-noh/internal/parser"
)

// EvalExpression parses (through the AST cache) and evaluates an expression
// against a read-only combined scope view. It never mutates the environment.
func EvalExpression(expression string, vars map[string]Value) (Value, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, nerr.New(nerr.EvalError, "안전하지 않은 표현식: %s", err)
	}
	return evalNode(tree, vars)
}

func evalNode(node ast.Expression, vars map[string]Value) (Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &StringValue{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: n.Value}, nil
	case *ast.NullLiteral:
		return &NullValue{}, nil
	case *ast.Identifier:
		return evalIdentifier(n, vars)
	case *ast.PrefixExpression:
		return evalPrefix(n, vars)
	case *ast.InfixExpression:
		return evalInfix(n, vars)
	case *ast.CompareExpression:
		return evalCompare(n, vars)
	case *ast.BoolOpExpression:
		return evalBoolOp(n, vars)
	case *ast.ListLiteral:
		elements, err := evalAll(n.Elements, vars)
		if err != nil {
			return nil, err
		}
		return &ListValue{Elements: elements}, nil
	case *ast.TupleLiteral:
		elements, err := evalAll(n.Elements, vars)
		if err != nil {
			return nil, err
		}
		return &TupleValue{Elements: elements}, nil
	case *ast.MapLiteral:
		return evalMapLiteral(n, vars)
	case *ast.IndexExpression:
		return evalIndex(n, vars)
	default:
		return nil, nerr.New(nerr.EvalError, "지원되지 않는 표현식 구성요소")
	}
}

func evalAll(nodes []ast.Expression, vars map[string]Value) ([]Value, error) {
	values := make([]Value, len(nodes))
	for i, n := range nodes {
		v, err := evalNode(n, vars)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// evalIdentifier resolves a name in the combined view. A name bound to the
// null placeholder (declared but never assigned) is a distinct error from an
// unbound name.
func evalIdentifier(n *ast.Identifier, vars map[string]Value) (Value, error) {
	v, ok := vars[n.Name]
	if !ok {
		return nil, nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", n.Name)
	}
	if _, isNull := v.(*NullValue); isNull {
		return nil, nerr.New(nerr.NameError, "변수 %q 에 값이 할당되지 않음", n.Name)
	}
	return v, nil
}

func evalPrefix(n *ast.PrefixExpression, vars map[string]Value) (Value, error) {
	right, err := evalNode(n.Right, vars)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "not":
		return &BooleanValue{Value: !Truthy(right)}, nil
	case "-":
		switch v := right.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -v.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -v.Value}, nil
		}
		return nil, nerr.New(nerr.TypeError, "단항 '-' 는 숫자에만 적용 가능 (%s)", right.Type())
	case "+":
		switch right.(type) {
		case *IntegerValue, *FloatValue:
			return right, nil
		}
		return nil, nerr.New(nerr.TypeError, "단항 '+' 는 숫자에만 적용 가능 (%s)", right.Type())
	}
	return nil, nerr.New(nerr.EvalError, "지원되지 않는 단항 연산자: %s", n.Operator)
}

func evalInfix(n *ast.InfixExpression, vars map[string]Value) (Value, error) {
	left, err := evalNode(n.Left, vars)
	if err != nil {
		return nil, err
	}
	right, err := evalNode(n.Right, vars)
	if err != nil {
		return nil, err
	}

	// Concatenation forms of '+'.
	if n.Operator == "+" {
		if ls, ok := left.(*StringValue); ok {
			if rs, ok := right.(*StringValue); ok {
				return &StringValue{Value: ls.Value + rs.Value}, nil
			}
		}
		if ll, ok := left.(*ListValue); ok {
			if rl, ok := right.(*ListValue); ok {
				elements := make([]Value, 0, len(ll.Elements)+len(rl.Elements))
				elements = append(elements, ll.Elements...)
				elements = append(elements, rl.Elements...)
				return &ListValue{Elements: elements}, nil
			}
		}
		if lt, ok := left.(*TupleValue); ok {
			if rt, ok := right.(*TupleValue); ok {
				elements := make([]Value, 0, len(lt.Elements)+len(rt.Elements))
				elements = append(elements, lt.Elements...)
				elements = append(elements, rt.Elements...)
				return &TupleValue{Elements: elements}, nil
			}
		}
	}

	li, leftIsInt := left.(*IntegerValue)
	ri, rightIsInt := right.(*IntegerValue)
	if leftIsInt && rightIsInt {
		return evalIntegerInfix(n.Operator, li.Value, ri.Value)
	}

	ln, leftIsNum := numericOf(left)
	rn, rightIsNum := numericOf(right)
	if leftIsNum && rightIsNum {
		return evalFloatInfix(n.Operator, ln, rn)
	}

	return nil, nerr.New(nerr.TypeError, "'%s' 연산을 %s 와 %s 에 적용할 수 없음",
		n.Operator, left.Type(), right.Type())
}

func evalIntegerInfix(op string, a, b int64) (Value, error) {
	switch op {
	case "+":
		return &IntegerValue{Value: a + b}, nil
	case "-":
		return &IntegerValue{Value: a - b}, nil
	case "*":
		return &IntegerValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, nerr.New(nerr.EvalError, "0으로 나눌 수 없음")
		}
		// True division: the result stays integer only when it divides
		// evenly.
		if a%b == 0 {
			return &IntegerValue{Value: a / b}, nil
		}
		return &FloatValue{Value: float64(a) / float64(b)}, nil
	case "%":
		if b == 0 {
			return nil, nerr.New(nerr.EvalError, "0으로 나눌 수 없음")
		}
		// The remainder takes the divisor's sign, as in the source language.
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return &IntegerValue{Value: m}, nil
	case "**":
		if b >= 0 {
			return &IntegerValue{Value: intPow(a, b)}, nil
		}
		return &FloatValue{Value: math.Pow(float64(a), float64(b))}, nil
	}
	return nil, nerr.New(nerr.EvalError, "지원되지 않는 이항 연산자: %s", op)
}

func evalFloatInfix(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return &FloatValue{Value: a + b}, nil
	case "-":
		return &FloatValue{Value: a - b}, nil
	case "*":
		return &FloatValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, nerr.New(nerr.EvalError, "0으로 나눌 수 없음")
		}
		return &FloatValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, nerr.New(nerr.EvalError, "0으로 나눌 수 없음")
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return &FloatValue{Value: m}, nil
	case "**":
		return &FloatValue{Value: math.Pow(a, b)}, nil
	}
	return nil, nerr.New(nerr.EvalError, "지원되지 않는 이항 연산자: %s", op)
}

// intPow computes a**b for b >= 0 by binary exponentiation.
func intPow(a, b int64) int64 {
	result := int64(1)
	for b > 0 {
		if b&1 == 1 {
			result *= a
		}
		a *= a
		b >>= 1
	}
	return result
}

// evalCompare applies a comparison chain pairwise: a < b < c holds when both
// a < b and b < c hold. The result is always a boolean.
func evalCompare(n *ast.CompareExpression, vars map[string]Value) (Value, error) {
	left, err := evalNode(n.Left, vars)
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		right, err := evalNode(n.Comparators[i], vars)
		if err != nil {
			return nil, err
		}
		holds, err := compareOnce(op, left, right)
		if err != nil {
			return nil, err
		}
		if !holds {
			return &BooleanValue{Value: false}, nil
		}
		left = right
	}
	return &BooleanValue{Value: true}, nil
}

func compareOnce(op string, left, right Value) (bool, error) {
	switch op {
	case "==":
		return valuesEqual(left, right)
	case "!=":
		eq, err := valuesEqual(left, right)
		return !eq, err
	}
	c, err := valuesCompare(left, right)
	if err != nil {
		return false, err
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	}
	return false, nerr.New(nerr.EvalError, "지원되지 않는 비교 연산자: %s", op)
}

// evalBoolOp evaluates an and/or chain with short-circuit semantics. The
// result is the truthiness of the deciding operand, not the operand itself.
func evalBoolOp(n *ast.BoolOpExpression, vars map[string]Value) (Value, error) {
	for _, operand := range n.Values {
		v, err := evalNode(operand, vars)
		if err != nil {
			return nil, err
		}
		truthy := Truthy(v)
		if n.Operator == "and" && !truthy {
			return &BooleanValue{Value: false}, nil
		}
		if n.Operator == "or" && truthy {
			return &BooleanValue{Value: true}, nil
		}
	}
	return &BooleanValue{Value: n.Operator == "and"}, nil
}

func evalMapLiteral(n *ast.MapLiteral, vars map[string]Value) (Value, error) {
	m := &MapValue{}
	for _, pair := range n.Pairs {
		key, err := evalNode(pair.Key, vars)
		if err != nil {
			return nil, err
		}
		value, err := evalNode(pair.Value, vars)
		if err != nil {
			return nil, err
		}
		m.Set(key, value)
	}
	return m, nil
}

func evalIndex(n *ast.IndexExpression, vars map[string]Value) (Value, error) {
	container, err := evalNode(n.Left, vars)
	if err != nil {
		return nil, err
	}
	index, err := evalNode(n.Index, vars)
	if err != nil {
		return nil, err
	}

	switch c := container.(type) {
	case *ListValue:
		return indexSequence(c.Elements, index)
	case *TupleValue:
		return indexSequence(c.Elements, index)
	case *StringValue:
		runes := []rune(c.Value)
		idx, err := sequenceIndex(index, len(runes))
		if err != nil {
			return nil, err
		}
		return &StringValue{Value: string(runes[idx])}, nil
	case *MapValue:
		if v, ok := c.Get(index); ok {
			return v, nil
		}
		return nil, nerr.New(nerr.EvalError, "키 %s 가 없음", Repr(index))
	}
	return nil, nerr.New(nerr.TypeError, "%s 는 인덱싱할 수 없음", container.Type())
}

func indexSequence(elements []Value, index Value) (Value, error) {
	idx, err := sequenceIndex(index, len(elements))
	if err != nil {
		return nil, err
	}
	return elements[idx], nil
}

// sequenceIndex validates an integer index against length, supporting
// negative indices counted from the end.
func sequenceIndex(index Value, length int) (int, error) {
	iv, ok := index.(*IntegerValue)
	if !ok {
		return 0, nerr.New(nerr.TypeError, "인덱스는 정수여야 함 (%s)", index.Type())
	}
	idx := int(iv.Value)
	if idx < 0 {
		idx += length
	}
	if idx < 0 || idx >= length {
		return 0, nerr.New(nerr.EvalError, "인덱스 범위 초과: %d", iv.Value)
	}
	return idx, nil
}
