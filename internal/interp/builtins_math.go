package interp

import (
	"math"

	"github.com/spf13/cast"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// evalNumber evaluates an expression and coerces the result to a float.
func (i *Interpreter) evalNumber(expression string) (float64, bool) {
	v, ok := i.evaluate(expression)
	if !ok {
		return 0, false
	}
	n, err := cast.ToFloat64E(ToNative(v))
	if err != nil {
		i.reportErr(nerr.New(nerr.TypeError, "숫자가 필요함 (%s)", v.Type()))
		return 0, false
	}
	return n, true
}

// handlePower prints base raised to exponent.
func (i *Interpreter) handlePower(groups []string) {
	base, ok := i.evalNumber(groups[1])
	if !ok {
		return
	}
	exponent, ok := i.evalNumber(groups[2])
	if !ok {
		return
	}
	result := math.Pow(base, exponent)
	i.echof("거듭제곱 결과: %s", (&FloatValue{Value: result}).String())
}

// handleSqrt prints the square root of a value.
func (i *Interpreter) handleSqrt(groups []string) {
	value, ok := i.evalNumber(groups[1])
	if !ok {
		return
	}
	if value < 0 {
		i.reportErr(nerr.New(nerr.EvalError, "제곱근 계산 실패: 음수 %s", (&FloatValue{Value: value}).String()))
		return
	}
	i.echof("제곱근 결과: %s", (&FloatValue{Value: math.Sqrt(value)}).String())
}

// handleLog prints the logarithm of value in the given base.
func (i *Interpreter) handleLog(groups []string) {
	value, ok := i.evalNumber(groups[1])
	if !ok {
		return
	}
	base, ok := i.evalNumber(groups[2])
	if !ok {
		return
	}
	if value <= 0 || base <= 0 || base == 1 {
		i.reportErr(nerr.New(nerr.EvalError, "로그 계산 실패: 잘못된 인자"))
		return
	}
	var result float64
	switch base {
	case 2:
		result = math.Log2(value)
	case 10:
		result = math.Log10(value)
	default:
		result = math.Log(value) / math.Log(base)
	}
	i.echof("로그 결과: %s", (&FloatValue{Value: result}).String())
}

// handleRandomNumber prints a random integer in the inclusive range.
func (i *Interpreter) handleRandomNumber(groups []string) {
	minVal, ok := i.evalNumber(groups[1])
	if !ok {
		return
	}
	maxVal, ok := i.evalNumber(groups[2])
	if !ok {
		return
	}
	lo, hi := int64(minVal), int64(maxVal)
	if lo > hi {
		i.reportErr(nerr.New(nerr.EvalError, "랜덤 숫자 생성 실패: 범위 (%d, %d)", lo, hi))
		return
	}
	n := lo + i.rand.Int63n(hi-lo+1)
	i.echof("랜덤 숫자: %d", n)
}
