package interp

import (
	"strings"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// numericOf extracts a float from an integer or float value.
func numericOf(v Value) (float64, bool) {
	switch val := v.(type) {
	case *IntegerValue:
		return float64(val.Value), true
	case *FloatValue:
		return val.Value, true
	}
	return 0, false
}

// valuesEqual implements the == relation. Numbers compare across the
// int/float divide; sequences and mappings compare element-wise; comparing
// incompatible kinds is an error.
func valuesEqual(a, b Value) (bool, error) {
	if an, ok := numericOf(a); ok {
		if bn, ok := numericOf(b); ok {
			return an == bn, nil
		}
	}
	switch av := a.(type) {
	case *StringValue:
		if bv, ok := b.(*StringValue); ok {
			return av.Value == bv.Value, nil
		}
	case *BooleanValue:
		if bv, ok := b.(*BooleanValue); ok {
			return av.Value == bv.Value, nil
		}
	case *NullValue:
		if _, ok := b.(*NullValue); ok {
			return true, nil
		}
	case *ListValue:
		if bv, ok := b.(*ListValue); ok {
			return sequencesEqual(av.Elements, bv.Elements)
		}
	case *TupleValue:
		if bv, ok := b.(*TupleValue); ok {
			return sequencesEqual(av.Elements, bv.Elements)
		}
	case *MapValue:
		if bv, ok := b.(*MapValue); ok {
			return mapsEqual(av, bv)
		}
	case *FunctionValue:
		if bv, ok := b.(*FunctionValue); ok {
			return av == bv, nil
		}
	case *BuiltinValue:
		if bv, ok := b.(*BuiltinValue); ok {
			return av.Name == bv.Name, nil
		}
	}
	return false, nerr.New(nerr.TypeError, "%s 와 %s 는 비교할 수 없음", a.Type(), b.Type())
}

func sequencesEqual(a, b []Value) (bool, error) {
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		eq, err := valuesEqual(a[i], b[i])
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

func mapsEqual(a, b *MapValue) (bool, error) {
	if len(a.Entries) != len(b.Entries) {
		return false, nil
	}
	for _, e := range a.Entries {
		other, ok := b.Get(e.Key)
		if !ok {
			return false, nil
		}
		eq, err := valuesEqual(e.Value, other)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// valuesCompare implements ordering: -1, 0, or 1. Numbers order numerically,
// strings lexicographically, sequences element-wise. Other kinds do not order.
func valuesCompare(a, b Value) (int, error) {
	if an, ok := numericOf(a); ok {
		if bn, ok := numericOf(b); ok {
			switch {
			case an < bn:
				return -1, nil
			case an > bn:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if av, ok := a.(*StringValue); ok {
		if bv, ok := b.(*StringValue); ok {
			return strings.Compare(av.Value, bv.Value), nil
		}
	}
	if av, ok := sequenceOf(a); ok {
		if bv, ok := sequenceOf(b); ok && a.Type() == b.Type() {
			return sequencesCompare(av, bv)
		}
	}
	return 0, nerr.New(nerr.TypeError, "%s 와 %s 는 순서 비교할 수 없음", a.Type(), b.Type())
}

func sequenceOf(v Value) ([]Value, bool) {
	switch val := v.(type) {
	case *ListValue:
		return val.Elements, true
	case *TupleValue:
		return val.Elements, true
	}
	return nil, false
}

func sequencesCompare(a, b []Value) (int, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		c, err := valuesCompare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	switch {
	case len(a) < len(b):
		return -1, nil
	case len(a) > len(b):
		return 1, nil
	default:
		return 0, nil
	}
}
