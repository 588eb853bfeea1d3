package interp

import (
	"sort"

	"github.com/spf13/cast"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// lookupList resolves name to a bound list value.
func (i *Interpreter) lookupList(name string) (*ListValue, bool) {
	v, ok := i.scopes.Lookup(name)
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name))
		return nil, false
	}
	lst, ok := v.(*ListValue)
	if !ok {
		i.reportErr(nerr.New(nerr.TypeError, "변수 %q 는 리스트가 아님", name))
		return nil, false
	}
	return lst, true
}

// lookupMap resolves name to a bound map value.
func (i *Interpreter) lookupMap(name string) (*MapValue, bool) {
	v, ok := i.scopes.Lookup(name)
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name))
		return nil, false
	}
	m, ok := v.(*MapValue)
	if !ok {
		i.reportErr(nerr.New(nerr.TypeError, "변수 %q 는 딕셔너리가 아님", name))
		return nil, false
	}
	return m, true
}

// handleListAppend appends an evaluated value to a bound list in place.
func (i *Interpreter) handleListAppend(groups []string) {
	name := groups[1]
	lst, ok := i.lookupList(name)
	if !ok {
		return
	}
	value, ok := i.evaluate(groups[2])
	if !ok {
		return
	}
	lst.Elements = append(lst.Elements, value)
	i.echof("리스트 %q에 값 추가됨", name)
}

// handleListDelete removes the element at an evaluated index.
func (i *Interpreter) handleListDelete(groups []string) {
	name := groups[1]
	lst, ok := i.lookupList(name)
	if !ok {
		return
	}
	indexVal, ok := i.evaluate(groups[2])
	if !ok {
		return
	}
	index, err := cast.ToIntE(ToNative(indexVal))
	if err != nil {
		i.reportErr(nerr.New(nerr.TypeError, "인덱스는 정수여야 함 (%s)", indexVal.Type()))
		return
	}
	if index < 0 {
		index += len(lst.Elements)
	}
	if index < 0 || index >= len(lst.Elements) {
		i.reportErr(nerr.New(nerr.EvalError, "리스트 삭제 실패: 인덱스 범위 초과 (%s)", indexVal))
		return
	}
	lst.Elements = append(lst.Elements[:index], lst.Elements[index+1:]...)
	i.echof("리스트 %q에서 인덱스 %d 삭제됨", name, index)
}

// handleListSort sorts a bound list in place using the standard ordering.
// Elements that do not order against each other make the whole sort fail.
func (i *Interpreter) handleListSort(groups []string) {
	name := groups[1]
	lst, ok := i.lookupList(name)
	if !ok {
		return
	}
	var sortErr error
	sorted := make([]Value, len(lst.Elements))
	copy(sorted, lst.Elements)
	sort.SliceStable(sorted, func(a, b int) bool {
		c, err := valuesCompare(sorted[a], sorted[b])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return c < 0
	})
	if sortErr != nil {
		i.reportErr(sortErr)
		return
	}
	lst.Elements = sorted
	i.echof("리스트 %q 정렬 완료", name)
}

// handleShuffleList shuffles a bound list in place.
func (i *Interpreter) handleShuffleList(groups []string) {
	name := groups[1]
	lst, ok := i.lookupList(name)
	if !ok {
		return
	}
	i.rand.Shuffle(len(lst.Elements), func(a, b int) {
		lst.Elements[a], lst.Elements[b] = lst.Elements[b], lst.Elements[a]
	})
	i.echof("리스트 %q가 무작위로 섞였습니다", name)
}

// handleDictAdd adds or updates a key/value pair on a bound map.
func (i *Interpreter) handleDictAdd(groups []string) {
	name := groups[1]
	m, ok := i.lookupMap(name)
	if !ok {
		return
	}
	key, ok := i.evaluate(groups[2])
	if !ok {
		return
	}
	value, ok := i.evaluate(groups[3])
	if !ok {
		return
	}
	m.Set(key, value)
	i.echof("딕셔너리 %q에 키 %s 추가/변경됨", name, Repr(key))
}

// handleDictDelete removes a key from a bound map.
func (i *Interpreter) handleDictDelete(groups []string) {
	name := groups[1]
	m, ok := i.lookupMap(name)
	if !ok {
		return
	}
	key, ok := i.evaluate(groups[2])
	if !ok {
		return
	}
	if !m.Delete(key) {
		i.reportErr(nerr.New(nerr.EvalError, "딕셔너리 %q에 키 %s가 없음", name, Repr(key)))
		return
	}
	i.echof("딕셔너리 %q에서 키 %s 삭제됨", name, Repr(key))
}
