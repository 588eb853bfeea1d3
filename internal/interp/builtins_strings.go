package interp

import (
	"strings"

	nerr "github.com/nohlang/go-noh/internal/errors"
)

// lookupString resolves name to a bound string value.
func (i *Interpreter) lookupString(name string) (*StringValue, bool) {
	v, ok := i.scopes.Lookup(name)
	if !ok {
		i.reportErr(nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name))
		return nil, false
	}
	s, ok := v.(*StringValue)
	if !ok {
		i.reportErr(nerr.New(nerr.TypeError, "변수 %q 는 문자열이 아님", name))
		return nil, false
	}
	return s, true
}

// handleUppercase replaces a bound string with its uppercase form.
func (i *Interpreter) handleUppercase(groups []string) {
	name := groups[1]
	s, ok := i.lookupString(name)
	if !ok {
		return
	}
	if err := i.scopes.Assign(name, &StringValue{Value: strings.ToUpper(s.Value)}); err != nil {
		i.reportErr(err)
		return
	}
	i.echof("변수 %q를 대문자로 변환 완료", name)
}

// handleLowercase replaces a bound string with its lowercase form.
func (i *Interpreter) handleLowercase(groups []string) {
	name := groups[1]
	s, ok := i.lookupString(name)
	if !ok {
		return
	}
	if err := i.scopes.Assign(name, &StringValue{Value: strings.ToLower(s.Value)}); err != nil {
		i.reportErr(err)
		return
	}
	i.echof("변수 %q를 소문자로 변환 완료", name)
}
