package interp

import (
	nerr "github.com/nohlang/go-noh/internal/errors"
)

// Call invokes the function with the given argument values.
//
// The call protocol: an arity mismatch is reported and yields null without
// touching any state. Otherwise the interpreter's scope stack is swapped for
// the closure snapshot plus one fresh frame holding the parameters, the body
// runs through the block executor, a pending return signal is consumed as the
// result, and the caller's stack is restored unconditionally. Because the
// closure is a snapshot, mutations the body performs on outer bindings land
// on the snapshot, not on the live stack after restoration.
func (f *FunctionValue) Call(i *Interpreter, args []Value) Value {
	if len(args) != len(f.Params) {
		i.reportErr(nerr.New(nerr.ArityError,
			"함수 호출 인자 개수 불일치. 기대: %d, 전달: %d", len(f.Params), len(args)))
		return &NullValue{}
	}
	i.debugf("함수 %s 호출 시작", f)

	frames := make([]*Frame, 0, len(f.Closure)+1)
	frames = append(frames, f.Closure...)
	local := NewFrame()
	for idx, param := range f.Params {
		local.Set(param, args[idx])
	}
	frames = append(frames, local)

	saved := i.scopes.Replace(frames)
	savedLine := i.currentLine

	i.executeLines(f.Body)

	var ret Value = &NullValue{}
	if i.returnSignal {
		ret = i.returnValue
		i.returnSignal = false
		i.returnValue = nil
	}
	if i.breakSignal || i.continueSignal {
		i.breakSignal = false
		i.continueSignal = false
		i.reportErr(nerr.New(nerr.ControlFlowError, "브레이크/넘어가 가 함수 밖으로 빠져나감"))
	}

	i.scopes.Replace(saved)
	i.currentLine = savedLine
	i.debugf("함수 %s 호출 종료, 반환값: %s", f, ret)
	return ret
}
