package interp

import (
	nerr "github.com/nohlang/go-noh/internal/errors"
)

// Frame is a single scope: a mapping from identifier to value.
type Frame struct {
	store map[string]Value
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{store: make(map[string]Value)}
}

// Get retrieves a binding from this frame only.
func (f *Frame) Get(name string) (Value, bool) {
	v, ok := f.store[name]
	return v, ok
}

// Set creates or replaces a binding in this frame.
func (f *Frame) Set(name string, v Value) {
	f.store[name] = v
}

// Delete removes a binding and reports whether it existed.
func (f *Frame) Delete(name string) bool {
	if _, ok := f.store[name]; !ok {
		return false
	}
	delete(f.store, name)
	return true
}

// Has reports whether the frame binds name.
func (f *Frame) Has(name string) bool {
	_, ok := f.store[name]
	return ok
}

// Len returns the number of bindings.
func (f *Frame) Len() int {
	return len(f.store)
}

// Names returns the bound identifiers in unspecified order.
func (f *Frame) Names() []string {
	names := make([]string, 0, len(f.store))
	for name := range f.store {
		names = append(names, name)
	}
	return names
}

// Range calls fn for every binding; iteration order is unspecified.
func (f *Frame) Range(fn func(name string, v Value) bool) {
	for name, v := range f.store {
		if !fn(name, v) {
			return
		}
	}
}

// DeepCopy clones the frame and every value in it.
func (f *Frame) DeepCopy() *Frame {
	clone := NewFrame()
	for name, v := range f.store {
		clone.store[name] = DeepCopy(v)
	}
	return clone
}

// ScopeStack is the stack of frames implementing lexical scoping. Frame 0 is
// the builtins frame; it is never popped and only an explicit reset touches
// it. New declarations land in the topmost frame.
type ScopeStack struct {
	frames []*Frame
}

// NewScopeStack creates a stack holding a single (builtins) frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []*Frame{NewFrame()}}
}

// Depth returns the number of frames.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Builtins returns frame 0.
func (s *ScopeStack) Builtins() *Frame {
	return s.frames[0]
}

// Current returns the topmost frame.
func (s *ScopeStack) Current() *Frame {
	return s.frames[len(s.frames)-1]
}

// Frames returns the underlying frames, innermost last. Callers must not
// modify the slice.
func (s *ScopeStack) Frames() []*Frame {
	return s.frames
}

// Push adds a fresh empty frame.
func (s *ScopeStack) Push() {
	s.frames = append(s.frames, NewFrame())
}

// Pop removes the topmost frame. Popping the last remaining frame is an
// error.
func (s *ScopeStack) Pop() error {
	if len(s.frames) <= 1 {
		return nerr.New(nerr.ControlFlowError, "전역 스코프는 제거할 수 없습니다")
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Declare places name in the topmost frame bound to the null placeholder.
// Redeclaring a name already present in the top frame is an error; shadowing
// outer frames is allowed.
func (s *ScopeStack) Declare(name string) error {
	top := s.Current()
	if top.Has(name) {
		return nerr.New(nerr.NameError, "변수 %q 가 이미 선언됨", name)
	}
	top.Set(name, &NullValue{})
	return nil
}

// Assign writes to the nearest enclosing frame containing name. Assigning to
// an unbound name is an error.
func (s *ScopeStack) Assign(name string, v Value) error {
	for idx := len(s.frames) - 1; idx >= 0; idx-- {
		if s.frames[idx].Has(name) {
			s.frames[idx].Set(name, v)
			return nil
		}
	}
	return nerr.New(nerr.NameError, "변수 %q 가 선언되지 않음", name)
}

// Lookup reads from the nearest enclosing frame containing name.
func (s *ScopeStack) Lookup(name string) (Value, bool) {
	for idx := len(s.frames) - 1; idx >= 0; idx-- {
		if v, ok := s.frames[idx].Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Combined returns a flat snapshot of the stack with innermost bindings
// shadowing outer ones. The expression evaluator reads from this view and
// never writes through it.
func (s *ScopeStack) Combined() map[string]Value {
	combined := make(map[string]Value)
	for _, frame := range s.frames {
		frame.Range(func(name string, v Value) bool {
			combined[name] = v
			return true
		})
	}
	return combined
}

// Snapshot returns a deep copy of every frame, innermost last. Function
// definitions capture their closure with this.
func (s *ScopeStack) Snapshot() []*Frame {
	frames := make([]*Frame, len(s.frames))
	for i, frame := range s.frames {
		frames[i] = frame.DeepCopy()
	}
	return frames
}

// Replace swaps the whole frame stack, returning the previous one. The
// function call protocol uses this to install a closure and restore the
// caller's stack afterwards.
func (s *ScopeStack) Replace(frames []*Frame) []*Frame {
	old := s.frames
	s.frames = frames
	return old
}
