package interp

import "testing"

func TestDeclareAndAssign(t *testing.T) {
	s := NewScopeStack()
	if err := s.Declare("x"); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := s.Declare("x"); err == nil {
		t.Fatal("redeclaration in the same frame must fail")
	}
	if err := s.Assign("x", &IntegerValue{Value: 1}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.Assign("y", &IntegerValue{Value: 1}); err == nil {
		t.Fatal("assignment to an unbound name must fail")
	}
	v, ok := s.Lookup("x")
	if !ok || v.String() != "1" {
		t.Fatalf("lookup: %v %v", v, ok)
	}
}

func TestShadowing(t *testing.T) {
	s := NewScopeStack()
	if err := s.Declare("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign("x", &IntegerValue{Value: 1}); err != nil {
		t.Fatal(err)
	}

	s.Push()
	// Declaring a name that exists in an outer frame is allowed.
	if err := s.Declare("x"); err != nil {
		t.Fatalf("shadowing declare: %v", err)
	}
	if err := s.Assign("x", &IntegerValue{Value: 2}); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Lookup("x"); v.String() != "2" {
		t.Errorf("inner lookup = %s", v)
	}

	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Lookup("x"); v.String() != "1" {
		t.Errorf("outer binding clobbered: %s", v)
	}
}

func TestAssignWritesNearestEnclosingFrame(t *testing.T) {
	s := NewScopeStack()
	if err := s.Declare("x"); err != nil {
		t.Fatal(err)
	}
	s.Push()
	if err := s.Assign("x", &IntegerValue{Value: 9}); err != nil {
		t.Fatal(err)
	}
	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Lookup("x"); v.String() != "9" {
		t.Errorf("assignment did not reach the outer frame: %s", v)
	}
}

func TestPopLastFrameFails(t *testing.T) {
	s := NewScopeStack()
	if err := s.Pop(); err == nil {
		t.Fatal("popping the last frame must fail")
	}
}

func TestCombinedViewShadowsOuter(t *testing.T) {
	s := NewScopeStack()
	s.Builtins().Set("b", &IntegerValue{Value: 7})
	if err := s.Declare("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign("x", &IntegerValue{Value: 1}); err != nil {
		t.Fatal(err)
	}
	s.Push()
	if err := s.Declare("x"); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign("x", &IntegerValue{Value: 2}); err != nil {
		t.Fatal(err)
	}

	combined := s.Combined()
	if combined["x"].String() != "2" {
		t.Errorf("combined x = %s, want innermost", combined["x"])
	}
	if combined["b"].String() != "7" {
		t.Errorf("combined b = %s", combined["b"])
	}
}

// TestSnapshotIsDeep: mutations after the snapshot never show through it.
func TestSnapshotIsDeep(t *testing.T) {
	s := NewScopeStack()
	if err := s.Declare("lst"); err != nil {
		t.Fatal(err)
	}
	list := &ListValue{Elements: []Value{&IntegerValue{Value: 1}}}
	if err := s.Assign("lst", list); err != nil {
		t.Fatal(err)
	}

	snapshot := s.Snapshot()
	list.Elements = append(list.Elements, &IntegerValue{Value: 2})
	if err := s.Assign("lst", &IntegerValue{Value: 0}); err != nil {
		t.Fatal(err)
	}

	captured, ok := snapshot[0].Get("lst")
	if !ok {
		t.Fatal("snapshot missing lst")
	}
	if captured.String() != "[1]" {
		t.Errorf("snapshot saw later mutations: %s", captured)
	}
}
