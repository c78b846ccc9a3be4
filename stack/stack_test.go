package stack

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStack_NewIsEmpty(t *testing.T) {
	s := New()
	defer Release(s)
	if s.Len() != 0 {
		t.Errorf("new stack should be empty, got length %d", s.Len())
	}
}

func TestStack_PushPop(t *testing.T) {
	s := New()
	defer Release(s)

	v := uint256.NewInt(42)
	if err := s.Push(v); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("want length 1, got %d", s.Len())
	}

	got, err := s.Pop()
	if err != nil {
		t.Fatalf("unexpected pop error: %v", err)
	}
	if !got.Eq(v) {
		t.Errorf("want %v, got %v", v, got)
	}
	if s.Len() != 0 {
		t.Errorf("want length 0 after pop, got %d", s.Len())
	}
}

func TestStack_PopEmptyUnderflows(t *testing.T) {
	s := New()
	defer Release(s)

	if _, err := s.Pop(); err == nil {
		t.Fatal("want underflow error, got nil")
	} else if _, ok := err.(ErrUnderflow); !ok {
		t.Errorf("want ErrUnderflow, got %T", err)
	}
}

func TestStack_PushOverflows(t *testing.T) {
	s := New()
	defer Release(s)

	for i := 0; i < Capacity; i++ {
		if err := s.Push(uint256.NewInt(uint64(i))); err != nil {
			t.Fatalf("unexpected push error at %d: %v", i, err)
		}
	}
	if err := s.Push(uint256.NewInt(0)); err == nil {
		t.Fatal("want overflow error, got nil")
	} else if _, ok := err.(ErrOverflow); !ok {
		t.Errorf("want ErrOverflow, got %T", err)
	}
}

func TestStack_PushUndefinedOverflows(t *testing.T) {
	s := New()
	defer Release(s)

	for i := 0; i < Capacity; i++ {
		if _, err := s.PushUndefined(); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if _, err := s.PushUndefined(); err == nil {
		t.Fatal("want overflow error, got nil")
	}
}

func TestStack_Peek(t *testing.T) {
	s := New()
	defer Release(s)

	_ = s.Push(uint256.NewInt(1))
	_ = s.Push(uint256.NewInt(2))
	_ = s.Push(uint256.NewInt(3))

	top, err := s.Peek(0)
	if err != nil || !top.Eq(uint256.NewInt(3)) {
		t.Errorf("Peek(0) = %v, %v; want 3, nil", top, err)
	}
	bottom, err := s.Peek(2)
	if err != nil || !bottom.Eq(uint256.NewInt(1)) {
		t.Errorf("Peek(2) = %v, %v; want 1, nil", bottom, err)
	}
	if _, err := s.Peek(3); err == nil {
		t.Error("Peek(3) on a 3-element stack should underflow")
	}
}

func TestStack_Dup(t *testing.T) {
	s := New()
	defer Release(s)

	_ = s.Push(uint256.NewInt(10))
	_ = s.Push(uint256.NewInt(20))

	if err := s.Dup(2); err != nil {
		t.Fatalf("unexpected dup error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("want length 3, got %d", s.Len())
	}
	top, _ := s.Peek(0)
	if !top.Eq(uint256.NewInt(10)) {
		t.Errorf("Dup(2) should copy the 2nd-from-top element, got %v", top)
	}

	if err := s.Dup(10); err == nil {
		t.Error("Dup(10) on a 3-element stack should underflow")
	}
}

func TestStack_Swap(t *testing.T) {
	s := New()
	defer Release(s)

	_ = s.Push(uint256.NewInt(1))
	_ = s.Push(uint256.NewInt(2))
	_ = s.Push(uint256.NewInt(3))

	if err := s.Swap(2); err != nil {
		t.Fatalf("unexpected swap error: %v", err)
	}
	top, _ := s.Peek(0)
	bottom, _ := s.Peek(2)
	if !top.Eq(uint256.NewInt(1)) || !bottom.Eq(uint256.NewInt(3)) {
		t.Errorf("Swap(2) did not exchange top and 3rd element: top=%v bottom=%v", top, bottom)
	}

	if err := s.Swap(5); err == nil {
		t.Error("Swap(5) on a 3-element stack should underflow")
	}
}

func TestStack_Eql(t *testing.T) {
	a := New()
	b := New()
	defer Release(a)
	defer Release(b)

	_ = a.Push(uint256.NewInt(7))
	_ = b.Push(uint256.NewInt(7))
	if !a.Eql(b) {
		t.Error("equal-content stacks should compare equal")
	}

	_ = b.Push(uint256.NewInt(8))
	if a.Eql(b) {
		t.Error("different-length stacks should not compare equal")
	}
}

func TestStack_ReleaseResets(t *testing.T) {
	s := New()
	_ = s.Push(uint256.NewInt(1))
	Release(s)

	s2 := New()
	defer Release(s2)
	if s2.Len() != 0 {
		t.Errorf("stack drawn from the pool should be reset to empty, got length %d", s2.Len())
	}
}
