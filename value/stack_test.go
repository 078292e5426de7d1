package value

import "testing"

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack()
	s.Push(NewConstant(1, DecimalDomain))
	s.Push(NewString("top"))

	top, ok := PopAs[*String](s)
	if !ok {
		t.Fatalf("PopAs[*String] failed on top-of-stack string")
	}
	if top.Text() != "top" {
		t.Fatalf("popped %q, want %q", top.Text(), "top")
	}

	c, ok := TopAs[*Constant](s)
	if !ok {
		t.Fatalf("TopAs[*Constant] failed")
	}
	if c.Magnitude() != 1 {
		t.Fatalf("top magnitude = %d, want 1", c.Magnitude())
	}
	if s.Len() != 1 {
		t.Fatalf("TopAs must not remove the value; Len() = %d, want 1", s.Len())
	}
}

func TestStackPopAsWrongTypeLeavesStack(t *testing.T) {
	s := NewStack()
	s.Push(NewString("x"))

	if _, ok := PopAs[*Constant](s); ok {
		t.Fatalf("PopAs[*Constant] succeeded on a String value")
	}
	if s.Len() != 1 {
		t.Fatalf("failed PopAs must not remove the value; Len() = %d, want 1", s.Len())
	}
}

func TestStackCloneIndependentAndOrdered(t *testing.T) {
	s := NewStack()
	s.Push(NewConstant(1, DecimalDomain))
	s.Push(NewConstant(2, DecimalDomain))
	s.Push(NewConstant(3, DecimalDomain))

	clone := s.Clone()
	if clone.Len() != s.Len() {
		t.Fatalf("clone length = %d, want %d", clone.Len(), s.Len())
	}

	for i := len(s.values) - 1; i >= 0; i-- {
		origVal, _ := s.Pop()
		cloneVal, _ := clone.Pop()
		if origVal.Cmp(cloneVal) != Equal {
			t.Fatalf("clone element %d not equal to original", i)
		}
	}

	// Mutating via the original constant's pointer must not be visible in
	// clones taken before the mutation.
	s2 := NewStack()
	c := NewConstant(10, DecimalDomain)
	s2.Push(c)
	clone2 := s2.Clone()
	c.magnitude = 99
	cloned, _ := TopAs[*Constant](clone2)
	if cloned.Magnitude() != 10 {
		t.Fatalf("clone observed mutation of original: got %d, want 10", cloned.Magnitude())
	}
}

func TestStackTopEmpty(t *testing.T) {
	s := NewStack()
	if _, ok := s.Top(); ok {
		t.Fatalf("Top() on empty stack returned ok=true")
	}
	if _, ok := s.Pop(); ok {
		t.Fatalf("Pop() on empty stack returned ok=true")
	}
}
