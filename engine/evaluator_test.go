package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/bkin/dwgrep/value"
)

// fakeOp replays a fixed sequence of stacks, then reports err (nil for a
// clean exhaustion) on the call that returns ok == false.
type fakeOp struct {
	frames []*value.Stack
	i      int
	err    error
}

func (f *fakeOp) Next() (*value.Stack, bool) {
	if f.i >= len(f.frames) {
		return nil, false
	}
	s := f.frames[f.i]
	f.i++
	return s, true
}
func (f *fakeOp) Reset()       { f.i = 0 }
func (f *fakeOp) Name() string { return "fake" }
func (f *fakeOp) Err() error   { return f.err }

func constStack(n int64) *value.Stack {
	s := value.NewStack()
	s.Push(value.NewConstant(n, value.DecimalDomain))
	return s
}

func TestRunCollectsAllFrames(t *testing.T) {
	op := &fakeOp{frames: []*value.Stack{constStack(1), constStack(2), constStack(3)}}
	got, err := New().Collect(context.Background(), op)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d frames, want 3", len(got))
	}
}

func TestRunSurfacesFatalError(t *testing.T) {
	wantErr := errors.New("dwarfgraph: boom")
	op := &fakeOp{frames: []*value.Stack{constStack(1)}, err: wantErr}
	_, err := New().Collect(context.Background(), op)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Collect error = %v, want %v", err, wantErr)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	op := &fakeOp{frames: []*value.Stack{constStack(1), constStack(2)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Collect(ctx, op)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Collect error = %v, want context.Canceled", err)
	}
}

func TestRunYieldErrorStopsEarly(t *testing.T) {
	op := &fakeOp{frames: []*value.Stack{constStack(1), constStack(2), constStack(3)}}
	yieldErr := errors.New("stop")
	count := 0
	err := New().Run(context.Background(), op, func(*value.Stack) error {
		count++
		if count == 2 {
			return yieldErr
		}
		return nil
	})
	if !errors.Is(err, yieldErr) {
		t.Fatalf("Run error = %v, want wrapping %v", err, yieldErr)
	}
	if count != 2 {
		t.Fatalf("yield called %d times, want 2", count)
	}
}

func TestRunEmptySequenceReturnsNilError(t *testing.T) {
	op := &fakeOp{}
	err := New().Run(context.Background(), op, nil)
	if err != nil {
		t.Fatalf("Run on empty sequence: %v", err)
	}
}
