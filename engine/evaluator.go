// Package engine implements the query driver: the outer pull loop that
// drains an operator tree and turns its fatal/non-fatal error split (§7)
// into an ordinary Go error return. There is no single teacher file this
// is grounded on — the teacher's own top-level driver is the
// mergeop/eval Patch/Eval recursion, not a pull loop — so the shape
// follows dwgrep's own outer `while (auto vf = op->next())` loop implied
// throughout `original_source/builtin-dw.cc`.
package engine

import (
	"context"
	"fmt"

	"github.com/bkin/dwgrep/ops"
	"github.com/bkin/dwgrep/value"
)

// Evaluator drives a single operator tree to completion. It holds no
// state of its own between Run calls; the iterator state lives entirely
// in the operator tree.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Yield is called once per result frame. Returning a non-nil error stops
// evaluation early and Run returns that error, wrapped to distinguish it
// from a fatal operator error.
type Yield func(*value.Stack) error

// Run pulls from root until it is exhausted, ctx is cancelled, or yield
// returns an error. Per-frame type mismatches are not surfaced here: they
// are already reported through internal/dbg by the operator that
// encountered them and simply do not appear as a frame. Run surfaces only
// the fatal errors in §7's taxonomy (dwarfgraph.Error, value.ErrIncomparable),
// which an operator reports via root.Err() once Next returns false.
//
// Cancellation is checked once per Next call, not inside individual
// operators, per the concurrency model's cooperative cancellation design.
func (e *Evaluator) Run(ctx context.Context, root ops.Op, yield Yield) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s, ok := root.Next()
		if !ok {
			break
		}
		if yield != nil {
			if err := yield(s); err != nil {
				return fmt.Errorf("engine: yield: %w", err)
			}
		}
	}
	return root.Err()
}

// Collect runs root to completion and returns every frame it produced, for
// callers (tests, cmd/dwgrepq) that want the whole result set rather than
// a streaming callback. It is a convenience wrapper around Run, not a
// separate evaluation path.
func (e *Evaluator) Collect(ctx context.Context, root ops.Op) ([]*value.Stack, error) {
	var out []*value.Stack
	err := e.Run(ctx, root, func(s *value.Stack) error {
		out = append(out, s)
		return nil
	})
	return out, err
}
