package ops

import (
	"fmt"
	"strings"

	"github.com/bkin/dwgrep/internal/dbg"
	"github.com/bkin/dwgrep/value"
)

// TypeMismatchError reports that an operator was handed a stack whose top
// value's type it does not accept. It is a user-visible error (not a
// predicate Fail), naming the operator and every type it would have
// accepted, mirroring show_expects in the original implementation.
type TypeMismatchError struct {
	Op       string
	Accepted []string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected one of {%s}, got %s",
		e.Op, strings.Join(e.Accepted, ", "), e.Got)
}

// reportTypeMismatch surfaces a per-frame type mismatch through dbg.
// Evaluation is expected to simply drop the current frame and continue;
// this never returns an error since type mismatches are not fatal.
func reportTypeMismatch(op string, accepted []string, got value.Value) {
	err := &TypeMismatchError{Op: op, Accepted: accepted, Got: got.Type().String()}
	dbg.Verbosef("%v", err)
}
