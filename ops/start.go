package ops

import "github.com/bkin/dwgrep/value"

// start is the root of every operator tree: it emits exactly one empty
// stack, then nothing. winfo (and any other operator built directly on a
// DwarfGraph rather than on another operator's output) is chained on top
// of a start so the fan-out pattern in §4.1 applies uniformly even at the
// root of the pipeline.
type start struct {
	done bool
}

// Start returns a new root operator.
func Start() Op { return &start{} }

func (s *start) Next() (*value.Stack, bool) {
	if s.done {
		return nil, false
	}
	s.done = true
	return value.NewStack(), true
}

func (s *start) Reset()       { s.done = false }
func (s *start) Name() string { return "start" }
func (s *start) Err() error   { return nil }
