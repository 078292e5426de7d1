package ops

import "github.com/bkin/dwgrep/value"

// fanout implements the shared pull-based iteration shape behind winfo,
// unit, child and attribute: pull one stack from upstream, open a
// sub-sequence of derived values from it, emit one cloned stack per item,
// then move to the next upstream stack once the sub-sequence is spent.
// Position indices (value.Value.SetPos) restart at 0 for every upstream
// stack, mirroring the teacher's per-frame position counters.
//
// open itself never collects a sub-sequence eagerly: it returns a pull
// closure, so a fan-out over potentially many thousands of DIEs (winfo,
// unit) performs no more work than is actually pulled.
type fanout struct {
	upstream Op
	open     func(base *value.Stack) (pull func() (value.Value, bool, error), ok bool, err error)

	base *value.Stack
	pull func() (value.Value, bool, error)
	idx  int
	err  error
}

func newFanout(upstream Op, open func(*value.Stack) (func() (value.Value, bool, error), bool, error)) *fanout {
	return &fanout{upstream: upstream, open: open}
}

// next pulls the next derived stack. Once it returns false, err reports
// whether that was ordinary exhaustion (nil) or a fatal error raised by
// open, the per-frame pull closure, or the upstream operator.
func (f *fanout) next() (*value.Stack, bool) {
	if f.err != nil {
		return nil, false
	}
	for {
		if f.pull == nil {
			vf, ok := f.upstream.Next()
			if !ok {
				f.err = f.upstream.Err()
				return nil, false
			}
			pull, ok, err := f.open(vf)
			if err != nil {
				f.err = err
				return nil, false
			}
			if !ok {
				continue
			}
			f.base = vf
			f.pull = pull
			f.idx = 0
		}

		v, ok, err := f.pull()
		if err != nil {
			f.err = err
			return nil, false
		}
		if !ok {
			f.pull = nil
			f.base = nil
			continue
		}

		v = v.Clone()
		v.SetPos(f.idx)
		ret := f.base.Clone()
		ret.Push(v)
		f.idx++
		return ret, true
	}
}

func (f *fanout) reset() {
	f.pull = nil
	f.base = nil
	f.idx = 0
	f.err = nil
	f.upstream.Reset()
}

func (f *fanout) Err() error { return f.err }
