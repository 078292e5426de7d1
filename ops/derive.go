package ops

import "github.com/bkin/dwgrep/value"

// once wraps a single already-computed value as a fanout pull closure that
// yields it exactly once, for the value-shape operators (offset, label,
// form, parent, integrate, attrNamed) that derive at most one result per
// upstream frame and so can ride on fanout without its multi-item
// machinery ever actually firing more than once.
func once(v value.Value) func() (value.Value, bool, error) {
	done := false
	return func() (value.Value, bool, error) {
		if done {
			return nil, false, nil
		}
		done = true
		return v, true, nil
	}
}

// skip is the open result for a frame that derives nothing: the fanout
// loop moves on to the next upstream frame without emitting.
func skip() (func() (value.Value, bool, error), bool, error) {
	return nil, false, nil
}
