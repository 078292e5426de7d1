// Package ops implements the pull-based operator pipeline the query engine
// evaluates: each Op consumes stacks from an upstream Op and produces zero
// or more derived stacks of its own, mirroring dwgrep's op/dwop_f/pred
// hierarchy but expressed as a small Go interface instead of a class tree.
package ops

import "github.com/bkin/dwgrep/value"

// Op is one stage of the evaluation pipeline. Next is called repeatedly
// until it reports no more results; Reset rewinds the operator (and its
// upstream) so the same pipeline can be re-run, e.g. by an outer fan-out.
//
// Err follows the bufio.Scanner/sql.Rows convention: it is nil unless Next
// has returned false because of a fatal error (an underlying dwarfgraph.Error
// or value.ErrIncomparable), never because the sequence was simply
// exhausted. Callers — chiefly engine.Evaluator.Run — check Err once Next
// reports no more frames and surface it as an ordinary Go error, rather
// than via panics. Type mismatches are not fatal and never appear here;
// they are reported through internal/dbg and simply drop the frame.
type Op interface {
	Next() (*value.Stack, bool)
	Reset()
	Name() string
	Err() error
}

// The traversal operators (winfo, unit, child, attribute) and the
// value-shape operators that need to resolve references or build new Die
// values (parent, integrate, @AT_X) all depend directly on
// *dwarfgraph.Graph rather than on an interface: Die/Attribute/LoclistOp
// identity and comparison are pinned to a concrete *dwarfgraph.Graph
// pointer (see Die.Cmp), so an abstraction layer here would buy no real
// test isolation while adding an interface boundary Go's lack of
// covariant method return types makes awkward to satisfy. Most operators
// are tested against a zero-value *dwarfgraph.Graph fed hand-built
// *dwarf.Entry literals; the traversal operators that need real DWARF data
// (winfo, child, and parent with its parent index) instead are tested by
// opening the running test binary's own DWARF via dwarfgraph.Open(os.Args[0]) — see
// traversal_test.go and dwarfgraph/graph_test.go.

