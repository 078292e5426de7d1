package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Winfo is the root producer: for each upstream frame it iterates every
// DIE in the graph, file order across all compilation units, pushing one
// Die per emitted frame.
type Winfo struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewWinfo returns a winfo operator fed by upstream.
func NewWinfo(upstream Op, graph *dwarfgraph.Graph) *Winfo {
	w := &Winfo{graph: graph}
	w.f = newFanout(upstream, w.open)
	return w
}

func (w *Winfo) open(*value.Stack) (func() (value.Value, bool, error), bool, error) {
	cur := w.graph.AllDiesCursor()
	return func() (value.Value, bool, error) {
		e, err := cur.Next()
		if err != nil {
			return nil, false, err
		}
		if e == nil {
			return nil, false, nil
		}
		return dwarfgraph.NewDie(w.graph, e), true, nil
	}, true, nil
}

func (w *Winfo) Next() (*value.Stack, bool) { return w.f.next() }
func (w *Winfo) Reset()                     { w.f.reset() }
func (w *Winfo) Name() string               { return "winfo" }
func (w *Winfo) Err() error                 { return w.f.Err() }
