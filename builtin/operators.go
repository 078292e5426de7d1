package builtin

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/ops"
)

// RegisterCore binds the value-shape operators (§4.2) and the DIE
// traversal operators (§4.3) under their plain names, the ?root/!root
// predicate (§4.5), and `@number`/`@number2` (§6's location-opcode
// accessors) under the `@` value-producing sigil, matching `@AT_X`'s
// convention. graph is the DWARF graph every bound builtin closes over.
func RegisterCore(dict *Dictionary, graph *dwarfgraph.Graph) error {
	execs := []struct {
		name string
		fn   func(ops.Op) ops.Op
	}{
		{"offset", func(u ops.Op) ops.Op { return ops.NewOffset(u) }},
		{"label", func(u ops.Op) ops.Op { return ops.NewLabel(u) }},
		{"form", func(u ops.Op) ops.Op { return ops.NewForm(u) }},
		{"value", func(u ops.Op) ops.Op { return ops.NewValueOp(u, graph) }},
		{"parent", func(u ops.Op) ops.Op { return ops.NewParent(u, graph) }},
		{"integrate", func(u ops.Op) ops.Op { return ops.NewIntegrate(u, graph) }},
		{"winfo", func(u ops.Op) ops.Op { return ops.NewWinfo(u, graph) }},
		{"unit", func(u ops.Op) ops.Op { return ops.NewUnit(u, graph) }},
		{"child", func(u ops.Op) ops.Op { return ops.NewChild(u, graph) }},
		{"attribute", func(u ops.Op) ops.Op { return ops.NewAttribute(u, graph) }},
		{"@number", func(u ops.Op) ops.Op { return ops.NewNumber(u, 0) }},
		{"@number2", func(u ops.Op) ops.Op { return ops.NewNumber(u, 1) }},
	}
	for _, e := range execs {
		fn := e.fn
		b := &Builtin{
			Name: e.name,
			Exec: func(upstream ops.Op, _ *dwarfgraph.Graph, _ Scope) (ops.Op, error) {
				return fn(upstream), nil
			},
		}
		if err := dict.Register(b); err != nil {
			return err
		}
	}

	root := ops.NewRootPred(graph)
	if err := dict.Register(&Builtin{
		Name: "?root",
		Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return root, nil },
	}); err != nil {
		return err
	}
	if err := dict.Register(&Builtin{
		Name: "!root",
		Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.Negate(root), nil },
	}); err != nil {
		return err
	}
	return nil
}
