package main

import (
	"fmt"

	"github.com/bkin/dwgrep/builtin"
	"github.com/bkin/dwgrep/config"
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/ops"
)

// open loads path's DWARF data and the standard builtin dictionary bound
// to it, applying cfg's sanity-check toggle and domain overrides.
func open(path string, cfg *config.Config) (*dwarfgraph.Graph, *builtin.Dictionary, error) {
	graph, err := dwarfgraph.Open(path)
	if err != nil {
		return nil, nil, err
	}
	graph.SetSanityChecks(config.SanityChecksEnabled(cfg))
	dict, err := builtin.NewStandardDictionary(graph, cfg.DomainOverrides)
	if err != nil {
		graph.Close()
		return nil, nil, err
	}
	return graph, dict, nil
}

// buildPipeline assembles `winfo [?where]* [show]` from opts, the
// flag-driven stand-in for a parsed query expression (§6).
func buildPipeline(graph *dwarfgraph.Graph, dict *builtin.Dictionary, opts *queryOptions) (ops.Op, error) {
	op := ops.NewWinfo(ops.Start(), graph)

	var cur ops.Op = op
	for _, name := range opts.where {
		pred, err := lookupPred(dict, name)
		if err != nil {
			return nil, err
		}
		cur = ops.NewFilter(cur, pred)
	}

	if opts.exprWhere != "" {
		b := dict.Lookup("expr")
		if b == nil {
			return nil, fmt.Errorf("dwgrepq: builtin %q not registered", "expr")
		}
		pred, err := b.BuildPredArg(opts.exprWhere, graph, nil)
		if err != nil {
			return nil, fmt.Errorf("dwgrepq: --expr-where: %w", err)
		}
		cur = ops.NewFilter(cur, pred)
	}

	if opts.show != "" {
		b := dict.Lookup(opts.show)
		if b == nil {
			return nil, fmt.Errorf("dwgrepq: --show: builtin %q not registered", opts.show)
		}
		next, err := b.BuildExec(cur, graph, nil)
		if err != nil {
			return nil, fmt.Errorf("dwgrepq: --show: %w", err)
		}
		cur = next
	}

	if opts.exprShow != "" {
		b := dict.Lookup("expr")
		if b == nil {
			return nil, fmt.Errorf("dwgrepq: builtin %q not registered", "expr")
		}
		next, err := b.BuildExecArg(opts.exprShow, cur, graph, nil)
		if err != nil {
			return nil, fmt.Errorf("dwgrepq: --expr-show: %w", err)
		}
		cur = next
	}

	return cur, nil
}

func lookupPred(dict *builtin.Dictionary, name string) (ops.Pred, error) {
	b := dict.Lookup(name)
	if b == nil {
		return nil, fmt.Errorf("dwgrepq: --where: builtin %q not registered", name)
	}
	pred, err := b.BuildPred(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("dwgrepq: --where %s: %w", name, err)
	}
	return pred, nil
}
