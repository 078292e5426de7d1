package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"github.com/bkin/dwgrep/config"
	"github.com/bkin/dwgrep/internal/dbg"
)

// queryOptions holds the flags that stand in for a parsed query
// expression (§6: "builds such a tree directly from a small set of CLI
// flags ... rather than parsing dwgrep's postfix expression language").
type queryOptions struct {
	configPath string
	gops       bool

	where []string
	show  string

	exprWhere string
	exprShow  string
}

// NewRootCommand builds the dwgrepq command tree.
func NewRootCommand() *cobra.Command {
	opts := &queryOptions{}

	root := &cobra.Command{
		Use:   "dwgrepq OBJFILE",
		Short: "query DWARF debug information in an object file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}
	root.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.Flags().BoolVar(&opts.gops, "gops", false, "start the gops diagnostics agent")
	root.Flags().StringArrayVar(&opts.where, "where", nil, "predicate builtin name to filter DIEs by, e.g. ?TAG_subprogram")
	root.Flags().StringVar(&opts.show, "show", "", "producer builtin name to project each result through, e.g. @AT_name")
	root.Flags().StringVar(&opts.exprWhere, "expr-where", "", "expr-lang predicate source to filter DIEs by")
	root.Flags().StringVar(&opts.exprShow, "expr-show", "", "expr-lang expression to project each result through")

	return root
}

func runQuery(ctx context.Context, w io.Writer, objPath string, opts *queryOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	dbg.SetLevel(cfg.Verbosity)

	if opts.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(w, "gops agent failed: %v\n", err)
		}
	}

	graph, dict, err := open(objPath, cfg)
	if err != nil {
		return err
	}
	defer graph.Close()

	op, err := buildPipeline(graph, dict, opts)
	if err != nil {
		return err
	}

	return printResults(ctx, w, op, cfg)
}
