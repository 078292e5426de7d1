package main

import (
	"testing"

	"github.com/bkin/dwgrep/builtin"
	"github.com/bkin/dwgrep/dwarfgraph"
)

func testDict(t *testing.T, graph *dwarfgraph.Graph) *builtin.Dictionary {
	t.Helper()
	dict, err := builtin.NewStandardDictionary(graph, nil)
	if err != nil {
		t.Fatalf("NewStandardDictionary: %v", err)
	}
	return dict
}

func TestBuildPipelinePlainWinfo(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	op, err := buildPipeline(graph, dict, &queryOptions{})
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	if op.Name() != "winfo" {
		t.Errorf("plain pipeline Name() = %q, want winfo", op.Name())
	}
}

func TestBuildPipelineWhereAndShow(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	op, err := buildPipeline(graph, dict, &queryOptions{
		where: []string{"?TAG_subprogram"},
		show:  "@AT_name",
	})
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	if op.Name() != "value" {
		t.Errorf("pipeline with --show @AT_name ends in Name() = %q, want value", op.Name())
	}
}

func TestBuildPipelineUnknownWhereErrors(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	if _, err := buildPipeline(graph, dict, &queryOptions{where: []string{"not_a_builtin"}}); err == nil {
		t.Fatal("buildPipeline with unknown --where: want error, got nil")
	}
}

func TestBuildPipelineUnknownShowErrors(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	if _, err := buildPipeline(graph, dict, &queryOptions{show: "not_a_builtin"}); err == nil {
		t.Fatal("buildPipeline with unknown --show: want error, got nil")
	}
}

func TestBuildPipelineExprWhere(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	op, err := buildPipeline(graph, dict, &queryOptions{exprWhere: "Tag == \"DW_TAG_subprogram\""})
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	const want = `?expr("Tag == \"DW_TAG_subprogram\"")`
	if op.Name() != want {
		t.Errorf("--expr-where pipeline Name() = %q, want %q", op.Name(), want)
	}
}

func TestBuildPipelineExprWhereCompileErrorSurfaces(t *testing.T) {
	graph := &dwarfgraph.Graph{}
	dict := testDict(t, graph)
	if _, err := buildPipeline(graph, dict, &queryOptions{exprWhere: "not ( valid"}); err == nil {
		t.Fatal("buildPipeline with invalid --expr-where: want error, got nil")
	}
}
