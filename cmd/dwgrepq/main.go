// Command dwgrepq is a minimal driver for the DWARF query engine: it opens
// an object file, builds an operator tree from a small set of flags
// (standing in for the absent postfix-expression front end, §6), and
// prints the resulting stacks. Command-tree shape is grounded on
// go-tony/cmd/o/main.go and o.go; the gops diagnostics hookup is grounded
// on go-tony/cmd/o/system_compose.go's agent.Listen(agent.Options{}) call.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
