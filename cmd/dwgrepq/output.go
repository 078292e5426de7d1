package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bkin/dwgrep/config"
	"github.com/bkin/dwgrep/engine"
	"github.com/bkin/dwgrep/ops"
	"github.com/bkin/dwgrep/value"
)

var resultColor = color.New(color.FgGreen).SprintfFunc()

// printResults drains op through the engine and writes one line per
// result frame's top value, colorized per cfg the same way
// go-tony/encode/encode_colors.go colorizes document output: ambient TTY
// detection unless cfg.Color overrides it.
func printResults(ctx context.Context, w io.Writer, op ops.Op, cfg *config.Config) error {
	useColor := config.ResolveColor(cfg, func() bool {
		f, ok := w.(interface{ Fd() uintptr })
		return ok && isatty.IsTerminal(f.Fd())
	})

	err := engine.New().Run(ctx, op, func(s *value.Stack) error {
		top, ok := s.Top()
		if !ok {
			fmt.Fprintln(w, "(empty)")
			return nil
		}
		line := top.Show(value.Verbose)
		if useColor {
			line = resultColor(line)
		}
		fmt.Fprintln(w, line)
		return nil
	})
	if err != nil {
		return fmt.Errorf("dwgrepq: %w", err)
	}
	return nil
}
