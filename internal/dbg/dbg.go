// Package dbg implements the ambient verbosity-gated logging used across
// the query engine, modelled directly on the teacher's own debug package:
// a struct of boolean flags populated from environment variables at
// init(), plus small Logf/Verbosef helpers that write through the standard
// log package: Logf only when operator tracing is enabled, Verbosef always.
package dbg

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type flags struct {
	Op          bool
	Eval        bool
	ParentIndex bool
	Level       int
}

var d *flags

func init() {
	d = &flags{}
	d.Op = boolEnv("DWGREPQ_DEBUG_OP")
	d.Eval = boolEnv("DWGREPQ_DEBUG_EVAL")
	d.ParentIndex = boolEnv("DWGREPQ_DEBUG_PARENT_INDEX")
}

func boolEnv(name string) bool {
	v := os.Getenv(name)
	if v == "" {
		return false
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// SetLevel wires config.Config.Verbosity into the tracing gates below: a
// caller that never touches this (level stays 0) sees tracing driven solely
// by the DWGREPQ_DEBUG_OP/EVAL/PARENT_INDEX env vars, same as before this
// existed. A positive level additionally turns tracing on in stages —
// 1 enables operator tracing, 2 also enables evaluator tracing, 3 also
// enables parent-index tracing — without overriding an env var that
// already asked for it.
func SetLevel(level int) { d.Level = level }

// Op reports whether operator-level tracing (DWGREPQ_DEBUG_OP, or
// verbosity >= 1) is enabled.
func Op() bool { return d.Op || d.Level >= 1 }

// Eval reports whether evaluator-level tracing (DWGREPQ_DEBUG_EVAL, or
// verbosity >= 2) is enabled.
func Eval() bool { return d.Eval || d.Level >= 2 }

// ParentIndex reports whether parent-index construction tracing
// (DWGREPQ_DEBUG_PARENT_INDEX, or verbosity >= 3) is enabled.
func ParentIndex() bool { return d.ParentIndex || d.Level >= 3 }

var (
	useColor  = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	opColor   = color.New(color.FgCyan).SprintfFunc()
	warnColor = color.New(color.FgYellow).SprintfFunc()
)

func colorize(c func(string, ...any) string, format string, args ...any) string {
	if !useColor {
		return fmt.Sprintf(format, args...)
	}
	return c(format, args...)
}

// Logf writes an operator-tagged diagnostic line to stderr whenever Op
// tracing is enabled; otherwise it is a no-op rather than falling through
// to the standard logger, since operator tracing is deliberately opt-in
// and can be extremely verbose over a large DWARF image.
func Logf(op, format string, args ...any) {
	if !Op() {
		return
	}
	msg := colorize(opColor, format, args...)
	log.Printf("[%s] %s", op, msg)
}

// Verbosef reports every type mismatch the operator layer encounters,
// regardless of the Op flag, mirroring the spec's requirement that type
// mismatches are always user-visible. It still runs through the standard
// log package so a caller who wants this silenced can redirect log output,
// rather than losing the message outright.
func Verbosef(format string, args ...any) {
	msg := colorize(warnColor, format, args...)
	log.Print(msg)
}
