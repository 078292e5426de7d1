// Package dwarfgraph wraps debug/dwarf into the graph the query engine
// walks: compilation units, DIEs, attributes and location-expression
// operations, each exposed as a value.Value so operators in package ops can
// push and pop them like any other stack value.
package dwarfgraph

import (
	"debug/dwarf"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"fmt"
	"io"
	"sync"
)

// Error reports a fatal failure reading DWARF data — a corrupt section, an
// I/O error, or a reference the object file does not actually contain.
// Unlike a predicate miss or a type mismatch, Error aborts the whole
// evaluation, mirroring throw_libdw in the original implementation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("dwarfgraph: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// DieCursor is a single-pass, pull-based iterator over DIEs: each call to
// Next does exactly the work needed to produce one more entry, so the
// traversal operators built on it (winfo, unit, child) stay lazy even over
// object files with many thousands of DIEs. Next returns nil, nil once the
// cursor is exhausted.
type DieCursor interface {
	Next() (*dwarf.Entry, error)
}

// Graph is a handle on one object file's DWARF data, shared by every value
// produced while walking it. It corresponds to dwgrep_graph in the original
// implementation.
type Graph struct {
	data   *dwarf.Data
	closer io.Closer

	parentOnce   sync.Once
	parent       map[dwarf.Offset]dwarf.Offset
	roots        map[dwarf.Offset]bool
	parentErr    error
	sanityChecks bool
}

// SetSanityChecks enables or disables the internal consistency assertions
// buildParentIndex runs while building its one-shot index (mirrors
// corefile's sanityChecks constant, made runtime-configurable by
// config.Config.SanityChecks). Off by default on a freshly Open'd Graph;
// callers that want them must opt in before the first FindParent/IsRoot
// call, since the index is built at most once.
func (g *Graph) SetSanityChecks(enabled bool) { g.sanityChecks = enabled }

// Open loads the DWARF data from an ELF, Mach-O or PE object file at path.
func Open(path string) (*Graph, error) {
	if f, err := elf.Open(path); err == nil {
		d, derr := f.DWARF()
		if derr != nil {
			f.Close()
			return nil, &Error{"open", derr}
		}
		return &Graph{data: d, closer: f}, nil
	}
	if f, err := macho.Open(path); err == nil {
		d, derr := f.DWARF()
		if derr != nil {
			f.Close()
			return nil, &Error{"open", derr}
		}
		return &Graph{data: d, closer: f}, nil
	}
	if f, err := pe.Open(path); err == nil {
		d, derr := f.DWARF()
		if derr != nil {
			f.Close()
			return nil, &Error{"open", derr}
		}
		return &Graph{data: d, closer: f}, nil
	}
	return nil, &Error{"open", fmt.Errorf("%s: not a recognized ELF, Mach-O or PE object", path)}
}

// Close releases the underlying object file.
func (g *Graph) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer.Close()
}

// Data exposes the raw debug/dwarf handle for callers that need primitives
// the Graph does not wrap.
func (g *Graph) Data() *dwarf.Data { return g.data }

// AllDiesCursor returns a pull-based, single-pass iterator over every DIE
// in the file, compilation unit after compilation unit, in the same
// depth-first order `winfo` exposes to the pipeline. The null entries
// debug/dwarf surfaces to mark the end of a sibling list are swallowed
// rather than returned. Work happens only as Next is called, so `winfo`
// stays lazy even over a file with many thousands of DIEs.
func (g *Graph) AllDiesCursor() DieCursor {
	return &allDiesCursor{r: g.data.Reader()}
}

// allDiesCursor is the DieCursor returned by Graph.AllDiesCursor.
type allDiesCursor struct {
	r *dwarf.Reader
}

// Next returns the next DIE, or nil, nil once the file is exhausted.
func (c *allDiesCursor) Next() (*dwarf.Entry, error) {
	for {
		e, err := c.r.Next()
		if err != nil {
			return nil, &Error{"winfo", err}
		}
		if e == nil {
			return nil, nil
		}
		if e.Tag == 0 {
			continue
		}
		return e, nil
	}
}

// CUDiesCursor returns a pull-based iterator over the top-level
// (compilation unit) DIEs only.
func (g *Graph) CUDiesCursor() DieCursor {
	return &cuDiesCursor{r: g.data.Reader()}
}

// cuDiesCursor is the DieCursor returned by Graph.CUDiesCursor.
type cuDiesCursor struct {
	r *dwarf.Reader
}

// Next returns the next compilation-unit DIE, or nil, nil once exhausted.
func (c *cuDiesCursor) Next() (*dwarf.Entry, error) {
	for {
		e, err := c.r.Next()
		if err != nil {
			return nil, &Error{"unit", err}
		}
		if e == nil {
			return nil, nil
		}
		if e.Children {
			c.r.SkipChildren()
		}
		if e.Tag == dwarf.TagCompileUnit {
			return e, nil
		}
	}
}

// UnitDiesCursor returns a pull-based iterator over every DIE belonging to
// the same compilation unit as off, in depth-first order, mirroring the
// `unit` operator. Compilation units are always top-level entries, so the
// unit's extent ends exactly where the next TagCompileUnit entry (or end
// of file) is reached.
func (g *Graph) UnitDiesCursor(off dwarf.Offset) (DieCursor, error) {
	cuOff, err := g.enclosingCU(off)
	if err != nil {
		return nil, err
	}
	r := g.data.Reader()
	r.Seek(cuOff)
	return &unitDiesCursor{r: r, first: true}, nil
}

// unitDiesCursor is the DieCursor returned by Graph.UnitDiesCursor.
type unitDiesCursor struct {
	r     *dwarf.Reader
	first bool
	done  bool
}

// Next returns the next DIE of the unit, or nil, nil once the unit's
// extent has been fully walked.
func (c *unitDiesCursor) Next() (*dwarf.Entry, error) {
	if c.done {
		return nil, nil
	}
	for {
		e, err := c.r.Next()
		if err != nil {
			return nil, &Error{"unit", err}
		}
		if e == nil {
			c.done = true
			return nil, nil
		}
		if !c.first && e.Tag == dwarf.TagCompileUnit {
			c.done = true
			return nil, nil
		}
		c.first = false
		if e.Tag == 0 {
			continue
		}
		return e, nil
	}
}

// enclosingCU finds the offset of the compilation-unit DIE that contains
// the DIE at off, by scanning compilation units in file order.
func (g *Graph) enclosingCU(off dwarf.Offset) (dwarf.Offset, error) {
	r := g.data.Reader()
	var cuOff dwarf.Offset
	haveCU := false
	for {
		e, err := r.Next()
		if err != nil {
			return 0, &Error{"unit", err}
		}
		if e == nil {
			break
		}
		if e.Tag == dwarf.TagCompileUnit {
			if haveCU && off >= cuOff && off < e.Offset {
				return cuOff, nil
			}
			cuOff = e.Offset
			haveCU = true
		}
		if e.Children {
			r.SkipChildren()
		}
	}
	if haveCU {
		return cuOff, nil
	}
	return 0, &Error{"unit", fmt.Errorf("offset %#x: not found in any compilation unit", off)}
}

// ChildrenCursor returns a pull-based iterator over the direct children of
// the DIE at off. If that DIE has no children, the cursor's first Next
// call returns nil, nil immediately.
func (g *Graph) ChildrenCursor(off dwarf.Offset) (DieCursor, error) {
	r := g.data.Reader()
	r.Seek(off)
	parent, err := r.Next()
	if err != nil {
		return nil, &Error{"child", err}
	}
	if parent == nil || !parent.Children {
		return &childrenCursor{done: true}, nil
	}
	return &childrenCursor{r: r}, nil
}

// childrenCursor is the DieCursor returned by Graph.ChildrenCursor.
type childrenCursor struct {
	r    *dwarf.Reader
	done bool
}

// Next returns the next direct child, or nil, nil once the sibling list is
// exhausted.
func (c *childrenCursor) Next() (*dwarf.Entry, error) {
	if c.done {
		return nil, nil
	}
	e, err := c.r.Next()
	if err != nil {
		return nil, &Error{"child", err}
	}
	if e == nil || e.Tag == 0 {
		c.done = true
		return nil, nil
	}
	if e.Children {
		c.r.SkipChildren()
	}
	return e, nil
}

// EntryAt reads a single entry at the given offset.
func (g *Graph) EntryAt(off dwarf.Offset) (*dwarf.Entry, error) {
	r := g.data.Reader()
	r.Seek(off)
	e, err := r.Next()
	if err != nil {
		return nil, &Error{"entry", err}
	}
	if e == nil {
		return nil, &Error{"entry", fmt.Errorf("offset %#x: no entry", off)}
	}
	return e, nil
}

// buildParentIndex walks the whole file once, recording the parent offset
// of every DIE and the set of root (compilation-unit) DIEs. It is run at
// most once per Graph, lazily, on the first call to FindParent or IsRoot.
// When sanityChecks is enabled it additionally verifies that no DIE offset
// is visited twice and that every closing null entry has a matching open
// entry on the stack, recording a violation in parentErr instead of
// silently producing a corrupt index.
func (g *Graph) buildParentIndex() {
	g.parent = map[dwarf.Offset]dwarf.Offset{}
	g.roots = map[dwarf.Offset]bool{}

	r := g.data.Reader()
	var stack []dwarf.Offset
	for {
		e, err := r.Next()
		if err != nil {
			if g.sanityChecks {
				g.parentErr = &Error{"parent index", err}
			}
			return
		}
		if e == nil {
			return
		}
		if e.Tag == 0 {
			if len(stack) == 0 {
				if g.sanityChecks && g.parentErr == nil {
					g.parentErr = &Error{"parent index", fmt.Errorf("closing entry with no open DIE on the stack")}
				}
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if g.sanityChecks && g.parentErr == nil {
			_, seenChild := g.parent[e.Offset]
			if seenChild || g.roots[e.Offset] {
				g.parentErr = &Error{"parent index", fmt.Errorf("offset %#x visited twice", e.Offset)}
			}
		}
		if len(stack) == 0 {
			g.roots[e.Offset] = true
		} else {
			g.parent[e.Offset] = stack[len(stack)-1]
		}
		if e.Children {
			stack = append(stack, e.Offset)
		}
	}
}

// FindParent returns the offset of the DIE's parent, and false if the DIE
// is a compilation-unit root. err is non-nil only when sanity checks are
// enabled and the one-shot index build found the object file's DIE tree
// inconsistent.
func (g *Graph) FindParent(off dwarf.Offset) (parent dwarf.Offset, ok bool, err error) {
	g.parentOnce.Do(g.buildParentIndex)
	if g.parentErr != nil {
		return 0, false, g.parentErr
	}
	p, ok := g.parent[off]
	return p, ok, nil
}

// IsRoot reports whether off is a compilation-unit root DIE. err is
// non-nil only when sanity checks are enabled and the index build found
// the DIE tree inconsistent.
func (g *Graph) IsRoot(off dwarf.Offset) (bool, error) {
	g.parentOnce.Do(g.buildParentIndex)
	if g.parentErr != nil {
		return false, g.parentErr
	}
	return g.roots[off], nil
}
