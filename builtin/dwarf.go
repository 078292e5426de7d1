package builtin

import (
	"debug/dwarf"
	"fmt"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/internal/dbg"
	"github.com/bkin/dwgrep/ops"
	"github.com/bkin/dwgrep/value"
)

// RegisterDomainConstants binds every DW_TAG_*, DW_AT_*, DW_FORM_CLASS_*,
// DW_OP_*, DW_LANG_*, DW_ATE_*, DW_ACCESS_* and DW_ADDR_* name debug/dwarf
// or dwconst's tables can produce, as a constant builtin (§4.7): executing
// one pushes the matching Constant onto every upstream frame.
func RegisterDomainConstants(dict *Dictionary) error {
	register := func(name string, c *value.Constant) error {
		return dict.Register(&Builtin{
			Name: name,
			Exec: func(upstream ops.Op, _ *dwarfgraph.Graph, _ Scope) (ops.Op, error) {
				return ops.NewConst(upstream, c), nil
			},
		})
	}

	for _, code := range dwconst.TagCodes() {
		name, ok := dwconst.TagDomain.Namer(code)
		if !ok {
			continue
		}
		if err := register(name, dwconst.Tag(code)); err != nil {
			return err
		}
	}
	for _, code := range dwconst.AttrCodes() {
		name, ok := dwconst.AttrDomain.Namer(code)
		if !ok {
			continue
		}
		if err := register(name, dwconst.Attr(code)); err != nil {
			return err
		}
	}
	for _, code := range dwconst.ClassCodes() {
		name, ok := dwconst.ClassDomain.Namer(code)
		if !ok {
			continue
		}
		if err := register(name, dwconst.Class(code)); err != nil {
			return err
		}
	}
	for code := int64(0); code < 0x100; code++ {
		name, ok := dwconst.OpName(code)
		if !ok {
			continue
		}
		if err := register(dwconst.OpDomain.Name+"_"+name, dwconst.Op(code)); err != nil {
			return err
		}
	}
	for code := int64(0); code <= 0x25; code++ {
		if name, ok := dwconst.LangDomain.Namer(code); ok {
			if err := register(name, dwconst.Lang(code)); err != nil {
				return err
			}
		}
	}
	for code := int64(0); code <= 0x12; code++ {
		if name, ok := dwconst.AteDomain.Namer(code); ok {
			if err := register(name, dwconst.Ate(code)); err != nil {
				return err
			}
		}
	}
	for code := int64(0); code <= 0x03; code++ {
		if name, ok := dwconst.AccessDomain.Namer(code); ok {
			if err := register(name, dwconst.Access(code)); err != nil {
				return err
			}
		}
	}
	if name, ok := dwconst.AddressClassDomain.Namer(0); ok {
		if err := register(name, dwconst.AddressClass(0)); err != nil {
			return err
		}
	}
	return nil
}

// RegisterAttributeSugar binds, for every known DW_AT_* code X, the names
// `@AT_X` and the bare `@X` to the value-of-attribute producer (composing
// attr_named(X) with value, §4.2's `@AT_X` row), and `?AT_X`/`!AT_X`/
// `?X`/`!X` to the attribute predicate (§4.5). The `@` sigil marks
// value-producing sugar, distinguishing it from the unprefixed `?X`/`!X`
// predicate sugar. graph is the DWARF graph attr_named closes over.
//
// Bare names (`@X`, `?X`, `!X`) are shared across the attribute, tag and
// form namespaces; a small number of words exist in more than one (e.g.
// `namelist_item` is both a DW_AT_* and a DW_TAG_* name), so bare
// registration is first-come — see registerBareOnce and DESIGN.md.
func RegisterAttributeSugar(dict *Dictionary, graph *dwarfgraph.Graph) error {
	for _, code := range dwconst.AttrCodes() {
		code := dwarf.Attr(code)
		full, ok := dwconst.AttrDomain.Namer(int64(code))
		if !ok {
			continue
		}
		bare := full[len("DW_AT_"):]

		producer := &Builtin{
			Exec: func(upstream ops.Op, _ *dwarfgraph.Graph, _ Scope) (ops.Op, error) {
				return ops.NewValueOp(ops.NewAttrNamed(upstream, graph, code), graph), nil
			},
		}
		pred := &Builtin{
			Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.NewAttrPred(code), nil },
		}
		negPred := &Builtin{
			Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.Negate(ops.NewAttrPred(code)), nil },
		}

		if err := registerNamed(dict, "@AT_"+bare, producer); err != nil {
			return err
		}
		if err := registerNamed(dict, "?AT_"+bare, pred); err != nil {
			return err
		}
		if err := registerNamed(dict, "!AT_"+bare, negPred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "@"+bare, producer); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "?"+bare, pred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "!"+bare, negPred); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTagSugar binds `?TAG_X`/`!TAG_X` and the bare `?X`/`!X` forms
// for every known DW_TAG_* code (§4.5's "analogous bindings
// exist for tags"). There is no producer sugar for tags: a DIE's tag is
// read with `label`, not a per-tag accessor.
func RegisterTagSugar(dict *Dictionary) error {
	for _, code := range dwconst.TagCodes() {
		code := dwarf.Tag(code)
		full, ok := dwconst.TagDomain.Namer(int64(code))
		if !ok {
			continue
		}
		bare := full[len("DW_TAG_"):]

		pred := &Builtin{Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.NewTagPred(code), nil }}
		negPred := &Builtin{Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.Negate(ops.NewTagPred(code)), nil }}

		if err := registerNamed(dict, "?TAG_"+bare, pred); err != nil {
			return err
		}
		if err := registerNamed(dict, "!TAG_"+bare, negPred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "?"+bare, pred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "!"+bare, negPred); err != nil {
			return err
		}
	}
	return nil
}

// RegisterFormSugar binds `?FORM_X`/`!FORM_X` and the bare `?X`/`!X`
// forms for every known form class code (§4.5). There is no
// producer sugar for forms: an attribute's form class is read with `form`.
func RegisterFormSugar(dict *Dictionary) error {
	for _, code := range dwconst.ClassCodes() {
		code := code
		full, ok := dwconst.ClassDomain.Namer(code)
		if !ok {
			continue
		}
		bare := full[len("DW_FORM_CLASS_"):]

		pred := &Builtin{Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.NewFormPred(code), nil }}
		negPred := &Builtin{Pred: func(*dwarfgraph.Graph, Scope) (ops.Pred, error) { return ops.Negate(ops.NewFormPred(code)), nil }}

		if err := registerNamed(dict, "?FORM_"+bare, pred); err != nil {
			return err
		}
		if err := registerNamed(dict, "!FORM_"+bare, negPred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "?"+bare, pred); err != nil {
			return err
		}
		if err := registerBareOnce(dict, "!"+bare, negPred); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDomainOverrides binds each alias in overrides to a copy of the
// builtin already registered under its canonical name (e.g. overrides
// ["@AT_name"] = "@AT_unit_name" makes "@AT_unit_name" resolve the same
// producer as "@AT_name"), letting a project rename or shorten a builtin
// without touching the registration code. Keys that do not name an
// already-registered builtin are an error: an alias for nothing is very
// likely a config typo worth failing loudly on, unlike the bare-name
// collisions registerBareOnce tolerates.
func RegisterDomainOverrides(dict *Dictionary, overrides map[string]string) error {
	for canonical, alias := range overrides {
		b := dict.Lookup(canonical)
		if b == nil {
			return fmt.Errorf("builtin: domain override: %q is not a registered builtin name", canonical)
		}
		if err := registerNamed(dict, alias, b); err != nil {
			return err
		}
	}
	return nil
}

// registerNamed registers a fresh copy of b (same Exec/Pred, not the same
// pointer) under name: the same logical binding is reachable under several
// names (@AT_X, @X, ?AT_X, ?X, ...) and each needs its own Name for accurate
// diagnostics.
func registerNamed(dict *Dictionary, name string, b *Builtin) error {
	cp := *b
	cp.Name = name
	return dict.Register(&cp)
}

// registerBareOnce registers a copy of b under name on a first-come basis:
// a handful of bare words genuinely appear in more than one DWARF
// namespace (DW_AT_namelist_item and DW_TAG_namelist_item, for instance),
// and since the bare form is pure convenience — the unambiguous @AT_X/?AT_X/
// ?TAG_X/?FORM_X spelling is always registered regardless — losing a later bare
// binding to an earlier one is preferable to failing registry
// construction outright. See DESIGN.md.
func registerBareOnce(dict *Dictionary, name string, b *Builtin) error {
	cp := *b
	cp.Name = name
	if err := dict.Register(&cp); err != nil {
		dbg.Verbosef("bare builtin %q already bound, keeping the first registration: %v", name, err)
	}
	return nil
}
