package builtin

import "github.com/bkin/dwgrep/dwarfgraph"

// NewStandardDictionary builds the complete builtin dictionary a
// dwgrepq session registers by default: the core operators, every DWARF
// domain constant, the per-attribute/tag/form sugar, and the expr builtin.
// domainOverrides additionally aliases an existing builtin name to a
// caller-supplied name (config.Config.DomainOverrides); a nil or empty map
// registers none.
func NewStandardDictionary(graph *dwarfgraph.Graph, domainOverrides map[string]string) (*Dictionary, error) {
	dict := NewDictionary()
	if err := RegisterCore(dict, graph); err != nil {
		return nil, err
	}
	if err := RegisterDomainConstants(dict); err != nil {
		return nil, err
	}
	if err := RegisterAttributeSugar(dict, graph); err != nil {
		return nil, err
	}
	if err := RegisterTagSugar(dict); err != nil {
		return nil, err
	}
	if err := RegisterFormSugar(dict); err != nil {
		return nil, err
	}
	if err := RegisterExpr(dict); err != nil {
		return nil, err
	}
	if err := RegisterDomainOverrides(dict, domainOverrides); err != nil {
		return nil, err
	}
	return dict, nil
}
