// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"sort"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// SymbolKind classifies a declared name inside a module.
type SymbolKind int

const (
	SymState SymbolKind = iota
	SymInput
	SymFrozen
	SymDefine
	SymConstant
	SymParam
	SymInstance
)

var symbolKindNames = map[SymbolKind]string{
	SymState: "state variable", SymInput: "input variable",
	SymFrozen: "frozen variable", SymDefine: "define",
	SymConstant: "constant", SymParam: "parameter",
	SymInstance: "module instance",
}

func (k SymbolKind) String() string { return symbolKindNames[k] }

// Symbol is one resolved declaration.
type Symbol struct {
	Name string
	Kind SymbolKind
	Pos  smv.Pos
	Type smv.TypeExpr // nil for defines, constants and params
	Body smv.Expr     // define body, nil otherwise
}

// Scope holds the symbols of one module plus the enum values its variable
// domains introduce.
type Scope struct {
	Module  *smv.ModuleDecl
	Symbols map[string]*Symbol
	// EnumValues maps each symbolic enum value to the variables whose
	// domain contains it.
	EnumValues map[string][]*Symbol
}

// Lookup resolves name in the scope. Dotted names resolve on their first
// segment: p1.waiting is in scope iff p1 is.
func (s *Scope) Lookup(name string) *Symbol {
	if sym := s.Symbols[name]; sym != nil {
		return sym
	}
	if head, rest := splitDot(name); rest != "" {
		return s.Symbols[head]
	}
	return nil
}

// IsEnumValue reports whether name is a symbolic value of some variable domain.
func (s *Scope) IsEnumValue(name string) bool { return len(s.EnumValues[name]) > 0 }

// Names returns the declared symbol names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.Symbols))
	for n := range s.Symbols {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func splitDot(name string) (head, rest string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

// buildScope collects the declarations of one module, reporting duplicates.
func buildScope(m *smv.ModuleDecl, ds *Diagnostics) *Scope {
	sc := &Scope{
		Module:     m,
		Symbols:    map[string]*Symbol{},
		EnumValues: map[string][]*Symbol{},
	}
	declare := func(sym *Symbol) {
		if prev, ok := sc.Symbols[sym.Name]; ok {
			ds.errorf(sym.Pos, CodeDupSymbol,
				"%v redeclared in module %v, previous declaration at %v as %v",
				sym.Name, m.Name, prev.Pos, prev.Kind)
			return
		}
		sc.Symbols[sym.Name] = sym
	}
	for _, p := range m.Params {
		declare(&Symbol{Name: p, Kind: SymParam, Pos: m.NamePos})
	}
	for _, s := range m.Sections {
		switch s := s.(type) {
		case *smv.VarSection:
			kind := SymState
			switch s.Kind {
			case smv.VarInput:
				kind = SymInput
			case smv.VarFrozen:
				kind = SymFrozen
			}
			for _, d := range s.Decls {
				sym := &Symbol{Name: d.Name, Kind: kind, Pos: d.NamePos, Type: d.Type}
				if _, ok := d.Type.(*smv.InstanceType); ok {
					sym.Kind = SymInstance
				}
				declare(sym)
				if e, ok := d.Type.(*smv.EnumType); ok {
					for _, v := range e.Values {
						if !v.IsNumber() {
							sc.EnumValues[v.Name] = append(sc.EnumValues[v.Name], sym)
						}
					}
				}
			}
		case *smv.DefineSection:
			for _, d := range s.Decls {
				declare(&Symbol{Name: d.Name, Kind: SymDefine, Pos: d.NamePos, Body: d.Body})
			}
		case *smv.ConstantsSection:
			for _, n := range s.Names {
				declare(&Symbol{Name: n, Kind: SymConstant, Pos: s.KwPos})
			}
		}
	}
	return sc
}
