// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package printer renders the syntax tree back to canonical SMV source.
//
// The layout is deterministic: one declaration per line, four-space section
// indent, minimal parentheses. Reparsing the output yields a tree equal to
// the input (up to positions). Comments attached to declarations are kept;
// free-standing trailing comments are not.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

const indent = "    "

// Fprint writes the canonical rendering of the model to w.
func Fprint(w io.Writer, m *smv.Model) error {
	p := &printer{w: &strings.Builder{}}
	p.model(m)
	_, err := io.WriteString(w, p.w.String())
	return err
}

// String returns the canonical rendering of the model.
func String(m *smv.Model) string {
	b := &strings.Builder{}
	_ = Fprint(b, m)
	return b.String()
}

type printer struct {
	w *strings.Builder
}

func (p *printer) printf(format string, args ...any) { fmt.Fprintf(p.w, format, args...) }

func (p *printer) doc(prefix string, doc []string) {
	for _, c := range doc {
		if c == "" {
			p.printf("%v--\n", prefix)
		} else {
			p.printf("%v-- %v\n", prefix, c)
		}
	}
}

func (p *printer) model(m *smv.Model) {
	for i, d := range m.Modules {
		if i > 0 {
			p.printf("\n")
		}
		p.module(d)
	}
}

func (p *printer) module(d *smv.ModuleDecl) {
	p.doc("", d.Doc)
	p.printf("MODULE %v", d.Name)
	if len(d.Params) > 0 {
		p.printf("(%v)", strings.Join(d.Params, ", "))
	}
	p.printf("\n")
	for _, s := range d.Sections {
		p.section(s)
	}
}

func (p *printer) section(s smv.Section) {
	switch s := s.(type) {
	case *smv.VarSection:
		p.printf("%v%v\n", indent, s.Kind)
		for _, d := range s.Decls {
			p.doc(indent+indent, d.Doc)
			p.printf("%v%v : %v;\n", indent+indent, d.Name, d.Type)
		}
	case *smv.DefineSection:
		p.printf("%vDEFINE\n", indent)
		for _, d := range s.Decls {
			p.doc(indent+indent, d.Doc)
			p.printf("%v%v := %v;\n", indent+indent, d.Name, smv.ExprString(d.Body))
		}
	case *smv.ConstantsSection:
		p.printf("%vCONSTANTS %v;\n", indent, strings.Join(s.Names, ", "))
	case *smv.AssignSection:
		p.printf("%vASSIGN\n", indent)
		for _, a := range s.Assigns {
			p.doc(indent+indent, a.Doc)
			switch a.Kind {
			case smv.AssignInit:
				p.printf("%vinit(%v) := %v;\n", indent+indent, a.Name, smv.ExprString(a.Rhs))
			case smv.AssignNext:
				p.printf("%vnext(%v) := %v;\n", indent+indent, a.Name, smv.ExprString(a.Rhs))
			default:
				p.printf("%v%v := %v;\n", indent+indent, a.Name, smv.ExprString(a.Rhs))
			}
		}
	case *smv.ConstraintSection:
		p.doc(indent, s.Doc)
		p.printf("%v%v\n%v%v\n", indent, s.Kind, indent+indent, p.multiline(s.Expr))
	case *smv.FairnessSection:
		p.doc(indent, s.Doc)
		if s.Kind == smv.FairnessCompassion {
			p.printf("%v%v (%v, %v)\n", indent, s.Keyword, smv.ExprString(s.Expr), smv.ExprString(s.Second))
		} else {
			p.printf("%v%v %v\n", indent, s.Keyword, smv.ExprString(s.Expr))
		}
	case *smv.SpecSection:
		p.doc(indent, s.Doc)
		p.printf("%v%v\n%v%v\n", indent, s.Keyword, indent+indent, smv.ExprString(s.Expr))
	case *smv.IsaSection:
		p.printf("%vISA %v\n", indent, s.Name)
	}
}

// multiline renders case expressions across lines; anything else renders flat.
func (p *printer) multiline(e smv.Expr) string {
	c, ok := e.(*smv.CaseExpr)
	if !ok {
		return smv.ExprString(e)
	}
	b := &strings.Builder{}
	b.WriteString("case\n")
	for _, arm := range c.Arms {
		fmt.Fprintf(b, "%v%v : %v;\n", indent+indent+indent,
			smv.ExprString(arm.Cond), smv.ExprString(arm.Value))
	}
	b.WriteString(indent + indent + "esac")
	return b.String()
}
