// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

// Package report renders human-readable reports from a parsed and analyzed
// model. The builtin report is a markdown summary; callers can substitute
// their own text/template with [sprig] functions plus model helpers.
//
//	exprString EXPR   canonical rendering of an expression node
//	domainSize TYPE   number of values in a declared domain, 0 for instances
//
// [sprig]: https://masterminds.github.io/sprig/
package report

import (
	_ "embed"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/LouvainVerificationLab/smvkit/pkg/analysis"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

//go:embed templates/summary.tmpl.md
var summaryTmpl string

// Data is the root value available to report templates.
type Data struct {
	Model       *smv.Model           `json:"-"`
	Summary     *Summary             `json:"summary"`
	Stats       *analysis.Stats      `json:"stats"`
	Diagnostics analysis.Diagnostics `json:"diagnostics,omitempty"`
}

// New analyzes a model and prepares report data.
func New(model *smv.Model) *Data {
	return &Data{
		Model:       model,
		Summary:     summarize(model),
		Stats:       analysis.NewStats(model),
		Diagnostics: analysis.Analyze(model).Diagnostics,
	}
}

// Write renders the builtin markdown summary.
func (d *Data) Write(out io.Writer) error { return d.WriteTemplate(out, summaryTmpl) }

// WriteTemplate renders a user template with d as its data.
func (d *Data) WriteTemplate(out io.Writer, text string) error {
	tmpl, err := template.New("report").Funcs(funcs()).Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(out, d)
}

func funcs() template.FuncMap {
	f := sprig.TxtFuncMap()
	f["exprString"] = smv.ExprString
	f["domainSize"] = analysis.DomainSize
	return f
}

// Summary is a flattened, template-friendly view of a model.
type Summary struct {
	File    string          `json:"file,omitempty"`
	Modules []ModuleSummary `json:"modules"`
}

type ModuleSummary struct {
	Name        string               `json:"name"`
	Params      []string             `json:"params,omitempty"`
	Vars        []VarLine            `json:"vars,omitempty"`
	Defines     []NamedExpr          `json:"defines,omitempty"`
	Assigns     []NamedExpr          `json:"assigns,omitempty"`
	Constraints []KindExpr           `json:"constraints,omitempty"`
	Fairness    []KindExpr           `json:"fairness,omitempty"`
	Specs       []KindExpr           `json:"specs,omitempty"`
	Stats       analysis.ModuleStats `json:"stats"`
}

// VarLine describes one variable declaration.
type VarLine struct {
	Kind   string `json:"kind"` // VAR, IVAR or FROZENVAR
	Name   string `json:"name"`
	Type   string `json:"type"`
	Domain int    `json:"domain"` // 0 for module instances
}

// NamedExpr is a define or assignment rendered as name/expression text.
type NamedExpr struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

// KindExpr is a constraint, fairness declaration or spec assertion.
type KindExpr struct {
	Kind string `json:"kind"`
	Expr string `json:"expr"`
}

func summarize(model *smv.Model) *Summary {
	st := analysis.NewStats(model)
	s := &Summary{File: model.File}
	for i, m := range model.Modules {
		ms := ModuleSummary{Name: m.Name, Params: m.Params, Stats: st.Modules[i]}
		for _, sec := range m.Sections {
			switch sec := sec.(type) {
			case *smv.VarSection:
				for _, d := range sec.Decls {
					ms.Vars = append(ms.Vars, VarLine{
						Kind:   sec.Kind.String(),
						Name:   d.Name,
						Type:   d.Type.String(),
						Domain: analysis.DomainSize(d.Type),
					})
				}
			case *smv.DefineSection:
				for _, d := range sec.Decls {
					ms.Defines = append(ms.Defines, NamedExpr{Name: d.Name, Expr: smv.ExprString(d.Body)})
				}
			case *smv.AssignSection:
				for _, a := range sec.Assigns {
					name := a.Name
					switch a.Kind {
					case smv.AssignInit:
						name = "init(" + name + ")"
					case smv.AssignNext:
						name = "next(" + name + ")"
					}
					ms.Assigns = append(ms.Assigns, NamedExpr{Name: name, Expr: smv.ExprString(a.Rhs)})
				}
			case *smv.ConstraintSection:
				ms.Constraints = append(ms.Constraints, KindExpr{Kind: sec.Kind.String(), Expr: smv.ExprString(sec.Expr)})
			case *smv.FairnessSection:
				expr := smv.ExprString(sec.Expr)
				if sec.Second != nil {
					expr = "(" + expr + ", " + smv.ExprString(sec.Second) + ")"
				}
				ms.Fairness = append(ms.Fairness, KindExpr{Kind: sec.Keyword, Expr: expr})
			case *smv.SpecSection:
				ms.Specs = append(ms.Specs, KindExpr{Kind: sec.Kind.String(), Expr: smv.ExprString(sec.Expr)})
			}
		}
		s.Modules = append(s.Modules, ms)
	}
	return s
}
