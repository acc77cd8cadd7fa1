// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LouvainVerificationLab/smvkit/pkg/report"
	"github.com/LouvainVerificationLab/smvkit/pkg/smv/parser"
)

const counterSMV = `
MODULE main
VAR
    busy : boolean;
    n : 0..3;
DEFINE
    full := n = 3;
ASSIGN
    next(n) := full ? 0 : n + 1;
    next(busy) := !busy;
CTLSPEC
    AG !full
`

func data(t *testing.T, src string) *report.Data {
	t.Helper()
	model, err := parser.Parse("test.smv", src)
	require.NoError(t, err)
	return report.New(model)
}

func TestWrite_Summary(t *testing.T) {
	want := `# Model summary: test.smv

## MODULE main

### Variables

| Kind | Name | Type | Domain |
|------|------|------|--------|
| VAR | ` + "`busy`" + ` | ` + "`boolean`" + ` | 2 |
| VAR | ` + "`n`" + ` | ` + "`0..3`" + ` | 4 |

### Defines

- ` + "`full := n = 3`" + `

### Assignments

- ` + "`next(n) := full ? 0 : n + 1`" + `
- ` + "`next(busy) := !busy`" + `

### Specifications

- ` + "`CTLSPEC AG !full`" + `

State space (upper bound): 8
`
	w := &strings.Builder{}
	require.NoError(t, data(t, counterSMV).Write(w))
	assert.Equal(t, want, w.String())
}

func TestWrite_Diagnostics(t *testing.T) {
	d := data(t, `
MODULE main
VAR
    b : boolean;
TRANS
    TRUE
`)
	w := &strings.Builder{}
	require.NoError(t, d.Write(w))
	assert.Contains(t, w.String(), "## Diagnostics")
	assert.Contains(t, w.String(), "TRANS TRUE constrains nothing")
}

func TestWriteTemplate_Helpers(t *testing.T) {
	// user templates can reach the AST and the model helpers
	tmpl := `{{- range .Model.Modules}}{{- range .Sections}}
{{- if eq (typeOf .) "*smv.VarSection"}}{{- range .Decls}}{{.Name}}={{domainSize .Type}};{{end}}{{end}}
{{- if eq (typeOf .) "*smv.ConstraintSection"}}{{.Kind}}:{{exprString .Expr}};{{end}}
{{- end}}{{- end}}`
	d := data(t, `
MODULE main
VAR
    state : {idle, run};
INVAR
    state = idle | state = run
`)
	w := &strings.Builder{}
	require.NoError(t, d.WriteTemplate(w, tmpl))
	assert.Equal(t, "state=2;INVAR:state = idle | state = run;", w.String())
}

func TestWriteTemplate_Sprig(t *testing.T) {
	d := data(t, counterSMV)
	w := &strings.Builder{}
	require.NoError(t, d.WriteTemplate(w, `{{(index .Summary.Modules 0).Name | upper}}`))
	assert.Equal(t, "MAIN", w.String())
}

func TestWriteTemplate_BadTemplate(t *testing.T) {
	d := data(t, counterSMV)
	assert.Error(t, d.WriteTemplate(&strings.Builder{}, `{{end}}`))
}

func TestWrite_Deterministic(t *testing.T) {
	d := data(t, counterSMV)
	a, b := &strings.Builder{}, &strings.Builder{}
	require.NoError(t, d.Write(a))
	require.NoError(t, d.Write(b))
	assert.Equal(t, a.String(), b.String())
}
