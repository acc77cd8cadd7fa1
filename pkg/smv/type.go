// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package smv

import (
	"fmt"
	"strings"
)

// TypeExpr is the declared domain of a variable.
type TypeExpr interface {
	Node
	typeExpr()
	String() string
}

// BoolType is the boolean domain.
type BoolType struct {
	KwPos Pos
}

func (t *BoolType) Pos() Pos       { return t.KwPos }
func (*BoolType) typeExpr()        {}
func (t *BoolType) String() string { return "boolean" }

// EnumValue is one member of an enumerated domain: a symbolic constant or an
// integer literal.
type EnumValue struct {
	ValuePos Pos
	Name     string // symbolic value, empty if numeric
	Number   int    // numeric value, valid if Name == ""
}

func (v EnumValue) IsNumber() bool { return v.Name == "" }

func (v EnumValue) String() string {
	if v.IsNumber() {
		return fmt.Sprintf("%d", v.Number)
	}
	return v.Name
}

// EnumType is an enumerated domain {v1, v2, ...}.
type EnumType struct {
	Lbrace Pos
	Values []EnumValue
}

func (t *EnumType) Pos() Pos { return t.Lbrace }
func (*EnumType) typeExpr()  {}

func (t *EnumType) String() string {
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		parts[i] = v.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// RangeType is an integer interval domain lo..hi.
type RangeType struct {
	LoPos  Pos
	Lo, Hi int
}

func (t *RangeType) Pos() Pos       { return t.LoPos }
func (*RangeType) typeExpr()        {}
func (t *RangeType) String() string { return fmt.Sprintf("%d..%d", t.Lo, t.Hi) }

// InstanceType declares a variable as an instance of another module.
type InstanceType struct {
	NamePos Pos
	Module  string
	Args    []Expr
}

func (t *InstanceType) Pos() Pos { return t.NamePos }
func (*InstanceType) typeExpr()  {}

func (t *InstanceType) String() string {
	if len(t.Args) == 0 {
		return t.Module
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = ExprString(a)
	}
	return t.Module + "(" + strings.Join(parts, ", ") + ")"
}
