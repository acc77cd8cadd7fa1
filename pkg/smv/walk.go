// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package smv

// Walk traverses the tree rooted at n in syntactic order, calling visit for
// each node. If visit returns false the children of n are skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch n := n.(type) {
	case *Model:
		for _, m := range n.Modules {
			Walk(m, visit)
		}
	case *ModuleDecl:
		for _, s := range n.Sections {
			Walk(s, visit)
		}
	case *VarSection:
		for _, d := range n.Decls {
			Walk(d, visit)
		}
	case *VarDecl:
		Walk(n.Type, visit)
	case *InstanceType:
		for _, a := range n.Args {
			Walk(a, visit)
		}
	case *DefineSection:
		for _, d := range n.Decls {
			Walk(d, visit)
		}
	case *DefineDecl:
		Walk(n.Body, visit)
	case *AssignSection:
		for _, a := range n.Assigns {
			Walk(a, visit)
		}
	case *Assign:
		Walk(n.Rhs, visit)
	case *ConstraintSection:
		Walk(n.Expr, visit)
	case *FairnessSection:
		Walk(n.Expr, visit)
		if n.Second != nil {
			Walk(n.Second, visit)
		}
	case *SpecSection:
		Walk(n.Expr, visit)
	case *SetExpr:
		for _, e := range n.Elems {
			Walk(e, visit)
		}
	case *Unary:
		Walk(n.X, visit)
	case *Binary:
		Walk(n.X, visit)
		Walk(n.Y, visit)
	case *Ternary:
		Walk(n.Cond, visit)
		Walk(n.Then, visit)
		Walk(n.Else, visit)
	case *NextExpr:
		Walk(n.X, visit)
	case *CaseExpr:
		for _, arm := range n.Arms {
			Walk(arm.Cond, visit)
			Walk(arm.Value, visit)
		}
	}
}
