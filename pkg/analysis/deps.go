// Copyright: This file is part of smvkit, released under https://github.com/LouvainVerificationLab/smvkit/blob/main/LICENSE

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/LouvainVerificationLab/smvkit/pkg/smv"
)

// Attrs are GraphViz attributes for rendered nodes and edges.
type Attrs map[string]string

var _ encoding.Attributer = Attrs{}

func (a Attrs) Attributes() (enc []encoding.Attribute) {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		enc = append(enc, encoding.Attribute{Key: k, Value: a[k]})
	}
	return enc
}

// DepNode is one symbol in a dependency graph.
type DepNode struct {
	simple.Node
	Symbol *Symbol
	Attrs  Attrs
}

func (n *DepNode) DOTID() string                    { return n.Symbol.Name }
func (n *DepNode) Attributes() []encoding.Attribute { return n.Attrs.Attributes() }

// DepGraph is the symbol dependency graph of one module. Nodes are variables
// and defines; an edge x -> y means the value of x at some instant depends on
// the value of y at the same instant:
//
//   - define d := e depends on every symbol in e
//   - x := e depends on every current-state symbol in e
//   - next(x) := e depends on next(y) for every next(y) in e, and on any
//     define in e whose expansion reaches a next() itself. A define without
//     next() reads current state even when referenced from a next
//     assignment, so it contributes no next-instant dependency.
//
// A cycle means no evaluation order exists for the assignments.
type DepGraph struct {
	*simple.DirectedGraph
	Module    string
	nodes     map[string]*DepNode
	selfLoops []string
}

func newDepGraph(module string) *DepGraph {
	return &DepGraph{DirectedGraph: simple.NewDirectedGraph(), Module: module, nodes: map[string]*DepNode{}}
}

func (g *DepGraph) node(sym *Symbol) *DepNode {
	if n := g.nodes[sym.Name]; n != nil {
		return n
	}
	n := &DepNode{Node: simple.Node(g.NewNode().ID()), Symbol: sym, Attrs: Attrs{}}
	if sym.Kind == SymDefine {
		n.Attrs["shape"] = "box"
	}
	g.AddNode(n)
	g.nodes[sym.Name] = n
	return n
}

// NodeFor returns the node for a symbol name, nil if the symbol never
// appeared in an assignment or define.
func (g *DepGraph) NodeFor(name string) *DepNode { return g.nodes[name] }

func (g *DepGraph) edge(from, to *DepNode) {
	if from.ID() == to.ID() {
		// simple.DirectedGraph panics on self edges
		from.Attrs["color"] = "red"
		g.selfLoops = append(g.selfLoops, from.Symbol.Name)
		return
	}
	if g.Edge(from.ID(), to.ID()) == nil {
		g.SetEdge(g.NewEdge(from, to))
	}
}

// Cycles returns the dependency cycles, each as a sorted list of symbol
// names. Self-dependencies come first, as single-element cycles.
func (g *DepGraph) Cycles() [][]string {
	var cycles [][]string
	for _, name := range g.selfLoops {
		cycles = append(cycles, []string{name})
	}
	if _, err := topo.Sort(g); err != nil {
		if u, ok := err.(topo.Unorderable); ok {
			for _, scc := range u {
				names := make([]string, len(scc))
				for i, n := range scc {
					names[i] = n.(*DepNode).Symbol.Name
				}
				sort.Strings(names)
				cycles = append(cycles, names)
			}
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		if len(cycles[i]) != len(cycles[j]) {
			return len(cycles[i]) < len(cycles[j])
		}
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// DOT renders the graph in GraphViz format.
func (g *DepGraph) DOT() ([]byte, error) {
	return dot.Marshal(g, fmt.Sprintf("%q", g.Module), "", "  ")
}

// depBuilder accumulates edges while the analyzer walks defines and
// assignments.
type depBuilder struct {
	graph *DepGraph
	scope *Scope
}

func (b *depBuilder) define(sym *Symbol) {
	from := b.graph.node(sym)
	current, next := referenced(sym.Body)
	for _, dep := range append(current, next...) {
		if to := b.lookupNode(dep); to != nil {
			b.graph.edge(from, to)
		}
	}
}

func (b *depBuilder) assign(a *smv.Assign) {
	sym := b.scope.Lookup(a.Name)
	if sym == nil {
		return
	}
	from := b.graph.node(sym)
	current, next := referenced(a.Rhs)
	if a.Kind == smv.AssignNext {
		for _, dep := range next {
			if to := b.lookupNode(dep); to != nil {
				b.graph.edge(from, to)
			}
		}
		for _, dep := range current {
			if to := b.lookupNode(dep); to != nil && to.Symbol.Kind == SymDefine &&
				b.usesNext(dep, map[string]bool{}) {
				b.graph.edge(from, to)
			}
		}
		return
	}
	// current and init assignments: same-instant references
	for _, dep := range current {
		if to := b.lookupNode(dep); to != nil {
			b.graph.edge(from, to)
		}
	}
}

// usesNext reports whether a define's expansion reaches a next(), following
// define references transitively.
func (b *depBuilder) usesNext(name string, seen map[string]bool) bool {
	sym := b.scope.Lookup(name)
	if sym == nil || sym.Kind != SymDefine || seen[sym.Name] {
		return false
	}
	seen[sym.Name] = true
	found := false
	smv.Walk(sym.Body, func(n smv.Node) bool {
		if _, ok := n.(*smv.NextExpr); ok {
			found = true
			return false
		}
		return !found
	})
	if found {
		return true
	}
	current, _ := referenced(sym.Body)
	for _, dep := range current {
		if b.usesNext(dep, seen) {
			return true
		}
	}
	return false
}

func (b *depBuilder) lookupNode(name string) *DepNode {
	sym := b.scope.Lookup(name)
	if sym == nil {
		return nil
	}
	switch sym.Kind {
	case SymState, SymInput, SymFrozen, SymDefine, SymInstance:
		return b.graph.node(sym)
	}
	return nil
}

// referenced splits the identifiers of e into those read at the current
// instant and those read inside next(), first-appearance order, first name
// segment only for dotted paths.
func referenced(e smv.Expr) (current, next []string) {
	seenCur := map[string]bool{}
	seenNext := map[string]bool{}
	var inNext bool
	var walk func(n smv.Node) bool
	walk = func(n smv.Node) bool {
		switch n := n.(type) {
		case *smv.NextExpr:
			save := inNext
			inNext = true
			smv.Walk(n.X, walk)
			inNext = save
			return false
		case *smv.Ident:
			head, _ := splitDot(n.Name)
			if inNext {
				if !seenNext[head] {
					seenNext[head] = true
					next = append(next, head)
				}
			} else if !seenCur[head] {
				seenCur[head] = true
				current = append(current, head)
			}
		}
		return true
	}
	smv.Walk(e, walk)
	return current, next
}

// joinCycle formats a cycle for a diagnostic message.
func joinCycle(names []string) string {
	if len(names) == 1 {
		return names[0] + " depends on itself"
	}
	return strings.Join(names, " <-> ")
}
