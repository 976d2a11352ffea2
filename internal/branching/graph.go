// Package branching compiles field visibility rules into a dependency
// graph. Rules are parsed once at load time; the graph is then consulted
// on every answer change.
package branching

import (
	"errors"
	"strings"

	"github.com/abhisek/delectable/internal/catalog"
)

// Edge ties a dependent field's visibility to another field's answer.
// The dependent is shown only while the referenced field holds Expected.
type Edge struct {
	Dependent  string
	Referenced string
	Expected   int
}

// Graph holds one edge per field with branching logic plus a reverse
// index from referenced field to its dependents.
type Graph struct {
	edges       []Edge
	byDependent map[string]int
	byReference map[string][]int
}

// Compile parses the branching logic of every field. All malformed
// expressions are reported together as *ParseError values.
func Compile(fields []catalog.FieldSpec) (*Graph, error) {
	g := &Graph{
		byDependent: make(map[string]int),
		byReference: make(map[string][]int),
	}

	var errs []error
	for _, f := range fields {
		if !f.HasBranchingLogic() {
			continue
		}
		expr := *f.BranchingLogic
		if strings.TrimSpace(expr) == "" {
			errs = append(errs, &ParseError{Field: f.Name, Expr: expr, Reason: "empty expression"})
			continue
		}

		ref, expected, err := Parse(expr)
		if err != nil {
			errs = append(errs, &ParseError{Field: f.Name, Expr: expr, Reason: "want \"[field] = value\"", Err: err})
			continue
		}
		if ref == f.Name {
			errs = append(errs, &ParseError{Field: f.Name, Expr: expr, Reason: "field references itself"})
			continue
		}

		i := len(g.edges)
		g.edges = append(g.edges, Edge{Dependent: f.Name, Referenced: ref, Expected: expected})
		g.byDependent[f.Name] = i
		g.byReference[ref] = append(g.byReference[ref], i)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return g, nil
}

// Edges returns every edge in catalog order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Dependents returns the edges gated by ref, in catalog order.
func (g *Graph) Dependents(ref string) []Edge {
	idx := g.byReference[ref]
	out := make([]Edge, len(idx))
	for i, j := range idx {
		out[i] = g.edges[j]
	}
	return out
}

// EdgeOf returns the edge gating field, if it has one.
func (g *Graph) EdgeOf(field string) (Edge, bool) {
	i, ok := g.byDependent[field]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Chains returns edges whose referenced field is itself gated. Hiding the
// middle field does not re-evaluate the edges downstream of it.
func (g *Graph) Chains() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if _, gated := g.byDependent[e.Referenced]; gated {
			out = append(out, e)
		}
	}
	return out
}
