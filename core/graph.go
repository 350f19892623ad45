package core

import (
	"fmt"
	"strings"

	"github.com/nfi-health/assess/schema"
)

// Graph is the parent->children dependency graph of a checklist.
// A parent is any item or choice group read by a rule gating another element.
type Graph struct {
	Order    []schema.Element              // elements in topological order, parents first
	Children map[schema.Ref][]schema.Ref   // direct dependents of each element
	Fields   map[string][]schema.Ref       // elements gated by each scalar field
	index    map[schema.Ref]schema.Element // element lookup
}

// BuildGraph derives the dependency graph of a checklist.
// It fails when an element depends on itself, directly or through other elements.
func BuildGraph(cl *schema.Checklist) (*Graph, error) {
	elements := cl.Elements()
	g := &Graph{
		Children: make(map[schema.Ref][]schema.Ref),
		Fields:   make(map[string][]schema.Ref),
		index:    make(map[schema.Ref]schema.Element, len(elements)),
	}
	for _, e := range elements {
		g.index[e.Ref()] = e
	}

	indegree := make(map[schema.Ref]int, len(elements))
	for _, e := range elements {
		seen := make(map[schema.Ref]bool)
		for _, r := range e.Rules {
			for _, ref := range r.Refs() {
				if seen[ref] {
					continue
				}
				seen[ref] = true
				if ref.IsField() {
					g.Fields[ref.Key] = append(g.Fields[ref.Key], e.Ref())
					continue
				}
				if _, ok := g.index[ref]; !ok {
					continue
				}
				g.Children[ref] = append(g.Children[ref], e.Ref())
				indegree[e.Ref()]++
			}
		}
	}

	// Kahn's algorithm, seeded in declaration order so the result is stable.
	queue := make([]schema.Ref, 0, len(elements))
	for _, e := range elements {
		if indegree[e.Ref()] == 0 {
			queue = append(queue, e.Ref())
		}
	}
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]
		g.Order = append(g.Order, g.index[ref])
		for _, child := range g.Children[ref] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(g.Order) != len(elements) {
		var cyclic []string
		for _, e := range elements {
			if indegree[e.Ref()] > 0 {
				cyclic = append(cyclic, e.Ref().String())
			}
		}
		return nil, fmt.Errorf("checklist %s has cyclic rules between %s", cl.ID, strings.Join(cyclic, ", "))
	}
	return g, nil
}

// Element returns the element at ref.
func (g *Graph) Element(ref schema.Ref) (schema.Element, bool) {
	e, ok := g.index[ref]
	return e, ok
}

// Dependents returns every element that transitively depends on ref, in topological order.
func (g *Graph) Dependents(ref schema.Ref) []schema.Ref {
	reached := make(map[schema.Ref]bool)
	var walk func(schema.Ref)
	walk = func(r schema.Ref) {
		for _, child := range g.Children[r] {
			if !reached[child] {
				reached[child] = true
				walk(child)
			}
		}
	}
	if ref.IsField() {
		for _, child := range g.Fields[ref.Key] {
			if !reached[child] {
				reached[child] = true
				walk(child)
			}
		}
	} else {
		walk(ref)
	}

	var out []schema.Ref
	for _, e := range g.Order {
		if reached[e.Ref()] {
			out = append(out, e.Ref())
		}
	}
	return out
}

// ValidateChecklist runs structural validation and rejects cyclic rules.
func ValidateChecklist(cl *schema.Checklist) error {
	if err := cl.Validate(); err != nil {
		return err
	}
	_, err := BuildGraph(cl)
	return err
}
