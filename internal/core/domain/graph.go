// Package domain contains the core model of the HorizonScript toolchain:
// parsed documents, diagnostics, plans and the physical step graph.
package domain

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Step is one physical operation in the dependency graph, such as creating a
// partition or mounting a filesystem.
type Step struct {
	Ref  EntryRef
	Line int
	// Rank is the phase of the step's key. Lower ranks run first among ready steps.
	Rank int
	// Group and Seq order steps of equal rank, for example a device and a partition number.
	Group string
	Seq   int
	Deps  []EntryRef
}

func (s Step) String() string {
	return fmt.Sprintf("%s[%d]@%d", s.Ref.Key, s.Ref.Index, s.Line)
}

// Graph is a dependency graph of physical steps.
type Graph struct {
	steps          map[EntryRef]*Step
	insertion      []EntryRef
	executionOrder []EntryRef
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		steps: make(map[EntryRef]*Step),
	}
}

// AddStep adds a step to the graph.
// It returns an error if a step for the same entry already exists.
func (g *Graph) AddStep(s Step) error {
	if _, exists := g.steps[s.Ref]; exists {
		return Tag(ErrStepAlreadyExists, "step", s.String())
	}
	s.Deps = slices.Clone(s.Deps)
	g.steps[s.Ref] = &s
	g.insertion = append(g.insertion, s.Ref)
	return nil
}

// AddDependency records that step depends on dep. Both must already be in the graph.
func (g *Graph) AddDependency(step, dep EntryRef) error {
	s, ok := g.steps[step]
	if !ok {
		return Tag(ErrMissingDependency, "dependency", fmt.Sprintf("%s[%d]", step.Key, step.Index))
	}
	if _, ok := g.steps[dep]; !ok {
		return Tag(ErrMissingDependency, "dependency", fmt.Sprintf("%s[%d]", dep.Key, dep.Index))
	}
	if step == dep {
		return g.buildCycleError([]EntryRef{step}, dep)
	}
	if slices.Contains(s.Deps, dep) {
		return nil
	}
	s.Deps = append(s.Deps, dep)
	return nil
}

// Len returns the number of steps.
func (g *Graph) Len() int {
	return len(g.steps)
}

// Validate orders the graph topologically. Among steps whose dependencies are
// satisfied, the one with the lowest (Rank, Group, Seq, Line) runs first, so
// the order does not depend on insertion order.
func (g *Graph) Validate() error {
	g.executionOrder = make([]EntryRef, 0, len(g.steps))
	indegree := make(map[EntryRef]int, len(g.steps))
	dependents := make(map[EntryRef][]EntryRef, len(g.steps))

	for _, ref := range g.insertion {
		s := g.steps[ref]
		for _, dep := range s.Deps {
			if _, ok := g.steps[dep]; !ok {
				return Tag(ErrMissingDependency, "dependency", fmt.Sprintf("%s[%d]", dep.Key, dep.Index))
			}
			indegree[ref]++
			dependents[dep] = append(dependents[dep], ref)
		}
	}

	var ready []*Step
	for _, ref := range g.insertion {
		if indegree[ref] == 0 {
			ready = append(ready, g.steps[ref])
		}
	}

	for len(ready) > 0 {
		slices.SortStableFunc(ready, compareSteps)
		next := ready[0]
		ready = ready[1:]
		g.executionOrder = append(g.executionOrder, next.Ref)

		for _, ref := range dependents[next.Ref] {
			indegree[ref]--
			if indegree[ref] == 0 {
				ready = append(ready, g.steps[ref])
			}
		}
	}

	if len(g.executionOrder) != len(g.steps) {
		return g.findCycle(indegree)
	}
	return nil
}

func compareSteps(a, b *Step) int {
	return cmp.Or(
		cmp.Compare(a.Rank, b.Rank),
		strings.Compare(a.Group, b.Group),
		cmp.Compare(a.Seq, b.Seq),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Ref.Index, b.Ref.Index),
	)
}

// findCycle walks the steps Kahn's algorithm could not release and reports one cycle.
func (g *Graph) findCycle(indegree map[EntryRef]int) error {
	visited := make(map[EntryRef]int) // 0: unvisited, 1: visiting, 2: visited
	var path []EntryRef
	var cycleErr error

	var visit func(u EntryRef) bool
	visit = func(u EntryRef) bool {
		visited[u] = 1
		path = append(path, u)
		for _, dep := range g.steps[u].Deps {
			if visited[dep] == 1 {
				cycleErr = g.buildCycleError(path, dep)
				return true
			}
			if visited[dep] == 0 && visit(dep) {
				return true
			}
		}
		visited[u] = 2
		path = path[:len(path)-1]
		return false
	}

	for _, ref := range g.insertion {
		if indegree[ref] > 0 && visited[ref] == 0 && visit(ref) {
			return cycleErr
		}
	}
	return Tag(ErrCycleDetected, "cycle", "unknown")
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []EntryRef, dep EntryRef) error {
	startIdx := slices.Index(path, dep)
	if startIdx < 0 {
		startIdx = 0
	}
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, ref := range path[startIdx:] {
		parts = append(parts, g.steps[ref].String())
	}
	parts = append(parts, g.steps[dep].String())
	return Tag(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields steps in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, ref := range g.executionOrder {
			if !yield(*g.steps[ref]) {
				return
			}
		}
	}
}
