package resolver

import (
	"slices"

	"github.com/trebuchet-org/ovault-cli/internal/domain"
)

// dependencyGraph is the artifact DAG of a plan
type dependencyGraph struct {
	nodes map[string]domain.ArtifactSpec
	edges map[string][]string // adjacency list: artifact -> artifacts depending on it
}

func newDependencyGraph(artifacts map[string]domain.ArtifactSpec) *dependencyGraph {
	graph := &dependencyGraph{
		nodes: artifacts,
		edges: make(map[string][]string),
	}

	for name, spec := range artifacts {
		for _, dep := range spec.Prerequisites() {
			if _, exists := artifacts[dep]; !exists {
				// reported by validation
				continue
			}
			graph.edges[dep] = append(graph.edges[dep], name)
		}
	}

	return graph
}

// topologicalSort orders artifacts so that prerequisites come first. Ties are
// broken lexicographically so the same plan always yields the same order.
func (g *dependencyGraph) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(g.nodes))
	for name := range g.nodes {
		inDegree[name] = 0
	}

	for name, spec := range g.nodes {
		for _, dep := range spec.Prerequisites() {
			if _, exists := g.nodes[dep]; !exists {
				return nil, domain.NewConfigurationError(0, name, "depends on unknown artifact %q", dep)
			}
			inDegree[name]++
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	slices.Sort(queue)

	result := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		dependents := g.edges[current]
		slices.Sort(dependents)
		for _, dependent := range dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				slices.Sort(queue)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycle []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycle = append(cycle, name)
			}
		}
		slices.Sort(cycle)
		return nil, domain.NewConfigurationError(0, "", "circular dependency between artifacts %v", cycle)
	}

	return result, nil
}
