package graph

import (
	"fmt"

	"github.com/wakegrid/wakegrid/pkg/types"
)

// UndefinedDependencyError reports a depends entry that names no
// configured node.
type UndefinedDependencyError struct {
	Name string
}

func (e *UndefinedDependencyError) Error() string {
	return fmt.Sprintf("found undefined dependency: %s", e.Name)
}

// CircularDependencyError reports a dependency cycle. Name is the node
// whose recursive re-entry closed the cycle under depth-first traversal
// seeded in input order. That choice is deterministic, but not
// necessarily the first node of the cycle as written in the configuration.
type CircularDependencyError struct {
	Name string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("found circular dependency: %s", e.Name)
}

// Sort returns the nodes in activation order: every node appears after
// all of its transitive dependencies. The order is deterministic:
// depth-first over the input order, recursing into each node's depends
// list in its written order, so independent nodes keep their relative
// input positions.
//
// Sort fails on the first undefined or circular dependency it
// encounters and never returns a partial order. It does not mutate its
// input. Depth-first recursion is bounded by the longest dependency
// chain, which is fine for configuration-sized graphs.
func Sort(nodes []*types.Node) ([]*types.Node, error) {
	byName := make(map[string]*types.Node, len(nodes))
	for _, n := range nodes {
		byName[n.Name] = n
	}

	// Classic DFS topological sort: "visiting" holds the current
	// recursion stack for cycle detection, "visited" memoizes nodes
	// already emitted.
	visited := make(map[string]bool, len(nodes))
	visiting := make(map[string]bool)
	sorted := make([]*types.Node, 0, len(nodes))

	var visit func(n *types.Node) error
	visit = func(n *types.Node) error {
		if visiting[n.Name] {
			return &CircularDependencyError{Name: n.Name}
		}
		if visited[n.Name] {
			return nil
		}

		visiting[n.Name] = true
		for _, dep := range n.Depends {
			depNode, ok := byName[dep]
			if !ok {
				return &UndefinedDependencyError{Name: dep}
			}
			if err := visit(depNode); err != nil {
				return err
			}
		}
		delete(visiting, n.Name)
		visited[n.Name] = true

		sorted = append(sorted, n)
		return nil
	}

	for _, n := range nodes {
		if !visited[n.Name] {
			if err := visit(n); err != nil {
				return nil, err
			}
		}
	}

	return sorted, nil
}
