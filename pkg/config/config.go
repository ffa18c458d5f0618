package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wakegrid/wakegrid/pkg/graph"
	"github.com/wakegrid/wakegrid/pkg/types"
)

// Load reads a node list from a YAML file, validates it and returns the
// nodes in dependency-resolved activation order.
//
// Errors are one of *ParseError, *BadHealthCheckError,
// *graph.UndefinedDependencyError or *graph.CircularDependencyError,
// all fatal: no partial order is ever returned.
func Load(path string) ([]*types.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return Parse(data)
}

// Parse decodes, validates and orders a YAML node list.
func Parse(data []byte) ([]*types.Node, error) {
	var nodes []*types.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := Validate(nodes); err != nil {
		return nil, err
	}

	// Topological sort decides the wake order; undefined and circular
	// dependencies surface here.
	return graph.Sort(nodes)
}
