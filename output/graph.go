//
// Tencent is pleased to support the open source community by making trpc-flow-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-flow-go is licensed under the Apache License Version 2.0.
//
//

package output

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUpstreamNotResolved is returned when an API node's upstream data node
// exists but its output format has no resolved value in the bag.
var ErrUpstreamNotResolved = errors.New("upstream result not resolved")

// ErrNoUpstreamData is returned when an API node has no upstream json data
// node in the connection map.
var ErrNoUpstreamData = errors.New("no upstream data node")

// ConnectionMap is the caller-declared adjacency between nodes. Targets maps
// a source node id to the node ids it feeds; Sources is the inverse, listing
// the declared sourceNodes per target. The engine assumes small acyclic
// graphs supplied by the editor and performs no cycle detection.
type ConnectionMap struct {
	Targets map[string][]string `json:"targets,omitempty"`
	Sources map[string][]string `json:"sources,omitempty"`
}

// SourcesOf returns the upstream node ids of the given node. The declared
// sourceNodes list wins; when absent the adjacency is scanned in reverse.
func (c ConnectionMap) SourcesOf(nodeID string) []string {
	if sources, ok := c.Sources[nodeID]; ok && len(sources) > 0 {
		return sources
	}
	var sources []string
	for source, targets := range c.Targets {
		for _, target := range targets {
			if target == nodeID {
				sources = append(sources, source)
				break
			}
		}
	}
	// Reverse scans over a map need a stable order for deterministic
	// resolution.
	sort.Strings(sources)
	return sources
}

// Graph resolves which upstream result feeds each sink node.
type Graph struct {
	nodes       map[string]Node
	order       []string
	connections ConnectionMap
}

// NewGraph builds a Graph from validated nodes and the caller's connection
// map. Node order is preserved for deterministic iteration.
func NewGraph(nodes []Node, connections ConnectionMap) *Graph {
	g := &Graph{
		nodes:       make(map[string]Node, len(nodes)),
		order:       make([]string, 0, len(nodes)),
		connections: connections,
	}
	for _, node := range nodes {
		if _, exists := g.nodes[node.ID]; !exists {
			g.order = append(g.order, node.ID)
		}
		g.nodes[node.ID] = node
	}
	return g
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// NodesOfType returns all nodes of the given type in declaration order.
func (g *Graph) NodesOfType(nodeType NodeType) []Node {
	var nodes []Node
	for _, id := range g.order {
		if node := g.nodes[id]; node.Type == nodeType {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// Upstream returns the known upstream nodes of the given node.
func (g *Graph) Upstream(nodeID string) []Node {
	var nodes []Node
	for _, id := range g.connections.SourcesOf(nodeID) {
		if node, ok := g.nodes[id]; ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// ResolveAPIBody finds the request body for an API node: the resolved result
// of the upstream json data node's declared format. Resolution is strict.
// Only the node's declared upstream counts, and an upstream whose format has
// not resolved yields ErrUpstreamNotResolved rather than a substitute value
// from elsewhere in the bag.
func (g *Graph) ResolveAPIBody(node Node, bag Bag) (any, error) {
	if node.Type != NodeTypeAPI {
		return nil, fmt.Errorf("node %q is not an api node", node.ID)
	}
	for _, upstream := range g.Upstream(node.ID) {
		if upstream.Type != NodeTypeJSON {
			continue
		}
		format := FormatJSON
		if settings, ok := upstream.Settings.(DataSettings); ok && settings.Format != "" {
			format = settings.Format
		}
		result, ok := bag.Get(format)
		if !ok || !result.Resolved() {
			return nil, fmt.Errorf("node %q: %w: upstream %q format %q",
				node.ID, ErrUpstreamNotResolved, upstream.ID, format)
		}
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("node %q: upstream %q resolved to an error: %w",
				node.ID, upstream.ID, err)
		}
		value, _ := result.Value()
		return value, nil
	}
	return nil, fmt.Errorf("node %q: %w", node.ID, ErrNoUpstreamData)
}
