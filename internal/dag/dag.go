package dag

import (
	"fmt"
	"slices"

	"github.com/vk/buildcfg/internal/config"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a subproject to the graph. Adding an existing name is a no-op.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// AddEdge records that toID must be evaluated after fromID. Both nodes must
// exist. If the edge would introduce a cycle (including a self edge) it is
// not recorded and a *config.CycleError describing the cycle is returned.
func (g *Graph) AddEdge(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if fromID == toID {
		return &config.CycleError{Path: []string{fromID, fromID}}
	}

	// from -> to closes a cycle iff from is already reachable from to.
	if path := g.pathLocked(toNode, fromID); path != nil {
		return &config.CycleError{Path: append([]string{fromID}, path...)}
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// pathLocked returns the node names along a dependents path from start to
// target (inclusive), or nil if target is unreachable. Neighbours are walked
// in sorted order so the reported path is stable.
func (g *Graph) pathLocked(start *node, target string) []string {
	visited := make(map[string]bool)

	var walk func(n *node) []string
	walk = func(n *node) []string {
		if n.id == target {
			return []string{n.id}
		}
		visited[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if visited[id] {
				continue
			}
			if rest := walk(n.dependents[id]); rest != nil {
				return append([]string{n.id}, rest...)
			}
		}
		return nil
	}

	return walk(start)
}

// Dependencies returns the sorted names of the nodes id depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// DetectCycles checks the whole graph for cycles and returns a
// *config.CycleError for the first one found in sorted traversal order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic three-colour DFS: permanent nodes are fully explored, nodes on
	// the stack are temporary.
	permanent := make(map[string]bool)
	var stack []string
	onStack := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if onStack[n.id] {
			start := slices.Index(stack, n.id)
			path := append(slices.Clone(stack[start:]), n.id)
			return &config.CycleError{Path: path}
		}

		onStack[n.id] = true
		stack = append(stack, n.id)

		for _, id := range sortedKeys(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
