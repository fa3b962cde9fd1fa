package dag

import "sync"

// Graph records which subprojects must be evaluated before which. An edge
// from A to B means B's configuration depends on A having been evaluated.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map.
	mutex sync.RWMutex
	// nodes stores every subproject in the graph, keyed by name.
	nodes map[string]*node
}

// node is a single subproject vertex. It stays unexported so callers work
// with names through the Graph API.
type node struct {
	id string
	// deps holds the subprojects evaluated before this one (predecessors).
	deps map[string]*node
	// dependents holds the subprojects evaluated after this one (successors).
	dependents map[string]*node
}
