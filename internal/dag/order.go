package dag

import "container/heap"

type stringMinHeap []string

func (h stringMinHeap) Len() int           { return len(h) }
func (h stringMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h stringMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *stringMinHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *stringMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopologicalOrder returns every node such that each appears after all of
// its dependencies. Among nodes that are ready at the same time the
// lexicographically smallest goes first, which makes the order deterministic.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mutex.RLock()
	indeg := make(map[string]int, len(g.nodes))
	ready := &stringMinHeap{}
	for id, n := range g.nodes {
		indeg[id] = len(n.deps)
		if len(n.deps) == 0 {
			*ready = append(*ready, id)
		}
	}
	heap.Init(ready)

	out := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(string)
		out = append(out, id)
		for next := range g.nodes[id].dependents {
			indeg[next]--
			if indeg[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}
	total := len(g.nodes)
	g.mutex.RUnlock()

	if len(out) != total {
		// Unreachable through AddEdge, but report the witness if it happens.
		return nil, g.DetectCycles()
	}
	return out, nil
}
