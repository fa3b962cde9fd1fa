// Package dag holds the evaluation-order graph between subprojects.
//
// Edges are only accepted while the graph stays acyclic: AddEdge refuses an
// edge that would close a cycle and reports the offending path as a
// *config.CycleError, leaving the graph unchanged. TopologicalOrder then
// yields a deterministic order (lexicographic among ready subprojects), so
// the same configuration always produces the same evaluation sequence.
package dag
