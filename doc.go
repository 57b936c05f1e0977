// Package fof implements friends-of-friends (FOF) group finding: connected
// components over a set of 3-d points, where two points are linked whenever
// their separation is at most a fixed linking length and a group is the
// transitive closure of that relation.
//
// Edges are discovered with a dual-tree traversal over a KD-tree rather than
// by testing all O(n²) point pairs, and components are tracked in a
// disjoint-set forest with path compression. Before the traversal, subtrees
// whose bounding-box diagonal already fits within the linking length are
// linked wholesale, which collapses the pairwise work inside dense regions
// to a single representative link per node pair.
//
// Basic usage:
//
//	head, stats, err := fof.Groups(points, 0.2, fof.DefaultConfig())
//	// head[i] == head[j] iff points i and j are in the same group
//
// Callers that retain the tree can run against it directly with a reusable
// output array:
//
//	tree := fof.NewKDTree(points, 32)
//	head := make([]int, tree.NumPoints())
//	stats, err := fof.FindGroups(tree, 0.2, head, fof.DefaultConfig())
//
// Group labels are component root indices, not sequential ids: head[i] is
// the index of some member of i's group, and labels are only meaningful for
// equality comparison within a single run.
package fof
