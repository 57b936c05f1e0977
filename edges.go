package fof

// checkNodes routes one candidate node pair from the dual-tree
// enumeration: the pair's boxes are within the linking length of each
// other, so it may contribute edges. The return value tells the traversal
// whether to keep opening the pair's children.
func (tr *traverse) checkNodes(t GroupTree, a, b int) bool {
	if tr.nodeConnected[a] && tr.nodeConnected[b] {
		// Both ranges are internally connected: the first in-range pair
		// merges every point in both ranges transitively, so stop the
		// enumeration as soon as one is found.
		enumPointPairs(t, a, b, tr.ll2, true, func(i, j int) bool {
			tr.stats.EdgesVisited++
			tr.merge(i, j)
			return false
		})
		return false
	}

	if tr.nodes[a].IsLeaf && tr.nodes[b].IsLeaf {
		// Terminal pair: test every cross pair exactly.
		enumPointPairs(t, a, b, tr.ll2, true, func(i, j int) bool {
			tr.stats.EdgesVisited++
			tr.merge(i, j)
			return true
		})
		return false
	}

	return true
}
