package fof

// nodePairFunc is invoked once per node pair whose minimum box separation
// is within the search radius. Returning true asks the traversal to open
// the pair's children; returning false marks the pair fully handled.
type nodePairFunc func(a, b int) bool

// pointPairFunc receives one qualifying point pair. Returning false stops
// the enumeration for the current node pair.
type pointPairFunc func(i, j int) bool

// enumNodePairs drives an always-open dual-tree traversal from the
// (root, root) pair. Node pairs are pruned only by the lower-bound
// separation test; there is no upper-bound early accept, so every
// surviving pair reaches the visitor and all finer-grained geometric
// filtering is left to the visitor and to point-pair enumeration.
//
// Each unordered node pair is visited at most once: self pairs open into
// (left,left), (left,right), (right,right), and distinct pairs open the
// side with the larger point range.
func enumNodePairs(t GroupTree, maxr2 float64, visit nodePairFunc) {
	enumNodePairsFrom(t, 0, 0, maxr2, visit)
}

func enumNodePairsFrom(t GroupTree, a, b int, maxr2 float64, visit nodePairFunc) {
	if t.MinRdistDual(a, b) > maxr2 {
		return
	}
	if !visit(a, b) {
		return
	}

	nodes := t.NodeDataArray()

	if a == b {
		if nodes[a].IsLeaf {
			return
		}
		left, right := t.ChildNodes(a)
		enumNodePairsFrom(t, left, left, maxr2, visit)
		enumNodePairsFrom(t, left, right, maxr2, visit)
		enumNodePairsFrom(t, right, right, maxr2, visit)
		return
	}

	aLeaf := nodes[a].IsLeaf
	bLeaf := nodes[b].IsLeaf
	if aLeaf && bLeaf {
		return
	}

	// Open the side with the larger point range, falling back to the
	// non-leaf side.
	openA := !aLeaf
	if openA && !bLeaf {
		openA = nodes[a].IdxEnd-nodes[a].IdxStart >= nodes[b].IdxEnd-nodes[b].IdxStart
	}
	if openA {
		left, right := t.ChildNodes(a)
		enumNodePairsFrom(t, left, b, maxr2, visit)
		enumNodePairsFrom(t, right, b, maxr2, visit)
	} else {
		left, right := t.ChildNodes(b)
		enumNodePairsFrom(t, a, left, maxr2, visit)
		enumNodePairsFrom(t, a, right, maxr2, visit)
	}
}

// enumPointPairs enumerates point pairs between the ranges of nodes a and
// b whose squared distance is at most maxr2, invoking visit once per
// qualifying pair with original point indices. With excludeSelf set,
// identical-point pairs are skipped and, for a self node pair, each
// unordered pair is reported once.
func enumPointPairs(t GroupTree, a, b int, maxr2 float64, excludeSelf bool, visit pointPairFunc) {
	data := t.Data()
	ind := t.IdxArray()
	na := t.NodeDataArray()[a]
	nb := t.NodeDataArray()[b]

	for pa := na.IdxStart; pa < na.IdxEnd; pa++ {
		i := ind[pa]
		pbStart := nb.IdxStart
		if a == b && excludeSelf {
			pbStart = pa + 1
		}
		for pb := pbStart; pb < nb.IdxEnd; pb++ {
			j := ind[pb]
			if excludeSelf && i == j {
				continue
			}
			if dist2(data, i, j) <= maxr2 {
				if !visit(i, j) {
					return
				}
			}
		}
	}
}
