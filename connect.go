package fof

// connect is the recursive pre-pass that marks tree nodes whose entire
// point range is already one connected blob, before any edge enumeration
// runs. A node qualifies when its bounding-box diagonal is at most the
// linking length: every pair inside is then within range, so the whole
// permuted range is linked to its first point in one sweep with no
// pairwise distance tests. The converse does not hold; ranges that are
// connected but spread over a larger box fall through to ordinary
// pairwise testing.
//
// Connectivity is monotone down the tree, so a connected parent makes
// every descendant connected without retesting, and the geometric test
// runs at most once per root-to-leaf chain. Each point range is linked
// only at the topmost connected node, while every point in it is still
// its own root, which is why plain head assignment is safe here in place
// of merge.
func (tr *traverse) connect(t GroupTree, node int, parentConnected bool) {
	connected := parentConnected
	if !connected && t.MaxRdist(node) <= tr.ll2 {
		nd := tr.nodes[node]
		r := tr.ind[nd.IdxStart]
		for i := nd.IdxStart + 1; i < nd.IdxEnd; i++ {
			tr.head[tr.ind[i]] = r
		}
		connected = true
	}

	tr.nodeConnected[node] = connected
	if connected {
		tr.stats.NodesConnected++
	}

	if !tr.nodes[node].IsLeaf {
		left, right := t.ChildNodes(node)
		tr.connect(t, left, connected)
		tr.connect(t, right, connected)
	}
}
