package fof

// traverse carries the mutable state of a single group-finding run: the
// caller-owned head array encoding the disjoint-set forest, the tree's
// point permutation, the transient per-node connectivity flags, and the
// work counters.
//
// head encodes a forest over point indices: head[i] == i marks a root, and
// every other entry points one step toward its component's root. Merges
// attach one root under another without a rank or size heuristic; path
// compression in splay and the spatial precompression in connect keep the
// trees shallow in practice.
type traverse struct {
	head          []int
	ind           []int // tree permutation, tree-order position → point index
	nodes         []NodeData
	nodeConnected []bool
	ll2           float64
	compression   CompressionMode
	stats         Stats
}

// splay returns the root of the component containing i, compressing the
// find path according to the configured mode. Full compression re-points
// every node on the path directly to the root; partial compression
// re-points only i itself, which is cheaper per call but lets interior
// paths regrow.
func (tr *traverse) splay(i int) int {
	depth := 0
	r := i
	for tr.head[r] != r {
		depth++
		r = tr.head[r]
	}

	if tr.compression == PartialCompression {
		tr.head[i] = r
	} else {
		for tr.head[i] != i {
			i, tr.head[i] = tr.head[i], r
		}
	}

	if depth > tr.stats.MaxDepth {
		tr.stats.MaxDepth = depth
	}
	tr.stats.TotalDepth += depth
	tr.stats.Splays++

	return r
}

// merge joins the components containing points i and j by attaching j's
// root under i's root. Correct as a no-op self-link when the roots
// already coincide.
func (tr *traverse) merge(i, j int) {
	rootI := tr.splay(i)
	rootJ := tr.splay(j)
	tr.head[rootJ] = rootI
}

// initForest makes every point its own root.
func (tr *traverse) initForest() {
	for i := range tr.head {
		tr.head[i] = i
	}
}

// finalize canonicalizes every label with one full-compression splay per
// point, so head[i] is directly the component root with no further
// pointer chasing.
func (tr *traverse) finalize() {
	mode := tr.compression
	tr.compression = FullCompression
	for i := range tr.head {
		tr.head[i] = tr.splay(i)
	}
	tr.compression = mode
}
