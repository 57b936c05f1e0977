package fof

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// dims is the dimensionality of the point space. Group finding operates on
// 3-d positions.
const dims = 3

// KDTree is a KD-tree spatial index over 3-d points, used to accelerate
// friends-of-friends edge discovery. Points are stored in a flat row-major
// array and reordered internally via an index permutation array.
//
// The tree is stored as a complete binary tree in array form:
//   - node i has children at 2*i+1 and 2*i+2
//   - node bounds are stored as min/max per dimension per node
type KDTree struct {
	data     []float64 // flat row-major point data (n * dims)
	n        int       // number of points
	leafSize int
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // one entry per tree node
	// boundsMin[node*dims + d] = min coordinate d over points in node
	boundsMin []float64
	// boundsMax[node*dims + d] = max coordinate d over points in node
	boundsMax []float64
	numNodes  int
}

// NewKDTree builds a KD-tree over the given points. leafSize controls the
// max points per leaf node.
func NewKDTree(points []r3.Vec, leafSize int) *KDTree {
	if leafSize < 1 {
		leafSize = 1
	}
	n := len(points)

	// Flatten the points and build an identity permutation.
	data := make([]float64, n*dims)
	for i, p := range points {
		data[i*dims+0] = p.X
		data[i*dims+1] = p.Y
		data[i*dims+2] = p.Z
	}
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}

	maxNodes := kdMaxNodes(n, leafSize)

	t := &KDTree{
		data:      data,
		n:         n,
		leafSize:  leafSize,
		idxArray:  idxArray,
		nodes:     make([]NodeData, maxNodes),
		boundsMin: make([]float64, maxNodes*dims),
		boundsMax: make([]float64, maxNodes*dims),
	}

	if n > 0 {
		t.buildNode(0, 0, n)
	}

	return t
}

// kdMaxNodes returns an upper bound on the number of node slots needed for
// a binary tree with n points and the given leaf size. Median splits are
// near-balanced, so the complete-binary-tree bound holds with a small
// safety margin.
func kdMaxNodes(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	depth := 0
	v := 1
	for v < leaves {
		v *= 2
		depth++
	}
	return (1 << (depth + 1)) - 1 + 2
}

// buildNode recursively builds the tree for points in idxArray[start:end].
func (t *KDTree) buildNode(nodeID, start, end int) {
	// Grow arrays if needed (shouldn't happen with a good upper bound).
	for nodeID >= len(t.nodes) {
		t.nodes = append(t.nodes, NodeData{})
		t.boundsMin = append(t.boundsMin, make([]float64, dims)...)
		t.boundsMax = append(t.boundsMax, make([]float64, dims)...)
	}
	if nodeID+1 > t.numNodes {
		t.numNodes = nodeID + 1
	}

	t.computeNodeBounds(nodeID, start, end)

	count := end - start
	if count <= t.leafSize {
		t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: true}
		return
	}

	// Split along the dimension with the greatest spread.
	base := nodeID * dims
	splitDim := 0
	maxSpread := -1.0
	for d := 0; d < dims; d++ {
		spread := t.boundsMax[base+d] - t.boundsMin[base+d]
		if spread > maxSpread {
			maxSpread = spread
			splitDim = d
		}
	}

	t.sortByDimension(start, end, splitDim)
	mid := start + count/2

	t.nodes[nodeID] = NodeData{IdxStart: start, IdxEnd: end, IsLeaf: false}

	t.buildNode(2*nodeID+1, start, mid)
	t.buildNode(2*nodeID+2, mid, end)
}

// computeNodeBounds computes min/max per dimension for points idxArray[start:end].
func (t *KDTree) computeNodeBounds(nodeID, start, end int) {
	base := nodeID * dims
	for d := 0; d < dims; d++ {
		t.boundsMin[base+d] = math.Inf(1)
		t.boundsMax[base+d] = math.Inf(-1)
	}
	for i := start; i < end; i++ {
		ptIdx := t.idxArray[i]
		for d := 0; d < dims; d++ {
			v := t.data[ptIdx*dims+d]
			if v < t.boundsMin[base+d] {
				t.boundsMin[base+d] = v
			}
			if v > t.boundsMax[base+d] {
				t.boundsMax[base+d] = v
			}
		}
	}
}

// sortByDimension sorts idxArray[start:end] by the given dimension.
func (t *KDTree) sortByDimension(start, end, dim int) {
	sub := t.idxArray[start:end]
	data := t.data
	sort.Slice(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}

// --- GroupTree interface ---

func (t *KDTree) Data() []float64           { return t.data }
func (t *KDTree) NumPoints() int            { return t.n }
func (t *KDTree) IdxArray() []int           { return t.idxArray }
func (t *KDTree) NodeDataArray() []NodeData { return t.nodes[:t.numNodes] }
func (t *KDTree) NumNodes() int             { return t.numNodes }

func (t *KDTree) ChildNodes(node int) (left, right int) {
	return 2*node + 1, 2*node + 2
}

// MinRdistDual returns the squared gap between the bounding boxes of node1
// and node2, zero when the boxes touch or overlap.
func (t *KDTree) MinRdistDual(node1, node2 int) float64 {
	base1 := node1 * dims
	base2 := node2 * dims
	var rdist float64
	for d := 0; d < dims; d++ {
		g1 := t.boundsMin[base1+d] - t.boundsMax[base2+d]
		g2 := t.boundsMin[base2+d] - t.boundsMax[base1+d]
		g := math.Max(g1, math.Max(g2, 0))
		rdist += g * g
	}
	return rdist
}

// MaxRdist returns the squared diagonal of the node's bounding box.
func (t *KDTree) MaxRdist(node int) float64 {
	base := node * dims
	var rdist float64
	for d := 0; d < dims; d++ {
		dx := t.boundsMax[base+d] - t.boundsMin[base+d]
		rdist += dx * dx
	}
	return rdist
}

// dist2 returns the squared Euclidean distance between points i and j of
// the flat coordinate array.
func dist2(data []float64, i, j int) float64 {
	var d2 float64
	for d := 0; d < dims; d++ {
		dx := data[i*dims+d] - data[j*dims+d]
		d2 += dx * dx
	}
	return d2
}
