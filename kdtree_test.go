package fof

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomPoints(n int, scale float64, seed int64) []r3.Vec {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r3.Vec{
			X: rng.Float64() * scale,
			Y: rng.Float64() * scale,
			Z: rng.Float64() * scale,
		}
	}
	return pts
}

// clusteredPoints generates tight blobs around well-separated centers,
// the regime the node precompression is designed for.
func clusteredPoints(blobs, perBlob int, spread float64, seed int64) []r3.Vec {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]r3.Vec, 0, blobs*perBlob)
	for b := 0; b < blobs; b++ {
		center := r3.Vec{
			X: float64(b) * 100,
			Y: float64(b%3) * 100,
			Z: float64(b%5) * 100,
		}
		for p := 0; p < perBlob; p++ {
			pts = append(pts, r3.Add(center, r3.Vec{
				X: rng.NormFloat64() * spread,
				Y: rng.NormFloat64() * spread,
				Z: rng.NormFloat64() * spread,
			}))
		}
	}
	return pts
}

func TestKDTree_Construction_BasicProperties(t *testing.T) {
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 3, Z: 0},
		{X: 1, Y: 3, Z: 0},
		{X: 2, Y: 3, Z: 0},
	}
	tree := NewKDTree(pts, 2)

	require.Equal(t, len(pts), tree.NumPoints())
	require.GreaterOrEqual(t, tree.NumNodes(), 1)

	// IdxArray should be a permutation of 0..n-1.
	idx := tree.IdxArray()
	require.Len(t, idx, len(pts))
	seen := make(map[int]bool)
	for _, v := range idx {
		require.False(t, seen[v], "duplicate index %d in permutation", v)
		seen[v] = true
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, len(pts))
	}

	// Root covers the full range.
	root := tree.NodeDataArray()[0]
	require.Equal(t, 0, root.IdxStart)
	require.Equal(t, len(pts), root.IdxEnd)
}

func TestKDTree_NodeRangesPartition(t *testing.T) {
	pts := randomPoints(200, 50, 1)
	tree := NewKDTree(pts, 8)
	nodes := tree.NodeDataArray()

	var walk func(node int, start, end int)
	walk = func(node, start, end int) {
		nd := nodes[node]
		require.Equal(t, start, nd.IdxStart, "node %d start", node)
		require.Equal(t, end, nd.IdxEnd, "node %d end", node)
		if nd.IsLeaf {
			require.LessOrEqual(t, nd.IdxEnd-nd.IdxStart, 8, "leaf %d exceeds leaf size", node)
			return
		}
		left, right := tree.ChildNodes(node)
		require.Less(t, left, tree.NumNodes())
		require.Less(t, right, tree.NumNodes())
		mid := nodes[left].IdxEnd
		require.Equal(t, mid, nodes[right].IdxStart, "children of %d must tile the parent range", node)
		walk(left, start, mid)
		walk(right, mid, end)
	}
	walk(0, 0, len(pts))
}

func TestKDTree_BoundsContainPoints(t *testing.T) {
	pts := randomPoints(150, 10, 2)
	tree := NewKDTree(pts, 4)
	nodes := tree.NodeDataArray()

	for node := range nodes {
		nd := nodes[node]
		if nd.IdxStart == nd.IdxEnd {
			continue // unused slot in the array-form tree
		}
		base := node * dims
		for p := nd.IdxStart; p < nd.IdxEnd; p++ {
			i := tree.IdxArray()[p]
			for d := 0; d < dims; d++ {
				v := tree.data[i*dims+d]
				require.GreaterOrEqual(t, v, tree.boundsMin[base+d], "node %d dim %d", node, d)
				require.LessOrEqual(t, v, tree.boundsMax[base+d], "node %d dim %d", node, d)
			}
		}
	}
}

func TestKDTree_MinRdistDual(t *testing.T) {
	// Two tight blobs 10 apart along x; with a tiny leaf size the root's
	// children separate the blobs.
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0}, {X: 11, Y: 0, Z: 0},
	}
	tree := NewKDTree(pts, 2)
	left, right := tree.ChildNodes(0)

	// Self distance is zero, cross distance is the squared box gap.
	require.Equal(t, 0.0, tree.MinRdistDual(left, left))
	require.Equal(t, 0.0, tree.MinRdistDual(0, left))
	got := tree.MinRdistDual(left, right)
	require.True(t, scalar.EqualWithinAbs(got, 81, 1e-12), "MinRdistDual = %g, want 81", got)
	require.Equal(t, tree.MinRdistDual(right, left), got, "MinRdistDual must be symmetric")
}

func TestKDTree_MaxRdist(t *testing.T) {
	pts := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 3, Y: 4, Z: 0},
	}
	tree := NewKDTree(pts, 4)
	// Single leaf; squared diagonal is 3² + 4² = 25.
	require.True(t, scalar.EqualWithinAbs(tree.MaxRdist(0), 25, 1e-12))
}

func TestKDTree_SinglePointAndEmpty(t *testing.T) {
	tree := NewKDTree([]r3.Vec{{X: 1, Y: 2, Z: 3}}, 8)
	require.Equal(t, 1, tree.NumPoints())
	require.Equal(t, 1, tree.NumNodes())
	require.True(t, tree.NodeDataArray()[0].IsLeaf)
	require.Equal(t, 0.0, tree.MaxRdist(0))

	empty := NewKDTree(nil, 8)
	require.Equal(t, 0, empty.NumPoints())
	require.Empty(t, empty.NodeDataArray())
}

func TestDist2(t *testing.T) {
	data := []float64{
		0, 0, 0,
		1, 2, 2,
	}
	require.Equal(t, 9.0, dist2(data, 0, 1))
	require.Equal(t, 0.0, dist2(data, 1, 1))
}
