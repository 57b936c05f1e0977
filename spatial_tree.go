package fof

// NodeData describes a single node in a spatial tree. A node owns the
// points at positions [IdxStart, IdxEnd) of the tree's permutation array.
type NodeData struct {
	IdxStart, IdxEnd int
	IsLeaf           bool
}

// GroupTree is the read interface the group-finding engine needs from a
// spatial index. The engine never mutates the tree; all transient run state
// lives in buffers keyed by the node and point indices exposed here.
type GroupTree interface {
	// Data returns the flat row-major coordinate data owned by the tree
	// (NumPoints rows of 3 coordinates, indexed by original point index).
	Data() []float64

	// NumPoints returns the number of points in the tree.
	NumPoints() int

	// NumNodes returns the size of the node index space. Node ids returned
	// by ChildNodes are always below this bound.
	NumNodes() int

	// IdxArray returns the permutation array mapping tree-order positions
	// back to original point indices.
	IdxArray() []int

	// NodeDataArray returns the metadata for every node in the tree,
	// indexed by node id.
	NodeDataArray() []NodeData

	// ChildNodes returns the left and right child node ids.
	// Behavior is undefined for leaf nodes.
	ChildNodes(node int) (left, right int)

	// MinRdistDual returns the squared minimum separation between the
	// bounding boxes of node1 and node2, a lower bound on the squared
	// distance between any point in node1 and any point in node2.
	MinRdistDual(node1, node2 int) float64

	// MaxRdist returns the squared bounding-box diagonal of the node, an
	// upper bound on the squared distance between any two points inside it.
	MaxRdist(node int) float64
}
