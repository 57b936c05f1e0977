package fof

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CompressionMode selects the path-compression policy used by root lookups.
type CompressionMode string

const (
	// FullCompression re-points every node on a find path directly to the
	// root, bounding future lookups on those nodes to one hop.
	FullCompression CompressionMode = "full"

	// PartialCompression re-points only the queried node. Cheaper per
	// lookup; interior paths may regrow, but repeated queries on the same
	// point stay O(1) after its first compression.
	PartialCompression CompressionMode = "partial"
)

// Config controls friends-of-friends group finding.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Compression selects the path-compression policy for root lookups.
	// Both modes produce identical partitions. Default: "full".
	Compression CompressionMode

	// LeafSize controls the maximum number of points in a KD-tree leaf
	// node. Only used by [Groups], which builds its own tree. Default: 32.
	LeafSize int

	// NoNodeShortcut disables the connected-node precompression so every
	// edge is discovered by pairwise distance testing. The partition is
	// identical either way; this exists for verification and benchmarking.
	// Default: false.
	NoNodeShortcut bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Compression: FullCompression,
		LeafSize:    32,
	}
}

// Stats describes the work performed by one completed run. It is returned
// by value from each call, so independent runs never share state.
type Stats struct {
	// EdgesVisited counts point pairs within the linking length that were
	// handed to the merge step during edge enumeration.
	EdgesVisited int

	// NodesConnected counts tree nodes whose entire point range was known
	// internally connected, including nodes below a connected ancestor.
	NodesConnected int

	// Splays counts root lookups performed, including the finalize pass.
	Splays int

	// MaxDepth is the longest find path observed before compression.
	MaxDepth int

	// TotalDepth is the sum of find-path lengths over all root lookups.
	TotalDepth int
}

// FindGroups computes friends-of-friends groups over the points of t with
// the given linking length, writing one component label per point into
// head. len(head) must equal t.NumPoints().
//
// On return head[i] is the root index of i's component: head[i] == head[j]
// iff points i and j are within linkingLength of each other directly or
// through a chain of intermediate points. The returned Stats describe the
// work performed by this run.
func FindGroups(t GroupTree, linkingLength float64, head []int, cfg Config) (Stats, error) {
	applyDefaults(&cfg)
	if err := validateRun(t, linkingLength, head, cfg); err != nil {
		return Stats{}, err
	}
	if t.NumPoints() == 0 {
		return Stats{}, nil
	}

	tr := &traverse{
		head:          head,
		ind:           t.IdxArray(),
		nodes:         t.NodeDataArray(),
		nodeConnected: make([]bool, t.NumNodes()),
		ll2:           linkingLength * linkingLength,
		compression:   cfg.Compression,
	}

	tr.initForest()
	if !cfg.NoNodeShortcut {
		tr.connect(t, 0, false)
	}
	enumNodePairs(t, tr.ll2, func(a, b int) bool {
		return tr.checkNodes(t, a, b)
	})
	tr.finalize()
	tr.nodeConnected = nil

	return tr.stats, nil
}

// Groups builds a KD-tree over points and runs [FindGroups] against it,
// returning a fresh label array.
func Groups(points []r3.Vec, linkingLength float64, cfg Config) ([]int, Stats, error) {
	applyDefaults(&cfg)
	tree := NewKDTree(points, cfg.LeafSize)
	head := make([]int, len(points))
	stats, err := FindGroups(tree, linkingLength, head, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	return head, stats, nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Compression == "" {
		cfg.Compression = FullCompression
	}
	if cfg.LeafSize == 0 {
		cfg.LeafSize = 32
	}
}

// validateRun checks run preconditions and returns a descriptive error if
// any are violated. A zero linking length is allowed: it links only
// coincident points.
func validateRun(t GroupTree, linkingLength float64, head []int, cfg Config) error {
	if t == nil {
		return errors.New("fof: nil tree")
	}
	if math.IsNaN(linkingLength) || linkingLength < 0 {
		return fmt.Errorf("fof: linking length must be >= 0, got %g", linkingLength)
	}
	if len(head) != t.NumPoints() {
		return fmt.Errorf("fof: head length %d does not match point count %d", len(head), t.NumPoints())
	}
	switch cfg.Compression {
	case FullCompression, PartialCompression:
		// valid
	default:
		return fmt.Errorf("fof: invalid Compression %q", cfg.Compression)
	}
	if cfg.LeafSize < 1 {
		return fmt.Errorf("fof: LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	return nil
}
