package picking

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spatial3d/pkg/math"
	"github.com/Faultbox/spatial3d/pkg/mesh"
)

// DefaultKDTreeDepth is the deepest level a KDTree branches to by default.
const DefaultKDTreeDepth = 8

// KDTree accelerates ray casts against a mesh. Each level halves its box
// along X, Y and Z in turn; only leaves hold triangles, and a triangle that
// straddles a splitting plane goes to both sides.
//
// A KDTree is read-only after NewKDTree returns and may be shared by
// concurrent casts.
type KDTree struct {
	tris     []mesh.Triangle
	root     *kdNode
	maxDepth int
	opts     Options
	log      *zap.Logger
	stats    KDStats
}

// KDStats describes the shape of a built tree.
type KDStats struct {
	Triangles   int
	Nodes       int
	Leaves      int
	MaxLeafSize int
}

type kdNode struct {
	box      math.AABB
	tris     []int
	children [2]*kdNode
}

func (n *kdNode) leaf() bool {
	return n.children[0] == nil
}

// KDOption configures NewKDTree.
type KDOption func(*KDTree)

// WithMaxDepth sets the depth bound. Zero builds a single leaf.
func WithMaxDepth(depth int) KDOption {
	return func(t *KDTree) {
		t.maxDepth = depth
	}
}

// WithOptions sets the ray-triangle options used by Intersect.
func WithOptions(opts Options) KDOption {
	return func(t *KDTree) {
		t.opts = opts
	}
}

// WithLogger logs build statistics at debug level.
func WithLogger(log *zap.Logger) KDOption {
	return func(t *KDTree) {
		if log != nil {
			t.log = log
		}
	}
}

// NewKDTree builds a tree over the fan triangulation of m. A mesh without
// faces returns mesh.ErrEmptyMesh.
func NewKDTree(m *mesh.Mesh, opts ...KDOption) (*KDTree, error) {
	t := &KDTree{
		maxDepth: DefaultKDTreeDepth,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxDepth < 0 {
		return nil, fmt.Errorf("%w: negative kd-tree depth %d", math.ErrDegenerateInput, t.maxDepth)
	}

	t.tris = m.Triangles()
	if len(t.tris) == 0 {
		return nil, fmt.Errorf("%w: no faces to index", mesh.ErrEmptyMesh)
	}

	start := time.Now()
	box, err := m.Bounds()
	if err != nil {
		return nil, err
	}
	// Padding keeps hits on the outer faces inside the root box.
	pad := float64(orDefault(t.opts.Tolerance)) + box.BoundingSphereRadius()*1e-9
	box = box.Pad(pad)

	all := make([]int, len(t.tris))
	for i := range all {
		all[i] = i
	}
	t.root = t.branch(box, all, 0)
	t.stats.Triangles = len(t.tris)

	t.log.Debug("kd-tree built",
		zap.String("mesh", m.Name()),
		zap.Int("triangles", t.stats.Triangles),
		zap.Int("nodes", t.stats.Nodes),
		zap.Int("leaves", t.stats.Leaves),
		zap.Int("max_leaf", t.stats.MaxLeafSize),
		zap.Duration("took", time.Since(start)))
	return t, nil
}

func (t *KDTree) branch(box math.AABB, tris []int, depth int) *kdNode {
	n := &kdNode{box: box}
	t.stats.Nodes++

	if len(tris) == 0 || depth >= t.maxDepth {
		n.tris = tris
		t.stats.Leaves++
		if len(tris) > t.stats.MaxLeafSize {
			t.stats.MaxLeafSize = len(tris)
		}
		return n
	}

	axis := depth % 3
	value := box.Center().Component(axis)
	lowerBox, upperBox, err := box.Split(axis, value)
	if err != nil {
		// Flat box on this axis; nothing to separate.
		n.tris = tris
		t.stats.Leaves++
		if len(tris) > t.stats.MaxLeafSize {
			t.stats.MaxLeafSize = len(tris)
		}
		return n
	}

	var lower, upper []int
	for _, i := range tris {
		lo, hi := triangleRange(t.tris[i], axis)
		if lo <= value {
			lower = append(lower, i)
		}
		if hi >= value {
			upper = append(upper, i)
		}
	}

	n.children[0] = t.branch(lowerBox, lower, depth+1)
	n.children[1] = t.branch(upperBox, upper, depth+1)
	return n
}

func triangleRange(tri mesh.Triangle, axis int) (lo, hi float64) {
	lo = tri.V[0].Component(axis)
	hi = lo
	for _, v := range tri.V[1:] {
		c := v.Component(axis)
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
	}
	return lo, hi
}

// Stats returns the tree's shape.
func (t *KDTree) Stats() KDStats {
	return t.stats
}

// Intersect returns the closest hit. It gives the same result as a
// brute-force test of every triangle.
func (t *KDTree) Intersect(r Ray) Hit {
	return t.intersectNode(t.root, r)
}

func (t *KDTree) intersectNode(n *kdNode, r Ray) Hit {
	if _, ok := r.IntersectAABB(n.box.Pad(float64(orDefault(t.opts.Tolerance)))); !ok {
		return Miss()
	}
	if n.leaf() {
		return closestOf(r, t.tris, n.tris, t.opts)
	}

	best := t.intersectNode(n.children[0], r)
	if h := t.intersectNode(n.children[1], r); h.closerThan(best) {
		best = h
	}
	return best
}
