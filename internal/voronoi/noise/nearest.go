package noise

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Index selects how the nearest seed point is found for each cell.
type Index int

const (
	// IndexBruteForce scans every seed point for every cell.
	IndexBruteForce Index = iota
	// IndexKDTree searches a k-d tree built over the seed points.
	IndexKDTree
)

func (i Index) String() string {
	switch i {
	case IndexBruteForce:
		return "brute"
	case IndexKDTree:
		return "kdtree"
	default:
		return fmt.Sprintf("Index(%d)", int(i))
	}
}

// ParseIndex maps a name as accepted on the command line to an Index.
func ParseIndex(name string) (Index, error) {
	switch name {
	case "", "brute":
		return IndexBruteForce, nil
	case "kdtree":
		return IndexKDTree, nil
	default:
		return 0, fmt.Errorf("%w: unknown index %q", ErrInvalidParameter, name)
	}
}

// nearestFinder returns the squared distance from a cell to its closest seed point.
// Squared distances between integer coordinates are exact in float64, so every
// implementation agrees bit for bit.
type nearestFinder interface {
	nearest2(x, y, z int) float64
}

func newFinder(idx Index, points []Point) nearestFinder {
	if idx == IndexKDTree {
		return newKDFinder(points)
	}
	return newBruteForce(points)
}

type bruteForce struct {
	pts []r3.Vec
}

func newBruteForce(points []Point) bruteForce {
	pts := make([]r3.Vec, len(points))
	for i, p := range points {
		pts[i] = vec(p.X, p.Y, p.Z)
	}
	return bruteForce{pts: pts}
}

func (b bruteForce) nearest2(x, y, z int) float64 {
	c := vec(x, y, z)
	best := math.Inf(1)
	for _, p := range b.pts {
		if d := r3.Norm2(r3.Sub(c, p)); d < best {
			best = d
		}
	}
	return best
}

type kdFinder struct {
	tree *kdtree.Tree
}

func newKDFinder(points []Point) kdFinder {
	// kdtree.New reorders its input, so it gets its own slice.
	pts := make(kdtree.Points, len(points))
	for i, p := range points {
		pts[i] = kdtree.Point{float64(p.X), float64(p.Y), float64(p.Z)}
	}
	return kdFinder{tree: kdtree.New(pts, false)}
}

func (k kdFinder) nearest2(x, y, z int) float64 {
	_, d := k.tree.Nearest(kdtree.Point{float64(x), float64(y), float64(z)})
	return d
}

func vec(x, y, z int) r3.Vec {
	return r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
}
