package noise

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Params are the immutable inputs of a Field.
type Params struct {
	SizeX, SizeY, SizeZ int
	Points              int
	Threshold           float64
	Seed                int64

	Index   Index
	Workers int // 0 = GOMAXPROCS
}

// Validate reports the first parameter outside its allowed range.
func (p Params) Validate() error {
	switch {
	case p.SizeX <= 0 || p.SizeY <= 0 || p.SizeZ <= 0:
		return fmt.Errorf("%w: dimensions %dx%dx%d must be positive", ErrInvalidParameter, p.SizeX, p.SizeY, p.SizeZ)
	case p.Points <= 0:
		return fmt.Errorf("%w: point count %d must be positive", ErrInvalidParameter, p.Points)
	case p.SizeX > math.MaxInt/p.SizeY/p.SizeZ:
		return fmt.Errorf("%w: dimensions %dx%dx%d overflow the cell count", ErrInvalidParameter, p.SizeX, p.SizeY, p.SizeZ)
	case math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) || p.Threshold <= 0:
		return fmt.Errorf("%w: threshold %v must be finite and positive", ErrInvalidParameter, p.Threshold)
	case p.Workers < 0:
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidParameter, p.Workers)
	case p.Index != IndexBruteForce && p.Index != IndexKDTree:
		return fmt.Errorf("%w: unknown index %v", ErrInvalidParameter, p.Index)
	}
	return nil
}

// Field is a 3D Voronoi noise volume. A cell is Filled when its distance to
// the nearest seed point is strictly greater than the threshold, so cells
// around seed points are empty.
//
// A Field is generated once and is read-only afterwards; regenerating means
// building a new Field.
type Field struct {
	id     uuid.UUID
	params Params

	// Set together when Generate succeeds.
	points []Point
	finder nearestFinder
	cells  []Cell // index = x*SizeY*SizeZ + y*SizeZ + z
}

// New validates p and returns an ungenerated Field.
func New(p Params) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Field{id: uuid.New(), params: p}, nil
}

// Generate is New followed by Field.Generate.
func Generate(ctx context.Context, p Params) (*Field, error) {
	f, err := New(p)
	if err != nil {
		return nil, err
	}
	if err := f.Generate(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// GetSlice returns the plane of f at the given z. A nil f reports ErrNotGenerated.
func GetSlice(f *Field, z int) (Slice, error) {
	return f.GetSlice(z)
}

// Generate scatters the seed points and evaluates every cell.
//
// Cells are evaluated one x-plane per task on a bounded worker group.
// If ctx is cancelled the field stays ungenerated and the context error is returned.
func (f *Field) Generate(ctx context.Context) error {
	if f.cells != nil {
		return ErrAlreadyGenerated
	}

	p := f.params
	points := scatter(p)
	finder := newFinder(p.Index, points)
	cells := make([]Cell, p.SizeX*p.SizeY*p.SizeZ)

	workers := p.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for x := 0; x < p.SizeX; x++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fillPlane(cells, finder, p, x)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("generate field %s: %w", f.id, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("generate field %s: %w", f.id, err)
	}

	f.points = points
	f.finder = finder
	f.cells = cells
	return nil
}

// scatter draws the seed points in order from a PRNG seeded with p.Seed.
// Points may coincide.
func scatter(p Params) []Point {
	rng := rand.New(rand.NewPCG(uint64(p.Seed), 0))
	points := make([]Point, p.Points)
	for i := range points {
		points[i] = Point{
			X: rng.IntN(p.SizeX),
			Y: rng.IntN(p.SizeY),
			Z: rng.IntN(p.SizeZ),
		}
	}
	return points
}

func fillPlane(cells []Cell, finder nearestFinder, p Params, x int) {
	base := x * p.SizeY * p.SizeZ
	for y := 0; y < p.SizeY; y++ {
		row := base + y*p.SizeZ
		for z := 0; z < p.SizeZ; z++ {
			if math.Sqrt(finder.nearest2(x, y, z)) > p.Threshold {
				cells[row+z] = Filled
			} else {
				cells[row+z] = Unfilled
			}
		}
	}
}

// ID identifies this instance in logs.
func (f *Field) ID() uuid.UUID { return f.id }

// Params returns the parameters the field was built with.
func (f *Field) Params() Params { return f.params }

// Generated reports whether Generate has completed.
func (f *Field) Generated() bool { return f.cells != nil }

// SeedPoints returns a copy of the seed points, or nil before generation.
func (f *Field) SeedPoints() []Point {
	if f.points == nil {
		return nil
	}
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

// NearestDistance returns the Euclidean distance from (x, y, z) to the closest seed point.
func (f *Field) NearestDistance(x, y, z int) (float64, error) {
	if f.cells == nil {
		return 0, ErrNotGenerated
	}
	p := f.params
	if x < 0 || x >= p.SizeX || y < 0 || y >= p.SizeY || z < 0 || z >= p.SizeZ {
		return 0, fmt.Errorf("%w: cell (%d, %d, %d) outside %dx%dx%d", ErrOutOfRange, x, y, z, p.SizeX, p.SizeY, p.SizeZ)
	}
	return math.Sqrt(f.finder.nearest2(x, y, z)), nil
}

// FilledCount returns the number of filled cells in the whole volume.
func (f *Field) FilledCount() int {
	n := 0
	for _, c := range f.cells {
		if c == Filled {
			n++
		}
	}
	return n
}

// GetSlice returns a read-only view of the plane at z.
func (f *Field) GetSlice(z int) (Slice, error) {
	if f == nil || f.cells == nil {
		return Slice{}, ErrNotGenerated
	}
	if z < 0 || z >= f.params.SizeZ {
		return Slice{}, fmt.Errorf("%w: z=%d, want [0, %d)", ErrOutOfRange, z, f.params.SizeZ)
	}
	return Slice{
		cells: f.cells,
		sizeX: f.params.SizeX,
		sizeY: f.params.SizeY,
		sizeZ: f.params.SizeZ,
		z:     z,
	}, nil
}
