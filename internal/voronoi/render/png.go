package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
)

// cellSize is the edge of one cell in the exported image.
const cellSize = 6 * vg.Millimeter

// sliceGrid adapts a slice to plotter.GridXYZ. Columns are y, rows are x.
type sliceGrid struct {
	s noise.Slice
}

func (g sliceGrid) Dims() (c, r int) { return g.s.Width(), g.s.Height() }
func (g sliceGrid) X(c int) float64  { return float64(c) }
func (g sliceGrid) Y(r int) float64  { return float64(r) }

func (g sliceGrid) Z(c, r int) float64 {
	if g.s.At(r, c) == noise.Filled {
		return 1
	}
	return 0
}

// twoTone maps Unfilled to the first color and Filled to the second.
type twoTone []color.Color

func (p twoTone) Colors() []color.Color { return p }

// PNGName is the export file name for slice z of the field with the given seed.
func PNGName(seed int64, z int) string {
	return fmt.Sprintf("voronoi_%d_z%03d.png", seed, z)
}

// WritePNG saves the slice as a two-tone heat map. The format follows the
// extension of path.
func WritePNG(s noise.Slice, seed int64, path string) error {
	h := plotter.NewHeatMap(sliceGrid{s: s}, twoTone{color.White, color.Black})
	// Pin the range so an all-filled or all-empty slice still maps to its color.
	h.Min, h.Max = 0, 1

	p := plot.New()
	p.Title.Text = Status(seed, s.Z())
	p.X.Label.Text = "y"
	p.Y.Label.Text = "x"
	p.Add(h)

	w := vg.Length(s.Width())*cellSize + 2*vg.Centimeter
	ht := vg.Length(s.Height())*cellSize + 2*vg.Centimeter
	if err := p.Save(w, ht, path); err != nil {
		return fmt.Errorf("save slice plot: %w", err)
	}
	return nil
}
