package noise

// Slice is a read-only view of one constant-z plane of a Field.
// It shares the field's buffer; rows run along x and columns along y.
type Slice struct {
	cells               []Cell
	sizeX, sizeY, sizeZ int
	z                   int
}

// Z returns the plane's position along the third axis.
func (s Slice) Z() int { return s.z }

// Height is the number of rows (SizeX).
func (s Slice) Height() int { return s.sizeX }

// Width is the number of columns (SizeY).
func (s Slice) Width() int { return s.sizeY }

// At returns the cell at row x, column y. It panics if either is out of range.
func (s Slice) At(x, y int) Cell {
	if x < 0 || x >= s.sizeX || y < 0 || y >= s.sizeY {
		panic("noise: slice coordinate out of range")
	}
	return s.cells[x*s.sizeY*s.sizeZ+y*s.sizeZ+s.z]
}

// Rows copies the plane into a freshly allocated [x][y] array.
func (s Slice) Rows() [][]Cell {
	rows := make([][]Cell, s.sizeX)
	for x := range rows {
		rows[x] = make([]Cell, s.sizeY)
		for y := range rows[x] {
			rows[x][y] = s.At(x, y)
		}
	}
	return rows
}
