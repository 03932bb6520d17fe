package noise

// Cell is the state of one grid cell.
type Cell uint8

const (
	Unfilled Cell = iota
	Filled
)

func (c Cell) String() string {
	if c == Filled {
		return "filled"
	}
	return "unfilled"
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y, Z int
}
