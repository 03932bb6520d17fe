package render

import (
	"fmt"
	"strings"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
)

// Text draws a slice as one line per x row, Width glyphs long, with rows
// separated by '\n' and no trailing newline.
func Text(s noise.Slice, fill, empty rune) string {
	var b strings.Builder
	b.Grow(s.Height() * (s.Width() + 1))
	for x := 0; x < s.Height(); x++ {
		if x > 0 {
			b.WriteByte('\n')
		}
		for y := 0; y < s.Width(); y++ {
			if s.At(x, y) == noise.Filled {
				b.WriteRune(fill)
			} else {
				b.WriteRune(empty)
			}
		}
	}
	return b.String()
}

// Frame is Text followed by the status line shown under the slice.
func Frame(s noise.Slice, fill, empty rune, seed int64) string {
	return Text(s, fill, empty) + "\n" + Status(seed, s.Z())
}

// Status is the line naming the seed and the slice being shown.
func Status(seed int64, z int) string {
	return fmt.Sprintf("Seed: %d, Z Level: %d", seed, z)
}
