package noise

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDTreeMatchesBruteForce(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 9999} {
		p := Params{SizeX: 17, SizeY: 11, SizeZ: 13, Points: 25, Threshold: 2.2, Seed: seed}
		brute := mustGenerate(t, p)
		p.Index = IndexKDTree
		tree := mustGenerate(t, p)

		if diff := cmp.Diff(allRows(t, brute), allRows(t, tree)); diff != "" {
			t.Fatalf("seed %d: k-d tree grid differs from brute force:\n%s", seed, diff)
		}
	}
}

func TestFindersAgreeOnSquaredDistance(t *testing.T) {
	points := []Point{{0, 0, 0}, {4, 4, 4}, {4, 4, 4}, {9, 1, 3}}
	brute := newBruteForce(points)
	tree := newKDFinder(points)

	for x := 0; x < 10; x++ {
		for y := 0; y < 5; y++ {
			for z := 0; z < 5; z++ {
				want := brute.nearest2(x, y, z)
				if got := tree.nearest2(x, y, z); got != want {
					t.Fatalf("(%d,%d,%d): kdtree %v, brute force %v", x, y, z, got, want)
				}
			}
		}
	}
	assert.Equal(t, 0.0, brute.nearest2(4, 4, 4))
	assert.Equal(t, 3.0, brute.nearest2(1, 1, 1))
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		name string
		want Index
	}{
		{"", IndexBruteForce},
		{"brute", IndexBruteForce},
		{"kdtree", IndexKDTree},
	}
	for _, tt := range tests {
		got, err := ParseIndex(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseIndex("octree")
	assert.ErrorIs(t, err, ErrInvalidParameter)

	assert.Equal(t, "kdtree", IndexKDTree.String())
	assert.Equal(t, "Index(5)", Index(5).String())
}
