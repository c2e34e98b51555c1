package evolve

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGenome(t *testing.T, size int, rng *rand.Rand) *Genome {
	t.Helper()
	if size == 0 {
		g, err := NewGenome(nil)
		require.NoError(t, err)
		return g
	}
	g, err := NewRandomGenome(size, rng)
	require.NoError(t, err)
	return g
}

func TestNewRandomGenomeRespectsSizeAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{1, 7, 49, 50, 500, 2000} {
		g, err := NewRandomGenome(size, rng)
		require.NoError(t, err)
		require.Equal(t, size, g.Len())
		for i, gene := range g.Genes() {
			assert.True(t, gene >= 0 && gene <= 1, "size %d gene %d = %v", size, i, gene)
		}
	}
}

func TestNewRandomGenomeRejectsNonPositiveSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{0, -1} {
		_, err := NewRandomGenome(size, rng)
		assert.ErrorIs(t, err, ErrValidation, "size %d", size)
	}
}

func TestRandomGenomeIsMostlyNearOneBaseline(t *testing.T) {
	g, err := NewRandomGenome(2000, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	near := 0
	for _, base := range baselineMeans {
		n := 0
		for _, gene := range g.Genes() {
			if math.Abs(gene-base) < 0.05 {
				n++
			}
		}
		near = max(near, n)
	}
	assert.GreaterOrEqual(t, near, 1900)
}

func TestNewGenomeRoundTrip(t *testing.T) {
	values := []float64{0, 0.25, 0.5, 1, 0.125}
	g, err := NewGenome(values)
	require.NoError(t, err)
	assert.Equal(t, values, g.Genes())

	values[0] = 0.9
	assert.Equal(t, 0.0, g.Gene(0), "genome must not alias the caller's slice")
}

func TestNewGenomeEmpty(t *testing.T) {
	g, err := NewGenome([]float64{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
}

func TestNewGenomeRejectsInvalidGenes(t *testing.T) {
	cases := map[string][]float64{
		"above one":   {1, 2, 3},
		"negative":    {0.5, -0.1},
		"nan":         {0.5, math.NaN()},
		"positiveInf": {math.Inf(1)},
	}
	for name, genes := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewGenome(genes)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCrossLengthAndProvenance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sizes := [][2]int{{100, 100}, {50, 100}, {100, 50}, {0, 100}, {100, 0}, {1, 1}, {1, 2}, {2, 1}}

	for _, sz := range sizes {
		a := randomGenome(t, sz[0], rng)
		b := randomGenome(t, sz[1], rng)
		child := a.Cross(b, rng)

		require.Equal(t, max(sz[0], sz[1]), child.Len(), "sizes %v", sz)
		short := min(sz[0], sz[1])
		longer := a
		if b.Len() > a.Len() {
			longer = b
		}
		for i := 0; i < child.Len(); i++ {
			if i < short {
				assert.True(t, child.Gene(i) == a.Gene(i) || child.Gene(i) == b.Gene(i), "sizes %v position %d", sz, i)
			} else {
				assert.Equal(t, longer.Gene(i), child.Gene(i), "sizes %v position %d", sz, i)
			}
		}
	}
}

func TestCrossFlipsACoinPerGene(t *testing.T) {
	zeros, err := NewGenome(make([]float64, 1000))
	require.NoError(t, err)
	ones := make([]float64, 1000)
	for i := range ones {
		ones[i] = 1
	}
	onesGenome, err := NewGenome(ones)
	require.NoError(t, err)

	child := zeros.Cross(onesGenome, rand.New(rand.NewSource(5)))
	fromOnes := 0
	for _, gene := range child.Genes() {
		if gene == 1 {
			fromOnes++
		}
	}
	assert.InDelta(t, 500, fromOnes, 100)
}

func TestCrossLeavesParentsUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a := randomGenome(t, 20, rng)
	b := randomGenome(t, 30, rng)
	before := a.Genes()

	a.Cross(b, rng)
	assert.Equal(t, before, a.Genes())
}

func TestMutateWithZeroProbabilityNeverChanges(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, size := range []int{1, 10, 100, 10000} {
		g := randomGenome(t, size, rng)
		before := g.Genes()
		assert.Equal(t, 0, g.Mutate(0, rng))
		assert.Equal(t, before, g.Genes())
	}
}

func TestMutateSmallProbability(t *testing.T) {
	g, err := NewGenome(make([]float64, 100000))
	require.NoError(t, err)

	n := g.Mutate(0.01, rand.New(rand.NewSource(13)))
	assert.InDelta(t, 1000, n, 300)

	changed := 0
	for _, gene := range g.Genes() {
		require.True(t, gene >= 0 && gene <= 1)
		if gene != 0 {
			changed++
		}
	}
	assert.Equal(t, n, changed)
}

func TestMutateWithCertaintyReplacesEveryGene(t *testing.T) {
	g, err := NewGenome(make([]float64, 500))
	require.NoError(t, err)
	assert.Equal(t, 500, g.Mutate(1, rand.New(rand.NewSource(17))))
}
