package evolve

import (
	"math"
	"math/rand"
)

// Seeding distributions for fresh genomes. A small share of genes is drawn wide so that a
// new network starts with a few significant weights; the rest sit close to a per-genome
// baseline chosen from baselineMeans.
const (
	significantShare = 0.02
	significantMean  = 0.3
	significantStdev = 0.2

	backgroundShare = 0.98
	backgroundStdev = 0.01
)

var baselineMeans = []float64{0.0, 0.05, 0.1, 0.2}

// clamp restricts a value to a given range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// absGauss draws |N(mean, stdev)|, clamped to the gene range.
func absGauss(rng *rand.Rand, mean, stdev float64) float64 {
	return clamp(math.Abs(rng.NormFloat64()*stdev+mean), 0, 1)
}

// seedGenes builds size genes: significantShare wide draws, backgroundShare narrow draws around
// one baseline, shuffled together, then topped up with near-zero genes if integer rounding
// came up short.
func seedGenes(size int, rng *rand.Rand) []float64 {
	genes := make([]float64, 0, size)
	baseline := baselineMeans[rng.Intn(len(baselineMeans))]

	for i := 0; i < int(significantShare*float64(size)); i++ {
		genes = append(genes, absGauss(rng, significantMean, significantStdev))
	}
	for i := 0; i < int(backgroundShare*float64(size)); i++ {
		genes = append(genes, absGauss(rng, baseline, backgroundStdev))
	}
	rng.Shuffle(len(genes), func(i, j int) {
		genes[i], genes[j] = genes[j], genes[i]
	})

	for len(genes) < size {
		genes = append(genes, absGauss(rng, 0.0, backgroundStdev))
	}
	return genes
}
