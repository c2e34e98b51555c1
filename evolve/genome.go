package evolve

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrValidation marks a genome that cannot be constructed as requested.
var ErrValidation = errors.New("validation error")

// DefaultMutationRate is the per-gene replacement probability used when breeding.
const DefaultMutationRate = 0.001

// Genome is an ordered sequence of genes, each in [0,1], that decodes into network weights.
// Its length is fixed at construction; Mutate changes contents in place.
//
// Genomes are compared by identity. The population addresses them through MemberID handles,
// never by value.
type Genome struct {
	genes []float64
}

// NewGenome validates and copies genes. An empty sequence yields a zero-length genome.
func NewGenome(genes []float64) (*Genome, error) {
	for i, gene := range genes {
		// Written so that NaN fails as well.
		if !(gene >= 0 && gene <= 1) {
			return nil, fmt.Errorf("%w: gene %d is not within [0,1]: %v", ErrValidation, i, gene)
		}
	}
	g := &Genome{genes: make([]float64, len(genes))}
	copy(g.genes, genes)
	return g, nil
}

// NewRandomGenome seeds a genome of the given size from rng.
func NewRandomGenome(size int, rng *rand.Rand) (*Genome, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: genome size must be positive, got %d", ErrValidation, size)
	}
	return &Genome{genes: seedGenes(size, rng)}, nil
}

// Len returns the number of genes.
func (g *Genome) Len() int {
	return len(g.genes)
}

// Gene returns the gene at position i.
func (g *Genome) Gene(i int) float64 {
	return g.genes[i]
}

// Genes returns a copy of the gene sequence.
func (g *Genome) Genes() []float64 {
	out := make([]float64, len(g.genes))
	copy(out, g.genes)
	return out
}

// Cross produces a child as long as the longer parent. Up to the shorter parent's length,
// each gene is taken from either parent on an independent fair coin; the remaining genes
// come from the longer parent.
func (g *Genome) Cross(partner *Genome, rng *rand.Rand) *Genome {
	big, small := g, partner
	if len(g.genes) < len(partner.genes) {
		big, small = partner, g
	}

	child := &Genome{genes: make([]float64, len(big.genes))}
	copy(child.genes, big.genes)
	for i := range small.genes {
		if rng.Float64() < 0.5 {
			child.genes[i] = small.genes[i]
		}
	}
	return child
}

// Mutate replaces each gene, independently with the given probability, by a fresh uniform
// draw in [0,1). It returns the number of genes replaced. A probability of 0 never mutates.
func (g *Genome) Mutate(probability float64, rng *rand.Rand) int {
	mutated := 0
	for i := range g.genes {
		if rng.Float64() < probability {
			g.genes[i] = rng.Float64()
			mutated++
		}
	}
	return mutated
}

func (g *Genome) String() string {
	return fmt.Sprintf("Genome(len=%d)", len(g.genes))
}
