package evolve

import (
	"fmt"
	"math/rand"
)

// Reproduction creates members, either from freshly seeded genomes or by crossing and
// mutating breeders. It owns MemberID allocation.
type Reproduction struct {
	MutationRate float64
	NextMemberID MemberID                // State for the next member ID
	Ancestors    map[MemberID][]MemberID // Member ID -> parent IDs (for tracking lineage)

	rng *rand.Rand
}

// NewReproduction creates a new reproduction manager drawing from rng.
func NewReproduction(mutationRate float64, rng *rand.Rand) *Reproduction {
	return &Reproduction{
		MutationRate: mutationRate,
		NextMemberID: 1,
		Ancestors:    make(map[MemberID][]MemberID),
		rng:          rng,
	}
}

// getNextKey gets the next available member ID and increments the internal counter.
func (r *Reproduction) getNextKey() MemberID {
	key := r.NextMemberID
	r.NextMemberID++
	return key
}

// CreateNewPopulation seeds popSize members with random genomes of geneSize genes, all
// tagged with the given generation.
func (r *Reproduction) CreateNewPopulation(popSize, geneSize, generation int) ([]*Member, error) {
	members := make([]*Member, 0, popSize)
	for i := 0; i < popSize; i++ {
		g, err := NewRandomGenome(geneSize, r.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to seed member %d: %w", i, err)
		}
		members = append(members, r.NewMember(g, generation))
	}
	return members, nil
}

// NewMember wraps a genome in a member with a fresh ID and an empty record.
func (r *Reproduction) NewMember(g *Genome, generation int) *Member {
	key := r.getNextKey()
	r.Ancestors[key] = []MemberID{}
	return &Member{ID: key, Genome: g, Record: Record{Generation: generation}}
}

// Breed crosses every ordered pair of distinct breeders and mutates each child, producing
// len(breeders)*(len(breeders)-1) members for the given generation.
func (r *Reproduction) Breed(breeders []*Member, generation int) []*Member {
	children := make([]*Member, 0, len(breeders)*max(len(breeders)-1, 0))
	for i, a := range breeders {
		for j, b := range breeders {
			if i == j {
				continue
			}
			g := a.Genome.Cross(b.Genome, r.rng)
			g.Mutate(r.MutationRate, r.rng)

			child := r.NewMember(g, generation)
			r.Ancestors[child.ID] = []MemberID{a.ID, b.ID}
			children = append(children, child)
		}
	}
	return children
}
