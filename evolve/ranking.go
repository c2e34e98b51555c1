package evolve

import "sort"

// Ranker orders members by their win count, discounted by how many generations they have
// been in the population.
//
//	score = wins / (current + Offset - generation)
//
// Offset must exceed 1 so that children bred for the next generation still have a positive
// denominator.
type Ranker struct {
	Offset float64
}

// Score returns the ranking score of a record at the current generation. A non-positive
// denominator scores 0.
func (r Ranker) Score(rec Record, current int) float64 {
	age := float64(current) + r.Offset - float64(rec.Generation)
	if age <= 0 {
		return 0
	}
	return float64(rec.Wins) / age
}

// Rank returns members sorted by descending score. Equal scores keep ascending MemberID
// order, so the ranking is deterministic.
func (r Ranker) Rank(members []*Member, current int) []*Member {
	ranked := make([]*Member, len(members))
	copy(ranked, members)

	scores := make(map[MemberID]float64, len(ranked))
	for _, m := range ranked {
		scores[m.ID] = r.Score(m.Record, current)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := scores[ranked[i].ID], scores[ranked[j].ID]
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
