package evolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankerScoreDiscountsByAge(t *testing.T) {
	r := Ranker{Offset: 2}

	assert.InDelta(t, 10.0/3.0, r.Score(Record{Wins: 10, Generation: 0}, 1), 1e-12)
	assert.InDelta(t, 5.0, r.Score(Record{Wins: 10, Generation: 1}, 1), 1e-12)
	assert.Equal(t, 0.0, r.Score(Record{Wins: 0, Generation: 0}, 0))
	// Children bred for the next generation.
	assert.InDelta(t, 3.0, r.Score(Record{Wins: 3, Generation: 2}, 1), 1e-12)
}

func TestRankerScoreNonPositiveDenominator(t *testing.T) {
	r := Ranker{Offset: 1}
	assert.Equal(t, 0.0, r.Score(Record{Wins: 4, Generation: 3}, 2))
}

func TestRankPrefersYoungerAtEqualWinsAndBreaksTiesByID(t *testing.T) {
	members := []*Member{
		{ID: 4, Record: Record{Wins: 10, Generation: 0}},
		{ID: 3, Record: Record{Wins: 10, Generation: 1}},
		{ID: 2, Record: Record{Wins: 0, Generation: 1}},
		{ID: 1, Record: Record{Wins: 0, Generation: 0}},
	}
	ranked := Ranker{Offset: 2}.Rank(members, 1)

	ids := make([]MemberID, len(ranked))
	for i, m := range ranked {
		ids[i] = m.ID
	}
	assert.Equal(t, []MemberID{3, 4, 1, 2}, ids)
	assert.Equal(t, MemberID(4), members[0].ID, "Rank must not reorder its input")
}
