package evolve

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
)

// DefaultLeaderboardSize is the number of standings reported when none is configured.
const DefaultLeaderboardSize = 10

// Standing is one row of the leaderboard.
type Standing struct {
	Round      int      `csv:"round"` // Generation the leaderboard was taken at
	Rank       int      `csv:"ranking"`
	Member     MemberID `csv:"member"`
	WinRate    float64  `csv:"win_rate"`
	Wins       int      `csv:"wins"`
	Losses     int      `csv:"losses"`
	Generation int      `csv:"generation"`
}

// Leaderboard lists the members with the best win rates at a given generation.
type Leaderboard struct {
	Generation int
	Standings  []Standing
}

// Leaderboard returns up to limit standings ordered by descending win rate, ties by
// ascending member ID. A limit <= 0 lists every member.
func (p *Population) Leaderboard(limit int) Leaderboard {
	members := p.Members()
	sort.SliceStable(members, func(i, j int) bool {
		return WinRate(members[i].Wins, members[i].Losses) > WinRate(members[j].Wins, members[j].Losses)
	})
	if limit > 0 && limit < len(members) {
		members = members[:limit]
	}

	lb := Leaderboard{Generation: p.Generation, Standings: make([]Standing, len(members))}
	for i, m := range members {
		lb.Standings[i] = Standing{
			Round:      p.Generation,
			Rank:       i + 1,
			Member:     m.ID,
			WinRate:    WinRate(m.Wins, m.Losses),
			Wins:       m.Wins,
			Losses:     m.Losses,
			Generation: m.Generation,
		}
	}
	return lb
}

// String renders the leaderboard as an aligned text table.
func (lb Leaderboard) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Leaderboard (generation %d)\n", lb.Generation)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ranking\tmember\twin rate (%)\twins\tlosses\tgeneration\t")
	for _, s := range lb.Standings {
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%d\t%d\t%d\t\n", s.Rank, s.Member, s.WinRate*100, s.Wins, s.Losses, s.Generation)
	}
	tw.Flush()
	return sb.String()
}

// WriteCSV writes the standings with a header row.
func (lb Leaderboard) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(lb.Standings, w); err != nil {
		return fmt.Errorf("failed to write leaderboard csv: %w", err)
	}
	return nil
}

// AppendCSV writes the standings without a header, for appending to an existing file.
func (lb Leaderboard) AppendCSV(w io.Writer) error {
	if err := gocsv.MarshalWithoutHeaders(lb.Standings, w); err != nil {
		return fmt.Errorf("failed to append leaderboard csv: %w", err)
	}
	return nil
}
