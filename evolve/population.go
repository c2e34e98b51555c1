package evolve

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MemberID is a stable handle to a member of the population. Genomes are never used as keys.
type MemberID int

// Record holds the cumulative tournament statistics of a member and the generation it was
// bred for.
type Record struct {
	Wins       int
	Losses     int
	Generation int
}

// Member is a genome together with its record.
type Member struct {
	ID     MemberID
	Genome *Genome
	Record
}

// Population holds the state of the evolutionary process.
type Population struct {
	Config       *Config
	RunID        uuid.UUID
	Seed         int64
	Generation   int
	RetainBest   int
	Ranker       Ranker
	Reproduction *Reproduction
	Evaluator    *Evaluator
	Logger       *slog.Logger

	// OnLeaderboard, when set, receives the leaderboard after each fitness test.
	OnLeaderboard func(Leaderboard)

	members  map[MemberID]*Member
	byGenome map[*Genome]MemberID // live genome -> its member
	rng      *rand.Rand
}

// NewPopulation validates cfg and seeds the first generation. Matches are adjudicated by
// oracle. A nil logger falls back to slog.Default().
func NewPopulation(cfg *Config, oracle Oracle, logger *slog.Logger) (*Population, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.Population.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	runID, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	logger = logger.With("run_id", runID.String())

	reproduction := NewReproduction(cfg.Population.MutationRate, rng)
	initial, err := reproduction.CreateNewPopulation(cfg.Population.PopSize, cfg.Population.GeneSize, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}

	p := &Population{
		Config:       cfg,
		RunID:        runID,
		Seed:         seed,
		Generation:   0,
		RetainBest:   cfg.Population.EffectiveRetainBest(),
		Ranker:       Ranker{Offset: cfg.Population.GenerationOffset},
		Reproduction: reproduction,
		Evaluator:    NewEvaluator(cfg, oracle, logger),
		Logger:       logger,
		members:      make(map[MemberID]*Member, len(initial)),
		byGenome:     make(map[*Genome]MemberID, len(initial)),
		rng:          rng,
	}
	for _, m := range initial {
		p.insert(m)
	}

	logger.Info("population created",
		"members", len(p.members),
		"retain_best", p.RetainBest,
		"shape", cfg.Shape().String(),
		"seed", seed)
	return p, nil
}

// AddMember adds a genome tagged with the given generation and returns its member.
// Members are keyed by genome identity: adding a genome that is already live returns its
// existing member unchanged, while a distinct genome with equal contents gets a new one.
func (p *Population) AddMember(g *Genome, generation int) *Member {
	if id, ok := p.byGenome[g]; ok {
		return p.members[id]
	}
	m := p.Reproduction.NewMember(g, generation)
	p.insert(m)
	return m
}

func (p *Population) insert(m *Member) {
	p.members[m.ID] = m
	p.byGenome[m.Genome] = m.ID
}

func (p *Population) remove(id MemberID) {
	if m, ok := p.members[id]; ok {
		delete(p.byGenome, m.Genome)
		delete(p.members, id)
	}
}

// Member looks up a member by ID.
func (p *Population) Member(id MemberID) (*Member, bool) {
	m, ok := p.members[id]
	return m, ok
}

// Members returns all live members in ascending ID order.
func (p *Population) Members() []*Member {
	out := make([]*Member, 0, len(p.members))
	for _, m := range p.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Size returns the number of live members.
func (p *Population) Size() int {
	return len(p.members)
}

// Score ranks a member at the current generation.
func (p *Population) Score(m *Member) float64 {
	return p.Ranker.Score(m.Record, p.Generation)
}

// TopMembers returns the count highest-scoring members, best first. Fewer are returned if
// the population is smaller than count.
func (p *Population) TopMembers(count int) []*Member {
	ranked := p.Ranker.Rank(p.Members(), p.Generation)
	if count < 0 {
		count = 0
	}
	if count < len(ranked) {
		ranked = ranked[:count]
	}
	return ranked
}

// Cull removes every member of the current or an earlier generation that is not among the
// top RetainBest. Children already bred for a later generation are kept. It returns the
// number of members removed.
func (p *Population) Cull() int {
	keep := make(map[MemberID]bool, p.RetainBest)
	for _, m := range p.TopMembers(p.RetainBest) {
		keep[m.ID] = true
	}

	culled := 0
	for id, m := range p.members {
		if m.Generation <= p.Generation && !keep[id] {
			p.remove(id)
			culled++
		}
	}
	return culled
}

// CrossOver breeds the top breederCount members pairwise and adds the children, tagged with
// the next generation. It returns the children.
func (p *Population) CrossOver(breederCount int) []*Member {
	children := p.Reproduction.Breed(p.TopMembers(breederCount), p.Generation+1)
	for _, c := range children {
		p.insert(c)
	}
	return children
}

// FitnessTest runs the round robin over all live members and adds its outcomes to their
// records.
func (p *Population) FitnessTest(ctx context.Context) (TournamentResult, error) {
	result, err := p.Evaluator.RoundRobin(ctx, p.Members(), p.rng)
	if err != nil {
		return TournamentResult{}, fmt.Errorf("fitness test failed in generation %d: %w", p.Generation, err)
	}

	for _, o := range result.Outcomes {
		a, b := p.members[o.A], p.members[o.B]
		switch o.Winner {
		case SideA:
			a.Wins++
			b.Losses++
		case SideB:
			b.Wins++
			a.Losses++
		}
	}
	return result, nil
}

// GenerateNextGeneration runs one evolutionary step: fitness test, leaderboard report,
// breeding of the top RetainBest members, culling, and advancing the generation counter.
func (p *Population) GenerateNextGeneration(ctx context.Context) error {
	start := time.Now()

	result, err := p.FitnessTest(ctx)
	if err != nil {
		return err
	}

	lb := p.Leaderboard(p.Config.Tournament.LeaderboardSize)
	summary := Summarize(p.Members())
	p.Logger.Info("fitness test complete",
		"generation", p.Generation,
		"members", p.Size(),
		"matches", result.Played,
		"decided", result.Decided,
		"mean_win_rate", summary.MeanWinRate,
		"stddev_win_rate", summary.StdDevWinRate,
		"best_win_rate", summary.BestWinRate)
	if p.OnLeaderboard != nil {
		p.OnLeaderboard(lb)
	}

	children := p.CrossOver(p.RetainBest)
	culled := p.Cull()
	p.Generation++

	p.Logger.Info("generation advanced",
		"generation", p.Generation,
		"members", p.Size(),
		"retain_best", p.RetainBest,
		"children", len(children),
		"culled", culled,
		"elapsed", time.Since(start))
	return nil
}

// Run advances the population by the given number of generations, stopping at the first error.
func (p *Population) Run(ctx context.Context, generations int) error {
	for i := 0; i < generations; i++ {
		if err := p.GenerateNextGeneration(ctx); err != nil {
			return err
		}
	}
	return nil
}
