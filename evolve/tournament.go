package evolve

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/baldhumanity/ginevolve/nn"
	"github.com/baldhumanity/ginevolve/strategy"
	"github.com/sourcegraph/conc/pool"
)

// Side identifies the winner of a match.
type Side int

const (
	NoWinner Side = iota
	SideA
	SideB
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return "none"
	}
}

// Contestant is one side of a match: the agent deciding its moves, and the observation feeds
// its network reads. The oracle pushes game state into the feeds before consulting the agent.
type Contestant struct {
	Member  MemberID
	Agent   *strategy.Agent
	Network *nn.Network
	Hand    *nn.Feed
	Table   *nn.Feed
	Match   *nn.Feed
}

// Match is a single pairing handed to the oracle. Seed is drawn from the run's RNG so the
// oracle can shuffle reproducibly without sharing a random stream across matches.
type Match struct {
	Index int
	Seed  int64
	A, B  *Contestant
}

// Oracle plays one complete match and reports the winner. It must terminate on its own,
// typically through a bounded number of turns.
type Oracle interface {
	RunMatch(ctx context.Context, m Match) (Side, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, m Match) (Side, error)

func (f OracleFunc) RunMatch(ctx context.Context, m Match) (Side, error) {
	return f(ctx, m)
}

// Outcome records the result of one match between two members.
type Outcome struct {
	A, B   MemberID
	Winner Side
}

// TournamentResult summarizes one round robin.
type TournamentResult struct {
	Played    int
	Decided   int
	Undecided int
	Outcomes  []Outcome
}

// Evaluator runs the round-robin tournament. Every unordered pair of distinct members meets
// exactly once; each match gets freshly decoded networks.
type Evaluator struct {
	Oracle  Oracle
	Network NetworkConfig
	Shape   nn.Shape
	Workers int // <= 1 runs matches sequentially
	Logger  *slog.Logger
}

// NewEvaluator builds an evaluator for the network and tournament sections of cfg.
func NewEvaluator(cfg *Config, oracle Oracle, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		Oracle:  oracle,
		Network: cfg.Network,
		Shape:   cfg.Shape(),
		Workers: cfg.Tournament.Workers,
		Logger:  logger,
	}
}

// NewContestant decodes a genome into a network wired to three fresh feeds
// (hand, table, match), and wraps it in an agent.
func (e *Evaluator) NewContestant(id MemberID, g *Genome) (*Contestant, error) {
	hand := nn.NewFeed("hand", e.Network.HandInputs)
	table := nn.NewFeed("table", e.Network.TableInputs)
	match := nn.NewFeed("match", e.Network.MatchInputs)

	net, err := nn.Build(g.Genes(), e.Shape, nn.SensorsOf(hand, table, match), e.Network.OutputKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decode member %d: %w", id, err)
	}
	return &Contestant{
		Member:  id,
		Agent:   strategy.NewAgent(strategy.NewNeuralStrategy(net, hand)),
		Network: net,
		Hand:    hand,
		Table:   table,
		Match:   match,
	}, nil
}

func (e *Evaluator) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

type pairing struct {
	a, b *Member
	seed int64
}

// RoundRobin plays every pairing of members (given in ascending ID order). Match seeds are
// drawn from rng before any match runs, so the outcome does not depend on Workers. The first
// oracle error aborts the tournament.
func (e *Evaluator) RoundRobin(ctx context.Context, members []*Member, rng *rand.Rand) (TournamentResult, error) {
	var pairings []pairing
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			pairings = append(pairings, pairing{a: members[i], b: members[j], seed: rng.Int63()})
		}
	}

	winners := make([]Side, len(pairings))
	if e.Workers <= 1 {
		for i, p := range pairings {
			if err := ctx.Err(); err != nil {
				return TournamentResult{}, err
			}
			side, err := e.play(ctx, i, p)
			if err != nil {
				return TournamentResult{}, err
			}
			winners[i] = side
		}
	} else {
		// Each task writes only its own slot; counts are reduced after Wait.
		p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(e.Workers)
		for i, pr := range pairings {
			i, pr := i, pr
			p.Go(func(ctx context.Context) error {
				side, err := e.play(ctx, i, pr)
				if err != nil {
					return err
				}
				winners[i] = side
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			return TournamentResult{}, err
		}
	}

	result := TournamentResult{
		Played:   len(pairings),
		Outcomes: make([]Outcome, len(pairings)),
	}
	for i, p := range pairings {
		result.Outcomes[i] = Outcome{A: p.a.ID, B: p.b.ID, Winner: winners[i]}
		switch winners[i] {
		case SideA, SideB:
			result.Decided++
		default:
			result.Undecided++
		}
	}
	return result, nil
}

func (e *Evaluator) play(ctx context.Context, index int, p pairing) (Side, error) {
	a, err := e.NewContestant(p.a.ID, p.a.Genome)
	if err != nil {
		return NoWinner, fmt.Errorf("match %d: %w", index, err)
	}
	b, err := e.NewContestant(p.b.ID, p.b.Genome)
	if err != nil {
		return NoWinner, fmt.Errorf("match %d: %w", index, err)
	}

	side, err := e.Oracle.RunMatch(ctx, Match{Index: index, Seed: p.seed, A: a, B: b})
	if err != nil {
		return NoWinner, fmt.Errorf("match %d (%d vs %d): %w", index, p.a.ID, p.b.ID, err)
	}
	e.logger().Debug("match finished", "match", index, "a", p.a.ID, "b", p.b.ID, "winner", side.String())
	return side, nil
}
