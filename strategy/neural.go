package strategy

import (
	"errors"
	"fmt"

	"github.com/baldhumanity/ginevolve/nn"
)

// Output keys read off a decision network.
const (
	OutputAction              = "action"
	OutputIndex               = "index"
	OutputAcceptImproperKnock = "accept_improper_knock"
)

// OutputKeys lists the outputs a decision network must expose, in output-unit order.
var OutputKeys = []string{OutputAction, OutputIndex, OutputAcceptImproperKnock}

var (
	// ErrNoDecision is returned when an agent is asked to execute before a decision was made.
	ErrNoDecision = errors.New("no pending decision to execute")

	// ErrUnknownOutput is returned when a network lacks one of the OutputKeys.
	ErrUnknownOutput = errors.New("network has no such output")
)

// Strategy decides moves for one player.
type Strategy interface {
	DetermineBestAction() (Action, error)
	ConsiderAcceptingImproperKnock() bool
}

// Outputs is the slice of a network a NeuralStrategy needs.
type Outputs interface {
	Output(key string) (float64, bool)
}

// NeuralStrategy reads its decisions off a network's outputs.
type NeuralStrategy struct {
	Net Outputs

	// Hand reports the player's current hand; its occupied slots bound the index output.
	Hand *nn.Feed
}

// NewNeuralStrategy wraps net. hand may be nil, in which case card indexes decode against
// MaxHandSize buckets.
func NewNeuralStrategy(net Outputs, hand *nn.Feed) *NeuralStrategy {
	return &NeuralStrategy{Net: net, Hand: hand}
}

// MaxHandSize is the largest hand a player holds mid-turn.
const MaxHandSize = 11

func (s *NeuralStrategy) output(key string) (float64, error) {
	v, ok := s.Net.Output(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOutput, key)
	}
	return v, nil
}

// DecodeBestAction returns the kind selected by the action output.
func (s *NeuralStrategy) DecodeBestAction() (Kind, error) {
	v, err := s.output(OutputAction)
	if err != nil {
		return 0, err
	}
	return DecodeActionKind(v), nil
}

func (s *NeuralStrategy) handSize() int {
	if s.Hand == nil {
		return MaxHandSize
	}
	if n := s.Hand.Occupied(); n > 0 {
		return n
	}
	return MaxHandSize
}

// DetermineBestAction decodes the action kind and, for card-carrying kinds, the card index.
func (s *NeuralStrategy) DetermineBestAction() (Action, error) {
	kind, err := s.DecodeBestAction()
	if err != nil {
		return nil, err
	}
	index := 0
	switch kind {
	case KindDiscard, KindKnock, KindKnockGin:
		v, err := s.output(OutputIndex)
		if err != nil {
			return nil, err
		}
		index = DecodeSignal(v, s.handSize())
	}
	return NewAction(kind, index)
}

// ConsiderAcceptingImproperKnock accepts when the accept output is at least one half.
// A network without that output never accepts.
func (s *NeuralStrategy) ConsiderAcceptingImproperKnock() bool {
	v, err := s.output(OutputAcceptImproperKnock)
	return err == nil && v >= 0.5
}

// Agent couples a strategy with the decision it most recently produced.
type Agent struct {
	Strategy Strategy
	pending  Action
}

// NewAgent creates an agent with no pending decision.
func NewAgent(s Strategy) *Agent {
	return &Agent{Strategy: s}
}

// Consult asks the strategy for its next move and stores it as pending.
func (a *Agent) Consult() (Action, error) {
	act, err := a.Strategy.DetermineBestAction()
	if err != nil {
		return nil, fmt.Errorf("consulting strategy: %w", err)
	}
	a.pending = act
	return act, nil
}

// Pending returns the stored decision, or nil.
func (a *Agent) Pending() Action {
	return a.pending
}

// Execute carries out the pending decision on exec and clears it.
// Without a pending decision it returns ErrNoDecision.
func (a *Agent) Execute(exec Executor) error {
	if a.pending == nil {
		return ErrNoDecision
	}
	act := a.pending
	a.pending = nil
	return Execute(act, exec)
}

// AcceptImproperKnock defers to the strategy.
func (a *Agent) AcceptImproperKnock() bool {
	return a.Strategy.ConsiderAcceptingImproperKnock()
}
