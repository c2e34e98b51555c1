// Package strategy turns network outputs into gin rummy decisions.
//
// A decision is one of five closed action kinds, each carrying the payload it needs. The neural
// strategy decodes the network's continuous outputs into such an action; an Agent holds the
// pending decision until the game asks for it to be executed.
package strategy

import "fmt"

// Kind enumerates the action kinds in bucket order.
type Kind int

const (
	KindDiscard Kind = iota
	KindDraw
	KindKnock
	KindKnockGin
	KindPickupFromDiscard

	numKinds = 5
)

var kindNames = [numKinds]string{
	KindDiscard:           "DISCARD",
	KindDraw:              "DRAW",
	KindKnock:             "KNOCK",
	KindKnockGin:          "KNOCK-GIN",
	KindPickupFromDiscard: "PICKUP-FROM-DISCARD",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is a decided move. The set of implementations is closed.
type Action interface {
	Kind() Kind
	isAction()
}

// Discard drops the card at Index from the hand.
type Discard struct{ Index int }

// Draw takes the top card of the deck.
type Draw struct{}

// Knock discards the card at Index and ends the hand.
type Knock struct{ Index int }

// KnockGin discards the card at Index and claims gin.
type KnockGin struct{ Index int }

// PickupFromDiscard takes the top card of the discard pile.
type PickupFromDiscard struct{}

func (Discard) Kind() Kind           { return KindDiscard }
func (Draw) Kind() Kind              { return KindDraw }
func (Knock) Kind() Kind             { return KindKnock }
func (KnockGin) Kind() Kind          { return KindKnockGin }
func (PickupFromDiscard) Kind() Kind { return KindPickupFromDiscard }

func (Discard) isAction()           {}
func (Draw) isAction()              {}
func (Knock) isAction()             {}
func (KnockGin) isAction()          {}
func (PickupFromDiscard) isAction() {}

func (a Discard) String() string         { return fmt.Sprintf("%s %d", KindDiscard, a.Index) }
func (a Knock) String() string           { return fmt.Sprintf("%s %d", KindKnock, a.Index) }
func (a KnockGin) String() string        { return fmt.Sprintf("%s %d", KindKnockGin, a.Index) }
func (Draw) String() string              { return KindDraw.String() }
func (PickupFromDiscard) String() string { return KindPickupFromDiscard.String() }

// NewAction builds the action of kind k. index is ignored by kinds that carry no card.
func NewAction(k Kind, index int) (Action, error) {
	switch k {
	case KindDiscard:
		return Discard{Index: index}, nil
	case KindDraw:
		return Draw{}, nil
	case KindKnock:
		return Knock{Index: index}, nil
	case KindKnockGin:
		return KnockGin{Index: index}, nil
	case KindPickupFromDiscard:
		return PickupFromDiscard{}, nil
	}
	return nil, fmt.Errorf("strategy: unknown action kind %d", int(k))
}

// Executor is the player side of the game that carries out actions.
type Executor interface {
	Draw() error
	PickupFromDiscard() error
	Discard(index int) error
	Knock(index int) error
	KnockGin(index int) error
}

// Execute dispatches a on exec.
func Execute(a Action, exec Executor) error {
	switch act := a.(type) {
	case Discard:
		return exec.Discard(act.Index)
	case Draw:
		return exec.Draw()
	case Knock:
		return exec.Knock(act.Index)
	case KnockGin:
		return exec.KnockGin(act.Index)
	case PickupFromDiscard:
		return exec.PickupFromDiscard()
	case nil:
		return ErrNoDecision
	}
	return fmt.Errorf("strategy: unsupported action %T", a)
}
