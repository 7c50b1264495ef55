// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/teencards/teenpatti/internal/models"
)

const (
	// Ante is the mandatory contribution each active player makes at deal time.
	Ante = 1
	// MinTableBet is the opening table bet every caller must match.
	MinTableBet = 2
	// MaxBettingRounds caps how many settled betting rounds run before a
	// forced showdown.
	MaxBettingRounds = 5
)

// Phase is the engine's lifecycle stage. The machine is single-pass:
// betting -> showdown -> finished, or betting -> finished on attrition.
// No phase is ever re-entered.
type Phase string

const (
	PhaseBetting  Phase = "betting"
	PhaseShowdown Phase = "showdown"
	PhaseFinished Phase = "finished"
)

// ErrAlreadyDealt guards against dealing the same hand twice.
var ErrAlreadyDealt = errors.New("hand already dealt")

// Seat identifies one roster entry a hand is built from.
type Seat struct {
	ID   uuid.UUID
	Name string
}

// TeenPattiGame is the authoritative state machine for a single hand. It is
// transport-free: it never broadcasts, it only mutates state and returns
// results. Callers are responsible for serializing access; the room registry
// only ever touches an engine while holding its own lock.
//
// Invariant: Pot always equals the sum of TotalCommitted over every player
// ever dealt into the hand.
type TeenPattiGame struct {
	ID      uuid.UUID
	Players []*models.Player // seating order, fixed for the hand

	deck       *Deck
	Pot        int
	CurrentBet int
	TurnIndex  int
	Round      int
	Phase      Phase
	dealt      bool
}

// NewGame builds a hand from a roster snapshot. Seating order follows the
// roster order and is fixed for the life of the hand.
func NewGame(seats []Seat) *TeenPattiGame {
	id, _ := uuid.NewRandom()
	g := &TeenPattiGame{
		ID:         id,
		deck:       NewDeck(),
		CurrentBet: MinTableBet,
		Round:      1,
		Phase:      PhaseBetting,
	}
	for _, s := range seats {
		g.Players = append(g.Players, &models.Player{
			ID:     s.ID,
			Name:   s.Name,
			Hand:   make([]*models.Card, 0, 3),
			Active: true,
		})
	}
	return g
}

// Deal gives every active player 3 cards in round-robin passes, then charges
// the ante. It must be called exactly once, before any action is accepted.
func (g *TeenPattiGame) Deal() error {
	if g.dealt {
		return ErrAlreadyDealt
	}
	for pass := 0; pass < 3; pass++ {
		for _, p := range g.Players {
			if !p.Active {
				continue
			}
			card, err := g.deck.DealOne()
			if err != nil {
				return fmt.Errorf("dealing to %s: %w", p.Name, err)
			}
			p.Hand = append(p.Hand, card)
		}
	}
	for _, p := range g.Players {
		if !p.Active {
			continue
		}
		p.CurrentBet = Ante
		p.TotalCommitted = Ante
		g.Pot += Ante
	}
	g.dealt = true
	return nil
}

// Apply resolves one betting action for the given player. On any validation
// error the state is untouched. On success it returns the resolved action for
// broadcast and advances the turn, which may move the hand to showdown or
// finish it by attrition.
func (g *TeenPattiGame) Apply(playerID uuid.UUID, action Action) (ActionResult, error) {
	if g.Phase != PhaseBetting {
		return ActionResult{}, ErrInvalidAction
	}
	p := g.playerByID(playerID)
	if p == nil || !p.Active || p.Folded {
		return ActionResult{}, ErrInvalidPlayer
	}
	if g.Players[g.TurnIndex].ID != playerID {
		return ActionResult{}, ErrOutOfTurn
	}

	res := ActionResult{PlayerID: p.ID, PlayerName: p.Name}
	switch action.Kind {
	case ActionPack:
		p.Folded = true
		p.Active = false
		res.Action = "packed"

	case ActionCall:
		delta := g.CurrentBet - p.CurrentBet
		p.CurrentBet = g.CurrentBet
		p.TotalCommitted += delta
		g.Pot += delta
		res.Action = "call"
		res.Amount = g.CurrentBet

	case ActionRaise:
		// A raise must at least double the table bet, whatever was asked for.
		target := action.Amount
		if min := g.CurrentBet * 2; target < min {
			target = min
		}
		delta := target - p.CurrentBet
		p.CurrentBet = target
		p.TotalCommitted += delta
		g.Pot += delta
		g.CurrentBet = target
		res.Action = "raise"
		res.Amount = target

	default:
		return ActionResult{}, ErrInvalidAction
	}

	g.advanceTurn()
	return res, nil
}

// advanceTurn finishes the hand if attrition leaves fewer than two players,
// otherwise rotates to the next active, unfolded seat and checks whether the
// betting round settled.
func (g *TeenPattiGame) advanceTurn() {
	active := g.ActivePlayers()
	if len(active) < 2 {
		g.Phase = PhaseFinished
		return
	}

	// Terminates because at least one active, unfolded player exists.
	for {
		g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
		next := g.Players[g.TurnIndex]
		if next.Active && !next.Folded {
			break
		}
	}

	// A betting round settles once every active player has matched the table
	// bet. After enough rounds, or heads-up, the hand goes to showdown.
	settled := true
	for _, p := range active {
		if p.CurrentBet != g.CurrentBet {
			settled = false
			break
		}
	}
	if settled {
		g.Round++
		if g.Round > MaxBettingRounds || len(active) == 2 {
			g.Phase = PhaseShowdown
		}
	}
}

// ActivePlayers returns the players still contending for the pot.
func (g *TeenPattiGame) ActivePlayers() []*models.Player {
	var out []*models.Player
	for _, p := range g.Players {
		if p.Active && !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

// RemovePlayer marks a player folded and inactive outside the normal turn
// flow (disconnect handling). It deliberately does not recompute the turn;
// callers must invoke RecoverTurn afterward. The player's committed chips
// stay in the pot.
func (g *TeenPattiGame) RemovePlayer(playerID uuid.UUID) {
	if p := g.playerByID(playerID); p != nil {
		p.Folded = true
		p.Active = false
	}
}

// RecoverTurn re-establishes a legal turn holder after an out-of-band
// removal: it finishes the hand if attrition applies, and otherwise moves the
// turn off a now-removed seat onto the next active player.
func (g *TeenPattiGame) RecoverTurn() {
	if g.Phase != PhaseBetting {
		return
	}
	if len(g.ActivePlayers()) < 2 {
		g.Phase = PhaseFinished
		return
	}
	cur := g.Players[g.TurnIndex]
	if cur.Active && !cur.Folded {
		return
	}
	for {
		g.TurnIndex = (g.TurnIndex + 1) % len(g.Players)
		next := g.Players[g.TurnIndex]
		if next.Active && !next.Folded {
			return
		}
	}
}

// Winner is one pot recipient reported at hand end.
type Winner struct {
	PlayerID uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Winnings int            `json:"winnings"`
	Hand     *HandRank      `json:"hand,omitempty"`
	Cards    []*models.Card `json:"cards,omitempty"`
}

// Settle distributes the pot and moves the hand to finished. A lone remaining
// player wins outright; otherwise all remaining hands are ranked and the pot
// splits evenly among the best. Integer division floors the shares: with a
// pot of 10 and 3 tied winners each gets 3 and the remainder goes unawarded.
func (g *TeenPattiGame) Settle() []Winner {
	g.Phase = PhaseFinished

	active := g.ActivePlayers()
	if len(active) == 0 {
		return nil
	}
	if len(active) == 1 {
		p := active[0]
		return []Winner{{PlayerID: p.ID, Name: p.Name, Winnings: g.Pot, Cards: p.Hand}}
	}

	type contender struct {
		player *models.Player
		hand   HandRank
	}
	var best []contender
	for _, p := range active {
		hr, err := Evaluate(p.Hand)
		if err != nil {
			log.Printf("game %s: cannot evaluate hand for %s: %v", g.ID, p.Name, err)
			continue
		}
		switch {
		case len(best) == 0 || hr.Beats(best[0].hand):
			best = []contender{{p, hr}}
		case !best[0].hand.Beats(hr):
			best = append(best, contender{p, hr})
		}
	}
	if len(best) == 0 {
		return nil
	}

	share := g.Pot / len(best)
	winners := make([]Winner, 0, len(best))
	for _, c := range best {
		hand := c.hand
		winners = append(winners, Winner{
			PlayerID: c.player.ID,
			Name:     c.player.Name,
			Winnings: share,
			Hand:     &hand,
			Cards:    c.player.Hand,
		})
	}
	return winners
}

// PlayerSummary is the public per-seat view: bets and a card count, never the
// cards themselves.
type PlayerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bet       int       `json:"bet"`
	TotalBet  int       `json:"totalBet"`
	Folded    bool      `json:"folded"`
	Active    bool      `json:"isPlaying"`
	CardCount int       `json:"cardCount"`
}

// PublicState is the broadcast-safe snapshot of the hand.
type PublicState struct {
	Players    []PlayerSummary `json:"players"`
	Pot        int             `json:"pot"`
	TurnIndex  int             `json:"currentPlayerIndex"`
	CurrentBet int             `json:"currentBet"`
	Round      int             `json:"round"`
	Phase      Phase           `json:"gamePhase"`
}

// PublicState snapshots the hand without revealing any cards.
func (g *TeenPattiGame) PublicState() PublicState {
	st := PublicState{
		Pot:        g.Pot,
		TurnIndex:  g.TurnIndex,
		CurrentBet: g.CurrentBet,
		Round:      g.Round,
		Phase:      g.Phase,
	}
	for _, p := range g.Players {
		st.Players = append(st.Players, PlayerSummary{
			ID:        p.ID,
			Name:      p.Name,
			Bet:       p.CurrentBet,
			TotalBet:  p.TotalCommitted,
			Folded:    p.Folded,
			Active:    p.Active,
			CardCount: len(p.Hand),
		})
	}
	return st
}

// HandOf returns the private cards held by one player, or nil if unknown.
func (g *TeenPattiGame) HandOf(playerID uuid.UUID) []*models.Card {
	if p := g.playerByID(playerID); p != nil {
		return p.Hand
	}
	return nil
}

// AllHands reveals every dealt hand, keyed by player id. Only sent once the
// hand is over.
func (g *TeenPattiGame) AllHands() map[string][]*models.Card {
	out := make(map[string][]*models.Card, len(g.Players))
	for _, p := range g.Players {
		out[p.ID.String()] = p.Hand
	}
	return out
}

func (g *TeenPattiGame) playerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}
