// internal/room/registry.go
package room

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teencards/teenpatti/internal/game"
)

// Validation errors for room lifecycle operations. All are reported only to
// the originating participant and leave every room unchanged.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game already in progress")
	ErrNameTaken      = errors.New("player name already taken")
	ErrAlreadyInRoom  = errors.New("already in a room")
	ErrNoActiveGame   = errors.New("no game in progress")
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry is the session store: it maps join codes to rooms, participants to
// their room, and serializes every inbound event under one lock so room and
// engine state only ever mutate in arrival order, one event at a time.
type Registry struct {
	mu         sync.Mutex
	rooms      map[string]*Room
	memberRoom map[uuid.UUID]string
	rng        *rand.Rand

	// ResetDelay is how long results stay on screen before the room returns
	// to the lobby state. Shortened in tests.
	ResetDelay time.Duration
}

// NewRegistry returns an empty session store.
func NewRegistry() *Registry {
	return &Registry{
		rooms:      make(map[string]*Room),
		memberRoom: make(map[uuid.UUID]string),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		ResetDelay: 10 * time.Second,
	}
}

// CreateRoom allocates a fresh room under a unique code and seats the creator
// as its sole, not-ready member. The creator receives room-created.
func (r *Registry) CreateRoom(conn *Conn, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.memberRoom[conn.ParticipantID]; ok {
		return ErrAlreadyInRoom
	}

	code := r.newCode()
	room := &Room{
		Code:  code,
		conns: make(map[uuid.UUID]*Conn),
	}
	room.AddMember(conn, name)
	r.rooms[code] = room
	r.memberRoom[conn.ParticipantID] = code

	conn.Send(OutMessage{Type: EventRoomCreated, Data: room.Snapshot()})
	log.Printf("room %s created by %s", code, name)
	return nil
}

// JoinRoom seats a participant in an existing room as not-ready, rejecting
// full, started, unknown rooms and duplicate names. Everyone in the room
// receives the updated roster.
func (r *Registry) JoinRoom(code string, conn *Conn, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.memberRoom[conn.ParticipantID]; ok {
		return ErrAlreadyInRoom
	}
	room, ok := r.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}
	if room.IsFull() {
		return ErrRoomFull
	}
	if room.Started {
		return ErrGameInProgress
	}
	if room.HasName(name) {
		return ErrNameTaken
	}

	room.AddMember(conn, name)
	r.memberRoom[conn.ParticipantID] = code

	room.Broadcast(OutMessage{Type: EventRoomUpdated, Data: room.Snapshot()})
	log.Printf("room %s: %s joined (%d/%d seats)", code, name, len(room.Members), Capacity)
	return nil
}

// ToggleReady flips a member's ready flag. Unknown rooms or participants are
// a no-op. Once at least MinToStart members are seated and all are ready, the
// hand starts.
func (r *Registry) ToggleReady(code string, participantID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil
	}
	member := room.Member(participantID)
	if member == nil {
		return nil
	}
	member.Ready = !member.Ready
	room.Broadcast(OutMessage{Type: EventRoomUpdated, Data: room.Snapshot()})

	if !room.Started && len(room.Members) >= MinToStart && room.AllReady() {
		r.startHand(room)
	}
	return nil
}

// startHand snapshots the roster into a fresh engine, deals, and publishes
// the opening state. Assumes the lock is held.
func (r *Registry) startHand(room *Room) {
	seats := make([]game.Seat, 0, len(room.Members))
	for _, m := range room.Members {
		seats = append(seats, game.Seat{ID: m.ID, Name: m.Name})
	}

	g := game.NewGame(seats)
	if err := g.Deal(); err != nil {
		// Only reachable if the capacity invariant was breached upstream.
		log.Printf("room %s: integrity violation dealing hand: %v", room.Code, err)
		room.Broadcast(OutMessage{Type: EventRoomError, Data: map[string]interface{}{"message": "failed to deal hand"}})
		return
	}
	room.Started = true
	room.Game = g

	r.publishGameState(room, EventGameStarted, nil)
	log.Printf("room %s: hand %s dealt to %d players, pot=%d", room.Code, g.ID, len(seats), g.Pot)
}

// ApplyGameAction forwards a betting action to the room's engine. On success
// everyone receives the new state; if the action closed the hand, settlement
// and the delayed lobby reset follow immediately.
func (r *Registry) ApplyGameAction(code string, participantID uuid.UUID, action game.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[code]
	if !ok {
		return ErrRoomNotFound
	}
	g := room.Game
	if g == nil {
		return ErrNoActiveGame
	}

	res, err := g.Apply(participantID, action)
	if err != nil {
		return err
	}

	r.publishGameState(room, EventGameUpdated, &res)
	if g.Phase != game.PhaseBetting {
		r.finishHand(room)
	}
	return nil
}

// Disconnect removes a participant from whichever room they occupy. Empty
// rooms are torn down with any live hand; otherwise a hand in progress loses
// the seat, and ends by attrition if fewer than two players remain.
func (r *Registry) Disconnect(participantID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.memberRoom[participantID]
	if !ok {
		return
	}
	delete(r.memberRoom, participantID)
	room, ok := r.rooms[code]
	if !ok {
		return
	}

	room.RemoveMember(participantID)
	log.Printf("room %s: participant %s disconnected", code, participantID)

	if room.IsEmpty() {
		if room.resetTimer != nil {
			room.resetTimer.Stop()
		}
		delete(r.rooms, code)
		log.Printf("room %s: empty, discarded", code)
		return
	}

	room.Broadcast(OutMessage{Type: EventRoomUpdated, Data: room.Snapshot()})

	g := room.Game
	if !room.Started || g == nil || g.Phase == game.PhaseFinished {
		return
	}
	g.RemovePlayer(participantID)
	g.RecoverTurn()
	if g.Phase == game.PhaseFinished {
		r.finishHand(room)
	} else {
		// Hand continues; republish so clients see the re-pointed turn.
		r.publishGameState(room, EventGameUpdated, nil)
	}
}

// finishHand settles the pot, reveals the final cards, and schedules the
// room's return to the lobby. Assumes the lock is held.
func (r *Registry) finishHand(room *Room) {
	g := room.Game
	winners := g.Settle()
	room.Broadcast(OutMessage{Type: EventGameOver, Data: map[string]interface{}{
		"winners":    winners,
		"finalCards": g.AllHands(),
	}})
	log.Printf("room %s: hand %s over, %d winner(s), pot=%d", room.Code, g.ID, len(winners), g.Pot)

	// Leave results up briefly, then reset to the lobby. The timer no-ops if
	// the room was torn down in the meantime.
	code := room.Code
	room.resetTimer = time.AfterFunc(r.ResetDelay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		room, ok := r.rooms[code]
		if !ok {
			return
		}
		room.resetTimer = nil
		room.Game = nil
		room.Started = false
		for _, m := range room.Members {
			m.Ready = false
		}
		room.Broadcast(OutMessage{Type: EventRoomUpdated, Data: room.Snapshot()})
	})
}

// publishGameState sends each member the public snapshot plus their own
// private hand. Other players' cards are never included; the public view
// carries card counts only. Assumes the lock is held.
func (r *Registry) publishGameState(room *Room, eventType string, last *game.ActionResult) {
	public := room.Game.PublicState()
	for _, m := range room.Members {
		data := map[string]interface{}{
			"gameState": public,
			"hand":      room.Game.HandOf(m.ID),
		}
		if last != nil {
			data["lastAction"] = *last
		}
		room.SendTo(m.ID, OutMessage{Type: eventType, Data: data})
	}
}

// RoomOf reports which room code a participant currently occupies.
func (r *Registry) RoomOf(participantID uuid.UUID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.memberRoom[participantID]
	return code, ok
}

// newCode generates an unused 6-character join code. Assumes the lock is held.
func (r *Registry) newCode() string {
	for {
		b := make([]byte, 6)
		for i := range b {
			b[i] = codeAlphabet[r.rng.Intn(len(codeAlphabet))]
		}
		code := string(b)
		if _, exists := r.rooms[code]; !exists {
			return code
		}
	}
}
