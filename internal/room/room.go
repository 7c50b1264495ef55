// internal/room/room.go
package room

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/teencards/teenpatti/internal/game"
)

// Outbound event types delivered through each participant's Conn.
const (
	EventRoomCreated = "room-created"
	EventRoomUpdated = "room-updated"
	EventRoomError   = "room-error"
	EventGameStarted = "game-started"
	EventGameUpdated = "game-updated"
	EventGameOver    = "game-over"
	EventGameError   = "game-error"
)

// OutMessage is one outbound event. The transport marshals the whole message
// as a single JSON object.
type OutMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Conn is a single participant's presence: identity plus an outbound queue
// the transport drains. The registry never touches sockets directly.
type Conn struct {
	ParticipantID uuid.UUID
	Name          string
	Cancel        func()
	Out           chan OutMessage
}

// Send pushes a message onto the participant's queue non-blockingly. A full
// or closed queue drops the message rather than stalling event processing.
func (c *Conn) Send(msg OutMessage) {
	select {
	case c.Out <- msg:
	default:
		log.Printf("room: out queue for participant %s full or closed, dropped %q", c.ParticipantID, msg.Type)
	}
}

// SendError reports a rejected event to this participant only.
func (c *Conn) SendError(eventType, message string) {
	c.Send(OutMessage{Type: eventType, Data: map[string]interface{}{"message": message}})
}

const (
	// Capacity is the fixed seat limit per room.
	Capacity = 6
	// MinToStart is the smallest roster that can begin a hand.
	MinToStart = 3
)

// Member is one roster entry. Order of the roster fixes seating order for
// every hand the room hosts.
type Member struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Ready bool      `json:"ready"`
}

// Room groups participants under a join code. A room survives across hands
// and owns at most one live engine at a time; it is destroyed when the last
// participant leaves. All access happens under the registry's lock.
type Room struct {
	Code    string
	Members []*Member
	Started bool

	// Game is the single live hand, nil between hands.
	Game *game.TeenPattiGame

	conns      map[uuid.UUID]*Conn
	resetTimer *time.Timer
}

// Snapshot is the broadcast-safe roster view.
type Snapshot struct {
	Code       string   `json:"roomCode"`
	Players    []Member `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	Started    bool     `json:"gameStarted"`
}

// Snapshot copies the roster state for broadcast, detached from the live
// structs so marshaling outside the lock is safe.
func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		Code:       r.Code,
		Players:    make([]Member, 0, len(r.Members)),
		MaxPlayers: Capacity,
		Started:    r.Started,
	}
	for _, m := range r.Members {
		s.Players = append(s.Players, *m)
	}
	return s
}

// Member returns the roster entry for a participant, or nil.
func (r *Room) Member(id uuid.UUID) *Member {
	for _, m := range r.Members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// HasName reports whether a roster entry already uses the given name.
// Comparison is case-sensitive.
func (r *Room) HasName(name string) bool {
	for _, m := range r.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

// AddMember seats a participant as not-ready and registers their connection.
func (r *Room) AddMember(conn *Conn, name string) {
	r.Members = append(r.Members, &Member{ID: conn.ParticipantID, Name: name})
	r.conns[conn.ParticipantID] = conn
}

// RemoveMember drops a participant from the roster and forgets their
// connection. Seating order of the remaining members is preserved.
func (r *Room) RemoveMember(id uuid.UUID) {
	for i, m := range r.Members {
		if m.ID == id {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			break
		}
	}
	delete(r.conns, id)
}

// AllReady reports whether every seated member has toggled ready.
func (r *Room) AllReady() bool {
	for _, m := range r.Members {
		if !m.Ready {
			return false
		}
	}
	return len(r.Members) > 0
}

// IsFull reports whether the roster is at capacity.
func (r *Room) IsFull() bool {
	return len(r.Members) >= Capacity
}

// IsEmpty reports whether nobody is seated.
func (r *Room) IsEmpty() bool {
	return len(r.Members) == 0
}

// Broadcast queues a message for every seated participant.
func (r *Room) Broadcast(msg OutMessage) {
	for _, conn := range r.conns {
		conn.Send(msg)
	}
}

// SendTo queues a message for one participant, if still connected.
func (r *Room) SendTo(id uuid.UUID, msg OutMessage) {
	if conn, ok := r.conns[id]; ok {
		conn.Send(msg)
	}
}
