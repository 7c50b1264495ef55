// internal/handlers/server_test.go
package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teencards/teenpatti/internal/room"
)

func testConn() *room.Conn {
	return &room.Conn{
		ParticipantID: uuid.New(),
		Cancel:        func() {},
		Out:           make(chan room.OutMessage, 16),
	}
}

func nextMessage(t *testing.T, c *room.Conn) room.OutMessage {
	t.Helper()
	select {
	case m := <-c.Out:
		return m
	default:
		t.Fatal("expected a queued message")
		return room.OutMessage{}
	}
}

func TestDispatchTableCoversAllEvents(t *testing.T) {
	s := NewServer(logrus.New())
	for _, event := range []string{"create-room", "join-room", "toggle-ready", "game-action"} {
		assert.Contains(t, s.dispatch, event)
	}
	assert.Len(t, s.dispatch, 4)
}

func TestCreateRoomRequiresName(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleCreateRoom(conn, inboundMessage{Type: "create-room"})

	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventRoomError, msg.Type)
}

func TestCreateRoomSetsNameAndReplies(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleCreateRoom(conn, inboundMessage{Type: "create-room", PlayerName: "Alice"})

	assert.Equal(t, "Alice", conn.Name)
	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventRoomCreated, msg.Type)

	code, ok := s.Registry.RoomOf(conn.ParticipantID)
	require.True(t, ok)
	assert.Len(t, code, 6)
}

func TestJoinRoomRequiresCodeAndName(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleJoinRoom(conn, inboundMessage{Type: "join-room", PlayerName: "Bob"})
	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventRoomError, msg.Type)

	s.handleJoinRoom(conn, inboundMessage{Type: "join-room", RoomCode: "ABCDEF"})
	msg = nextMessage(t, conn)
	assert.Equal(t, room.EventRoomError, msg.Type)
}

func TestJoinUnknownRoomReportsError(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleJoinRoom(conn, inboundMessage{Type: "join-room", RoomCode: "ZZZZZZ", PlayerName: "Bob"})

	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventRoomError, msg.Type)
}

func TestGameActionRejectsUnknownVerb(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleGameAction(conn, inboundMessage{Type: "game-action", RoomCode: "ABCDEF", Action: "bluff"})

	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventGameError, msg.Type)
}

func TestGameActionWithoutRoomReportsError(t *testing.T) {
	s := NewServer(logrus.New())
	conn := testConn()

	s.handleGameAction(conn, inboundMessage{Type: "game-action", RoomCode: "ZZZZZZ", Action: "call"})

	msg := nextMessage(t, conn)
	assert.Equal(t, room.EventGameError, msg.Type)
}
