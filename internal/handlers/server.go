// internal/handlers/server.go
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/teencards/teenpatti/internal/game"
	"github.com/teencards/teenpatti/internal/room"
)

// inboundMessage is the envelope for every event a client sends. Which fields
// are meaningful depends on Type.
type inboundMessage struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName,omitempty"`
	RoomCode   string `json:"roomCode,omitempty"`
	Action     string `json:"action,omitempty"`
	Amount     int    `json:"amount,omitempty"`
}

// Server owns the session registry and routes inbound events to it through an
// explicit dispatch table.
type Server struct {
	Logger   *logrus.Logger
	Registry *room.Registry

	dispatch map[string]func(*room.Conn, inboundMessage)
}

// NewServer builds a Server with an empty registry and the event table wired.
func NewServer(logger *logrus.Logger) *Server {
	s := &Server{
		Logger:   logger,
		Registry: room.NewRegistry(),
	}
	s.dispatch = map[string]func(*room.Conn, inboundMessage){
		"create-room":  s.handleCreateRoom,
		"join-room":    s.handleJoinRoom,
		"toggle-ready": s.handleToggleReady,
		"game-action":  s.handleGameAction,
	}
	return s
}

func (s *Server) handleCreateRoom(conn *room.Conn, msg inboundMessage) {
	if msg.PlayerName == "" {
		conn.SendError(room.EventRoomError, "player name is required")
		return
	}
	conn.Name = msg.PlayerName
	if err := s.Registry.CreateRoom(conn, msg.PlayerName); err != nil {
		conn.SendError(room.EventRoomError, err.Error())
	}
}

func (s *Server) handleJoinRoom(conn *room.Conn, msg inboundMessage) {
	if msg.PlayerName == "" || msg.RoomCode == "" {
		conn.SendError(room.EventRoomError, "room code and player name are required")
		return
	}
	conn.Name = msg.PlayerName
	if err := s.Registry.JoinRoom(msg.RoomCode, conn, msg.PlayerName); err != nil {
		conn.SendError(room.EventRoomError, err.Error())
	}
}

func (s *Server) handleToggleReady(conn *room.Conn, msg inboundMessage) {
	if err := s.Registry.ToggleReady(msg.RoomCode, conn.ParticipantID); err != nil {
		conn.SendError(room.EventRoomError, err.Error())
	}
}

func (s *Server) handleGameAction(conn *room.Conn, msg inboundMessage) {
	action, err := game.ParseAction(msg.Action, msg.Amount)
	if err != nil {
		conn.SendError(room.EventGameError, err.Error())
		return
	}
	if err := s.Registry.ApplyGameAction(msg.RoomCode, conn.ParticipantID, action); err != nil {
		conn.SendError(room.EventGameError, err.Error())
	}
}
