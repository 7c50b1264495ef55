// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/teencards/teenpatti/internal/middleware"
	"github.com/teencards/teenpatti/internal/room"
)

// WSHandler upgrades the connection, establishes guest identity, and runs the
// read loop until the client goes away. Connection teardown is what drives
// the registry's disconnect handling; there is no explicit leave event.
func WSHandler(logger *logrus.Logger, s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"teenpatti"},
			OriginPatterns: []string{"*"}, // adjust for production
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "teenpatti" {
			c.Close(BadSubprotocolError, "client must speak the teenpatti subprotocol")
			return
		}

		participantID, err := EnsureGuest(w, r)
		if err != nil {
			logger.Warnf("guest identity failed: %v", err)
			c.Close(InvalidAuthTokenError, "could not establish identity")
			return
		}
		logger.Infof("participant %s connected from %s", participantID, r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn := &room.Conn{
			ParticipantID: participantID,
			Cancel:        cancel,
			Out:           make(chan room.OutMessage, 16),
		}

		go writePump(ctx, c, conn, logger)

		readErr := readPump(ctx, c, s, conn, logger)

		// Reader is gone: whatever room the participant occupied cleans up.
		s.Registry.Disconnect(participantID)
		middleware.LogWebSocketDisconnect(logger, r.RemoteAddr, readErr)
	}
}

// readPump consumes inbound events one at a time and routes them through the
// server's dispatch table. Events are therefore applied in arrival order; the
// registry's lock makes each one atomic against every other connection.
func readPump(ctx context.Context, c *websocket.Conn, s *Server, conn *room.Conn, logger *logrus.Logger) error {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				strings.Contains(err.Error(), "context canceled") {
				return nil
			}
			return err
		}
		if typ != websocket.MessageText {
			logger.Warnf("participant %s sent non-text message type %d, ignoring", conn.ParticipantID, typ)
			continue
		}

		var msg inboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("participant %s sent invalid JSON: %v", conn.ParticipantID, err)
			conn.SendError(room.EventRoomError, "invalid JSON format")
			continue
		}

		handler, ok := s.dispatch[msg.Type]
		if !ok {
			logger.Warnf("participant %s sent unknown event type %q", conn.ParticipantID, msg.Type)
			conn.SendError(room.EventRoomError, fmt.Sprintf("unknown event type: %s", msg.Type))
			continue
		}
		logger.Debugf("participant %s: %s", conn.ParticipantID, msg.Type)
		handler(conn, msg)
	}
}

// writePump drains the participant's outbound queue onto the socket and keeps
// the connection alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, conn *room.Conn, logger *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-conn.Out:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				logger.Warnf("failed to marshal outgoing %q for %s: %v", msg.Type, conn.ParticipantID, err)
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				logger.Warnf("failed to write to %s: %v", conn.ParticipantID, err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warnf("ping to %s failed, assuming disconnect: %v", conn.ParticipantID, err)
				return
			}
		}
	}
}
