// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes, more specific than the standard set.
const (
	BadSubprotocolError   websocket.StatusCode = 3000 // client connected with an unsupported subprotocol
	InvalidAuthTokenError websocket.StatusCode = 3001 // guest identity could not be established
)
