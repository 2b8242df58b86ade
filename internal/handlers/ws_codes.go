// internal/handlers/ws_codes.go
package handlers

import "github.com/coder/websocket"

// Custom WebSocket close codes for session failures that have no good standard
// equivalent.
const (
	// LobbyClosedError signals that the lobby's actor stopped while the
	// session was still active.
	LobbyClosedError websocket.StatusCode = 3000
)
