// internal/protocol/events.go

// Package protocol defines the JSON events exchanged with clients. Every
// message is an envelope of the form {"event": "<name>", "data": {...}}.
package protocol

import (
	"encoding/json"
	"fmt"
)

// User is one lobby member as it appears on the wire.
type User struct {
	Username string `json:"username"`
	ID       int    `json:"id"`
}

// envelope is the common wire framing for both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ClientEvent is a decoded client intent: either Join or StartGame.
type ClientEvent interface {
	clientEvent()
}

// Join is a client's request to enter the lobby under a display name. The
// username is not validated for uniqueness or content.
type Join struct {
	Username string `json:"username"`
}

// StartGame is a client's request to begin the game.
type StartGame struct{}

func (Join) clientEvent()      {}
func (StartGame) clientEvent() {}

// DecodeClientEvent parses one inbound message. Any failure (bad JSON, unknown
// event name, malformed data) means the message must not reach the lobby; the
// session answers the client with an Error event instead.
func DecodeClientEvent(data []byte) (ClientEvent, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("protocol: decode envelope: %w", err)
	}

	switch env.Event {
	case "Join":
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("protocol: Join event has no data")
		}
		var j Join
		if err := json.Unmarshal(env.Data, &j); err != nil {
			return nil, fmt.Errorf("protocol: decode Join data: %w", err)
		}
		return j, nil
	case "StartGame":
		return StartGame{}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown client event %q", env.Event)
	}
}

// ServerEvent is an outbound event, ready for json.Marshal.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type welcomeData struct {
	Users []User `json:"users"`
	ID    int    `json:"id"`
}

type usersUpdatedData struct {
	Users []User `json:"users"`
}

// WelcomeEvent greets a newly joined member with its assigned id and the
// current member snapshot. Sent to that member only.
func WelcomeEvent(id int, users []User) ServerEvent {
	return ServerEvent{Event: "Welcome", Data: welcomeData{Users: users, ID: id}}
}

// UsersUpdatedEvent carries the member snapshot after any membership change.
func UsersUpdatedEvent(users []User) ServerEvent {
	return ServerEvent{Event: "UsersUpdated", Data: usersUpdatedData{Users: users}}
}

// StartGameEvent announces that the game is starting.
func StartGameEvent() ServerEvent {
	return ServerEvent{Event: "StartGame", Data: struct{}{}}
}

// ErrorEvent tells a client its last message could not be understood.
func ErrorEvent() ServerEvent {
	return ServerEvent{Event: "Error"}
}
