// internal/handlers/server.go

// Package handlers contains the HTTP and WebSocket boundary of the lobby
// server. Everything here is a thin adapter: handlers decode client intents,
// forward them to the lobby actors and write the actors' events back out.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/kristyanYochev/stay-away-web/internal/lobby"
)

// Server bundles the lobby registry with the dependencies every handler needs.
type Server struct {
	Registry *lobby.Registry
	Logger   *logrus.Logger

	// EventBuffer is the outbound queue capacity per websocket connection.
	EventBuffer int
}

// NewServer builds a Server with a fresh registry.
func NewServer(logger *logrus.Logger, eventBuffer int) *Server {
	return &Server{
		Registry:    lobby.NewRegistry(logger),
		Logger:      logger,
		EventBuffer: eventBuffer,
	}
}
