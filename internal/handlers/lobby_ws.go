// internal/handlers/lobby_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kristyanYochev/stay-away-web/internal/lobby"
	"github.com/kristyanYochev/stay-away-web/internal/middleware"
	"github.com/kristyanYochev/stay-away-web/internal/protocol"
)

// LobbyWSHandler upgrades GET /lobbies/{id} to the session protocol and bridges
// the connection to that lobby's actor. Unknown ids are rejected with 404
// before the upgrade.
func LobbyWSHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lobbyID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/lobbies/"), "/")
		if lobbyID == "" {
			http.Error(w, "missing lobby id", http.StatusBadRequest)
			return
		}

		handle, ok := s.Registry.Lookup(lobbyID)
		if !ok {
			http.Error(w, "lobby not found", http.StatusNotFound)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			s.Logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		sess := &session{
			conn:   c,
			handle: handle,
			out:    make(chan protocol.ServerEvent, s.EventBuffer),
			log: s.Logger.WithFields(logrus.Fields{
				"lobby":   lobbyID,
				"session": uuid.New(),
				"remote":  r.RemoteAddr,
			}),
		}

		middleware.LogWebSocketConnect(s.Logger, r.RemoteAddr, r.URL.Path)
		err = sess.run(r.Context())
		middleware.LogWebSocketDisconnect(s.Logger, r.RemoteAddr, r.URL.Path, err)
	}
}

// session bridges one websocket connection to its lobby actor: inbound client
// events become lobby commands, and the actor's events drain through out.
type session struct {
	conn   *websocket.Conn
	handle lobby.Handle
	userID int
	out    chan protocol.ServerEvent
	log    *logrus.Entry
}

// Send implements lobby.EventSink. It never blocks: when this connection's
// queue is full, the event is dropped and the error reported to the actor,
// which logs it and carries on delivering to the other members.
func (s *session) Send(ev protocol.ServerEvent) error {
	select {
	case s.out <- ev:
		return nil
	default:
		return fmt.Errorf("outbound queue full for user %d", s.userID)
	}
}

// run drives the session: assign an id, start the write pump, then read until
// the connection dies. Disconnect is sent exactly once on the way out, covering
// closes during any phase after the id was assigned.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	assignCtx, assignCancel := context.WithTimeout(ctx, 5*time.Second)
	userID, err := s.handle.AssignID(assignCtx)
	assignCancel()
	if err != nil {
		s.conn.Close(LobbyClosedError, "lobby is gone")
		return fmt.Errorf("assign user id: %w", err)
	}
	s.userID = userID
	s.log = s.log.WithField("user", userID)

	defer func() {
		if err := s.handle.Disconnect(userID); err != nil {
			s.log.Warnf("disconnect not delivered: %v", err)
		}
	}()

	go s.writePump(ctx)
	return s.readPump(ctx)
}

// readPump decodes inbound client events and forwards them to the actor. A
// malformed message is answered with an Error event and never reaches the
// lobby; the connection stays open.
func (s *session) readPump(ctx context.Context) error {
	for {
		typ, data, err := s.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if typ != websocket.MessageText {
			s.log.Warnf("ignoring non-text message type %d", typ)
			continue
		}

		ev, err := protocol.DecodeClientEvent(data)
		if err != nil {
			s.log.Warnf("malformed client message: %v", err)
			if err := s.Send(protocol.ErrorEvent()); err != nil {
				s.log.Warnf("could not deliver error event: %v", err)
			}
			continue
		}

		if err := s.dispatch(ctx, ev); err != nil {
			if errors.Is(err, lobby.ErrLobbyClosed) {
				s.conn.Close(LobbyClosedError, "lobby is gone")
			}
			return err
		}
	}
}

func (s *session) dispatch(ctx context.Context, ev protocol.ClientEvent) error {
	switch ev := ev.(type) {
	case protocol.Join:
		return s.handle.Join(ctx, s.userID, ev.Username, s)
	case protocol.StartGame:
		// Forwarded regardless of whether this connection has joined; the
		// actor evaluates the member count either way.
		return s.handle.StartGame(ctx)
	default:
		s.log.Warnf("unhandled client event %T", ev)
		return nil
	}
}

// writePump drains the outbound queue onto the websocket and keeps the
// connection alive with periodic pings.
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.out:
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.Warnf("failed to marshal outgoing event: %v", err)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = s.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				s.log.Warnf("websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				s.log.Warnf("ping failed, assuming disconnect: %v", err)
				return
			}
		}
	}
}
