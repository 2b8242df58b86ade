// internal/lobby/lobby.go

// Package lobby implements the per-session actor that owns all membership state
// and the registry that tracks live lobbies by id. Connection handlers never
// touch lobby state directly; they enqueue commands through a Handle and the
// actor applies them one at a time.
package lobby

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/kristyanYochev/stay-away-web/internal/ident"
	"github.com/kristyanYochev/stay-away-web/internal/protocol"
)

// Player count bounds for starting a game.
const (
	MinPlayers = 4
	MaxPlayers = 12
)

// commandBuffer is the capacity of each lobby's command channel. Producers
// block when it fills, which is the backpressure mechanism for a busy lobby.
const commandBuffer = 32

// ErrLobbyClosed is returned by Handle methods once the lobby's actor has
// stopped. Sessions treat it as a signal to wind down, not a fatal fault.
var ErrLobbyClosed = errors.New("lobby: closed")

// EventSink delivers server events to one member's connection. The actor only
// holds this capability, never the connection itself. Implementations must not
// block: a full or closed connection should return an error instead, and the
// actor will log the drop and move on.
type EventSink interface {
	Send(ev protocol.ServerEvent) error
}

type member struct {
	id       int
	username string
	sink     EventSink
}

// Lobby owns one game session's membership state. All mutation happens on the
// actor goroutine started by the registry, which drains the command channel
// until the lobby is removed. Because one command is handled fully (including
// its broadcasts) before the next is dequeued, every member observes membership
// updates in the same order, and a joiner's Welcome always precedes any update
// that includes it.
type Lobby struct {
	id       string
	members  map[int]member
	userIDs  *ident.Sequence
	commands chan command
	stop     chan struct{}
	done     chan struct{}
	log      *logrus.Entry
}

func newLobby(id string, logger *logrus.Logger) *Lobby {
	return &Lobby{
		id:       id,
		members:  make(map[int]member),
		userIDs:  ident.NewSequence(),
		commands: make(chan command, commandBuffer),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		log:      logger.WithField("lobby", id),
	}
}

// handle returns the send capability for this lobby. Handles are plain values
// and may be copied freely between goroutines.
func (l *Lobby) handle() Handle {
	return Handle{id: l.id, commands: l.commands, done: l.done}
}

// run is the actor loop. It exits when the registry closes the stop channel;
// commands still queued at that point are discarded.
func (l *Lobby) run() {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			return
		default:
		}

		select {
		case cmd := <-l.commands:
			cmd.apply(l)
		case <-l.stop:
			return
		}
	}
}

type command interface {
	apply(l *Lobby)
}

type assignIDCmd struct {
	reply chan<- int
}

type joinCmd struct {
	userID   int
	username string
	sink     EventSink
}

type disconnectCmd struct {
	userID int
}

type startGameCmd struct{}

func (c assignIDCmd) apply(l *Lobby) {
	// The reply channel is buffered by the Handle, so this never blocks the actor.
	c.reply <- l.userIDs.Next()
}

func (c joinCmd) apply(l *Lobby) {
	l.members[c.userID] = member{id: c.userID, username: c.username, sink: c.sink}
	snapshot := l.snapshot()

	// Welcome goes to the joiner alone, then the updated roster to everyone
	// including the joiner. The order is part of the protocol contract.
	l.deliver(l.members[c.userID], protocol.WelcomeEvent(c.userID, snapshot))
	l.broadcast(protocol.UsersUpdatedEvent(snapshot))

	l.log.WithFields(logrus.Fields{
		"user":     c.userID,
		"username": c.username,
	}).Info("user joined")
}

func (c disconnectCmd) apply(l *Lobby) {
	if _, ok := l.members[c.userID]; !ok {
		// Unknown id: idempotent no-op, no broadcast.
		return
	}
	delete(l.members, c.userID)
	l.broadcast(protocol.UsersUpdatedEvent(l.snapshot()))
	l.log.WithField("user", c.userID).Info("user disconnected")
}

func (startGameCmd) apply(l *Lobby) {
	if n := len(l.members); n < MinPlayers || n > MaxPlayers {
		l.log.WithField("members", n).Debug("start game refused, player count out of bounds")
		return
	}
	l.broadcast(protocol.StartGameEvent())
	l.log.WithField("members", len(l.members)).Info("game started")
}

// broadcast delivers ev to every member independently. A failed delivery never
// aborts delivery to the remaining members and never stops the actor.
func (l *Lobby) broadcast(ev protocol.ServerEvent) {
	for _, m := range l.members {
		l.deliver(m, ev)
	}
}

func (l *Lobby) deliver(m member, ev protocol.ServerEvent) {
	if err := m.sink.Send(ev); err != nil {
		l.log.WithFields(logrus.Fields{
			"user":  m.id,
			"event": ev.Event,
		}).Warnf("dropped event: %v", err)
	}
}

// snapshot returns the current members sorted ascending by id.
func (l *Lobby) snapshot() []protocol.User {
	users := make([]protocol.User, 0, len(l.members))
	for _, m := range l.members {
		users = append(users, protocol.User{Username: m.username, ID: m.id})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
