// internal/lobby/registry.go
package lobby

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kristyanYochev/stay-away-web/internal/ident"
)

// Registry maps live lobby ids to their actors. It is passed explicitly to
// every handler that needs it and is the only structure in the process mutated
// by multiple goroutines.
type Registry struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	log     *logrus.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{
		lobbies: make(map[string]*Lobby),
		log:     logger,
	}
}

// Create allocates a collision-free id, starts the lobby's actor and registers
// it. Generate, check and insert all run under one lock, so two concurrent
// creates can never observe or reuse the same candidate id.
func (r *Registry) Create() Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := ident.LobbyID(func(candidate string) bool {
		_, live := r.lobbies[candidate]
		return live
	})

	l := newLobby(id, r.log)
	r.lobbies[id] = l
	go l.run()

	r.log.WithField("lobby", id).Info("lobby created")
	return l.handle()
}

// Lookup returns the handle for id if a lobby with that id is live.
func (r *Registry) Lookup(id string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lobbies[id]
	if !ok {
		return Handle{}, false
	}
	return l.handle(), true
}

// Remove drops the lobby and stops its actor; outstanding handles start
// returning ErrLobbyClosed. Idempotent. Nothing on the serving path calls this
// yet; it exists for operator tooling and future idle-lobby reaping.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lobbies[id]
	if !ok {
		return
	}
	delete(r.lobbies, id)
	close(l.stop)
	r.log.WithField("lobby", id).Info("lobby removed")
}

// List returns a sorted snapshot of live lobby ids.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.lobbies))
	for id := range r.lobbies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
