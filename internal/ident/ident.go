// internal/ident/ident.go

// Package ident produces the two kinds of identifiers the lobby system needs:
// short random lobby ids, checked against the set of live lobbies, and
// sequential lobby-scoped user ids.
package ident

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// LobbyIDLength is the length of every generated lobby id. Six alphanumeric
// characters give ~5.7e10 possible ids, so collisions against the handful of
// lobbies alive at once are rare.
const LobbyIDLength = 6

// LobbyID returns a random alphanumeric lobby id for which taken reports false.
// The retry loop is required for correctness, not just collision odds: the
// caller's uniqueness invariant depends on it.
func LobbyID(taken func(string) bool) string {
	for {
		id := randomID(LobbyIDLength)
		if !taken(id) {
			return id
		}
	}
}

func randomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Sequence hands out user ids within one lobby: 1, 2, 3, ... Ids are never
// reused for the lifetime of the lobby, so two members can never share one even
// after disconnects. Not safe for concurrent use; each lobby actor owns its own.
type Sequence struct {
	next int
}

// NewSequence returns a Sequence whose first Next call yields 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns the next user id and advances the counter.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}
