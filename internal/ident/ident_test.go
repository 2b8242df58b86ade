// internal/ident/ident_test.go
package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbyIDLengthAndAlphabet(t *testing.T) {
	id := LobbyID(func(string) bool { return false })
	require.Len(t, id, LobbyIDLength)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in lobby id", r)
	}
}

func TestLobbyIDRetriesOnCollision(t *testing.T) {
	rejected := make(map[string]bool)
	id := LobbyID(func(candidate string) bool {
		if len(rejected) < 3 {
			rejected[candidate] = true
			return true
		}
		return false
	})
	require.Len(t, rejected, 3)
	assert.NotContains(t, rejected, id)
	assert.Len(t, id, LobbyIDLength)
}

func TestSequenceStartsAtOneAndIncrements(t *testing.T) {
	s := NewSequence()
	for want := 1; want <= 5; want++ {
		assert.Equal(t, want, s.Next())
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	a, b := NewSequence(), NewSequence()
	a.Next()
	a.Next()
	assert.Equal(t, 1, b.Next())
	assert.Equal(t, 3, a.Next())
}
