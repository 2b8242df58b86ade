// internal/handlers/lobby_ws_test.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristyanYochev/stay-away-web/internal/protocol"
)

// serverEvent mirrors the wire envelope for decoding in tests.
type serverEvent struct {
	Event string `json:"event"`
	Data  struct {
		Users []protocol.User `json:"users"`
		ID    int             `json:"id"`
	} `json:"data"`
}

func startWSServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := newTestServer(t)
	mux := http.NewServeMux()
	mux.Handle("/lobbies", LobbiesHandler(s))
	mux.Handle("/lobbies/", LobbyWSHandler(s))
	mux.Handle("/echo", EchoHandler(s.Logger))
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return s, ts
}

func dialLobby(t *testing.T, ctx context.Context, ts *httptest.Server, lobbyID string) *websocket.Conn {
	t.Helper()
	c, _, err := websocket.Dial(ctx, ts.URL+"/lobbies/"+lobbyID, nil)
	require.NoError(t, err)
	return c
}

func sendText(t *testing.T, ctx context.Context, c *websocket.Conn, payload string) {
	t.Helper()
	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte(payload)))
}

func readEvent(t *testing.T, ctx context.Context, c *websocket.Conn) serverEvent {
	t.Helper()
	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageText, typ)
	var ev serverEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

// TestLobbySessionJoinFlow drives two real websocket clients through the join,
// update and disconnect sequence.
func TestLobbySessionJoinFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, ts := startWSServer(t)
	lobbyID := s.Registry.Create().ID()

	alice := dialLobby(t, ctx, ts, lobbyID)
	defer alice.Close(websocket.StatusNormalClosure, "test done")

	sendText(t, ctx, alice, `{"event":"Join","data":{"username":"alice"}}`)

	welcome := readEvent(t, ctx, alice)
	require.Equal(t, "Welcome", welcome.Event)
	assert.Equal(t, 1, welcome.Data.ID)
	assert.Equal(t, []protocol.User{{Username: "alice", ID: 1}}, welcome.Data.Users)

	updated := readEvent(t, ctx, alice)
	require.Equal(t, "UsersUpdated", updated.Event)
	assert.Equal(t, []protocol.User{{Username: "alice", ID: 1}}, updated.Data.Users)

	bob := dialLobby(t, ctx, ts, lobbyID)
	sendText(t, ctx, bob, `{"event":"Join","data":{"username":"bob"}}`)

	both := []protocol.User{{Username: "alice", ID: 1}, {Username: "bob", ID: 2}}

	bobWelcome := readEvent(t, ctx, bob)
	require.Equal(t, "Welcome", bobWelcome.Event)
	assert.Equal(t, 2, bobWelcome.Data.ID)
	assert.Equal(t, both, bobWelcome.Data.Users)

	bobUpdated := readEvent(t, ctx, bob)
	require.Equal(t, "UsersUpdated", bobUpdated.Event)
	assert.Equal(t, both, bobUpdated.Data.Users)

	aliceUpdated := readEvent(t, ctx, alice)
	require.Equal(t, "UsersUpdated", aliceUpdated.Event)
	assert.Equal(t, both, aliceUpdated.Data.Users)

	// Bob leaves; alice sees the shrunken roster exactly once.
	require.NoError(t, bob.Close(websocket.StatusNormalClosure, "bye"))

	afterLeave := readEvent(t, ctx, alice)
	require.Equal(t, "UsersUpdated", afterLeave.Event)
	assert.Equal(t, []protocol.User{{Username: "alice", ID: 1}}, afterLeave.Data.Users)
}

// TestLobbySessionMalformedMessage checks the Error reply stays local to the
// offending client and keeps the connection open.
func TestLobbySessionMalformedMessage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, ts := startWSServer(t)
	lobbyID := s.Registry.Create().ID()

	c := dialLobby(t, ctx, ts, lobbyID)
	defer c.Close(websocket.StatusNormalClosure, "test done")

	sendText(t, ctx, c, `this is not json`)
	ev := readEvent(t, ctx, c)
	assert.Equal(t, "Error", ev.Event)

	// Connection still works: a proper Join goes through.
	sendText(t, ctx, c, `{"event":"Join","data":{"username":"alice"}}`)
	ev = readEvent(t, ctx, c)
	assert.Equal(t, "Welcome", ev.Event)
}

func TestEchoRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, ts := startWSServer(t)

	c, _, err := websocket.Dial(ctx, ts.URL+"/echo", nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "test done")

	sendText(t, ctx, c, "hello")
	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.Equal(t, "hello", string(data))
}
