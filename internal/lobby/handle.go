// internal/lobby/handle.go
package lobby

import "context"

// Handle is an opaque, copyable capability to enqueue commands onto one lobby's
// actor. All synchronization lives inside the actor's single-consumer loop, so
// handles need none of their own.
type Handle struct {
	id       string
	commands chan<- command
	done     <-chan struct{}
}

// ID returns the lobby's identifier.
func (h Handle) ID() string {
	return h.id
}

// AssignID reserves the next user id for a new connection. Ids start at 1,
// increase by exactly 1 per call and are never reused within the lobby. The
// reply is point-to-point: only the caller sees it.
func (h Handle) AssignID(ctx context.Context) (int, error) {
	reply := make(chan int, 1)
	if err := h.send(ctx, assignIDCmd{reply: reply}); err != nil {
		return 0, err
	}

	select {
	case id := <-reply:
		return id, nil
	case <-h.done:
		// The actor may have replied just before stopping; prefer the reply.
		select {
		case id := <-reply:
			return id, nil
		default:
			return 0, ErrLobbyClosed
		}
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Join adds a member under a previously assigned user id. The sink is the only
// way the actor will ever reach this member's connection.
func (h Handle) Join(ctx context.Context, userID int, username string, sink EventSink) error {
	return h.send(ctx, joinCmd{userID: userID, username: username, sink: sink})
}

// Disconnect removes the member. It takes no context: teardown must reach the
// actor exactly once even when the session's own context is already cancelled.
// The send is still bounded because the actor keeps draining its queue.
func (h Handle) Disconnect(userID int) error {
	return h.send(context.Background(), disconnectCmd{userID: userID})
}

// StartGame asks the lobby to begin the game. The actor silently ignores the
// request when the member count is outside [MinPlayers, MaxPlayers].
func (h Handle) StartGame(ctx context.Context) error {
	return h.send(ctx, startGameCmd{})
}

func (h Handle) send(ctx context.Context, cmd command) error {
	// Fail fast once the actor is gone; otherwise a buffered send could
	// succeed against a channel nobody drains anymore.
	select {
	case <-h.done:
		return ErrLobbyClosed
	default:
	}

	select {
	case h.commands <- cmd:
		return nil
	case <-h.done:
		return ErrLobbyClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
