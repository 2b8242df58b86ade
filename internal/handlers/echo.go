// internal/handlers/echo.go
package handlers

import (
	"net/http"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"
)

// EchoHandler upgrades /echo and reflects every message back to the sender.
// Useful for checking websocket connectivity through proxies without touching
// any lobby.
func EchoHandler(logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		ctx := r.Context()
		for {
			typ, data, err := c.Read(ctx)
			if err != nil {
				status := websocket.CloseStatus(err)
				if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
					logger.Debugf("echo read ended: %v", err)
				}
				return
			}
			if err := c.Write(ctx, typ, data); err != nil {
				logger.Warnf("echo write failed: %v", err)
				return
			}
		}
	}
}
