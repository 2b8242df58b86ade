// internal/handlers/lobby.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// LobbiesHandler serves the lobby collection: POST creates a lobby and returns
// its id as plain text, GET lists live lobby ids for debugging.
func LobbiesHandler(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			h := s.Registry.Create()
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, h.ID())
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(s.Registry.List())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
