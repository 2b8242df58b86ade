// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/kristyanYochev/stay-away-web/internal/config"
	"github.com/kristyanYochev/stay-away-web/internal/handlers"
	"github.com/kristyanYochev/stay-away-web/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	srv := handlers.NewServer(logger, cfg.EventBuffer)

	mux := http.NewServeMux()

	// connectivity check
	mux.Handle("/echo", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.EchoHandler(logger),
	)))

	// lobby collection: create + list
	mux.Handle("/lobbies", middleware.CORSMiddleware(middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.LobbiesHandler(srv),
	))))

	// lobby session ws
	mux.Handle("/lobbies/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.LobbyWSHandler(srv),
	)))

	logger.Infof("Running on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
