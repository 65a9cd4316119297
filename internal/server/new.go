package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"drumcharter/internal/analyzer"
	"drumcharter/internal/config"
	"drumcharter/internal/logger"
)

type implServer struct {
	cfg      *config.Config
	analyzer analyzer.Analyzer
	logger   logger.Logger
	sessions *sessionStore
	server   *http.Server
}

// New creates the web server. Routes are registered here so tests can
// drive the handler without binding a port.
func New(cfg *config.Config, a analyzer.Analyzer, log logger.Logger) Server {
	s := &implServer{
		cfg:      cfg,
		analyzer: a,
		logger:   log,
		sessions: newSessionStore(),
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port),
		Handler:      s.buildHandler(),
		ReadTimeout:  10 * time.Minute, // uploads plus model latency
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *implServer) buildHandler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/api/chart", s.handleChart).Methods("POST")

	return cors.Default().Handler(router)
}
