package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roombook/internal/config"
	"roombook/internal/domain"
	"roombook/internal/events"
	"roombook/internal/store"

	"github.com/rs/zerolog"
)

// Server exposes the booking REST API over the document store.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	rooms  domain.RoomCache // nil when caching is disabled
	events domain.EventPublisher
	logger *zerolog.Logger
	secret []byte
	server *http.Server
}

func NewServer(
	cfg *config.Config,
	st *store.Store,
	rooms domain.RoomCache,
	bus domain.EventPublisher,
	logger *zerolog.Logger,
) *Server {
	if bus == nil {
		bus = events.NewEventBus()
	}
	s := &Server{
		cfg:    cfg,
		store:  st,
		rooms:  rooms,
		events: bus,
		logger: logger,
		secret: []byte(cfg.Auth.Secret),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/register", s.handleRegister)
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("/api/rooms", s.handleRooms)
	mux.HandleFunc("/api/rooms/", s.handleRoomByID)
	mux.HandleFunc("/api/bookings", s.requireAuth(s.handleBookings))
	mux.HandleFunc("/api/bookings/", s.requireAuth(s.handleBookingByID))
	mux.HandleFunc("/api/contacts", s.handleContacts)
	mux.HandleFunc("/api/contacts/", s.handleContactByID)

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	handler := requestIDMiddleware(loggingMiddleware(logger, corsMiddleware(mux)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

// Handler returns the fully wired middleware chain. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		writeMessage(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
