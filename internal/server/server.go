package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/config"
	"github.com/hongminglow/linkinbio-be/internal/http/handlers"
	"github.com/hongminglow/linkinbio-be/internal/middleware"
	"github.com/hongminglow/linkinbio-be/internal/service"
	"github.com/hongminglow/linkinbio-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, store, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}}
}

// Handler builds the full middleware chain and routes.
func Handler(cfg config.Config, store storage.Store, logger *slog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	authenticator := service.NewAuthenticator(store.Users(), tokens, auth.DefaultBcryptCost)
	editor := service.NewProfileEditor(store)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), store).Register(mux)
	handlers.NewAuthHandler(authenticator, logger).Register(mux)
	handlers.NewProfileHandler(editor, auth.NewGuard(tokens), logger).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, mux))
	return otelhttp.NewHandler(handler, cfg.ServiceName)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
