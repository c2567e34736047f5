// Package server wires the storage, services, and HTTP layer together.
//
// New opens the database, prepares the storage directories, and builds the
// handler graph; HTTPServer returns a configured *http.Server and Janitor
// runs the periodic cleanup of anonymous signing artifacts.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"go-signpdf/config"
	"go-signpdf/internal/db"
	"go-signpdf/internal/handlers"
	"go-signpdf/internal/pdf"
	"go-signpdf/internal/services"
	"go-signpdf/internal/store"
)

const (
	janitorInterval = time.Hour
	anonymousMaxAge = 24 * time.Hour
)

type Server struct {
	cfg     config.Config
	log     *zap.Logger
	db      *sql.DB
	handler *handlers.APIHandler
	history *services.HistoryService
}

// New connects to Postgres and assembles the full server.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	users := store.NewUserRepository(dbConn)
	sessions := store.NewSessionRepository(dbConn)
	signatures := store.NewSignatureRepository(dbConn)
	history := store.NewHistoryRepository(dbConn)

	srv, err := assemble(cfg, log, users, sessions, signatures, history)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	srv.db = dbConn
	return srv, nil
}

// assemble builds the service and handler graph over the given stores.
func assemble(
	cfg config.Config,
	log *zap.Logger,
	users services.UserStore,
	sessions services.SessionStore,
	signatures services.SignatureStore,
	history services.HistoryStore,
) (*Server, error) {
	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.SignedDir, cfg.Storage.SignatureDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	engine := pdf.NewEngine(cfg.Storage.SignatureDir)
	accounts := services.NewAccountService(users, sessions)
	signing := services.NewSigningService(engine, history, cfg.Storage.UploadDir, cfg.Storage.SignedDir, log)
	library := services.NewSignatureService(signatures)
	historySvc := services.NewHistoryService(history)

	return &Server{
		cfg:     cfg,
		log:     log,
		handler: handlers.NewAPIHandler(accounts, signing, library, historySvc, cfg, log),
		history: historySvc,
	}, nil
}

// HTTPServer returns the configured HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.ServerPort),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Janitor periodically prunes anonymous history older than 24 hours and
// removes the signed files those rows pointed at. Sessions are not swept;
// expiry is checked on every token resolve instead.
func (s *Server) Janitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			paths, err := s.history.PruneAnonymous(ctx, time.Now().Add(-anonymousMaxAge))
			if err != nil {
				s.log.Error("janitor prune failed", zap.Error(err))
				continue
			}
			for _, path := range paths {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					s.log.Warn("janitor file removal failed", zap.String("path", path), zap.Error(err))
				}
			}
			if len(paths) > 0 {
				s.log.Info("janitor pruned anonymous history", zap.Int("files", len(paths)))
			}
		}
	}
}

// Close releases the database connection.
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
