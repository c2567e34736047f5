package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "go-signpdf/docs"
)

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))
	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	h := s.handler
	r.Route("/api", func(api chi.Router) {
		api.Post("/register", h.Register)
		api.Post("/login", h.Login)
		api.With(h.RequireUser).Post("/logout", h.Logout)
		api.With(h.RequireUser).Get("/me", h.Me)
		api.With(h.RequireUser).Delete("/account", h.DeleteAccount)

		api.With(h.OptionalUser).Post("/upload", h.Upload)
		api.With(h.OptionalUser).Post("/sign", h.Sign)
		api.Get("/download/{fileID}", h.Download)
		api.Get("/preview/{fileID}/{page}", h.Preview)

		api.Route("/signatures", func(sr chi.Router) {
			sr.Use(h.RequireUser)
			sr.Get("/", h.ListSignatures)
			sr.Post("/save", h.SaveSignature)
			sr.Delete("/{signatureID}", h.DeleteSignature)
		})

		api.Route("/history", func(hr chi.Router) {
			hr.Use(h.RequireUser)
			hr.Get("/", h.ListHistory)
			hr.Delete("/", h.ClearHistory)
		})
	})

	return r
}
