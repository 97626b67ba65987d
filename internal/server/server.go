// Package server exposes the session's view models over HTTP. It is the
// stand-in for the external renderer: a thin JSON surface that never touches
// core state directly.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/config"
	"indusrobotix/storefront/internal/controller"
)

type Server struct {
	httpServer *http.Server
}

func New(cfg config.ServerConfig, session *controller.Session) *Server {
	h := NewHandlers(session)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/products", h.listProducts)
		v1.Get("/products/{id}", h.getProduct)
		v1.Get("/categories", h.listCategories)
		v1.Get("/recent", h.listRecent)
		v1.Get("/announcements", h.listAnnouncements)
		v1.Get("/stats", h.getStats)

		v1.Route("/cart", func(c chi.Router) {
			c.Get("/", h.getCart)
			c.Post("/items", h.addCartItem)
			c.Patch("/items/{id}", h.updateCartItem)
			c.Delete("/items/{id}", h.removeCartItem)
		})

		v1.Get("/compare", h.getCompare)
		v1.Post("/compare/{id}", h.toggleCompare)

		v1.Post("/refresh", h.refresh)

		v1.Get("/preferences", h.getPreferences)
		v1.Put("/preferences", h.putPreferences)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Run() error {
	log.Infof("🚀 Storefront API listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
