// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/photometa/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for h using the given middleware configuration.
func NewRouter(h *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       h,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// chiMiddleware adapts func(http.HandlerFunc) http.HandlerFunc middleware to Chi.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi builds the HTTP handler tree.
//
// Middleware order: RealIP -> Recoverer -> RequestID -> CORS -> PrometheusMetrics,
// then per-group rate limiting and security headers.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(router.chiMiddleware.CORS())
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteNotFound(w, req, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeBadRequest, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())

		r.With(router.chiMiddleware.RateLimitHealth()).Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Route("/photos", func(r chi.Router) {
				r.Get("/", h.ListPhotos)
				r.Post("/", h.SubmitPhoto)
				r.Post("/upload", h.UploadPhotos)
				r.Get("/search", h.SearchPhotos)
				r.Get("/{id}", h.GetPhoto)
				r.Put("/{id}", h.UpdatePhoto)
				r.Delete("/{id}", h.DeletePhoto)
			})

			r.Get("/files", h.ListFiles)
			r.Get("/files/{name}", h.ViewFile)
		})
	})

	return r
}
