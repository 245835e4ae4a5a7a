/*
BVH introspection API

This is the HTTP introspection and query surface for an in-memory
bounding volume hierarchy.

Version: 1.0.0
Host: localhost:8080
BasePath: /

SecurityDefinitions:
  - ApiKeyAuth:
    type: apiKey
    in: header
    name: X-API-Key

swagger:meta
*/
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssargent/freyjadb/pkg/bvh"
)

// StartServer starts the HTTP server with all routes configured over tree.
func StartServer(tree *bvh.Tree[string], config ServerConfig) error {
	metrics := NewMetrics()
	server := NewServer(tree, config, metrics)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	auth := noopAuthMiddleware
	if config.APIKey != "" {
		auth = apiKeyMiddleware(config.APIKey)
	}

	r.Group(func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(auth))

		r.Get("/health", metrics.InstrumentHandler("GET", "/health", server.handleHealth))
		r.Get("/stats", metrics.InstrumentHandler("GET", "/stats", server.handleStats))

		r.Put("/items/{id}", metrics.InstrumentHandler("PUT", "/items/{id}", server.handlePutItem))
		r.Delete("/items/{id}", metrics.InstrumentHandler("DELETE", "/items/{id}", server.handleDeleteItem))

		r.Post("/query/ray", metrics.InstrumentHandler("POST", "/query/ray", server.handleRayQuery))
		r.Post("/query/box", metrics.InstrumentHandler("POST", "/query/box", server.handleBoxQuery))

		r.Post("/rebuild", metrics.InstrumentHandler("POST", "/rebuild", server.handleRebuild))
	})

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting BVH introspection API on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}
