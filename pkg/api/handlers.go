package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/freyjadb/pkg/bvh"
	"github.com/ssargent/freyjadb/pkg/spatial"
)

// Server holds the introspection API state. bvh.Tree is not safe for
// concurrent use, so every operation that touches the tree is serialized
// behind mu.
type Server struct {
	mu      sync.Mutex
	tree    *bvh.Tree[string]
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server over tree.
func NewServer(tree *bvh.Tree[string], config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		tree:    tree,
		config:  config,
		metrics: metrics,
	}
}

func toBounds(b boundsJSON) bvh.Bounds {
	return bvh.NewBounds(
		bvh.Vec3{X: b.Center.X, Y: b.Center.Y, Z: b.Center.Z},
		bvh.Vec3{X: b.Size.X, Y: b.Size.Y, Z: b.Size.Z},
	)
}

func toVec3(v vec3JSON) bvh.Vec3 {
	return bvh.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleStats godoc
//
//	@Summary		Tree statistics
//	@Produce		json
//	@Success		200	{object}	statsResponse
//	@Router			/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	items := s.tree.Len()
	capacity := s.tree.Capacity()
	s.mu.Unlock()

	s.updateTreeMetrics(items, capacity)
	sendSuccess(w, statsResponse{
		Items:      items,
		Capacity:   capacity,
		InstanceID: s.config.InstanceID,
	})
}

// handlePutItem godoc
//
//	@Summary		Insert or replace an item
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string			true	"Item ID"
//	@Param			body	body	itemRequest		true	"Item bounds"
//	@Router			/items/{id} [put]
func (s *Server) handlePutItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "item id is required", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordOperation("put", false, time.Since(start))
		sendError(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}

	bounds := toBounds(req.Bounds)

	s.mu.Lock()
	s.tree.Remove(id) // PUT is an upsert: replace any existing bounds for id.
	ok := s.tree.Insert(id, bounds)
	items, capacity := s.tree.Len(), s.tree.Capacity()
	s.mu.Unlock()

	s.updateTreeMetrics(items, capacity)

	if !ok {
		s.metrics.RecordOperation("put", false, time.Since(start))
		sendError(w, "failed to insert item", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordOperation("put", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "item stored"})
}

// handleDeleteItem godoc
//
//	@Summary		Remove an item
//	@Produce		json
//	@Param			id	path	string	true	"Item ID"
//	@Router			/items/{id} [delete]
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "" {
		sendError(w, "item id is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	ok := s.tree.Remove(id)
	items, capacity := s.tree.Len(), s.tree.Capacity()
	s.mu.Unlock()

	s.updateTreeMetrics(items, capacity)

	if !ok {
		s.metrics.RecordOperation("delete", false, time.Since(start))
		sendError(w, "item not found", http.StatusNotFound)
		return
	}

	s.metrics.RecordOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "item removed"})
}

// handleRayQuery godoc
//
//	@Summary		Ray cast query
//	@Accept			json
//	@Produce		json
//	@Param			body	body	rayQueryRequest	true	"Ray definition"
//	@Router			/query/ray [post]
func (s *Server) handleRayQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req rayQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordOperation("query_ray", false, time.Since(start))
		sendError(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}

	query := spatial.RayQuery{
		Origin: toVec3(req.Origin),
		Dir:    toVec3(req.Dir),
		TMin:   req.TMin,
		TMax:   req.TMax,
	}

	var results spatial.Results[string]
	s.mu.Lock()
	s.tree.Traversal(query.Predicate(), results.Collect())
	s.mu.Unlock()

	s.metrics.RecordOperation("query_ray", true, time.Since(start))
	sendSuccess(w, queryResponse{Items: results.Items(), Count: results.Len()})
}

// handleBoxQuery godoc
//
//	@Summary		Axis-aligned box overlap query
//	@Accept			json
//	@Produce		json
//	@Param			body	body	boxQueryRequest	true	"Query box"
//	@Router			/query/box [post]
func (s *Server) handleBoxQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req boxQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.RecordOperation("query_box", false, time.Since(start))
		sendError(w, "invalid JSON request body", http.StatusBadRequest)
		return
	}

	query := spatial.BoxQuery{Bounds: toBounds(req.Bounds)}

	var results spatial.Results[string]
	s.mu.Lock()
	s.tree.Traversal(query.Predicate(), results.Collect())
	s.mu.Unlock()

	s.metrics.RecordOperation("query_box", true, time.Since(start))
	sendSuccess(w, queryResponse{Items: results.Items(), Count: results.Len()})
}

// handleRebuild godoc
//
//	@Summary		Rebuild the tree bottom-up from current leaves
//	@Produce		json
//	@Router			/rebuild [post]
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.Lock()
	s.tree.BottomUp()
	items, capacity := s.tree.Len(), s.tree.Capacity()
	s.mu.Unlock()

	s.updateTreeMetrics(items, capacity)
	s.metrics.RecordOperation("rebuild", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "tree rebuilt"})
}

func (s *Server) updateTreeMetrics(items, capacity int) {
	nodes := 0
	if items > 0 {
		nodes = 2*items - 1
	}
	s.metrics.UpdateTreeStats(items, nodes, capacity)
}
