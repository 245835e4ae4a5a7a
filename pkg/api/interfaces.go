// Package api provides interfaces for dependency injection.
package api

import "github.com/ssargent/freyjadb/pkg/bvh"

// ServerStarter defines the interface for starting the introspection API
// server.
type ServerStarter interface {
	// StartServer starts the API server over tree with the given config.
	StartServer(tree *bvh.Tree[string], config ServerConfig) error
}

// ServerFactory creates server starters.
type ServerFactory interface {
	// CreateServerStarter creates a server starter.
	CreateServerStarter() ServerStarter
}
