package api

// APIResponse is the envelope every handler writes to the client.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the introspection API server.
type ServerConfig struct {
	Bind            string
	Port            int
	APIKey          string
	InitialCapacity int
	InstanceID      string
}

// vec3JSON is the wire representation of a bvh.Vec3.
type vec3JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// boundsJSON is the wire representation of a bvh.Bounds.
type boundsJSON struct {
	Center vec3JSON `json:"center"`
	Size   vec3JSON `json:"size"`
}

// itemRequest is the body of PUT /items/{id}.
type itemRequest struct {
	Bounds boundsJSON `json:"bounds"`
}

// rayQueryRequest is the body of POST /query/ray.
type rayQueryRequest struct {
	Origin vec3JSON `json:"origin"`
	Dir    vec3JSON `json:"dir"`
	TMin   float32  `json:"tmin"`
	TMax   float32  `json:"tmax"`
}

// boxQueryRequest is the body of POST /query/box.
type boxQueryRequest struct {
	Bounds boundsJSON `json:"bounds"`
}

// queryResponse is the body every query handler returns.
type queryResponse struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

// statsResponse is the body of GET /stats.
type statsResponse struct {
	Items      int    `json:"items"`
	Capacity   int    `json:"capacity"`
	InstanceID string `json:"instance_id"`
}
