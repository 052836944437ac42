// Package endpoint wires the MCP protocol transports, the authorization
// gate and the public discovery surface into one HTTP server.
package endpoint

import (
	"encoding/json"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/sse"
	"github.com/viant/jsonrpc/transport/server/http/streamable"
	mcpserver "github.com/viant/mcp/server"

	"github.com/viant/fitness-mcp/auth"
)

// Config describes the HTTP surface of the server.
type Config struct {
	Addr              string
	ServiceName       string
	Version           string
	SSEURI            string
	SSEMessageURI     string
	StreamableURI     string
	UseStreamableHTTP bool
	Cors              *Cors
}

func (c *Config) init() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8000"
	}
	if c.ServiceName == "" {
		c.ServiceName = "fitness-mcp"
	}
	if c.SSEURI == "" {
		c.SSEURI = "/sse"
	}
	if c.SSEMessageURI == "" {
		c.SSEMessageURI = "/message"
	}
	if c.StreamableURI == "" {
		c.StreamableURI = "/mcp"
	}
	if c.Cors == nil {
		c.Cors = DefaultCors()
	}
}

// resourcePath is the protected resource advertised in discovery
// metadata: the base URI of the active transport.
func (c *Config) resourcePath() string {
	if c.UseStreamableHTTP {
		return c.StreamableURI
	}
	return c.SSEURI
}

// New creates the HTTP server: public health, info and discovery
// endpoints plus the gated MCP transports.
func New(config *Config, srv *mcpserver.Server, gate *auth.Gate) *http.Server {
	handler := NewHandler(config, srv, gate)
	return &http.Server{Addr: config.Addr, Handler: handler}
}

// NewHandler builds the routing handler; exposed separately so tests can
// mount it on an ephemeral listener.
func NewHandler(config *Config, srv *mcpserver.Server, gate *auth.Gate) http.Handler {
	config.init()

	sseHandler := sse.New(srv.NewHandler,
		sse.WithURI(config.SSEURI),
		sse.WithMessageURI(config.SSEMessageURI),
	)
	streamingHandler := streamable.New(srv.NewHandler,
		streamable.WithURI(config.StreamableURI),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", config.healthHandler)
	wellKnown := auth.WellKnownHandler(config.resourcePath())
	mux.HandleFunc("/.well-known/", wellKnown)
	mux.HandleFunc(config.SSEURI+"/.well-known/", wellKnown)

	middlewares := []Middleware{
		gate.Middleware,
		config.Cors.Middleware,
		originValidation(config.Cors.AllowOrigins),
	}
	sseChain := chain(sseHandler, middlewares...)
	streamChain := chain(streamingHandler, middlewares...)
	mux.Handle(config.SSEURI, sseChain)
	mux.Handle(config.SSEMessageURI, sseChain)
	mux.Handle(config.StreamableURI, streamChain)

	mux.HandleFunc("/", config.infoHandler)
	return mux
}

func (c *Config) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": c.ServiceName})
}

func (c *Config) infoHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	transport := "sse"
	if c.UseStreamableHTTP {
		transport = "streamable"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":      c.ServiceName,
		"version":   c.Version,
		"transport": transport,
		"endpoints": map[string]string{
			"sse":        c.SSEURI,
			"message":    c.SSEMessageURI,
			"streamable": c.StreamableURI,
			"health":     "/health",
		},
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
