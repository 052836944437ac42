package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	serverproto "github.com/viant/mcp-protocol/server"
	"github.com/viant/mcp-protocol/schema"
	mcpserver "github.com/viant/mcp/server"
	"golang.org/x/oauth2"

	"github.com/viant/fitness-mcp/auth"
	"github.com/viant/fitness-mcp/endpoint"
	"github.com/viant/fitness-mcp/fitness"
	"github.com/viant/fitness-mcp/memory"
	"github.com/viant/fitness-mcp/resource"
	"github.com/viant/fitness-mcp/tool"
)

// Options configures the server from flags with environment fallbacks.
type Options struct {
	Host       string `long:"host" env:"HOST" default:"127.0.0.1" description:"host to bind to"`
	Port       int    `long:"port" short:"p" env:"PORT" default:"8000" description:"port to listen on"`
	Streamable bool   `long:"streamable" env:"MCP_STREAMABLE" description:"use streamable HTTP transport instead of SSE"`

	OAuthClientID string `long:"oauth-client-id" env:"GOOGLE_OAUTH_CLIENT_ID" description:"Google OAuth client id the credential audience must match"`
	OAuthCacheTTL int    `long:"oauth-cache-ttl" env:"OAUTH_TOKENINFO_CACHE_SECONDS" default:"600" description:"tokeninfo cache TTL in seconds"`

	MemoryDir          string `long:"memory-dir" env:"MCP_MEMORY_DIR" description:"memory journal root directory"`
	ReadOnly           string `long:"read-only" env:"MCP_READ_ONLY" default:"true" description:"global read-only flag"`
	MemoryWriteEnabled string `long:"memory-write-enabled" env:"MCP_MEMORY_WRITE_ENABLED" default:"true" description:"memory write override"`

	FitnessBaseURL string `long:"fitness-base-url" env:"FITNESS_API_BASE_URL" description:"upstream fitness account API base URL"`
	FitnessToken   string `long:"fitness-token" env:"FITNESS_API_TOKEN" description:"bearer token for the upstream fitness API"`
	TemplatesURL   string `long:"templates-url" env:"WORKOUT_TEMPLATES_URL" description:"workout templates base location"`
}

func main() {
	options := &Options{}
	if _, err := flags.Parse(options); err != nil {
		os.Exit(1)
	}
	if options.OAuthClientID == "" {
		log.Fatal("GOOGLE_OAUTH_CLIENT_ID is required")
	}
	validator, err := auth.NewValidator(options.OAuthClientID,
		auth.WithCacheTTL(time.Duration(options.OAuthCacheTTL)*time.Second))
	if err != nil {
		log.Fatalf("failed to create token validator: %v", err)
	}
	gate := auth.NewGate(validator)

	store := memory.NewStore(options.memoryRoot())
	service := memory.NewService(store, memory.Policy{
		ReadOnly:     isTruthy(options.ReadOnly),
		WriteEnabled: isTruthy(options.MemoryWriteEnabled),
	})

	var fitnessAPI fitness.API
	if options.FitnessBaseURL != "" {
		var clientOptions []fitness.Option
		if options.FitnessToken != "" {
			source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: options.FitnessToken})
			clientOptions = append(clientOptions, fitness.WithTokenSource(source))
		}
		fitnessAPI = fitness.New(options.FitnessBaseURL, clientOptions...)
	}

	newImplementer := serverproto.WithDefaultImplementer(context.Background(), func(implementer *serverproto.DefaultImplementer) {
		if err := tool.RegisterMemory(implementer, service); err != nil {
			panic(err)
		}
		if fitnessAPI != nil {
			if err := tool.RegisterFitness(implementer, fitnessAPI); err != nil {
				panic(err)
			}
		}
		if options.TemplatesURL != "" {
			registerTemplates(implementer, options.TemplatesURL)
		}
	})

	srv, err := mcpserver.New(
		mcpserver.WithNewImplementer(newImplementer),
		mcpserver.WithImplementation(schema.Implementation{Name: "fitness-mcp", Version: "1.0.0"}),
	)
	if err != nil {
		log.Fatalf("failed to create MCP server: %v", err)
	}

	config := &endpoint.Config{
		Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
		ServiceName:       "fitness-mcp",
		Version:           "1.0.0",
		UseStreamableHTTP: options.Streamable,
	}
	httpServer := endpoint.New(config, srv, gate)
	log.Printf("starting fitness MCP server on http://%v", config.Addr)
	log.Printf("  SSE:        http://%v%v", config.Addr, config.SSEURI)
	log.Printf("  streamable: http://%v%v", config.Addr, config.StreamableURI)
	log.Printf("  health:     http://%v/health", config.Addr)
	log.Fatal(httpServer.ListenAndServe())
}

func registerTemplates(implementer *serverproto.DefaultImplementer, baseURL string) {
	templates := resource.NewTemplates(&resource.Config{BaseURL: baseURL})
	entries, err := templates.Resources(context.Background())
	if err != nil {
		log.Printf("failed to list workout templates at %v: %v", baseURL, err)
		return
	}
	for _, entry := range entries {
		implementer.RegisterResource(entry.Metadata, entry.Handler)
	}
}

// memoryRoot resolves the journal directory, defaulting to a fixed
// per-user location.
func (o *Options) memoryRoot() string {
	if o.MemoryDir != "" {
		return o.MemoryDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fitness-mcp", "memory")
	}
	return filepath.Join(home, ".fitness-mcp", "memory")
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
