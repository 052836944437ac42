package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultProtectedPrefixes guard the tool-invocation and event-stream
// endpoints; everything else stays public.
var DefaultProtectedPrefixes = []string{"/sse", "/message", "/mcp"}

const wellKnownPrefix = "/.well-known"

type claimsKey struct{}

// WithClaims attaches a validated credential payload to ctx.
func WithClaims(ctx context.Context, claims map[string]interface{}) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the validated credential payload attached by
// the gate, or nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) map[string]interface{} {
	claims, _ := ctx.Value(claimsKey{}).(map[string]interface{})
	return claims
}

// Gate decides per request whether a protected path prefix is being
// accessed and, if so, requires a valid bearer credential before
// forwarding. Discovery metadata and OPTIONS requests always pass.
type Gate struct {
	validator *Validator
	protected []string
}

// NewGate creates a gate delegating credential checks to validator. With
// no explicit prefixes the default protected set applies.
func NewGate(validator *Validator, protectedPrefixes ...string) *Gate {
	if len(protectedPrefixes) == 0 {
		protectedPrefixes = DefaultProtectedPrefixes
	}
	return &Gate{validator: validator, protected: protectedPrefixes}
}

// Middleware wraps next, rejecting unauthenticated access to protected
// prefixes with a 401. On success only the validated payload travels
// downstream; the raw credential header is stripped.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || g.isDiscovery(r.URL.Path) || !g.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		token := ExtractBearerToken(r.Header.Get("Authorization"))
		result := g.validator.Validate(r.Context(), token)
		if !result.OK {
			g.unauthorized(w, r, result.Error)
			return
		}
		forwarded := r.WithContext(WithClaims(r.Context(), result.Claims))
		forwarded.Header = r.Header.Clone()
		forwarded.Header.Del("Authorization")
		next.ServeHTTP(w, forwarded)
	})
}

func (g *Gate) isDiscovery(path string) bool {
	if strings.HasPrefix(path, wellKnownPrefix) {
		return true
	}
	for _, prefix := range g.protected {
		if strings.HasPrefix(path, prefix+wellKnownPrefix) {
			return true
		}
	}
	return false
}

func (g *Gate) isProtected(path string) bool {
	for _, prefix := range g.protected {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (g *Gate) unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	proto, host := originParts(r)
	metaURL := fmt.Sprintf("%s://%s/.well-known/oauth-protected-resource", proto, host)
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Bearer resource_metadata=%q`, metaURL))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": reason})
}

// ExtractBearerToken returns the credential from an Authorization header
// value. Anything but two whitespace-delimited parts with a
// case-insensitive bearer scheme yields an empty credential.
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
