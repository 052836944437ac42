package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/viant/mcp-protocol/oauth2/meta"
)

// GoogleIssuer is the authorization server behind the gate.
const GoogleIssuer = "https://accounts.google.com"

const (
	googleAuthorizationEndpoint = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint         = "https://oauth2.googleapis.com/token"
	googleJSONWebKeySetURI      = "https://www.googleapis.com/oauth2/v3/certs"
)

var supportedScopes = []string{"openid", "email", "profile"}

// AuthorizationServerMetadata returns the static Google authorization
// server discovery document remote clients use to locate the flow.
func AuthorizationServerMetadata() *meta.AuthorizationServerMetadata {
	return &meta.AuthorizationServerMetadata{
		Issuer:                            GoogleIssuer,
		AuthorizationEndpoint:             googleAuthorizationEndpoint,
		TokenEndpoint:                     googleTokenEndpoint,
		JSONWebKeySetURI:                  googleJSONWebKeySetURI,
		ResponseTypesSupported:            []string{"code"},
		GrantTypesSupported:               []string{"authorization_code", "refresh_token"},
		TokenEndpointAuthMethodsSupported: []string{"client_secret_post", "client_secret_basic"},
		ScopesSupported:                   supportedScopes,
	}
}

// ProtectedResourceMetadata describes the gated resource rooted at the
// requesting origin.
func ProtectedResourceMetadata(origin, resourcePath string) *meta.ProtectedResourceMetadata {
	return &meta.ProtectedResourceMetadata{
		Resource:             origin + resourcePath,
		AuthorizationServers: []string{GoogleIssuer},
		ScopesSupported:      supportedScopes,
	}
}

// WellKnownHandler serves the unauthenticated discovery documents. The
// document name is the path segment following the last "/.well-known/";
// unrecognized names yield a 404 JSON body.
func WellKnownHandler(resourcePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch wellKnownDocument(r.URL.Path) {
		case "oauth-authorization-server", "openid-configuration":
			writeJSON(w, http.StatusOK, AuthorizationServerMetadata())
		case "oauth-protected-resource":
			proto, host := originParts(r)
			writeJSON(w, http.StatusOK, ProtectedResourceMetadata(proto+"://"+host, resourcePath))
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		}
	}
}

func wellKnownDocument(path string) string {
	index := strings.LastIndex(path, wellKnownPrefix+"/")
	if index == -1 {
		return ""
	}
	document := path[index+len(wellKnownPrefix)+1:]
	if slash := strings.Index(document, "/"); slash != -1 {
		document = document[:slash]
	}
	return document
}

// originParts derives the requesting origin, honoring proxy forwarding.
func originParts(r *http.Request) (proto, host string) {
	proto = "http"
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		proto = forwarded
	} else if r.TLS != nil {
		proto = "https"
	}
	return proto, r.Host
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
