// Package auth validates Google OAuth bearer credentials for the HTTP
// surface of the fitness MCP server. It bundles an expiry-bounded
// validation cache, a tokeninfo-backed validator, a protected-prefix
// authorization gate and the unauthenticated OAuth discovery documents.
package auth
