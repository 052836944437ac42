package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/mcp-protocol/oauth2/meta"
)

func TestWellKnownHandler_AuthorizationServer(t *testing.T) {
	handler := WellKnownHandler("/sse")
	for _, document := range []string{"oauth-authorization-server", "openid-configuration"} {
		recorder := httptest.NewRecorder()
		handler(recorder, httptest.NewRequest(http.MethodGet, "/.well-known/"+document, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, document)

		metadata := &meta.AuthorizationServerMetadata{}
		assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), metadata))
		assert.Equal(t, GoogleIssuer, metadata.Issuer, document)
		assert.NotEmpty(t, metadata.AuthorizationEndpoint, document)
		assert.NotEmpty(t, metadata.TokenEndpoint, document)
	}
}

func TestWellKnownHandler_ProtectedResource(t *testing.T) {
	handler := WellKnownHandler("/sse")
	request := httptest.NewRequest(http.MethodGet, "/.well-known/oauth-protected-resource", nil)
	request.Host = "mcp.example.com"
	recorder := httptest.NewRecorder()
	handler(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	metadata := &meta.ProtectedResourceMetadata{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), metadata))
	assert.Equal(t, "http://mcp.example.com/sse", metadata.Resource)
	assert.Equal(t, []string{GoogleIssuer}, metadata.AuthorizationServers)
}

func TestWellKnownHandler_SSEBasePath(t *testing.T) {
	handler := WellKnownHandler("/sse")
	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/sse/.well-known/openid-configuration", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestWellKnownHandler_UnknownDocument(t *testing.T) {
	handler := WellKnownHandler("/sse")
	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/.well-known/unknown-doc", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	body := map[string]string{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
}

func TestWellKnownHandler_ForwardedProto(t *testing.T) {
	handler := WellKnownHandler("/sse")
	request := httptest.NewRequest(http.MethodGet, "/.well-known/oauth-protected-resource", nil)
	request.Host = "mcp.example.com"
	request.Header.Set("X-Forwarded-Proto", "https")
	recorder := httptest.NewRecorder()
	handler(recorder, request)

	metadata := &meta.ProtectedResourceMetadata{}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), metadata))
	assert.Equal(t, "https://mcp.example.com/sse", metadata.Resource)
}
