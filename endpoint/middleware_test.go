package endpoint

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	handler := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("outer"), tag("inner"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestOriginValidation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := originValidation([]string{"https://app.example.com"})(next)

	testCases := []struct {
		description string
		origin      string
		expect      int
	}{
		{description: "no origin passes", origin: "", expect: http.StatusOK},
		{description: "allowed origin passes", origin: "https://app.example.com", expect: http.StatusOK},
		{description: "unknown origin rejected", origin: "https://evil.example.com", expect: http.StatusForbidden},
	}
	for _, testCase := range testCases {
		request := httptest.NewRequest(http.MethodGet, "/sse", nil)
		if testCase.origin != "" {
			request.Header.Set("Origin", testCase.origin)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, testCase.expect, recorder.Code, testCase.description)
	}

	wildcard := originValidation([]string{"*"})(next)
	request := httptest.NewRequest(http.MethodGet, "/sse", nil)
	request.Header.Set("Origin", "https://anything.example.com")
	recorder := httptest.NewRecorder()
	wildcard.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCors_SetsHeaders(t *testing.T) {
	cors := DefaultCors()
	handler := cors.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/sse", nil)
	request.Header.Set("Origin", "https://app.example.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type, Authorization", recorder.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}
