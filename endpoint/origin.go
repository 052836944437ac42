package endpoint

import "net/http"

// originValidation rejects browser requests from origins outside the
// allowlist. Requests without an Origin header are typically
// non-browser clients and pass through; "*" permits any origin.
func originValidation(allowed []string) Middleware {
	allowedMap := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedMap[origin] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
