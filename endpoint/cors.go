package endpoint

import (
	"net/http"
	"strconv"
	"strings"
)

// Cors configures cross-origin response headers.
type Cors struct {
	AllowCredentials bool
	AllowHeaders     []string
	AllowMethods     []string
	AllowOrigins     []string
}

// DefaultCors allows any origin, matching the server's remote-client
// oriented deployment.
func DefaultCors() *Cors {
	return &Cors{
		AllowCredentials: true,
		AllowHeaders:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowOrigins:     []string{"*"},
	}
}

// Middleware sets CORS headers and short-circuits preflight requests.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(w http.ResponseWriter, r *http.Request) {
	if c == nil {
		return
	}
	origin := r.Header.Get("Origin")
	allowed := c.originMap()
	if allowed["*"] {
		if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			// Reflect the origin so credentialed requests stay valid.
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
	} else if origin != "" && allowed[origin] {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	if len(c.AllowMethods) > 0 {
		methods := strings.Join(c.AllowMethods, ", ")
		if methods == "*" {
			methods = "GET, POST, OPTIONS"
		}
		w.Header().Set("Access-Control-Allow-Methods", methods)
	}
	if len(c.AllowHeaders) > 0 {
		headers := strings.Join(c.AllowHeaders, ", ")
		if headers == "*" {
			headers = "Content-Type, Authorization"
		}
		w.Header().Set("Access-Control-Allow-Headers", headers)
	}
	w.Header().Set("Access-Control-Allow-Credentials", strconv.FormatBool(c.AllowCredentials))
}

func (c *Cors) originMap() map[string]bool {
	ret := make(map[string]bool, len(c.AllowOrigins))
	for _, origin := range c.AllowOrigins {
		ret[origin] = true
	}
	return ret
}
