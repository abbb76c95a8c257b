package middleware

import (
	"net/http"
	"strings"
)

// CORSOptions lists the values sent in the CORS response headers.
type CORSOptions struct {
	AllowedHeaders []string
	AllowedMethods []string
}

// MenuCORSOptions are the CORS settings of the menu service.
var MenuCORSOptions = CORSOptions{
	AllowedHeaders: []string{"Content-Type", "Authorization", "Cache-Control", "Pragma"},
	AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
}

// ProxyCORSOptions are the CORS settings of the standalone proxy service.
var ProxyCORSOptions = CORSOptions{
	AllowedHeaders: []string{"Content-Type", "Authorization"},
	AllowedMethods: []string{"GET", "POST", "OPTIONS"},
}

// CORS sets permissive CORS headers on every response, whatever the route or outcome.
// Headers are set before the handler runs so error and panic responses carry them too.
func CORS(opts CORSOptions) func(next http.Handler) http.Handler {
	allowHeaders := strings.Join(opts.AllowedHeaders, ",")
	allowMethods := strings.Join(opts.AllowedMethods, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)

			next.ServeHTTP(w, r)
		})
	}
}

// NoCache stops browsers and intermediaries from caching the response
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		next.ServeHTTP(w, r)
	})
}
