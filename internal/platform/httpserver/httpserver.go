package httpserver

import (
	"net/http"
	"time"
)

// New builds the lumina HTTP server. Write and idle timeouts stay comfortably
// above the 30s request timeout the middleware enforces; ReadHeaderTimeout
// guards against slow-header clients holding connections open.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
