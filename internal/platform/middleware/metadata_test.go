package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lumina/pkg/requestcontext"
)

const firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:140.0) Gecko/20100101 Firefox/140.0"

func captureMetadata(t *testing.T, mutate func(*http.Request)) (ip, ua string) {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip = requestcontext.ClientIP(r.Context())
		ua = requestcontext.UserAgent(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	mutate(req)
	ClientMetadata(inner).ServeHTTP(httptest.NewRecorder(), req)
	return ip, ua
}

func TestClientMetadataIPExtraction(t *testing.T) {
	t.Run("prefers first X-Forwarded-For hop", func(t *testing.T) {
		ip, _ := captureMetadata(t, func(r *http.Request) {
			r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1, 10.0.0.2")
		})
		assert.Equal(t, "203.0.113.9", ip)
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		ip, _ := captureMetadata(t, func(r *http.Request) {
			r.Header.Set("X-Real-IP", "198.51.100.4")
		})
		assert.Equal(t, "198.51.100.4", ip)
	})

	t.Run("strips port from RemoteAddr", func(t *testing.T) {
		ip, _ := captureMetadata(t, func(r *http.Request) {
			r.RemoteAddr = "192.0.2.1:54321"
		})
		assert.Equal(t, "192.0.2.1", ip)
	})
}

func TestClientMetadataUserAgentSummary(t *testing.T) {
	t.Run("summarizes known browser", func(t *testing.T) {
		_, ua := captureMetadata(t, func(r *http.Request) {
			r.Header.Set("User-Agent", firefoxUA)
		})
		assert.Contains(t, ua, "Firefox")
		assert.Contains(t, ua, "Linux")
	})

	t.Run("passes unknown agents through raw", func(t *testing.T) {
		_, ua := captureMetadata(t, func(r *http.Request) {
			r.Header.Set("User-Agent", "some-custom-client/1.0")
		})
		assert.Equal(t, "some-custom-client/1.0", ua)
	})

	t.Run("empty header yields empty summary", func(t *testing.T) {
		_, ua := captureMetadata(t, func(r *http.Request) {})
		assert.Empty(t, ua)
	})
}
