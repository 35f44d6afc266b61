package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every reachable path must collapse to one of a fixed set of label values;
// codes, keys, and names never leak into metric labels.
func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/rooms", "/rooms"},
		{"/rooms/abc123XYZ0", "/rooms/{code}"},
		{"/rooms/abc123XYZ0/participants/Alice/qr", "/rooms/{code}/participants/{name}/qr"},
		{"/reveal/creator/secretkey123", "/reveal/creator/{key}"},
		{"/reveal/participant/alicekey1", "/reveal/participant/{key}"},
		{"/metrics", "/metrics"},
		{"/swagger/index.html", "/swagger"},
		{"/rooms/abc123XYZ0/participants/Alice", "other"},
		{"/rooms/", "other"},
		{"/does/not/exist", "other"},
		{"/", "other"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, routeLabel(tt.path), "path %q", tt.path)
	}
}

func TestMetrics_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("body"))
	})
	handler := Metrics(next)
	req := httptest.NewRequest(http.MethodGet, "http://test/rooms/abc123XYZ0", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "body", rr.Body.String())
}
