package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveLogged(t *testing.T, req *http.Request, status int) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	obsCore, logs := observer.New(zapcore.InfoLevel)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	w := httptest.NewRecorder()
	LoggingMiddleware(zap.New(obsCore))(handler).ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request", entry.Message)
	return w, entry.ContextMap()
}

func TestLoggingMiddleware_Fields(t *testing.T) {
	req := httptest.NewRequest("GET", "/strategy?type=Trendline+Scalper", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	_, fields := serveLogged(t, req, http.StatusOK)

	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/strategy", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "192.168.1.1:12345", fields["client_ip"])
	assert.Contains(t, fields, "duration_ms")
	assert.GreaterOrEqual(t, fields["duration_ms"].(float64), 0.0)
}

func TestLoggingMiddleware_Status(t *testing.T) {
	req := httptest.NewRequest("GET", "/reports/missing.html", nil)

	w, fields := serveLogged(t, req, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
}

func TestLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/health", nil)

	w, fields := serveLogged(t, req, http.StatusOK)

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "request id should be a uuid")
	assert.Equal(t, id, fields["request_id"])
}

func TestLoggingMiddleware_KeepsIncomingRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set(RequestIDHeader, "upstream-42")

	w, fields := serveLogged(t, req, http.StatusOK)

	assert.Equal(t, "upstream-42", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "upstream-42", fields["request_id"])
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"socket address", "10.0.0.1:5000", "", "10.0.0.1:5000"},
		{"single proxy", "10.0.0.1:5000", "203.0.113.7", "203.0.113.7"},
		{"proxy chain", "10.0.0.1:5000", " 203.0.113.7 , 10.0.0.2", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
