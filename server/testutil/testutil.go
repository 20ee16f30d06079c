// Package testutil drives HTTP handlers in tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/logger"
	"github.com/biduedson/reservas-api/server"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewServer returns a server on a random port with the standard middleware
// applied and no routes.
func NewServer() *server.Server {
	srv := server.New(server.Config{Host: "127.0.0.1"}, logger.NewNop())
	srv.ApplyMiddleware(nil)
	return srv
}

// Request describes one test request. Body is JSON-encoded unless it is
// a string or []byte.
type Request struct {
	Method string
	Path   string
	Body   any
	Token  string
	Header map[string]string
}

// Do serves req on h and returns the recorded response.
func Do(t testing.TB, h http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader = http.NoBody
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	case []byte:
		body = bytes.NewBuffer(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("testutil: encode body: %v", err)
		}
		body = bytes.NewBuffer(raw)
	}

	r := httptest.NewRequest(req.Method, req.Path, body)
	if req.Body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		r.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Header {
		r.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// Decode unmarshals the recorded JSON body into a T.
func Decode[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("testutil: decode %q: %v", rec.Body.String(), err)
	}
	return v
}
