package server_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biduedson/reservas-api/component"
	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/logger"
	"github.com/biduedson/reservas-api/server"
	"github.com/biduedson/reservas-api/server/testutil"
)

func TestRespondWithError_Classification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"invalid credentials", errors.InvalidCredentials(), http.StatusBadRequest, "invalid email or password"},
		{"expired", errors.TokenExpired(), http.StatusUnauthorized, "token expired"},
		{"malformed", errors.TokenMalformed("x"), http.StatusUnauthorized, "token invalid or missing"},
		{"signature", errors.TokenSignatureInvalid(), http.StatusUnauthorized, "token invalid or missing"},
		{"forbidden", errors.Forbidden(""), http.StatusForbidden, "access denied"},
		{"rate limited", errors.RateLimited(), http.StatusTooManyRequests, "too many requests"},
		{"plain error", fmt.Errorf("db down"), http.StatusInternalServerError, "unknown error"},
		{"configuration", errors.Configuration("auth.jwt.secret", "short"), http.StatusInternalServerError, "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewServer()
			srv.GinEngine().GET("/fail", func(c *gin.Context) { server.RespondWithError(c, tt.err) })

			rec := testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodGet, Path: "/fail"})
			assert.Equal(t, tt.status, rec.Code)

			body := testutil.Decode[errors.ErrorResponse](t, rec)
			assert.Equal(t, tt.message, body.Message)
			assert.Empty(t, body.Fields)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

func TestRespondWithError_ValidationFields(t *testing.T) {
	srv := testutil.NewServer()
	srv.GinEngine().POST("/usuarios", func(c *gin.Context) {
		server.RespondWithError(c, errors.ValidationFailed(errors.FieldError{Field: "Nome", Reason: "required"}))
	})

	rec := testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodPost, Path: "/usuarios", Body: "{}"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"validation failed","fields":[{"field":"Nome","reason":"required"}]}`, rec.Body.String())
}

func TestRecovery_PanicBecomesUnknown(t *testing.T) {
	srv := testutil.NewServer()
	srv.GinEngine().GET("/panic", func(*gin.Context) { panic("boom") })

	rec := testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodGet, Path: "/panic"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"unknown error"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestErrorHandler_IgnoresWrittenResponses(t *testing.T) {
	srv := testutil.NewServer()
	srv.GinEngine().GET("/written", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		_ = c.Error(errors.Forbidden(""))
	})

	rec := testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodGet, Path: "/written"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	srv := testutil.NewServer()
	srv.GinEngine().GET("/only-get", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodGet, Path: "/missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrorResponse{Message: "not found"}, testutil.Decode[errors.ErrorResponse](t, rec))

	rec = testutil.Do(t, srv.Handler(), testutil.Request{Method: http.MethodDelete, Path: "/only-get"})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, errors.ErrorResponse{Message: "method not allowed"}, testutil.Decode[errors.ErrorResponse](t, rec))
}

type stubComponent struct {
	name   string
	status component.HealthStatus
}

func (s stubComponent) Name() string                { return s.name }
func (s stubComponent) Start(context.Context) error { return nil }
func (s stubComponent) Stop(context.Context) error  { return nil }
func (s stubComponent) Health(context.Context) component.Health {
	return component.Health{Name: s.name, Status: s.status}
}

func TestDefaultEndpoints(t *testing.T) {
	registry := component.NewRegistry(logger.NewNop())
	require.NoError(t, registry.Register(stubComponent{name: "database", status: component.StatusHealthy}))

	srv := testutil.NewServer()
	srv.RegisterDefaultEndpoints("reservas-api", registry.HealthAll, registry.Ready)
	h := srv.Handler()

	for _, path := range []string{"/health", "/liveness", "/readiness", "/info", "/version"} {
		rec := testutil.Do(t, h, testutil.Request{Method: http.MethodGet, Path: path})
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	health := testutil.Do(t, h, testutil.Request{Method: http.MethodGet, Path: "/health"})
	body := testutil.Decode[map[string]any](t, health)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "reservas-api", body["service"])
}

func TestDefaultEndpoints_Unhealthy(t *testing.T) {
	registry := component.NewRegistry(logger.NewNop())
	require.NoError(t, registry.Register(stubComponent{name: "database", status: component.StatusUnhealthy}))
	require.NoError(t, registry.Register(stubComponent{name: "cache", status: component.StatusDegraded}))

	srv := testutil.NewServer()
	srv.RegisterDefaultEndpoints("reservas-api", registry.HealthAll, registry.Ready)
	h := srv.Handler()

	rec := testutil.Do(t, h, testutil.Request{Method: http.MethodGet, Path: "/health"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = testutil.Do(t, h, testutil.Request{Method: http.MethodGet, Path: "/readiness"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := testutil.Decode[map[string]any](t, rec)
	assert.Equal(t, "not_ready", body["status"])
	assert.Len(t, body["failing"], 2)

	rec = testutil.Do(t, h, testutil.Request{Method: http.MethodGet, Path: "/liveness"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestComponent_Lifecycle(t *testing.T) {
	srv := server.New(server.Config{Host: "127.0.0.1", Port: 0}, logger.NewNop())
	srv.ApplyMiddleware(nil)
	srv.GinEngine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	comp := server.NewComponent(srv)

	assert.Equal(t, "http-server", comp.Name())
	assert.Equal(t, component.StatusUnhealthy, comp.Health(context.Background()).Status)

	require.NoError(t, comp.Start(context.Background()))
	t.Cleanup(func() { _ = comp.Stop(context.Background()) })

	assert.Equal(t, component.StatusHealthy, comp.Health(context.Background()).Status)
	assert.False(t, strings.HasSuffix(srv.Addr(), ":0"), "expected a bound port, got %s", srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, comp.Stop(context.Background()))
}

func TestComponent_Routes(t *testing.T) {
	srv := testutil.NewServer()
	srv.RegisterDefaultEndpoints("svc", nil, nil)
	srv.GinEngine().POST("/api/usuarios", func(*gin.Context) {})
	srv.GinEngine().GET("/api/usuarios", func(*gin.Context) {})

	routes := server.NewComponent(srv).Routes()
	require.NotEmpty(t, routes)
	assert.Equal(t, "/api/usuarios", routes[0].Path)
	assert.Equal(t, "GET", routes[0].Method)
	assert.Equal(t, "POST", routes[1].Method)
}

func TestComponent_Describe(t *testing.T) {
	srv := server.New(server.Config{Host: "0.0.0.0", Port: 9090}, logger.NewNop())
	d := server.NewComponent(srv).Describe()
	assert.Equal(t, "0.0.0.0:9090", d.Details)
	assert.Equal(t, 9090, d.Port)
}

func TestConfig(t *testing.T) {
	var cfg server.Config
	cfg.ApplyDefaults()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "1MB", cfg.MaxBodySize)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())

	bad := server.Config{Port: 70000}
	err := bad.Validate()
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))

	bad = server.Config{ReadTimeout: -1}
	assert.Error(t, bad.Validate())

	bad = server.Config{MaxBodySize: "ten megs"}
	err = bad.Validate()
	assert.True(t, errors.Is(err, errors.ErrCodeConfiguration))
	assert.Contains(t, err.Error(), "server.max_body_size")
}
