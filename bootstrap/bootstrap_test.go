package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/biduedson/reservas-api/component"
	"github.com/biduedson/reservas-api/config"
	"github.com/biduedson/reservas-api/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(context.Context) component.Health { return m.health }

type describedComponent struct {
	mockComponent
	desc   component.Description
	routes []component.Route
}

func (d *describedComponent) Describe() component.Description { return d.desc }
func (d *describedComponent) Routes() []component.Route       { return d.routes }

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: config.EnvDevelopment,
		},
	}
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig("reservas-api", "1.0.0"), WithLogger(logger.NewNop()), WithoutSummary())
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func healthy(name string) *mockComponent {
	return &mockComponent{name: name, health: component.Health{Name: name, Status: component.StatusHealthy}}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("reservas-api", "1.0.0"))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "reservas-api" || app.Version != "1.0.0" {
		t.Errorf("unexpected name/version %q/%q", app.Name, app.Version)
	}
	if app.Logger == nil || app.Components == nil || app.Summary == nil {
		t.Error("expected logger, registry and summary to be initialized")
	}
	if app.gracefulTimeout != DefaultGracefulTimeout {
		t.Errorf("expected default timeout, got %v", app.gracefulTimeout)
	}
}

func TestNewAppValidation(t *testing.T) {
	if _, err := NewApp(newTestConfig("", "1.0.0")); err == nil {
		t.Error("expected validation error for empty name")
	}
}

func TestNewAppOptions(t *testing.T) {
	l := logger.NewNop()
	app, err := NewApp(newTestConfig("svc", "1"), WithLogger(l), WithGracefulTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Logger != l {
		t.Error("expected custom logger")
	}
	if app.gracefulTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", app.gracefulTimeout)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(healthy("database")); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if err := app.RegisterComponent(healthy("database")); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  component.HealthStatus
		wantErr bool
	}{
		{"healthy", component.StatusHealthy, false},
		{"degraded", component.StatusDegraded, true},
		{"unhealthy", component.StatusUnhealthy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.RegisterComponent(&mockComponent{
				name:   "database",
				health: component.Health{Name: "database", Status: tt.status, Message: "ping"},
			})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunTask_LifecycleOrder(t *testing.T) {
	app := newTestApp(t)

	var order []string
	app.OnStart(func(context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		if a != app {
			t.Error("configure callback received a different app")
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(context.Context) error {
		order = append(order, "ready")
		return nil
	})
	app.OnStop(func(context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start", "configure", "ready", "task", "stop"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, order)
	}
}

func TestRunTask_StartsAndStopsComponents(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	app.RegisterComponent(db)

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !db.started || !db.stopped {
		t.Errorf("expected started and stopped, got started=%v stopped=%v", db.started, db.stopped)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app := newTestApp(t)
	app.RegisterComponent(&mockComponent{name: "database", stopErr: errors.New("close failed")})

	taskErr := errors.New("task error")
	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StopErrorReturned(t *testing.T) {
	app := newTestApp(t)
	app.RegisterComponent(&mockComponent{name: "database", stopErr: errors.New("close failed")})

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "close failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTask_Cancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTask_StartupFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		setup func(app *App[*testConfig])
	}{
		{"component start", func(app *App[*testConfig]) {
			app.RegisterComponent(&mockComponent{name: "database", startErr: boom})
		}},
		{"start hook", func(app *App[*testConfig]) {
			app.OnStart(func(context.Context) error { return boom })
		}},
		{"configure", func(app *App[*testConfig]) {
			app.OnConfigure(func(context.Context, *App[*testConfig]) error { return boom })
		}},
		{"ready hook", func(app *App[*testConfig]) {
			app.OnReady(func(context.Context) error { return boom })
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			db := healthy("cache")
			app.RegisterComponent(db)
			tt.setup(app)

			ran := false
			err := app.RunTask(context.Background(), func(context.Context) error {
				ran = true
				return nil
			})
			if !errors.Is(err, boom) {
				t.Errorf("expected boom, got %v", err)
			}
			if ran {
				t.Error("task must not run after a startup failure")
			}
			if !db.stopped {
				t.Error("components started before the failure must be stopped")
			}
		})
	}
}

func TestRun_ContextCancel(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	app.RegisterComponent(db)

	ctx, cancel := context.WithCancel(context.Background())
	app.OnReady(func(context.Context) error {
		cancel()
		return nil
	})

	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !db.stopped {
		t.Error("expected component to be stopped")
	}
}

func TestShutdownIdempotent(t *testing.T) {
	app := newTestApp(t)
	db := healthy("database")
	app.RegisterComponent(db)
	app.RunTask(context.Background(), func(context.Context) error { return nil })

	db.stopped = false
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if db.stopped {
		t.Error("an already stopped component must not be stopped twice")
	}
}

func TestSummary_CollectFromRegistry(t *testing.T) {
	registry := component.NewRegistry(nil)
	registry.Register(&describedComponent{
		mockComponent: *healthy("http-server"),
		desc:          component.Description{Type: "server", Details: "gin h2c", Port: 8080},
		routes: []component.Route{
			{Method: "POST", Path: "/api/autenticacao/autenticar", Handler: "api.Authenticate"},
			{Method: "GET", Path: "/health", Handler: "endpoint.Health"},
		},
	})
	registry.Register(healthy("plain"))

	s := NewSummary("reservas-api", "1.0.0")
	s.TrackRoute("GET", "/stale", "stale")
	s.CollectFromRegistry(registry)

	if len(s.infrastructure) != 1 {
		t.Fatalf("expected 1 infrastructure entry, got %d", len(s.infrastructure))
	}
	if s.infrastructure[0].Name != "http-server" {
		t.Errorf("expected name to fall back to component name, got %q", s.infrastructure[0].Name)
	}
	if len(s.routes) != 2 {
		t.Errorf("expected 2 routes, got %v", s.routes)
	}
}

func TestSummary_Display(t *testing.T) {
	registry := component.NewRegistry(nil)
	registry.Register(healthy("database"))
	registry.Register(&mockComponent{
		name:   "http-server",
		health: component.Health{Name: "http-server", Status: component.StatusUnhealthy, Message: "not listening"},
	})

	s := NewSummary("reservas-api", "1.0.0")
	s.SetStartupDuration(1500 * time.Millisecond)
	s.TrackInfrastructure("database", "database", "sqlite", 0)
	s.TrackRoute("GET", "/api/usuarios", "api.List")

	var buf bytes.Buffer
	s.DisplaySummary(&buf, registry)
	out := buf.String()

	for _, want := range []string{
		"reservas-api v1.0.0 started in 1.50s",
		"[database] database: sqlite",
		"/api/usuarios -> api.List",
		"http-server: unhealthy (not listening)",
		"(1/2 healthy)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummary_DisplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewSummary("svc", "0.1").DisplaySummary(&buf, nil)
	if !strings.Contains(buf.String(), "No components registered") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestTreePrefix(t *testing.T) {
	if treePrefix(0, 2) != "├──" || treePrefix(1, 2) != "└──" {
		t.Error("unexpected tree prefixes")
	}
}
