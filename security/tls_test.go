package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/security/tlstest"
)

func TestTLSConfig_Disabled(t *testing.T) {
	var nilCfg *TLSConfig
	for _, cfg := range []*TLSConfig{nilCfg, {}} {
		if cfg.IsEnabled() {
			t.Fatal("expected disabled")
		}
		got, err := cfg.Build()
		if err != nil || got != nil {
			t.Fatalf("Build() = %v, %v; want nil, nil", got, err)
		}
	}
}

func TestTLSConfig_Build(t *testing.T) {
	srv := tlstest.NewAuthority(t).Server(t)

	cfg := &TLSConfig{CertFile: srv.CertFile, KeyFile: srv.KeyFile}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(got.Certificates) != 1 {
		t.Fatalf("expected 1 certificate, got %d", len(got.Certificates))
	}
	if got.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %d, want TLS 1.2", got.MinVersion)
	}
	if got.ClientAuth != tls.NoClientCert {
		t.Errorf("ClientAuth = %v, want NoClientCert", got.ClientAuth)
	}
}

func TestTLSConfig_BuildMutual(t *testing.T) {
	ca := tlstest.NewAuthority(t)
	srv := ca.Server(t)

	cfg := &TLSConfig{
		CertFile:     srv.CertFile,
		KeyFile:      srv.KeyFile,
		ClientCAFile: ca.File,
		MinVersion:   TLS13,
	}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got.ClientAuth != tls.RequireAndVerifyClientCert {
		t.Errorf("ClientAuth = %v, want RequireAndVerifyClientCert", got.ClientAuth)
	}
	if got.ClientCAs == nil {
		t.Error("expected ClientCAs pool")
	}
	if got.MinVersion != tls.VersionTLS13 {
		t.Errorf("MinVersion = %d, want TLS 1.3", got.MinVersion)
	}
}

func TestTLSConfig_MutualHandshake(t *testing.T) {
	ca := tlstest.NewAuthority(t)
	leaf := ca.Server(t)

	cfg := &TLSConfig{CertFile: leaf.CertFile, KeyFile: leaf.KeyFile, ClientCAFile: ca.File}
	serverTLS, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.TLS = serverTLS
	srv.StartTLS()
	defer srv.Close()

	get := func(certs ...tls.Certificate) error {
		client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{
			RootCAs:      ca.Pool,
			Certificates: certs,
		}}}
		defer client.CloseIdleConnections()
		resp, err := client.Get(srv.URL)
		if err != nil {
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", resp.StatusCode)
		}
		return nil
	}

	if err := get(ca.Client(t, "ops").Certificate); err != nil {
		t.Fatalf("trusted client rejected: %v", err)
	}
	if err := get(); err == nil {
		t.Fatal("expected handshake failure without a client certificate")
	}
	if err := get(tlstest.NewAuthority(t).Client(t, "stranger").Certificate); err == nil {
		t.Fatal("expected handshake failure for a client from another CA")
	}
}

func TestTLSConfig_BuildErrors(t *testing.T) {
	srv := tlstest.NewAuthority(t).Server(t)

	tests := []struct {
		name string
		cfg  TLSConfig
	}{
		{"missing key file", TLSConfig{CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}},
		{"invalid client CA", TLSConfig{
			CertFile: srv.CertFile, KeyFile: srv.KeyFile,
			ClientCAFile: tlstest.Garbage(t, "ca.pem"),
		}},
		{"missing client CA", TLSConfig{
			CertFile: srv.CertFile, KeyFile: srv.KeyFile,
			ClientCAFile: "/nonexistent/ca.pem",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTLSConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TLSConfig
		wantErr bool
	}{
		{"empty", TLSConfig{}, false},
		{"pair", TLSConfig{CertFile: "c", KeyFile: "k"}, false},
		{"cert only", TLSConfig{CertFile: "c"}, true},
		{"key only", TLSConfig{KeyFile: "k"}, true},
		{"client CA without cert", TLSConfig{ClientCAFile: "ca"}, true},
		{"tls 1.3", TLSConfig{CertFile: "c", KeyFile: "k", MinVersion: TLS13}, false},
		{"tls 1.0", TLSConfig{CertFile: "c", KeyFile: "k", MinVersion: "1.0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION error, got %v", err)
			}
		})
	}
}
