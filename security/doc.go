// Package security builds the server-side TLS configuration for the HTTP
// listener, including optional client certificate verification.
//
//	cfg := security.TLSConfig{
//	    CertFile: "/etc/reservas/tls/cert.pem",
//	    KeyFile:  "/etc/reservas/tls/key.pem",
//	}
//	tlsConfig, err := cfg.Build()
package security
