// Package tlstest issues throwaway certificates for TLS tests. Every
// file lands under t.TempDir().
//
//	ca := tlstest.NewAuthority(t)
//	srv := ca.Server(t)
//	cfg := security.TLSConfig{CertFile: srv.CertFile, KeyFile: srv.KeyFile, ClientCAFile: ca.File}
package tlstest

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validity = 24 * time.Hour

// Authority is a private CA. File and Pool feed client_ca_file on the
// server side and RootCAs on the client side.
type Authority struct {
	File string
	Pool *x509.CertPool

	cert *x509.Certificate
	key  ed25519.PrivateKey
	dir  string
}

// Leaf is a certificate signed by an Authority.
type Leaf struct {
	CertFile    string
	KeyFile     string
	Certificate tls.Certificate
}

// NewAuthority creates a CA valid for one day.
func NewAuthority(t testing.TB) *Authority {
	t.Helper()
	pub, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: ca key: %v", err)
	}
	tmpl := template(t, pkix.Name{CommonName: "reservas-api test CA"})
	tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	tmpl.BasicConstraintsValid = true
	tmpl.IsCA = true

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, pub, key)
	if err != nil {
		t.Fatalf("tlstest: ca cert: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("tlstest: parse ca: %v", err)
	}

	a := &Authority{Pool: x509.NewCertPool(), cert: cert, key: key, dir: t.TempDir()}
	a.Pool.AddCert(cert)
	a.File = write(t, a.dir, "ca.pem", "CERTIFICATE", der)
	return a
}

// Server issues a serving certificate for localhost and the loopback addresses.
func (a *Authority) Server(t testing.TB) *Leaf {
	t.Helper()
	tmpl := template(t, pkix.Name{CommonName: "localhost"})
	tmpl.DNSNames = []string{"localhost"}
	tmpl.IPAddresses = []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback}
	tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
	return a.issue(t, "server", tmpl)
}

// Client issues a client certificate with the given common name.
func (a *Authority) Client(t testing.TB, name string) *Leaf {
	t.Helper()
	tmpl := template(t, pkix.Name{CommonName: name})
	tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	return a.issue(t, "client-"+name, tmpl)
}

func (a *Authority) issue(t testing.TB, prefix string, tmpl *x509.Certificate) *Leaf {
	t.Helper()
	pub, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: %s key: %v", prefix, err)
	}
	tmpl.KeyUsage = x509.KeyUsageDigitalSignature
	der, err := x509.CreateCertificate(rand.Reader, tmpl, a.cert, pub, a.key)
	if err != nil {
		t.Fatalf("tlstest: %s cert: %v", prefix, err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("tlstest: %s key encoding: %v", prefix, err)
	}

	leaf := &Leaf{
		CertFile: write(t, a.dir, prefix+".pem", "CERTIFICATE", der),
		KeyFile:  write(t, a.dir, prefix+"-key.pem", "PRIVATE KEY", keyDER),
	}
	leaf.Certificate, err = tls.LoadX509KeyPair(leaf.CertFile, leaf.KeyFile)
	if err != nil {
		t.Fatalf("tlstest: %s key pair: %v", prefix, err)
	}
	return leaf
}

// Garbage writes a PEM-framed file whose body is not a certificate.
func Garbage(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	body := []byte("-----BEGIN CERTIFICATE-----\nbm90IGEgY2VydA==\n-----END CERTIFICATE-----\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("tlstest: %v", err)
	}
	return path
}

func template(t testing.TB, subject pkix.Name) *x509.Certificate {
	t.Helper()
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		t.Fatalf("tlstest: serial: %v", err)
	}
	now := time.Now()
	return &x509.Certificate{
		SerialNumber: serial,
		Subject:      subject,
		NotBefore:    now.Add(-time.Minute),
		NotAfter:     now.Add(validity),
	}
}

func write(t testing.TB, dir, name, blockType string, der []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), 0o600); err != nil {
		t.Fatalf("tlstest: %v", err)
	}
	return path
}
