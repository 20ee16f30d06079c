// Package version exposes the build metadata served by /version and /info.
//
// Values are stamped at link time and fall back to the VCS settings the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/biduedson/reservas-api/version.Version=1.2.0" ./cmd/reservas-api
package version
