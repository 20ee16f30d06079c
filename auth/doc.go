// Package auth holds the shared authentication contracts of the service.
//
// Subpackages:
//
//   - auth/password  salted SHA-512 digests plus opt-in argon2id and bcrypt
//   - auth/jwt       token issuing (Codec) and validation (Validator)
//   - auth/authctx   request context propagation for validated claims
//
// The top-level package provides:
//
//   - TokenValidator  the contract middleware depends on
//   - Identity        what a validated token exposes to handlers and authz
//   - Role constants  Administrador and UsuarioComun
//   - Config          composes the subpackage configs for viper loading
//
//	auth:
//	  jwt:
//	    secret: "${AUTH_JWT_SECRET}"
//	    issuer: "reservas-api"
//	    audience: "reservas-api-clients"
//	    lifetime: "1h"
//	  password:
//	    algorithm: "sha512-salted"
//	    salt: "${AUTH_PASSWORD_SALT}"
package auth
