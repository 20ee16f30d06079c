// Package api exposes the account operations over HTTP.
//
//	POST /api/autenticacao/autenticar  login, rate limited per client IP
//	POST /api/usuarios                 registration
//	GET  /api/usuarios/me              current account (bearer)
//	GET  /api/usuarios                 account list (bearer, administrators)
package api
