package api

import (
	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/account"
	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/authz"
	"github.com/biduedson/reservas-api/observability"
	"github.com/biduedson/reservas-api/resilience"
	"github.com/biduedson/reservas-api/server/middleware"
)

// Route paths.
const (
	PathAuthenticate = "/api/autenticacao/autenticar"
	PathAccounts     = "/api/usuarios"
	PathMe           = "/api/usuarios/me"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Accounts  *account.Service
	Validator auth.TokenValidator
	Checker   authz.Checker
	// LoginLimiter throttles login attempts per client IP. Nil disables it.
	LoginLimiter *resilience.KeyedLimiter
	Metrics      *observability.AuthMetrics
}

// RegisterRoutes mounts the account API on r.
func RegisterRoutes(r gin.IRouter, deps Deps) {
	h := NewAccountHandler(deps.Accounts)
	if deps.Checker == nil {
		deps.Checker = authz.NewMapChecker(authz.DefaultPolicy())
	}

	login := []gin.HandlerFunc{}
	if deps.LoginLimiter != nil {
		login = append(login, middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.LoginLimiter,
			Metrics: deps.Metrics,
		}))
	}
	r.POST(PathAuthenticate, append(login, h.Authenticate)...)
	r.POST(PathAccounts, h.Register)

	authed := middleware.Auth(middleware.AuthConfig{Validator: deps.Validator, Metrics: deps.Metrics})
	r.GET(PathMe, authed, middleware.RequirePermission(deps.Checker, authz.PermProfileRead), h.Me)
	r.GET(PathAccounts, authed, middleware.RequirePermission(deps.Checker, authz.PermAccountsList), h.List)
}
