package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/auth/authctx"
	"github.com/biduedson/reservas-api/authz"
	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/observability"
)

// AuthConfig configures the bearer authentication middleware.
type AuthConfig struct {
	// Validator verifies the token and returns its claims.
	Validator auth.TokenValidator
	// Metrics receives rejected-token counts.
	Metrics *observability.AuthMetrics
}

// Auth requires a valid bearer token and stores its claims in the request
// context (see authctx).
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var claims any
			claims, err = cfg.Validator.ValidateToken(token)
			if err == nil {
				c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), claims))
				c.Next()
				return
			}
		}

		cfg.Metrics.RecordTokenFailure(c.Request.Context(), string(errors.CodeOf(err)))
		abortWithError(c, errors.Wrap(err))
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.TokenMalformed("missing bearer token")
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errors.TokenMalformed("authorization scheme is not bearer")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.TokenMalformed("empty bearer token")
	}
	return token, nil
}

// RequirePermission allows the request only when the authenticated role
// holds permission. It must run after Auth.
func RequirePermission(checker authz.Checker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authctx.Identity(c.Request.Context())
		if err != nil {
			abortWithError(c, err)
			return
		}
		if err := authz.Authorize(checker, identity.GetRole(), permission); err != nil {
			abortWithError(c, err)
			return
		}
		c.Next()
	}
}
