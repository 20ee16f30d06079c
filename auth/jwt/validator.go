package jwt

import (
	stderrors "errors"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/biduedson/reservas-api/errors"
)

// Validator verifies tokens issued by a Codec with the same Config.
type Validator struct {
	cfg    Config
	key    []byte
	now    func() time.Time
	parser *gojwt.Parser
}

// NewValidator validates cfg and creates a Validator.
func NewValidator(cfg Config, opts ...Option) (*Validator, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Validator{
		cfg: cfg,
		key: []byte(cfg.Secret),
		now: o.now,
		// Time claims are checked below against the injected clock with zero skew.
		parser: gojwt.NewParser(
			gojwt.WithValidMethods([]string{cfg.signingMethod().Alg()}),
			gojwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Validate checks, in order: structure, algorithm and signature, issuer and
// audience, then expiry. The first failure is returned.
func (v *Validator) Validate(token string) (*Claims, error) {
	if token == "" {
		return nil, errors.TokenMalformed("missing token")
	}

	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(token, claims, v.keyFunc); err != nil {
		return nil, mapParseError(err)
	}

	if claims.Issuer != v.cfg.Issuer {
		return nil, errors.TokenMalformed("issuer mismatch")
	}
	if !slices.Contains(claims.Audience, v.cfg.Audience) {
		return nil, errors.TokenMalformed("audience mismatch")
	}

	if claims.ExpiresAt == nil {
		return nil, errors.TokenMalformed("missing exp claim")
	}
	if v.now().After(claims.ExpiresAt.Time) {
		return nil, errors.TokenExpired()
	}
	return claims, nil
}

// ValidateToken implements auth.TokenValidator.
func (v *Validator) ValidateToken(token string) (any, error) {
	claims, err := v.Validate(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (v *Validator) keyFunc(_ *gojwt.Token) (interface{}, error) {
	return v.key, nil
}

func mapParseError(err error) error {
	switch {
	case stderrors.Is(err, gojwt.ErrTokenMalformed):
		return errors.TokenMalformed("undecodable token").WithCause(err)
	case stderrors.Is(err, gojwt.ErrTokenSignatureInvalid),
		stderrors.Is(err, gojwt.ErrTokenUnverifiable):
		return errors.TokenSignatureInvalid().WithCause(err)
	default:
		return errors.TokenMalformed("invalid token").WithCause(err)
	}
}
