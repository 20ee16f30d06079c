// Package jwt issues and validates the service's HMAC-signed bearer tokens.
//
// Codec writes tokens and offers unverified introspection helpers; Validator
// is the only path that trusts a token. Both hold immutable configuration and
// are safe for concurrent use.
//
//	codec, err := jwt.NewCodec(cfg)
//	token, expiresAt, err := codec.Issue(id, "a@b.com", auth.RoleUser)
//
//	validator, err := jwt.NewValidator(cfg)
//	claims, err := validator.Validate(token)
package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/errors"
)

// Codec issues signed tokens.
type Codec struct {
	cfg        Config
	method     gojwt.SigningMethod
	key        []byte
	now        func() time.Time
	unverified *gojwt.Parser
}

// NewCodec validates cfg and creates a Codec.
func NewCodec(cfg Config, opts ...Option) (*Codec, error) {
	cfg, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Codec{
		cfg:        cfg,
		method:     cfg.signingMethod(),
		key:        []byte(cfg.Secret),
		now:        o.now,
		unverified: gojwt.NewParser(),
	}, nil
}

// Lifetime returns the validity window of issued tokens.
func (c *Codec) Lifetime() time.Duration { return c.cfg.Lifetime }

// Issue signs a token for the account and returns it with its expiry.
func (c *Codec) Issue(subjectID uuid.UUID, email, role string) (string, time.Time, error) {
	issuedAt := c.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(c.cfg.Lifetime)

	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subjectID.String(),
			Issuer:    c.cfg.Issuer,
			Audience:  gojwt.ClaimStrings{c.cfg.Audience},
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
		Email: email,
		Role:  role,
	}

	signed, err := gojwt.NewWithClaims(c.method, claims).SignedString(c.key)
	if err != nil {
		return "", time.Time{}, errors.Unknown(fmt.Errorf("jwt: sign token: %w", err))
	}
	return signed, claims.ExpiresAt.Time.UTC(), nil
}

// ParseExpiry returns the exp claim without verifying the signature.
// It is for introspection only and must never gate access.
func (c *Codec) ParseExpiry(token string) (time.Time, error) {
	claims, err := c.parseUnverified(token)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.TokenMalformed("missing exp claim")
	}
	return claims.ExpiresAt.Time.UTC(), nil
}

// ParseSubjectID returns the subject as an account id without verifying
// the signature. False when the claim is missing or not a UUID.
func (c *Codec) ParseSubjectID(token string) (uuid.UUID, bool) {
	claims, err := c.parseUnverified(token)
	if err != nil {
		return uuid.Nil, false
	}
	return claims.SubjectID()
}

// ParseRole returns the role claim without verifying the signature.
func (c *Codec) ParseRole(token string) (string, bool) {
	claims, err := c.parseUnverified(token)
	if err != nil || claims.Role == "" {
		return "", false
	}
	return claims.Role, true
}

func (c *Codec) parseUnverified(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := c.unverified.ParseUnverified(token, claims); err != nil {
		return nil, errors.TokenMalformed("undecodable token").WithCause(err)
	}
	return claims, nil
}
