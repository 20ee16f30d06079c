package account

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/auth/jwt"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/errors"
	"github.com/biduedson/reservas-api/logger"
	"github.com/biduedson/reservas-api/observability"
	"github.com/biduedson/reservas-api/validation"
)

// Registration field names and rules.
const (
	FieldName     = "Nome"
	FieldEmail    = "Email"
	FieldPassword = "Senha"

	MinPasswordLength = 6

	ReasonAlreadyRegistered = "already_registered"
)

// ErrInvalidCredentials is returned for an unknown email, an inactive account
// and a wrong password alike. It is shared; never modify it.
var ErrInvalidCredentials error = errors.InvalidCredentials()

// timingProbe is hashed at construction so unknown emails cost one verify.
const timingProbe = "reservas-api/timing-probe"

// Service runs the account use cases.
type Service struct {
	repo    Repository
	hashers *password.Registry
	codec   *jwt.Codec
	log     *logger.Logger
	metrics *observability.AuthMetrics

	dummyDigest    string
	dummyAlgorithm password.Algorithm
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the instruments for login outcomes and registrations.
func WithMetrics(m *observability.AuthMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service.
func NewService(repo Repository, hashers *password.Registry, codec *jwt.Codec, opts ...Option) (*Service, error) {
	s := &Service{
		repo:    repo,
		hashers: hashers,
		codec:   codec,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("account")

	digest, alg, err := hashers.Hash(timingProbe)
	if err != nil {
		return nil, errors.Unknown(err)
	}
	s.dummyDigest, s.dummyAlgorithm = digest, alg
	return s, nil
}

// Authenticate checks email and password and issues a bearer token.
// Any credential mismatch returns ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, pw string) (_ *Session, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAuthenticate)
	defer func() {
		s.metrics.RecordLogin(ctx, loginOutcome(err))
		observability.EndSpan(span, err)
	}()

	a, err := s.repo.FindByEmail(ctx, auth.NormalizeEmail(email))
	switch {
	case stderrors.Is(err, ErrNotFound):
		s.hashers.Verify(s.dummyAlgorithm, pw, s.dummyDigest)
		return nil, ErrInvalidCredentials
	case err != nil:
		s.log.WithContext(ctx).Error("Account lookup failed", logger.ErrorFields("authenticate", err))
		return nil, errors.Unknown(err)
	}

	matched := s.hashers.Verify(a.Algorithm, pw, a.PasswordDigest)
	if !matched || !a.Active {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(a.ID, a.Email, a.Role())
	if err != nil {
		s.log.WithContext(ctx).Error("Token issue failed", logger.ErrorFields("authenticate", err))
		return nil, errors.Wrap(err)
	}

	span.SetAttributes(
		attribute.String(observability.AttrAccountID, a.ID.String()),
		attribute.String(observability.AttrRole, a.Role()),
	)
	s.log.WithContext(ctx).Debug("Account authenticated", logger.Fields("account_id", a.ID.String()))
	return &Session{Name: a.Name, Email: a.Email, Token: token, ExpiresAt: expiresAt}, nil
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case err == ErrInvalidCredentials:
		return observability.OutcomeInvalidCredentials
	default:
		return observability.OutcomeError
	}
}

// Register validates in and creates a regular, active account.
func (s *Service) Register(ctx context.Context, in RegisterInput) (_ *View, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanRegister)
	defer func() { observability.EndSpan(span, err) }()

	a, err := s.create(ctx, in, false)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRegistration(ctx)
	s.log.WithContext(ctx).Info("Account registered", logger.Fields("account_id", a.ID.String()))

	v := a.View()
	return &v, nil
}

func (s *Service) create(ctx context.Context, in RegisterInput, admin bool) (*Account, error) {
	name := strings.TrimSpace(in.Name)
	email := auth.NormalizeEmail(in.Email)

	v := validation.New().
		Required(FieldName, name).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, in.Password).
		MinLength(FieldPassword, in.Password, MinPasswordLength).
		MaxBytes(FieldPassword, in.Password, s.hashers.MaxPasswordBytes())

	if email != "" && !v.HasErrors() {
		exists, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, errors.Unknown(err)
		}
		v.Custom(!exists, FieldEmail, ReasonAlreadyRegistered)
	}
	if v.HasErrors() {
		return nil, v.Validate()
	}

	digest, alg, err := s.hashers.Hash(in.Password)
	if err != nil {
		return nil, errors.Unknown(err)
	}

	a := &Account{
		Name:           name,
		Email:          email,
		PasswordDigest: digest,
		Algorithm:      alg,
		Active:         true,
		Admin:          admin,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if stderrors.Is(err, ErrEmailTaken) {
			return nil, errors.ValidationFailed(errors.FieldError{Field: FieldEmail, Reason: ReasonAlreadyRegistered})
		}
		return nil, errors.Unknown(err)
	}
	return a, nil
}

// Profile returns the account behind an authenticated subject. A subject
// that no longer exists is reported as a malformed token.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (_ *View, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanProfile,
		trace.WithAttributes(attribute.String(observability.AttrAccountID, id.String())))
	defer func() { observability.EndSpan(span, err) }()

	a, err := s.repo.FindByID(ctx, id)
	switch {
	case stderrors.Is(err, ErrNotFound):
		return nil, errors.TokenMalformed("token subject does not exist")
	case err != nil:
		return nil, errors.Unknown(err)
	}
	v := a.View()
	return &v, nil
}

// List returns a page of accounts.
func (s *Service) List(ctx context.Context, offset, limit int) (_ []View, err error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanListAccounts)
	defer func() { observability.EndSpan(span, err) }()

	if offset < 0 {
		offset = 0
	}
	accounts, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, errors.Unknown(err)
	}
	out := make([]View, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].View())
	}
	return out, nil
}

// EnsureAdmin creates the configured administrator unless its email is
// already registered. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, seed *auth.SeedAdminConfig) (bool, error) {
	if !seed.Enabled() {
		return false, nil
	}
	exists, err := s.repo.ExistsByEmail(ctx, auth.NormalizeEmail(seed.Email))
	if err != nil {
		return false, errors.Unknown(err)
	}
	if exists {
		return false, nil
	}

	a, err := s.create(ctx, RegisterInput{Name: seed.Name, Email: seed.Email, Password: seed.Password}, true)
	if err != nil {
		// Lost a race with another instance.
		if appErr, ok := errors.AsAppError(err); ok && appErr.Code == errors.ErrCodeValidationFailed &&
			len(appErr.Fields) == 1 && appErr.Fields[0].Reason == ReasonAlreadyRegistered {
			return false, nil
		}
		return false, err
	}
	s.log.WithContext(ctx).Info("Administrator account seeded", logger.Fields("account_id", a.ID.String()))
	return true, nil
}
