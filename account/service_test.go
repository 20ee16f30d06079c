package account

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/auth/jwt"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/errors"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testSalt   = "chave-adicional"
)

type fixture struct {
	store     *MemoryStore
	hashers   *password.Registry
	validator *jwt.Validator
	svc       *Service
}

func newFixture(t *testing.T, repo Repository) *fixture {
	t.Helper()

	hashers, err := password.NewRegistry(password.Config{Salt: testSalt})
	require.NoError(t, err)

	jwtCfg := jwt.Config{Secret: testSecret}
	codec, err := jwt.NewCodec(jwtCfg)
	require.NoError(t, err)
	validator, err := jwt.NewValidator(jwtCfg)
	require.NoError(t, err)

	store, _ := repo.(*MemoryStore)
	if repo == nil {
		store = NewMemoryStore()
		repo = store
	}

	svc, err := NewService(repo, hashers, codec)
	require.NoError(t, err)
	return &fixture{store: store, hashers: hashers, validator: validator, svc: svc}
}

func (f *fixture) register(t *testing.T, name, email, pw string) *View {
	t.Helper()
	v, err := f.svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: pw})
	require.NoError(t, err)
	return v
}

func TestAuthenticate_IssuesToken(t *testing.T) {
	f := newFixture(t, nil)
	registered := f.register(t, "Maria", "maria@example.com", "senha123")

	session, err := f.svc.Authenticate(context.Background(), "  Maria@Example.COM ", "senha123")
	require.NoError(t, err)

	assert.Equal(t, "Maria", session.Name)
	assert.Equal(t, "maria@example.com", session.Email)
	assert.NotEmpty(t, session.Token)

	claims, err := f.validator.Validate(session.Token)
	require.NoError(t, err)
	id, ok := claims.SubjectID()
	require.True(t, ok)
	assert.Equal(t, registered.ID, id)
	assert.Equal(t, auth.RoleUser, claims.Role)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.True(t, session.ExpiresAt.Equal(claims.ExpiresAt.Time))
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "Maria", "maria@example.com", "senha123")

	_, wrongPassword := f.svc.Authenticate(context.Background(), "maria@example.com", "errada1")
	_, unknownEmail := f.svc.Authenticate(context.Background(), "ninguem@example.com", "senha123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, wrongPassword == unknownEmail, "errors must be the same value")
	assert.True(t, wrongPassword == ErrInvalidCredentials)
	assert.True(t, errors.Is(wrongPassword, errors.ErrCodeInvalidCredentials))

	status, resp := errors.Classify(unknownEmail)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid email or password", resp.Message)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	f := newFixture(t, nil)
	digest, alg, err := f.hashers.Hash("senha123")
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), &Account{
		Name: "Inativo", Email: "inativo@example.com",
		PasswordDigest: digest, Algorithm: alg, Active: false,
	}))

	_, err = f.svc.Authenticate(context.Background(), "inativo@example.com", "senha123")
	assert.True(t, err == ErrInvalidCredentials)
}

func TestAuthenticate_LegacyDigestWithoutTag(t *testing.T) {
	f := newFixture(t, nil)
	sha, err := password.NewSaltedSHA512(testSalt)
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), &Account{
		Name: "Legado", Email: "legado@example.com",
		PasswordDigest: sha.Digest("senha123"), Active: true,
	}))

	_, err = f.svc.Authenticate(context.Background(), "legado@example.com", "senha123")
	assert.NoError(t, err)
}

func TestAuthenticate_AdminRole(t *testing.T) {
	f := newFixture(t, nil)
	created, err := f.svc.EnsureAdmin(context.Background(), &auth.SeedAdminConfig{
		Name: "Administrador", Email: "admin@example.com", Password: "admin123",
	})
	require.NoError(t, err)
	require.True(t, created)

	session, err := f.svc.Authenticate(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	claims, err := f.validator.Validate(session.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
}

type failingRepo struct {
	Repository
	err error
}

func (r failingRepo) FindByEmail(context.Context, string) (*Account, error) { return nil, r.err }
func (r failingRepo) FindByID(context.Context, uuid.UUID) (*Account, error) { return nil, r.err }
func (r failingRepo) ExistsByEmail(context.Context, string) (bool, error)  { return false, r.err }
func (r failingRepo) List(context.Context, int, int) ([]Account, error)    { return nil, r.err }

func TestService_RepositoryFailuresAreUnknown(t *testing.T) {
	ioErr := stderrors.New("connection reset by peer")
	f := newFixture(t, failingRepo{err: ioErr})
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "maria@example.com", "senha123")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknown))
	assert.ErrorIs(t, err, ioErr)

	_, err = f.svc.Register(ctx, RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "senha123"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnknown))

	_, err = f.svc.Profile(ctx, uuid.New())
	assert.True(t, errors.Is(err, errors.ErrCodeUnknown))

	_, err = f.svc.List(ctx, 0, 10)
	assert.True(t, errors.Is(err, errors.ErrCodeUnknown))

	status, _ := errors.Classify(err)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		input  RegisterInput
		fields []errors.FieldError
	}{
		{
			name:  "all missing",
			input: RegisterInput{},
			fields: []errors.FieldError{
				{Field: FieldName, Reason: "required"},
				{Field: FieldEmail, Reason: "required"},
				{Field: FieldPassword, Reason: "required"},
			},
		},
		{
			name:   "blank name",
			input:  RegisterInput{Name: "   ", Email: "a@example.com", Password: "senha123"},
			fields: []errors.FieldError{{Field: FieldName, Reason: "required"}},
		},
		{
			name:   "bad email",
			input:  RegisterInput{Name: "Ana", Email: "not-an-email", Password: "senha123"},
			fields: []errors.FieldError{{Field: FieldEmail, Reason: "email"}},
		},
		{
			name:   "short password",
			input:  RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "12345"},
			fields: []errors.FieldError{{Field: FieldPassword, Reason: "min=6"}},
		},
		{
			name:   "already registered",
			input:  RegisterInput{Name: "Outra", Email: "MARIA@example.com", Password: "senha123"},
			fields: []errors.FieldError{{Field: FieldEmail, Reason: ReasonAlreadyRegistered}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.register(t, "Maria", "maria@example.com", "senha123")

			_, err := f.svc.Register(context.Background(), tt.input)
			appErr, ok := errors.AsAppError(err)
			require.True(t, ok, "expected AppError, got %v", err)
			assert.Equal(t, errors.ErrCodeValidationFailed, appErr.Code)
			assert.Equal(t, tt.fields, appErr.Fields)
		})
	}
}

func TestRegister_ClassifiesRequiredName(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "senha123"})

	status, resp := errors.Classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation failed", resp.Message)
	assert.Equal(t, []errors.FieldError{{Field: "Nome", Reason: "required"}}, resp.Fields)
}

func TestRegister_BcryptPasswordTooLong(t *testing.T) {
	hashers, err := password.NewRegistry(password.Config{
		Salt:       testSalt,
		Algorithm:  password.AlgorithmBcrypt,
		BcryptCost: 4,
	})
	require.NoError(t, err)
	codec, err := jwt.NewCodec(jwt.Config{Secret: testSecret})
	require.NoError(t, err)
	svc, err := NewService(NewMemoryStore(), hashers, codec)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: strings.Repeat("a", password.BcryptMaxBytes+1),
	})
	status, resp := errors.Classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []errors.FieldError{{Field: FieldPassword, Reason: "max=72"}}, resp.Fields)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: strings.Repeat("a", password.BcryptMaxBytes),
	})
	assert.NoError(t, err)
}

func TestRegister_PersistsNormalizedRegularAccount(t *testing.T) {
	f := newFixture(t, nil)
	v := f.register(t, "  Joao ", " Joao@Example.com", "senha123")

	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, "Joao", v.Name)
	assert.Equal(t, "joao@example.com", v.Email)
	assert.True(t, v.Active)
	assert.False(t, v.Admin)
	assert.Equal(t, auth.RoleUser, v.Role)

	stored, err := f.store.FindByEmail(context.Background(), "joao@example.com")
	require.NoError(t, err)
	assert.Equal(t, password.AlgorithmSaltedSHA512, stored.Algorithm)
	assert.NotEqual(t, "senha123", stored.PasswordDigest)
}

func TestRegister_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t, nil)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Register(context.Background(),
				RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "senha123"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, errors.ErrCodeValidationFailed), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
}

func TestProfile(t *testing.T) {
	f := newFixture(t, nil)
	registered := f.register(t, "Maria", "maria@example.com", "senha123")

	got, err := f.svc.Profile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, got.Email)

	_, err = f.svc.Profile(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, errors.ErrCodeTokenMalformed))
	status, resp := errors.Classify(err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "token invalid or missing", resp.Message)
}

func TestList(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "A", "a@example.com", "senha123")
	f.register(t, "B", "b@example.com", "senha123")
	f.register(t, "C", "c@example.com", "senha123")

	all, err := f.svc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a@example.com", all[0].Email)

	page, err := f.svc.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b@example.com", page[0].Email)

	empty, err := f.svc.List(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	seed := &auth.SeedAdminConfig{Name: "Administrador", Email: "Admin@Example.com", Password: "admin123"}

	created, err := f.svc.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.EnsureAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)

	created, err = f.svc.EnsureAdmin(ctx, nil)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := f.store.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Admin)
	assert.Equal(t, auth.RoleAdmin, stored.Role())
}
