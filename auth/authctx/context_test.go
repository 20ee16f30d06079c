package authctx

import (
	"context"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/auth/jwt"
	"github.com/biduedson/reservas-api/errors"
)

func TestGet_TypedClaims(t *testing.T) {
	claims := &jwt.Claims{Email: "a@b.com", Role: "UsuarioComun"}
	ctx := Set(context.Background(), claims)

	got, ok := Get[*jwt.Claims](ctx)
	if !ok || got != claims {
		t.Fatalf("Get() = %v, %v", got, ok)
	}
	if _, ok := Get[string](ctx); ok {
		t.Error("Get[string] should fail on a claims value")
	}
}

func TestGetOrError_Missing(t *testing.T) {
	_, err := GetOrError[*jwt.Claims](context.Background())
	if !errors.Is(err, errors.ErrCodeTokenMalformed) {
		t.Errorf("expected TOKEN_MALFORMED, got %v", err)
	}
}

func TestSubjectID(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		ctx     context.Context
		want    uuid.UUID
		wantErr bool
	}{
		{"no claims", context.Background(), uuid.Nil, true},
		{"valid subject", Set(context.Background(), &jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{Subject: id.String()},
		}), id, false},
		{"non uuid subject", Set(context.Background(), &jwt.Claims{
			RegisteredClaims: gojwt.RegisteredClaims{Subject: "42"},
		}), uuid.Nil, true},
		{"empty subject", Set(context.Background(), &jwt.Claims{}), uuid.Nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubjectID(tt.ctx)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeTokenMalformed) {
					t.Errorf("expected TOKEN_MALFORMED, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("SubjectID() = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}
