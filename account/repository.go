package account

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = stderrors.New("account not found")
	// ErrEmailTaken is returned by Create when the email is already registered.
	ErrEmailTaken = stderrors.New("email already registered")
)

// Repository persists accounts. Emails are passed already normalized.
// Any error other than ErrNotFound and ErrEmailTaken is an I/O failure.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, a *Account) error
	List(ctx context.Context, offset, limit int) ([]Account, error)
}
