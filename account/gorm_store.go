package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/database"
)

// GormStore is a Repository backed by the accounts table.
type GormStore struct {
	db *database.DB
}

var _ Repository = (*GormStore)(nil)

// NewGormStore creates a store on db.
func NewGormStore(db *database.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if database.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return &a, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var a Account
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if database.IsNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &a, nil
}

func (s *GormStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Account{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count accounts by email: %w", err)
	}
	return n > 0, nil
}

func (s *GormStore) Create(ctx context.Context, a *Account) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if database.IsDuplicateError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// List returns accounts ordered by creation time.
func (s *GormStore) List(ctx context.Context, offset, limit int) ([]Account, error) {
	q := s.db.WithContext(ctx).Order("created_at ASC").Order("email ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []Account
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}
