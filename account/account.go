package account

import (
	"time"

	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/database"
)

// Account is a persisted user. PasswordDigest and Algorithm are written once.
type Account struct {
	database.BaseModel
	Name           string             `gorm:"size:255;not null"`
	Email          string             `gorm:"size:255;not null;uniqueIndex:idx_accounts_email"`
	PasswordDigest string             `gorm:"size:255;not null"`
	Algorithm      password.Algorithm `gorm:"size:32;not null"`
	Active         bool               `gorm:"not null"`
	Admin          bool               `gorm:"not null"`
}

// TableName returns the table name for gorm.
func (Account) TableName() string { return "accounts" }

// Role returns the role carried in issued tokens.
func (a *Account) Role() string { return auth.RoleFor(a.Admin) }

// View returns the client-facing projection of a.
func (a *Account) View() View {
	return View{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Active:    a.Active,
		Admin:     a.Admin,
		Role:      a.Role(),
		CreatedAt: a.CreatedAt,
	}
}

// View is an account without its credential digest.
type View struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Active    bool      `json:"ativo"`
	Admin     bool      `json:"administrador"`
	Role      string    `json:"perfil"`
	CreatedAt time.Time `json:"dataCriacao"`
}

// Session is the result of a successful authentication.
type Session struct {
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiraEm"`
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}
