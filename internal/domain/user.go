package domain

import (
	"context"
	"time"
)

// User represents a registered user. Banned and VerifiedOrganizer are
// one-way flags: this core models no unban or unverify.
// swagger:model User
type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Banned            bool      `json:"banned"`
	VerifiedOrganizer bool      `json:"verifiedOrganizer"`
	IsAdmin           bool      `json:"isAdmin"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, params PaginationParams) ([]*User, int, error)
	SetBanned(ctx context.Context, id string) (*User, error)
	SetVerifiedOrganizer(ctx context.Context, id string) (*User, error)
}

// UserService defines the business logic for accounts and moderation of users.
type UserService interface {
	SignUp(ctx context.Context, email, password, name, phone string) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, callerID string, params PaginationParams) ([]*User, int, error)
	BanUser(ctx context.Context, userID, callerID string) (*User, error)
	VerifyOrganizer(ctx context.Context, userID, callerID string) (*User, error)
}
