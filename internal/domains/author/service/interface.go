package service

import (
	"context"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
	"github.com/MarshaBat/object-oriented/internal/domains/author/repository"
	"github.com/MarshaBat/object-oriented/pkg/database"
)

// ServiceInterface defines the account flows built on top of the author entity
type ServiceInterface interface {
	// Register creates a pending author with a fresh id and activation token.
	// Errors: model.ErrInvalidRequest, *model.StoreError (duplicate email/username)
	Register(ctx context.Context, req *RegisterRequest) (*model.Author, error)

	// Activate clears the activation token when token matches it.
	// Errors: model.ErrAuthorNotFound, model.ErrAlreadyActivated, model.ErrActivationMismatch
	Activate(ctx context.Context, id, token string) (*model.Author, error)

	// ChangePassword replaces the credential hash after checking current.
	// Errors: model.ErrAuthorNotFound, model.ErrInvalidCredentials, model.ErrInvalidRequest
	ChangePassword(ctx context.Context, id, current, next string) error

	Get(ctx context.Context, id string) (*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)

	// Remove deletes the author.
	// Errors: model.ErrAuthorNotFound
	Remove(ctx context.Context, id string) error
}

// PasswordHasher turns plaintext passwords into credential hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// DB is a pool that can both run statements and open transactions.
// *pgxpool.Pool satisfies it.
type DB interface {
	repository.DBTX
	database.Beginner
}
