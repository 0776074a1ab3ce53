package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
)

// DBTX is the caller-owned connection every operation runs on. *pgxpool.Pool,
// *pgx.Conn and pgx.Tx all satisfy it; the repository never opens or closes one.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryInterface defines data access for the author table
type RepositoryInterface interface {
	// Insert writes all six fields as a new row.
	// Errors: *model.StoreError, wrapping model.ErrDuplicateEmail or
	// model.ErrDuplicateUsername on unique violations
	Insert(ctx context.Context, db DBTX, a *model.Author) error

	// Update rewrites the five mutable fields of the row with a's id.
	// A missing row is not an error.
	Update(ctx context.Context, db DBTX, a *model.Author) error

	// Delete removes the row with a's id. A missing row is not an error.
	Delete(ctx context.Context, db DBTX, a *model.Author) error

	// FindByID returns found=false, and no error, when no row matches.
	// Errors: model.ErrInvalidIdentifier before any query, *model.StoreError
	FindByID(ctx context.Context, db DBTX, id string) (*model.Author, bool, error)

	// FindByUUID is FindByID for an already parsed identifier.
	// Errors: model.ErrInvalidIdentifier for uuid.Nil, *model.StoreError
	FindByUUID(ctx context.Context, db DBTX, id uuid.UUID) (*model.Author, bool, error)

	// FindAll returns every row in store order. A row that no longer
	// validates aborts the scan with a *model.StoreError.
	FindAll(ctx context.Context, db DBTX) ([]*model.Author, error)
}
