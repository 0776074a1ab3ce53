package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
)

const (
	insertAuthorQuery = `
        INSERT INTO author (authorId, authorAvatarUrl, authorActivationToken, authorEmail, authorHash, authorUsername)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	updateAuthorQuery = `
        UPDATE author
        SET
            authorAvatarUrl = $2,
            authorActivationToken = $3,
            authorEmail = $4,
            authorHash = $5,
            authorUsername = $6
        WHERE authorId = $1
    `

	deleteAuthorQuery = `DELETE FROM author WHERE authorId = $1`

	selectAuthorByIDQuery = `
        SELECT authorId, authorAvatarUrl, authorActivationToken, authorEmail, authorHash, authorUsername
        FROM author
        WHERE authorId = $1
    `

	selectAuthorsQuery = `
        SELECT authorId, authorAvatarUrl, authorActivationToken, authorEmail, authorHash, authorUsername
        FROM author
    `
)

const uniqueViolation = "23505"

// postgresRepository implements RepositoryInterface for PostgreSQL.
// It holds no connection: every call runs on the DBTX it is given.
type postgresRepository struct {
	logger zerolog.Logger
	opts   []model.Option
}

// NewPostgresRepository creates a new author repository. opts are applied to
// every author reconstructed from a row.
func NewPostgresRepository(logger zerolog.Logger, opts ...model.Option) RepositoryInterface {
	return &postgresRepository{
		logger: logger.With().Str("repository", "author").Logger(),
		opts:   opts,
	}
}

// authorRow mirrors the columns of the author table
type authorRow struct {
	ID              []byte
	AvatarURL       pgtype.Text
	ActivationToken pgtype.Text
	Email           string
	Hash            string
	Username        string
}

func (r *postgresRepository) Insert(ctx context.Context, db DBTX, a *model.Author) error {
	if _, err := db.Exec(ctx, insertAuthorQuery, authorArgs(a)...); err != nil {
		return storeError("insert", err)
	}

	r.logger.Debug().Object("author", a).Msg("author inserted")
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, db DBTX, a *model.Author) error {
	tag, err := db.Exec(ctx, updateAuthorQuery, authorArgs(a)...)
	if err != nil {
		return storeError("update", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("author_id", a.ID().String()).Msg("update matched no author")
		return nil
	}

	r.logger.Debug().Object("author", a).Msg("author updated")
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, db DBTX, a *model.Author) error {
	id := a.ID()
	tag, err := db.Exec(ctx, deleteAuthorQuery, id[:])
	if err != nil {
		return storeError("delete", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().Str("author_id", id.String()).Msg("delete matched no author")
		return nil
	}

	r.logger.Debug().Str("author_id", id.String()).Msg("author deleted")
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, db DBTX, id string) (*model.Author, bool, error) {
	parsed, err := model.ParseID(id)
	if err != nil {
		return nil, false, err
	}
	return r.findByID(ctx, db, parsed)
}

func (r *postgresRepository) FindByUUID(ctx context.Context, db DBTX, id uuid.UUID) (*model.Author, bool, error) {
	parsed, err := model.ParseID(id)
	if err != nil {
		return nil, false, err
	}
	return r.findByID(ctx, db, parsed)
}

func (r *postgresRepository) findByID(ctx context.Context, db DBTX, parsed uuid.UUID) (*model.Author, bool, error) {
	row, err := scanAuthorRow(db.QueryRow(ctx, selectAuthorByIDQuery, parsed[:]))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, storeError("findById", err)
	}

	a, err := r.toModel(row)
	if err != nil {
		return nil, false, storeError("findById", err)
	}

	return a, true, nil
}

func (r *postgresRepository) FindAll(ctx context.Context, db DBTX) ([]*model.Author, error) {
	rows, err := db.Query(ctx, selectAuthorsQuery)
	if err != nil {
		return nil, storeError("findAll", err)
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Author, error) {
		scanned, err := scanAuthorRow(row)
		if err != nil {
			return nil, err
		}
		return r.toModel(scanned)
	})
	if err != nil {
		return nil, storeError("findAll", err)
	}

	if authors == nil {
		authors = []*model.Author{}
	}

	r.logger.Debug().Int("count", len(authors)).Msg("authors listed")
	return authors, nil
}

func scanAuthorRow(row pgx.Row) (*authorRow, error) {
	var ar authorRow
	err := row.Scan(
		&ar.ID,
		&ar.AvatarURL,
		&ar.ActivationToken,
		&ar.Email,
		&ar.Hash,
		&ar.Username,
	)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

func (r *postgresRepository) toModel(row *authorRow) (*model.Author, error) {
	var token *string
	if row.ActivationToken.Valid {
		token = &row.ActivationToken.String
	}

	a, err := model.New(row.ID, row.AvatarURL.String, token, row.Email, row.Hash, row.Username, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("row does not validate: %w", err)
	}
	return a, nil
}

// authorArgs binds the columns in table order; the id is bound as its raw 16 bytes.
func authorArgs(a *model.Author) []any {
	id := a.ID()

	var token pgtype.Text
	if t := a.ActivationToken(); t != nil {
		token = pgtype.Text{String: *t, Valid: true}
	}

	return []any{
		id[:],
		pgtype.Text{String: a.AvatarURL(), Valid: a.AvatarURL() != ""},
		token,
		a.Email(),
		a.CredentialHash(),
		a.Username(),
	}
}

// storeError wraps err as a *model.StoreError, tagging unique violations
// with the domain error for the offending column.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		constraint := strings.ToLower(pgErr.ConstraintName + " " + pgErr.Message)
		switch {
		case strings.Contains(constraint, "email"):
			err = fmt.Errorf("%w: %w", model.ErrDuplicateEmail, err)
		case strings.Contains(constraint, "username"):
			err = fmt.Errorf("%w: %w", model.ErrDuplicateUsername, err)
		}
	}
	return &model.StoreError{Op: op, Err: err}
}
