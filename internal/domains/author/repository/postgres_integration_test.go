package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
)

const tempAuthorTable = `
    CREATE TEMP TABLE author (
        authorId              BYTEA        NOT NULL CHECK (octet_length(authorId) = 16),
        authorAvatarUrl       VARCHAR(255),
        authorActivationToken CHAR(32),
        authorEmail           VARCHAR(128) NOT NULL,
        authorHash            CHAR(97)     NOT NULL,
        authorUsername        VARCHAR(32)  NOT NULL,
        CONSTRAINT author_pkey PRIMARY KEY (authorId),
        CONSTRAINT author_email_key UNIQUE (authorEmail),
        CONSTRAINT author_username_key UNIQUE (authorUsername)
    ) ON COMMIT DROP
`

// withTempAuthorTable runs fn inside a transaction that owns a private author
// table. Nothing survives the rollback.
func withTempAuthorTable(t *testing.T, fn func(ctx context.Context, tx pgx.Tx)) {
	t.Helper()

	url := os.Getenv("AUTHOR_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("AUTHOR_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, tempAuthorTable)
	require.NoError(t, err)

	fn(ctx, tx)
}

func TestPostgres_Integration(t *testing.T) {
	withTempAuthorTable(t, func(ctx context.Context, tx pgx.Tx) {
		repo := NewPostgresRepository(zerolog.Nop())

		empty, err := repo.FindAll(ctx, tx)
		require.NoError(t, err)
		assert.Empty(t, empty)

		inserted := newTestAuthor(t)
		require.NoError(t, repo.Insert(ctx, tx, inserted))

		found, ok, err := repo.FindByID(ctx, tx, testID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, inserted, found)

		dup, err := model.New(uuid.NewString(), "", nil, testEmail, testHash, "other")
		require.NoError(t, err)
		_, err = tx.Exec(ctx, "SAVEPOINT dup")
		require.NoError(t, err)
		err = repo.Insert(ctx, tx, dup)
		assert.ErrorIs(t, err, model.ErrDuplicateEmail)
		_, err = tx.Exec(ctx, "ROLLBACK TO SAVEPOINT dup")
		require.NoError(t, err)

		require.NoError(t, found.SetActivationToken(nil))
		require.NoError(t, found.SetEmail("updated@example.com"))
		require.NoError(t, repo.Update(ctx, tx, found))

		reloaded, ok, err := repo.FindByID(ctx, tx, testID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Nil(t, reloaded.ActivationToken())
		assert.Equal(t, "updated@example.com", reloaded.Email())

		all, err := repo.FindAll(ctx, tx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, repo.Delete(ctx, tx, found))
		_, ok, err = repo.FindByID(ctx, tx, testID)
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting or updating a missing row is not an error.
		assert.NoError(t, repo.Delete(ctx, tx, found))
		assert.NoError(t, repo.Update(ctx, tx, found))
	})
}
