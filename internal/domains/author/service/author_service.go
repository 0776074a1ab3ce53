package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/MarshaBat/object-oriented/internal/domains/author/model"
	"github.com/MarshaBat/object-oriented/internal/domains/author/repository"
	"github.com/MarshaBat/object-oriented/pkg/database"
)

// authorService implements ServiceInterface
type authorService struct {
	db     DB
	repo   repository.RepositoryInterface
	hasher PasswordHasher
	logger zerolog.Logger
	opts   []model.Option
}

// NewAuthorService creates a new author service instance. opts are applied to
// every author the service constructs.
func NewAuthorService(
	db DB,
	repo repository.RepositoryInterface,
	hasher PasswordHasher,
	logger zerolog.Logger,
	opts ...model.Option,
) ServiceInterface {
	return &authorService{
		db:     db,
		repo:   repo,
		hasher: hasher,
		logger: logger.With().Str("service", "author").Logger(),
		opts:   opts,
	}
}

func (s *authorService) Register(ctx context.Context, req *RegisterRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate author id: %w", err)
	}

	token, err := newActivationToken()
	if err != nil {
		return nil, err
	}

	a, err := model.New(id, req.AvatarURL, &token, req.Email, hash, req.Username, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}

	err = database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return s.repo.Insert(ctx, tx, a)
	})
	if err != nil {
		return nil, s.failed("register", err)
	}

	s.logger.Info().Object("author", a).Msg("author registered")
	return a, nil
}

func (s *authorService) Activate(ctx context.Context, id, token string) (*model.Author, error) {
	token = strings.ToLower(strings.TrimSpace(token))

	a, err := database.WithTransactionResult(ctx, s.db, func(tx pgx.Tx) (*model.Author, error) {
		a, err := s.mustFind(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		pending := a.ActivationToken()
		if pending == nil {
			return nil, model.ErrAlreadyActivated
		}
		if subtle.ConstantTimeCompare([]byte(*pending), []byte(token)) != 1 {
			return nil, model.ErrActivationMismatch
		}

		if err := a.SetActivationToken(nil); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, tx, a); err != nil {
			return nil, err
		}
		return a, nil
	})
	if err != nil {
		return nil, s.failed("activate", err)
	}

	s.logger.Info().Str("author_id", a.ID().String()).Msg("author activated")
	return a, nil
}

func (s *authorService) ChangePassword(ctx context.Context, id, current, next string) error {
	if err := validation.Validate(next, passwordRules...); err != nil {
		return fmt.Errorf("%w: new password: %w", model.ErrInvalidRequest, err)
	}

	err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		a, err := s.mustFind(ctx, tx, id)
		if err != nil {
			return err
		}

		if !s.hasher.Verify(current, a.CredentialHash()) {
			return model.ErrInvalidCredentials
		}

		hash, err := s.hasher.Hash(next)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if err := a.SetCredentialHash(hash); err != nil {
			return err
		}
		return s.repo.Update(ctx, tx, a)
	})
	if err != nil {
		return s.failed("change_password", err)
	}

	s.logger.Info().Str("author_id", id).Msg("author password changed")
	return nil
}

func (s *authorService) Get(ctx context.Context, id string) (*model.Author, error) {
	return s.mustFind(ctx, s.db, id)
}

func (s *authorService) List(ctx context.Context) ([]*model.Author, error) {
	return s.repo.FindAll(ctx, s.db)
}

func (s *authorService) Remove(ctx context.Context, id string) error {
	err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		a, err := s.mustFind(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, a)
	})
	if err != nil {
		return s.failed("remove", err)
	}

	s.logger.Info().Str("author_id", id).Msg("author removed")
	return nil
}

// mustFind turns the repository's "not found" result into ErrAuthorNotFound
func (s *authorService) mustFind(ctx context.Context, db repository.DBTX, id string) (*model.Author, error) {
	a, found, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrAuthorNotFound
	}
	return a, nil
}

// failed logs err with its stable code and returns it unchanged
func (s *authorService) failed(op string, err error) error {
	s.logger.Warn().Err(err).Str("op", op).Str("code", model.ToErrorCode(err)).Msg("author operation failed")
	return err
}

func newActivationToken() (string, error) {
	buf := make([]byte, model.ActivationTokenLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate activation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
