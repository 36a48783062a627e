// Package tokenstore persists the access/refresh token pair between runs.
// It plays the part browser local storage plays for a web client: two
// opaque strings under fixed keys, cleared together.
package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/foodlink/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/foodlink/internal/common"
	"github.com/dmitrijs2005/foodlink/internal/dbx"
)

const (
	AccessTokenKey  = "token"
	RefreshTokenKey = "refresh"
)

// Store is shared by the session manager and the HTTP client's refresh
// middleware. Absent tokens are reported as "" with a nil error.
type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Save(ctx context.Context, access, refresh string) error
	SetAccessToken(ctx context.Context, access string) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps tokens in the metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo(s.db).Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) AccessToken(ctx context.Context) (string, error) {
	return s.get(ctx, AccessTokenKey)
}

func (s *SQLiteStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, RefreshTokenKey)
}

// Save writes both tokens in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, AccessTokenKey, access); err != nil {
			return err
		}
		return repo.Set(ctx, RefreshTokenKey, refresh)
	})
}

func (s *SQLiteStore) SetAccessToken(ctx context.Context, access string) error {
	return s.repo(s.db).Set(ctx, AccessTokenKey, access)
}

// Clear removes both tokens. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repo(tx).Delete(ctx, AccessTokenKey, RefreshTokenKey)
	})
}
