package apikey

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository định nghĩa data access cho bảng api_key
type Repository interface {
	// Create insert key mới. Returns ErrAPIKeyExists nếu email đã có key
	Create(ctx context.Context, key *ApiKey) error

	// FindByEmail returns ErrAPIKeyNotFound khi email chưa có key
	FindByEmail(ctx context.Context, email string) (*ApiKey, error)

	// IncrementUsage tăng requests_count thêm 1 và trả về row sau khi update.
	// Returns ErrAPIKeyInvalid nếu key không tồn tại
	IncrementUsage(ctx context.Context, key string) (*ApiKey, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, key *ApiKey) error {
	query := `
		INSERT INTO api_key (email, api_key)
		VALUES ($1, $2)
		RETURNING id_api, requests_count, created_at
	`
	err := r.pool.QueryRow(ctx, query, key.Email, key.Key).
		Scan(&key.ID, &key.RequestsCount, &key.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrAPIKeyExists
		}
		return fmt.Errorf("failed to insert api key: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*ApiKey, error) {
	query := `
		SELECT id_api, email, api_key, requests_count, created_at
		FROM api_key
		WHERE email = $1
	`
	var k ApiKey
	err := r.pool.QueryRow(ctx, query, email).
		Scan(&k.ID, &k.Email, &k.Key, &k.RequestsCount, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("failed to find api key: %w", err)
	}
	return &k, nil
}

// IncrementUsage: lookup + increment trong một statement
func (r *postgresRepository) IncrementUsage(ctx context.Context, key string) (*ApiKey, error) {
	query := `
		UPDATE api_key
		SET requests_count = requests_count + 1
		WHERE api_key = $1
		RETURNING id_api, email, api_key, requests_count, created_at
	`
	var k ApiKey
	err := r.pool.QueryRow(ctx, query, key).
		Scan(&k.ID, &k.Email, &k.Key, &k.RequestsCount, &k.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAPIKeyInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment api key usage: %w", err)
	}
	return &k, nil
}
