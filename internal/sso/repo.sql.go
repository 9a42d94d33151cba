package sso

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SecretRepository reads department HMAC secrets from PostgreSQL.
type SecretRepository struct {
	pool *pgxpool.Pool
}

// NewSecretRepository constructs a SecretRepository.
func NewSecretRepository(pool *pgxpool.Pool) *SecretRepository {
	return &SecretRepository{pool: pool}
}

// ActiveSecret returns the most recently created active secret for the
// department code.
func (r *SecretRepository) ActiveSecret(ctx context.Context, department string) (DepartmentSecret, error) {
	var secret DepartmentSecret
	err := r.pool.QueryRow(ctx, `SELECT id, department, secret_key, is_active, created_at
FROM department_secrets WHERE department = $1 AND is_active ORDER BY created_at DESC LIMIT 1`, department).
		Scan(&secret.ID, &secret.Department, &secret.Key, &secret.IsActive, &secret.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DepartmentSecret{}, ErrSecretNotFound
		}
		return DepartmentSecret{}, err
	}
	return secret, nil
}
