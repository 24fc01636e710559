package credentials

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// PostgresStore implements Store on the credentials table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (Credential, error) {
	email = strings.ToLower(email)

	var cred Credential
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, email, password_hash, status, created_at, updated_at
		FROM credentials
		WHERE email = $1
	`, email).Scan(
		&cred.ID,
		&cred.UserID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.Status,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return Credential{}, ErrNotFound
	}
	if err != nil {
		return Credential{}, err
	}

	return cred, nil
}

func (s *PostgresStore) Save(ctx context.Context, cred Credential) (Credential, error) {
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	if cred.Status == "" {
		cred.Status = StatusActive
	}
	cred.Email = strings.ToLower(cred.Email)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO credentials (id, user_id, email, password_hash, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`,
		cred.ID,
		cred.UserID,
		cred.Email,
		cred.PasswordHash,
		cred.Status,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return Credential{}, ErrDuplicateEmail
		}
		return Credential{}, err
	}

	cred.CreatedAt = cred.CreatedAt.UTC()
	cred.UpdatedAt = cred.UpdatedAt.UTC()
	return cred, nil
}
