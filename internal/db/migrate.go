package db

import (
	"context"
	"database/sql"
)

// The unique index on LOWER(email) backs the one-credential-per-email
// invariant even if a caller slips past normalization.
const credentialsMigration = `
CREATE TABLE IF NOT EXISTS credentials (
    id uuid PRIMARY KEY,
    user_id uuid NOT NULL,
    email text NOT NULL,
    password_hash text NOT NULL,
    status text NOT NULL DEFAULT 'ACTIVE',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS credentials_email_lower_unique
ON credentials (LOWER(email));
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, credentialsMigration)
	return err
}
