package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// execer lo cumplen *pgxpool.Pool, *pgx.Conn y pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id                       UUID PRIMARY KEY,
	name                     VARCHAR(100) NOT NULL,
	cpf                      CHAR(14) NOT NULL,
	type                     TEXT NOT NULL CHECK (type IN ('Tutor','Veterinário')),
	email                    VARCHAR(256) NOT NULL,
	phone                    VARCHAR(20) NOT NULL,
	address                  TEXT,
	password_hash            TEXT NOT NULL,
	role                     TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin','user')),
	crmv                     TEXT,
	clinic_address           TEXT,
	professional_id_doc_path TEXT,
	diploma_doc_path         TEXT,
	created_at               TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT accounts_cpf_key UNIQUE (cpf)
);
CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts (email);
`

// EnsureSchema crea la tabla accounts si no existe. Las migraciones formales quedan fuera de este servicio.
func EnsureSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, accountsSchema); err != nil {
		return fmt.Errorf("aplicar esquema accounts: %w", err)
	}
	return nil
}
