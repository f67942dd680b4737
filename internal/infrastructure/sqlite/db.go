// Package sqlite implementa el almacenamiento de cuentas sobre SQLite (motor por defecto).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

const driverName = "vetcare_sqlite3"

// MemoryPath abre una base en memoria (tests).
const MemoryPath = ":memory:"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec(`
				PRAGMA busy_timeout = 5000;
				PRAGMA journal_mode = WAL;
				PRAGMA synchronous  = NORMAL;
				PRAGMA foreign_keys = ON;
			`, nil)
			return err
		},
	})
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id                       TEXT PRIMARY KEY,
	name                     TEXT NOT NULL,
	cpf                      TEXT NOT NULL UNIQUE,
	type                     TEXT NOT NULL CHECK (type IN ('Tutor','Veterinário')),
	email                    TEXT NOT NULL,
	phone                    TEXT NOT NULL,
	address                  TEXT,
	password_hash            TEXT NOT NULL,
	role                     TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin','user')),
	crmv                     TEXT,
	clinic_address           TEXT,
	professional_id_doc_path TEXT,
	diploma_doc_path         TEXT,
	created_at               TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email);
`

// Open abre (o crea) la base en path y aplica el esquema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	if path == MemoryPath {
		// cada conexión nueva sería otra base vacía
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}
	return db, nil
}

// isUniqueViolation verifica si err es una violación de UNIQUE.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
