package store

import (
	"context"
	"database/sql"
	"errors"
)

const (
	schemaSQL = `CREATE TABLE IF NOT EXISTS tracker_documents (
	key TEXT PRIMARY KEY,
	value JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectSQL = `SELECT value FROM tracker_documents WHERE key=$1`
	upsertSQL = `INSERT INTO tracker_documents(key, value, updated_at) VALUES($1,$2,now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// Postgres guarda os documentos numa tabela chave/valor JSONB
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// EnsureSchema cria a tabela se ainda não existir
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schemaSQL)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx, selectSQL, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// PutAll faz upsert de todos os documentos numa única transação
func (p *Postgres) PutAll(ctx context.Context, docs []Document) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, d := range docs {
		if _, err = tx.ExecContext(ctx, upsertSQL, d.Key, string(d.Value)); err != nil {
			return err
		}
	}

	return tx.Commit()
}
