package database

import (
	"context"
	"database/sql"
)

// AppStateRepository: chave/valor durável (insights em cache, metadados).
// O cursor de atribuição também mora na tabela app_state, mas só o
// LeadRepository escreve nele — dentro da transação do ReplaceAll.
type AppStateRepository struct {
	DB *sql.DB
}

func NewAppStateRepository(db *sql.DB) *AppStateRepository {
	return &AppStateRepository{DB: db}
}

func (r *AppStateRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *AppStateRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}
