package database

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id               TEXT PRIMARY KEY,
	cnpj             TEXT NOT NULL DEFAULT '',
	status_cnpj      TEXT NOT NULL DEFAULT 'INVALID',
	razao_social     TEXT NOT NULL DEFAULT '',
	nome_contato     TEXT NOT NULL DEFAULT '',
	telefone         TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	cidade           TEXT NOT NULL DEFAULT '',
	uf               TEXT NOT NULL DEFAULT '',
	cep              TEXT NOT NULL DEFAULT '',
	instagram        TEXT NOT NULL DEFAULT '',
	categoria        TEXT NOT NULL DEFAULT '',
	data_submissao   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	utm_source       TEXT NOT NULL DEFAULT '',
	utm_medium       TEXT NOT NULL DEFAULT '',
	utm_campaign     TEXT NOT NULL DEFAULT '',
	utm_content      TEXT NOT NULL DEFAULT '',
	utm_term         TEXT NOT NULL DEFAULT '',
	utm_id           TEXT NOT NULL DEFAULT '',
	registry_data    JSONB,
	salesperson      TEXT NOT NULL DEFAULT '',
	original_owner   TEXT NOT NULL DEFAULT '',
	transfer_pending BOOLEAN NOT NULL DEFAULT FALSE,
	deal_status      TEXT NOT NULL DEFAULT 'PENDING',
	won_at           TIMESTAMPTZ,
	won_value        NUMERIC NOT NULL DEFAULT 0,
	lost_at          TIMESTAMPTZ,
	lost_reason      TEXT NOT NULL DEFAULT '',
	message_sent_at  TIMESTAMPTZ,
	last_template    TEXT NOT NULL DEFAULT '',
	message_history  JSONB NOT NULL DEFAULT '[]',
	notes            JSONB NOT NULL DEFAULT '[]',
	attachments      JSONB NOT NULL DEFAULT '[]',
	change_log       JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS salespeople (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	email      TEXT NOT NULL DEFAULT '',
	photo_url  TEXT NOT NULL DEFAULT '',
	role       TEXT NOT NULL DEFAULT 'SALES',
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS message_templates (
	id      TEXT PRIMARY KEY,
	title   TEXT NOT NULL,
	content TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

INSERT INTO app_state (key, value) VALUES ('assignment_cursor', '0')
ON CONFLICT (key) DO NOTHING;
`

// Migrate cria o schema se ainda não existir.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
