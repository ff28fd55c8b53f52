package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, cnpj, status_cnpj, razao_social, nome_contato, telefone, email,
	cidade, uf, cep, instagram, categoria, data_submissao,
	utm_source, utm_medium, utm_campaign, utm_content, utm_term, utm_id,
	registry_data, salesperson, original_owner, transfer_pending,
	deal_status, won_at, won_value, lost_at, lost_reason,
	message_sent_at, last_template, message_history, notes, attachments, change_log`

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY data_submissao, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads`).Scan(&n)
	return n, err
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return execUpsertLead(ctx, r.DB, lead)
}

func (r *LeadRepository) UpdateMany(ctx context.Context, leads []entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range leads {
		if err := execUpsertLead(ctx, tx, &leads[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceAll troca o conjunto de leads inteiro e grava o cursor na mesma
// transação: ou o commit do ciclo de sync entra completo, ou não entra.
func (r *LeadRepository) ReplaceAll(ctx context.Context, leads []entity.Lead, cursor int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
		return err
	}
	for i := range leads {
		if err := execUpsertLead(ctx, tx, &leads[i]); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES ('assignment_cursor', $1)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		strconv.Itoa(cursor)); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LeadRepository) Cursor(ctx context.Context) (int, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = 'assignment_cursor'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}

// SetRegistryData grava só o payload de enriquecimento — usado pelo
// worker da fila sem mexer no resto do lead.
func (r *LeadRepository) SetRegistryData(ctx context.Context, leadID string, data *entity.RegistryData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET registry_data = $2 WHERE id = $1`, leadID, raw)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("lead %s não encontrado", leadID)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execUpsertLead(ctx context.Context, db execer, lead *entity.Lead) error {
	registry, err := marshalOrNil(lead.RegistryData)
	if err != nil {
		return err
	}
	history, err := marshalList(lead.MessageHistory)
	if err != nil {
		return err
	}
	notes, err := marshalList(lead.Notes)
	if err != nil {
		return err
	}
	attachments, err := marshalList(lead.Attachments)
	if err != nil {
		return err
	}
	changeLog, err := marshalList(lead.ChangeLog)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24,
		        $25, $26, $27, $28, $29, $30, $31, $32, $33, $34)
		ON CONFLICT (id) DO UPDATE SET
			cnpj = EXCLUDED.cnpj,
			status_cnpj = EXCLUDED.status_cnpj,
			razao_social = EXCLUDED.razao_social,
			nome_contato = EXCLUDED.nome_contato,
			telefone = EXCLUDED.telefone,
			email = EXCLUDED.email,
			cidade = EXCLUDED.cidade,
			uf = EXCLUDED.uf,
			cep = EXCLUDED.cep,
			instagram = EXCLUDED.instagram,
			categoria = EXCLUDED.categoria,
			data_submissao = EXCLUDED.data_submissao,
			utm_source = EXCLUDED.utm_source,
			utm_medium = EXCLUDED.utm_medium,
			utm_campaign = EXCLUDED.utm_campaign,
			utm_content = EXCLUDED.utm_content,
			utm_term = EXCLUDED.utm_term,
			utm_id = EXCLUDED.utm_id,
			registry_data = EXCLUDED.registry_data,
			salesperson = EXCLUDED.salesperson,
			original_owner = EXCLUDED.original_owner,
			transfer_pending = EXCLUDED.transfer_pending,
			deal_status = EXCLUDED.deal_status,
			won_at = EXCLUDED.won_at,
			won_value = EXCLUDED.won_value,
			lost_at = EXCLUDED.lost_at,
			lost_reason = EXCLUDED.lost_reason,
			message_sent_at = EXCLUDED.message_sent_at,
			last_template = EXCLUDED.last_template,
			message_history = EXCLUDED.message_history,
			notes = EXCLUDED.notes,
			attachments = EXCLUDED.attachments,
			change_log = EXCLUDED.change_log`,
		lead.ID, lead.CNPJ, string(lead.StatusCNPJ), lead.RazaoSocial,
		lead.NomeContato, lead.Telefone, lead.Email, lead.Cidade, lead.UF,
		lead.CEP, lead.Instagram, lead.Categoria, lead.DataSubmissao,
		lead.UTMSource, lead.UTMMedium, lead.UTMCampaign, lead.UTMContent,
		lead.UTMTerm, lead.UTMID, registry, lead.Salesperson,
		lead.OriginalOwner, lead.TransferPending, string(lead.DealStatus),
		nullTime(lead.WonAt), lead.WonValue, nullTime(lead.LostAt),
		lead.LostReason, nullTime(lead.MessageSentAt), lead.LastTemplateTitle,
		history, notes, attachments, changeLog,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead        entity.Lead
		statusCNPJ  string
		dealStatus  string
		registry    []byte
		wonAt       sql.NullTime
		lostAt      sql.NullTime
		messageSent sql.NullTime
		history     []byte
		notes       []byte
		attachments []byte
		changeLog   []byte
	)

	err := row.Scan(
		&lead.ID, &lead.CNPJ, &statusCNPJ, &lead.RazaoSocial,
		&lead.NomeContato, &lead.Telefone, &lead.Email, &lead.Cidade,
		&lead.UF, &lead.CEP, &lead.Instagram, &lead.Categoria,
		&lead.DataSubmissao, &lead.UTMSource, &lead.UTMMedium,
		&lead.UTMCampaign, &lead.UTMContent, &lead.UTMTerm, &lead.UTMID,
		&registry, &lead.Salesperson, &lead.OriginalOwner,
		&lead.TransferPending, &dealStatus, &wonAt, &lead.WonValue,
		&lostAt, &lead.LostReason, &messageSent, &lead.LastTemplateTitle,
		&history, &notes, &attachments, &changeLog,
	)
	if err != nil {
		return nil, err
	}

	lead.StatusCNPJ = entity.CnpjStatus(statusCNPJ)
	lead.DealStatus = entity.DealStatus(dealStatus)
	lead.WonAt = timePtr(wonAt)
	lead.LostAt = timePtr(lostAt)
	lead.MessageSentAt = timePtr(messageSent)

	if len(registry) > 0 {
		var data entity.RegistryData
		if err := json.Unmarshal(registry, &data); err != nil {
			return nil, err
		}
		lead.RegistryData = &data
	}
	if err := unmarshalList(history, &lead.MessageHistory); err != nil {
		return nil, err
	}
	if err := unmarshalList(notes, &lead.Notes); err != nil {
		return nil, err
	}
	if err := unmarshalList(attachments, &lead.Attachments); err != nil {
		return nil, err
	}
	if err := unmarshalList(changeLog, &lead.ChangeLog); err != nil {
		return nil, err
	}

	return &lead, nil
}

func marshalOrNil(v *entity.RegistryData) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func marshalList[T any](list []T) ([]byte, error) {
	if list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(list)
}

func unmarshalList[T any](raw []byte, dst *[]T) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
