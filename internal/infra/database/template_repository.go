package database

import (
	"context"
	"database/sql"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

type TemplateRepository struct {
	DB *sql.DB
}

func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) FindAll(ctx context.Context) ([]entity.MessageTemplate, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, content FROM message_templates ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []entity.MessageTemplate
	for rows.Next() {
		var t entity.MessageTemplate
		if err := rows.Scan(&t.ID, &t.Title, &t.Content); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error) {
	var t entity.MessageTemplate
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, content FROM message_templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Create(ctx context.Context, t *entity.MessageTemplate) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO message_templates (id, title, content) VALUES ($1, $2, $3)`,
		t.ID, t.Title, t.Content)
	return err
}

func (r *TemplateRepository) Update(ctx context.Context, t *entity.MessageTemplate) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE message_templates SET title = $2, content = $3 WHERE id = $1`,
		t.ID, t.Title, t.Content)
	return err
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM message_templates WHERE id = $1`, id)
	return err
}
