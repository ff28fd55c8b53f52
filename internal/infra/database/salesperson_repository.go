package database

import (
	"context"
	"database/sql"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

type SalespersonRepository struct {
	DB *sql.DB
}

func NewSalespersonRepository(db *sql.DB) *SalespersonRepository {
	return &SalespersonRepository{DB: db}
}

func (r *SalespersonRepository) FindAll(ctx context.Context) ([]entity.Salesperson, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, photo_url, role, active, created_at
		FROM salespeople
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var team []entity.Salesperson
	for rows.Next() {
		var s entity.Salesperson
		var role string
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PhotoURL, &role, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Role = entity.SalespersonRole(role)
		team = append(team, s)
	}
	return team, rows.Err()
}

func (r *SalespersonRepository) FindByName(ctx context.Context, name string) (*entity.Salesperson, error) {
	var s entity.Salesperson
	var role string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, photo_url, role, active, created_at
		FROM salespeople WHERE name = $1`, name).
		Scan(&s.ID, &s.Name, &s.Email, &s.PhotoURL, &role, &s.Active, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.Role = entity.SalespersonRole(role)
	return &s, nil
}

func (r *SalespersonRepository) Create(ctx context.Context, s *entity.Salesperson) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO salespeople (id, name, email, photo_url, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Email, s.PhotoURL, string(s.Role), s.Active, s.CreatedAt)
	return err
}

func (r *SalespersonRepository) Update(ctx context.Context, s *entity.Salesperson) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE salespeople
		SET name = $2, email = $3, photo_url = $4, role = $5, active = $6
		WHERE id = $1`,
		s.ID, s.Name, s.Email, s.PhotoURL, string(s.Role), s.Active)
	return err
}

// Deactivate: remoção lógica — o nome continua resolvível no histórico.
func (r *SalespersonRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE salespeople SET active = FALSE WHERE id = $1`, id)
	return err
}
