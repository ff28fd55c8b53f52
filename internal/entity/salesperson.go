package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type SalespersonRole string

const (
	RoleAdmin SalespersonRole = "ADMIN"
	RoleSales SalespersonRole = "SALES"
)

// Entidade: Salesperson
// A remoção é lógica (Active = false): o histórico de posse dos leads
// referencia o nome, então o registro nunca é apagado fisicamente.
type Salesperson struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	PhotoURL  string          `json:"photo_url,omitempty"`
	Role      SalespersonRole `json:"role"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// Factory
func NewSalesperson(name, email, photoURL string, role SalespersonRole) (*Salesperson, error) {
	s := &Salesperson{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		PhotoURL:  photoURL,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Salesperson) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Role != RoleAdmin && s.Role != RoleSales {
		return errors.New("role must be ADMIN or SALES")
	}
	return nil
}
