package usecase

import (
	"context"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/queue"
)

// LeadSource abstrai a leitura da planilha. Devolve []  (não erro) quando
// a fonte legitimamente não tem linhas.
type LeadSource interface {
	FetchBatch(ctx context.Context) ([]entity.Lead, error)
}

type LeadRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entity.Lead, error)
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, lead *entity.Lead) error
	UpdateMany(ctx context.Context, leads []entity.Lead) error

	// ReplaceAll troca o conjunto inteiro e grava o cursor de atribuição
	// na MESMA transação — commit parcial nunca fica visível.
	ReplaceAll(ctx context.Context, leads []entity.Lead, cursor int) error
	Cursor(ctx context.Context) (int, error)
}

type SalespersonRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entity.Salesperson, error)
	FindByName(ctx context.Context, name string) (*entity.Salesperson, error)
	Create(ctx context.Context, s *entity.Salesperson) error
	Update(ctx context.Context, s *entity.Salesperson) error
	Deactivate(ctx context.Context, id string) error
}

type TemplateRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entity.MessageTemplate, error)
	FindByID(ctx context.Context, id string) (*entity.MessageTemplate, error)
	Create(ctx context.Context, t *entity.MessageTemplate) error
	Update(ctx context.Context, t *entity.MessageTemplate) error
	Delete(ctx context.Context, id string) error
}

// AppStateRepositoryInterface: chave/valor durável para estado avulso
// (insights de IA em cache, data da última geração).
type AppStateRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type QueueProducerInterface interface {
	PublishEnrichment(ctx context.Context, payload queue.EnrichmentPayload) error
}

type EmailService interface {
	SendAssignmentDigest(to, name string, newLeads int) error
}

// Clock injetável — os testes controlam o tempo.
type Clock func() time.Time
