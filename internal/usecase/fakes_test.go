package usecase

import (
	"context"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/queue"
)

// Fakes em memória: o sync é stateful demais para mock de chamada a
// chamada — aqui os testes assertam direto no estado final do store.

type fakeLeadRepo struct {
	leads        []entity.Lead
	cursor       int
	replaceCalls int

	failFindAll error
	failReplace error
}

func (f *fakeLeadRepo) FindAll(ctx context.Context) ([]entity.Lead, error) {
	if f.failFindAll != nil {
		return nil, f.failFindAll
	}
	out := make([]entity.Lead, len(f.leads))
	copy(out, f.leads)
	return out, nil
}

func (f *fakeLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	for i := range f.leads {
		if f.leads[i].ID == id {
			lead := f.leads[i]
			return &lead, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) Count(ctx context.Context) (int, error) {
	return len(f.leads), nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, lead *entity.Lead) error {
	for i := range f.leads {
		if f.leads[i].ID == lead.ID {
			f.leads[i] = *lead
			return nil
		}
	}
	return ErrLeadNotFound
}

func (f *fakeLeadRepo) UpdateMany(ctx context.Context, leads []entity.Lead) error {
	for _, lead := range leads {
		if err := f.Update(ctx, &lead); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLeadRepo) ReplaceAll(ctx context.Context, leads []entity.Lead, cursor int) error {
	if f.failReplace != nil {
		return f.failReplace
	}
	f.replaceCalls++
	f.leads = make([]entity.Lead, len(leads))
	copy(f.leads, leads)
	f.cursor = cursor
	return nil
}

func (f *fakeLeadRepo) Cursor(ctx context.Context) (int, error) {
	return f.cursor, nil
}

type fakeTeamRepo struct {
	team []entity.Salesperson
}

func (f *fakeTeamRepo) FindAll(ctx context.Context) ([]entity.Salesperson, error) {
	out := make([]entity.Salesperson, len(f.team))
	copy(out, f.team)
	return out, nil
}

func (f *fakeTeamRepo) FindByName(ctx context.Context, name string) (*entity.Salesperson, error) {
	for i := range f.team {
		if f.team[i].Name == name {
			s := f.team[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) Create(ctx context.Context, s *entity.Salesperson) error {
	f.team = append(f.team, *s)
	return nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, s *entity.Salesperson) error {
	for i := range f.team {
		if f.team[i].ID == s.ID {
			f.team[i] = *s
			return nil
		}
	}
	return ErrSalespersonNotFound
}

func (f *fakeTeamRepo) Deactivate(ctx context.Context, id string) error {
	for i := range f.team {
		if f.team[i].ID == id {
			f.team[i].Active = false
			return nil
		}
	}
	return ErrSalespersonNotFound
}

// fakeSource devolve um lote fixo. O canal `hold`, quando setado, segura
// o fetch até o teste liberar — simula um ciclo em voo.
type fakeSource struct {
	batch   []entity.Lead
	err     error
	hold    chan struct{}
	started chan struct{}
}

func (f *fakeSource) FetchBatch(ctx context.Context) ([]entity.Lead, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.hold != nil {
		<-f.hold
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

type fakeProducer struct {
	published []queue.EnrichmentPayload
}

func (f *fakeProducer) PublishEnrichment(ctx context.Context, payload queue.EnrichmentPayload) error {
	f.published = append(f.published, payload)
	return nil
}

type fakeMailer struct {
	sent map[string]int
}

func (f *fakeMailer) SendAssignmentDigest(to, name string, newLeads int) error {
	if f.sent == nil {
		f.sent = make(map[string]int)
	}
	f.sent[to] = newLeads
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func salesTeam() []entity.Salesperson {
	return []entity.Salesperson{
		{ID: "sp-1", Name: "Leandro", Email: "leandro@holyfoods.com.br", Role: entity.RoleAdmin, Active: true},
		{ID: "sp-2", Name: "Maria", Email: "maria@holyfoods.com.br", Role: entity.RoleSales, Active: true},
		{ID: "sp-3", Name: "João", Email: "joao@holyfoods.com.br", Role: entity.RoleSales, Active: true},
	}
}
