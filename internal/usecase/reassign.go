package usecase

import (
	"context"
	"fmt"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// TeamService cuida do time e da realocação de leads órfãos.
// Opera direto sobre o conjunto commitado, independente do sync.
type TeamService struct {
	Leads LeadRepositoryInterface
	Team  SalespersonRepositoryInterface
	Now   Clock
}

func NewTeamService(leads LeadRepositoryInterface, team SalespersonRepositoryInterface, now Clock) *TeamService {
	return &TeamService{Leads: leads, Team: team, Now: now}
}

// RemoveSalesperson desativa o vendedor e transfere todos os leads dele
// para a conta da casa, marcados como pendentes de redistribuição.
// Recusa remover o último admin ativo — invariante estrutural.
// Devolve quantos leads ficaram órfãos.
func (t *TeamService) RemoveSalesperson(ctx context.Context, name string) (int, error) {
	team, err := t.Team.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	targetIdx := -1
	activeAdmins := 0
	for i := range team {
		if !team[i].Active {
			continue
		}
		if team[i].Role == entity.RoleAdmin {
			activeAdmins++
		}
		if team[i].Name == name {
			targetIdx = i
		}
	}
	if targetIdx == -1 {
		return 0, ErrSalespersonNotFound
	}
	if team[targetIdx].Role == entity.RoleAdmin && activeAdmins <= 1 {
		return 0, ErrLastAdmin
	}

	leads, err := t.Leads.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	now := t.Now()
	var changed []entity.Lead
	for i := range leads {
		if leads[i].Salesperson != name {
			continue
		}
		leads[i].OriginalOwner = name
		leads[i].Salesperson = FallbackHolder
		leads[i].TransferPending = true
		leads[i].AppendChange(now, "AUTO_TRANSFER",
			fmt.Sprintf("transferido automaticamente de %s para %s (vendedor removido)", name, FallbackHolder))
		changed = append(changed, leads[i])
	}

	if len(changed) > 0 {
		if err := t.Leads.UpdateMany(ctx, changed); err != nil {
			return 0, err
		}
	}

	if err := t.Team.Deactivate(ctx, team[targetIdx].ID); err != nil {
		return 0, err
	}

	return len(changed), nil
}

// RedistributePending espalha os leads pendentes entre os vendedores
// ativos. O cursor aqui é local à operação — redistribuição em massa não
// participa do rodízio contínuo do sync.
func (t *TeamService) RedistributePending(ctx context.Context) (int, error) {
	team, err := t.Team.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	pool := ActiveSalesPool(team)
	if len(pool) == 0 {
		return 0, ErrEmptySalesPool
	}

	leads, err := t.Leads.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	now := t.Now()
	cursor := 0
	var changed []entity.Lead
	for i := range leads {
		if !leads[i].TransferPending {
			continue
		}
		former := leads[i].Salesperson
		assignee := pool[cursor%len(pool)]
		cursor++

		leads[i].Salesperson = assignee
		leads[i].TransferPending = false
		leads[i].AppendChange(now, "REDISTRIBUTE",
			fmt.Sprintf("redistribuído de %s para %s", former, assignee))
		changed = append(changed, leads[i])
	}

	if len(changed) == 0 {
		return 0, nil
	}
	if err := t.Leads.UpdateMany(ctx, changed); err != nil {
		return 0, err
	}
	return len(changed), nil
}
