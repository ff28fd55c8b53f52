package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/queue"
)

type SyncState string

const (
	SyncIdle       SyncState = "IDLE"
	SyncFetching   SyncState = "FETCHING"
	SyncMerging    SyncState = "MERGING"
	SyncCommitting SyncState = "COMMITTING"
	SyncFailed     SyncState = "FAILED"
)

// SyncService orquestra o ciclo de sincronização com a planilha:
// fetch → merge sequencial → atribuição → commit atômico.
// O timer periódico e o disparo manual passam pelo MESMO RunSync e
// dividem a mesma trava — dois ciclos nunca commitam sobre snapshots
// defasados um do outro.
type SyncService struct {
	Source   LeadSource
	Leads    LeadRepositoryInterface
	Team     SalespersonRepositoryInterface
	Producer QueueProducerInterface
	Mailer   EmailService
	Now      Clock

	mu      sync.Mutex // trava de ciclo em voo
	stateMu sync.RWMutex
	state   SyncState
}

func NewSyncService(
	source LeadSource,
	leads LeadRepositoryInterface,
	team SalespersonRepositoryInterface,
	producer QueueProducerInterface,
	mailer EmailService,
	now Clock,
) *SyncService {
	return &SyncService{
		Source:   source,
		Leads:    leads,
		Team:     team,
		Producer: producer,
		Mailer:   mailer,
		Now:      now,
		state:    SyncIdle,
	}
}

func (s *SyncService) State() SyncState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *SyncService) setState(st SyncState) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// RunSync executa um ciclo completo. Um ciclo em andamento derruba o
// disparo seguinte (Ok=false, sem tocar no estado) em vez de enfileirar.
func (s *SyncService) RunSync(ctx context.Context) SyncOutcome {
	if !s.mu.TryLock() {
		return SyncOutcome{Ok: false, Message: "sync já em andamento"}
	}
	defer s.mu.Unlock()
	defer s.setState(SyncIdle)

	s.setState(SyncFetching)
	batch, err := s.Source.FetchBatch(ctx)
	if err != nil {
		s.setState(SyncFailed)
		log.Printf("❌ [SYNC] Falha no fetch da planilha: %v", err)
		return SyncOutcome{Ok: false, Message: fmt.Sprintf("falha ao buscar planilha: %v", err)}
	}

	// Resposta vazia é indistinguível de planilha mal configurada:
	// nunca tratar como "apagaram tudo".
	if len(batch) == 0 {
		return SyncOutcome{Ok: true, NewCount: 0, Message: "planilha sem linhas, nada a fazer"}
	}

	working, err := s.Leads.FindAll(ctx)
	if err != nil {
		s.setState(SyncFailed)
		return SyncOutcome{Ok: false, Message: fmt.Sprintf("falha ao carregar leads: %v", err)}
	}
	cursor, err := s.Leads.Cursor(ctx)
	if err != nil {
		s.setState(SyncFailed)
		return SyncOutcome{Ok: false, Message: fmt.Sprintf("falha ao carregar cursor: %v", err)}
	}
	team, err := s.Team.FindAll(ctx)
	if err != nil {
		s.setState(SyncFailed)
		return SyncOutcome{Ok: false, Message: fmt.Sprintf("falha ao carregar time: %v", err)}
	}

	s.setState(SyncMerging)
	var created []entity.Lead
	mergedCount := 0

	// Merge sequencial contra a cópia de trabalho que o próprio ciclo vai
	// mutando: duas linhas do mesmo lote que casam com o mesmo lead caem
	// no registro já mergeado, não criam duplicata.
	for _, raw := range batch {
		decision := Merge(raw, working)
		if decision.Kind == MergeMatched {
			working[decision.MatchIndex] = *decision.Merged
			mergedCount++
			continue
		}

		pool := PoolFor(raw.StatusCNPJ, team)
		assignee, next := AssignNext(pool, cursor)
		cursor = next

		lead := raw
		lead.ID = uuid.New().String()
		lead.Salesperson = assignee
		if lead.DealStatus == "" {
			lead.DealStatus = entity.DealPending
		}
		lead.AppendChange(s.Now(), "SYNC_CREATE",
			fmt.Sprintf("lead criado via sync e atribuído a %s", assignee))

		working = append(working, lead)
		created = append(created, lead)
	}

	s.setState(SyncCommitting)
	if err := s.Leads.ReplaceAll(ctx, working, cursor); err != nil {
		s.setState(SyncFailed)
		log.Printf("❌ [SYNC] Falha no commit: %v", err)
		return SyncOutcome{Ok: false, Message: fmt.Sprintf("falha ao gravar leads: %v", err)}
	}

	// Efeitos pós-commit: melhor esforço, nunca derrubam o ciclo
	s.publishEnrichment(ctx, created)
	s.sendDigests(team, created)

	log.Printf("✅ [SYNC] Ciclo concluído: %d novos, %d atualizados", len(created), mergedCount)
	return SyncOutcome{Ok: true, NewCount: len(created), Merged: mergedCount}
}

func (s *SyncService) publishEnrichment(ctx context.Context, created []entity.Lead) {
	if s.Producer == nil {
		return
	}
	for _, lead := range created {
		if lead.StatusCNPJ != entity.CnpjValid {
			continue
		}
		payload := queue.EnrichmentPayload{LeadID: lead.ID, CNPJ: NormalizeCNPJ(lead.CNPJ)}
		if err := s.Producer.PublishEnrichment(ctx, payload); err != nil {
			log.Printf("⚠️ [SYNC] Falha ao publicar enriquecimento do lead %s: %v", lead.ID, err)
		}
	}
}

func (s *SyncService) sendDigests(team []entity.Salesperson, created []entity.Lead) {
	if s.Mailer == nil || len(created) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, lead := range created {
		counts[lead.Salesperson]++
	}

	for _, member := range team {
		n := counts[member.Name]
		if n == 0 || !member.Active || member.Email == "" {
			continue
		}
		if err := s.Mailer.SendAssignmentDigest(member.Email, member.Name, n); err != nil {
			log.Printf("⚠️ [SYNC] Falha ao enviar digest para %s: %v", member.Name, err)
		}
	}
}
