package worker

import (
	"context"
	"log"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/middleware"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

// SyncWorker dispara o ciclo de sync no intervalo configurado. O disparo
// manual (HTTP) e este timer passam pelo mesmo RunSync, que serializa.
type SyncWorker struct {
	sync         *usecase.SyncService
	tickInterval time.Duration
}

func NewSyncWorker(syncService *usecase.SyncService, tickInterval time.Duration) *SyncWorker {
	if tickInterval <= 0 {
		tickInterval = 10 * time.Minute
	}
	return &SyncWorker{
		sync:         syncService,
		tickInterval: tickInterval,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	log.Printf("🕒 Sync Worker iniciado (intervalo %s)", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Sync Worker encerrado")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	outcome := w.sync.RunSync(ctx)
	middleware.RecordSyncCycle(outcome.Ok)
	if !outcome.Ok {
		log.Printf("⚠️ [WORKER] Sync falhou: %s", outcome.Message)
		return
	}
	middleware.RecordLeadsSynced(outcome.NewCount, outcome.Merged)
}
