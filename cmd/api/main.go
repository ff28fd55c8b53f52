package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/cache"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/database"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/handlers"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/middleware"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/integration/aistudio"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/integration/brasilapi"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/integration/sheets"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/mail"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/queue"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/worker"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("❌ Falha ao migrar o schema: %v", err)
	}

	// RabbitMQ é opcional: sem fila o sync funciona, só não enriquece CNPJ.
	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível, enriquecimento desligado: %v", err)
		rabbitMQ = nil
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	teamRepo := database.NewSalespersonRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	stateRepo := database.NewAppStateRepository(db)

	// 2. Gateways e Adapters
	var kvCache queue.RegistryCache = cache.Noop{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		kvCache = cache.NewRedisKV(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
		}))
	}

	source := buildLeadSource()
	registryClient := brasilapi.NewClient(os.Getenv("BRASILAPI_URL"))
	aiClient := aistudio.NewClient(os.Getenv("AI_STUDIO_API_KEY"), os.Getenv("AI_STUDIO_URL"))
	// SMTP também é opcional: sem MAIL_HOST o sync não tenta discar
	var mailSender usecase.EmailService
	if host := os.Getenv("MAIL_HOST"); host != "" {
		mailSender = mail.NewEmailSender(host, 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"))
	} else {
		log.Println("⚠️ MAIL_HOST ausente, digest por email desligado")
	}

	var producer usecase.QueueProducerInterface
	if rabbitMQ != nil {
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// 3. Worker de enriquecimento (consome a fila e chama a BrasilAPI)
		enrichWorker := queue.NewWorker(rabbitMQ.Ch, registryClient, leadRepo, kvCache)
		go enrichWorker.Start(queue.QueueName)
	}

	// 4. Services
	syncService := usecase.NewSyncService(source, leadRepo, teamRepo, producer, mailSender, time.Now)
	teamService := usecase.NewTeamService(leadRepo, teamRepo, time.Now)
	leadService := usecase.NewLeadService(leadRepo, time.Now)

	// Base vazia: roda um ciclo inicial para não subir com painel em branco
	if count, err := leadRepo.Count(context.Background()); err == nil && count == 0 {
		go func() {
			log.Println("📥 Base vazia, disparando sync inicial")
			syncService.RunSync(context.Background())
		}()
	}

	syncWorker := worker.NewSyncWorker(syncService, syncInterval())
	go syncWorker.Start(context.Background())

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, leadService)
	syncHandler := handlers.NewSyncHandler(syncService)
	teamHandler := handlers.NewTeamHandler(teamRepo, teamService)
	templateHandler := handlers.NewTemplateHandler(templateRepo, aiClient)
	insightsHandler := handlers.NewInsightsHandler(aiClient, leadRepo, stateRepo, time.Now)

	healthHandler := newHealth(db, rabbitMQ)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/leads", leadHandler.HandleList)
	r.Patch("/leads/{id}/deal", leadHandler.HandleSetDealStatus)
	r.Put("/leads/{id}/contact", leadHandler.HandleEditContact)
	r.Post("/leads/{id}/notes", leadHandler.HandleAddNote)
	r.Post("/leads/{id}/messages", leadHandler.HandleRecordMessage)

	r.Post("/sync", syncHandler.HandleRun)
	r.Get("/sync/status", syncHandler.HandleStatus)

	r.Get("/team", teamHandler.HandleList)
	r.Post("/team", teamHandler.HandleCreate)
	r.Delete("/team/{name}", teamHandler.HandleRemove)
	r.Post("/team/redistribute", teamHandler.HandleRedistribute)

	r.Get("/templates", templateHandler.HandleList)
	r.Post("/templates", templateHandler.HandleCreate)
	r.Post("/templates/draft", templateHandler.HandleDraft)
	r.Put("/templates/{id}", templateHandler.HandleUpdate)
	r.Delete("/templates/{id}", templateHandler.HandleDelete)

	r.Get("/insights", insightsHandler.HandleGet)
	r.Post("/insights/refresh", insightsHandler.HandleRefresh)
	r.Post("/insights/quick", insightsHandler.HandleQuickAnalysis)

	port := ":" + getenv("PORT", "8080")
	log.Printf("🔥 Server Holy Foods CRM rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func buildLeadSource() usecase.LeadSource {
	tabValid := getenv("TAB_VALID", "CNPJ Valido")
	tabInvalid := getenv("TAB_INVALID", "CNPJ Invalido")

	if path := os.Getenv("LEADS_XLSX_PATH"); path != "" {
		log.Printf("📄 Fonte de leads: arquivo XLSX %s", path)
		return sheets.NewXLSXSource(path, tabValid, tabInvalid, time.Now)
	}

	return sheets.NewClient(os.Getenv("SHEET_ID"), tabValid, tabInvalid, time.Now)
}

func syncInterval() time.Duration {
	minutes, err := strconv.Atoi(getenv("SYNC_INTERVAL_MINUTES", "10"))
	if err != nil || minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

func newHealth(db *sql.DB, mq *queue.RabbitMQ) *handlers.HealthHandler {
	if mq == nil {
		return handlers.NewHealthHandler(db, nil)
	}
	return handlers.NewHealthHandler(db, mq.Conn)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
