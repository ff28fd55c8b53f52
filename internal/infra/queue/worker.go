package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// RegistryClient define o contrato da consulta cadastral (BrasilAPI).
type RegistryClient interface {
	FetchRegistry(ctx context.Context, cnpj string) (*entity.RegistryData, error)
}

// RegistryStore grava o payload enriquecido no lead.
type RegistryStore interface {
	SetRegistryData(ctx context.Context, leadID string, data *entity.RegistryData) error
}

// RegistryCache evita bater na BrasilAPI para o mesmo CNPJ toda hora.
type RegistryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const cacheTTL = 24 * time.Hour

type Worker struct {
	Channel  *amqp.Channel
	Registry RegistryClient
	Store    RegistryStore
	Cache    RegistryCache
}

func NewWorker(ch *amqp.Channel, registry RegistryClient, store RegistryStore, cache RegistryCache) *Worker {
	return &Worker{
		Channel:  ch,
		Registry: registry,
		Store:    store,
		Cache:    cache,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload EnrichmentPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Enriquecendo lead %s (CNPJ %s)", payload.LeadID, payload.CNPJ)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no enriquecimento: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker de enriquecimento aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload EnrichmentPayload) error {
	data, err := w.lookupRegistry(ctx, payload.CNPJ)
	if err != nil {
		return err
	}
	if data == nil {
		// CNPJ não consta na base — não é erro, só não enriquece
		log.Printf("⚠️ [WORKER] CNPJ %s não encontrado na Receita", payload.CNPJ)
		return nil
	}

	return w.Store.SetRegistryData(ctx, payload.LeadID, data)
}

func (w *Worker) lookupRegistry(ctx context.Context, cnpj string) (*entity.RegistryData, error) {
	if w.Cache != nil {
		if cached, err := w.Cache.Get(ctx, "registry:"+cnpj); err == nil {
			var data entity.RegistryData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return &data, nil
			}
		}
	}

	data, err := w.Registry.FetchRegistry(ctx, cnpj)
	if err != nil {
		return nil, err
	}

	if data != nil && w.Cache != nil {
		if raw, err := json.Marshal(data); err == nil {
			if err := w.Cache.Set(ctx, "registry:"+cnpj, string(raw), cacheTTL); err != nil {
				log.Printf("⚠️ [WORKER] Falha ao gravar cache do CNPJ %s: %v", cnpj, err)
			}
		}
	}

	return data, nil
}
