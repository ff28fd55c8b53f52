package brasilapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

const DefaultBaseURL = "https://brasilapi.com.br"

// Client consulta o cadastro da Receita pela BrasilAPI.
type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{httpClient: client}
}

// FetchRegistry busca os dados cadastrais do CNPJ (14 dígitos, já
// normalizado). CNPJ inexistente devolve nil sem erro.
func (c *Client) FetchRegistry(ctx context.Context, cnpj string) (*entity.RegistryData, error) {
	if len(cnpj) != 14 {
		return nil, fmt.Errorf("cnpj deve conter 14 dígitos, veio %q", cnpj)
	}

	var data entity.RegistryData
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&data).
		Get("/api/cnpj/v1/" + cnpj)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar BrasilAPI: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("BrasilAPI devolveu status %d", resp.StatusCode())
	}

	return &data, nil
}
