package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

func TestMergeMatchesByCNPJDespiteFormatting(t *testing.T) {
	working := []entity.Lead{
		{ID: "lead-1", CNPJ: "11.222.333/0001-44", Email: "antigo@padaria.com.br"},
	}
	incoming := entity.Lead{CNPJ: " 11222333000144 ", Email: "novo@padaria.com.br"}

	decision := Merge(incoming, working)

	assert.Equal(t, MergeMatched, decision.Kind)
	assert.Equal(t, 0, decision.MatchIndex)
	assert.Equal(t, "lead-1", decision.Merged.ID)
}

func TestMergeCNPJWinsOverEmail(t *testing.T) {
	// O registro casa por CNPJ com o lead-1 e por e-mail com o lead-2:
	// CNPJ válido decide primeiro
	working := []entity.Lead{
		{ID: "lead-1", CNPJ: "11222333000144", Email: "um@empresa.com.br"},
		{ID: "lead-2", CNPJ: "99888777000166", Email: "dois@empresa.com.br"},
	}
	incoming := entity.Lead{CNPJ: "11.222.333/0001-44", Email: "dois@empresa.com.br"}

	decision := Merge(incoming, working)

	assert.Equal(t, MergeMatched, decision.Kind)
	assert.Equal(t, 0, decision.MatchIndex)
}

func TestMergeFallsBackToEmailWhenCNPJInvalid(t *testing.T) {
	// Lead entrou sem CNPJ usável; o contato corrigiu e reenviou o form
	// com o mesmo e-mail — tem que cair no mesmo lead
	working := []entity.Lead{
		{ID: "lead-1", CNPJ: "sem cnpj", Email: "Contato@Padaria.com.br"},
	}
	incoming := entity.Lead{CNPJ: "11222333000144", Email: "contato@padaria.com.br"}

	decision := Merge(incoming, working)

	assert.Equal(t, MergeMatched, decision.Kind)
	assert.Equal(t, "lead-1", decision.Merged.ID)
}

func TestMergeNewWhenNothingMatches(t *testing.T) {
	working := []entity.Lead{
		{ID: "lead-1", CNPJ: "11222333000144", Email: "um@empresa.com.br"},
	}
	incoming := entity.Lead{CNPJ: "99888777000166", Email: "outro@empresa.com.br"}

	decision := Merge(incoming, working)

	assert.Equal(t, MergeNew, decision.Kind)
	assert.Equal(t, -1, decision.MatchIndex)
	assert.Nil(t, decision.Merged)
}

func TestMergePreservesUserOwnedFields(t *testing.T) {
	wonAt := time.Date(2026, 7, 10, 15, 0, 0, 0, time.UTC)
	working := []entity.Lead{{
		ID:          "lead-1",
		CNPJ:        "11222333000144",
		Email:       "contato@padaria.com.br",
		NomeContato: "Carlos",
		Cidade:      "Santos",
		Salesperson: "Maria",
		DealStatus:  entity.DealWon,
		WonAt:       &wonAt,
		WonValue:    500,
		Notes:       []entity.Note{{ID: "n-1", Content: "cliente fechado"}},
	}}

	// A planilha trouxe nome e cidade atualizados
	incoming := entity.Lead{
		CNPJ:        "11.222.333/0001-44",
		Email:       "contato@padaria.com.br",
		NomeContato: "Carlos Eduardo",
		Cidade:      "São Paulo",
	}

	decision := Merge(incoming, working)
	merged := decision.Merged

	// Campos da planilha atualizam
	assert.Equal(t, "Carlos Eduardo", merged.NomeContato)
	assert.Equal(t, "São Paulo", merged.Cidade)

	// Campos do usuário sobrevivem intactos
	assert.Equal(t, entity.DealWon, merged.DealStatus)
	assert.Equal(t, 500.0, merged.WonValue)
	assert.Equal(t, &wonAt, merged.WonAt)
	assert.Equal(t, "Maria", merged.Salesperson)
	assert.Len(t, merged.Notes, 1)
}

func TestMergeRegistryDataOverridesSheetFields(t *testing.T) {
	working := []entity.Lead{{
		ID:    "lead-1",
		CNPJ:  "11222333000144",
		Email: "contato@padaria.com.br",
		RegistryData: &entity.RegistryData{
			RazaoSocial: "PADARIA SANTA CLARA LTDA",
			Municipio:   "Campinas",
			UF:          "SP",
			Telefone:    "1933334444",
		},
	}}
	incoming := entity.Lead{
		CNPJ:        "11222333000144",
		Email:       "contato@padaria.com.br",
		RazaoSocial: "padaria sta clara",
		Cidade:      "Camp.",
		UF:          "sp",
		Telefone:    "(19) 3333-4444",
	}

	merged := Merge(incoming, working).Merged

	// A Receita vale mais que o form cru
	assert.Equal(t, "PADARIA SANTA CLARA LTDA", merged.RazaoSocial)
	assert.Equal(t, "Campinas", merged.Cidade)
	assert.Equal(t, "SP", merged.UF)
	assert.Equal(t, "1933334444", merged.Telefone)
	assert.NotNil(t, merged.RegistryData)
}
