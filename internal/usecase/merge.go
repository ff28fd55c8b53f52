package usecase

import (
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

type MergeKind int

const (
	MergeNew MergeKind = iota
	MergeMatched
)

// MergeDecision: resultado de um passe de merge para um registro da planilha.
// Efêmero — nunca persistido.
type MergeDecision struct {
	Kind MergeKind
	// Índice do lead casado no conjunto de trabalho (só para MergeMatched)
	MatchIndex int
	// Registro resultante do merge (só para MergeMatched)
	Merged *entity.Lead
}

// Merge decide se o registro vindo da planilha atualiza um lead existente
// ou cria um novo. Prioridade de casamento: CNPJ válido primeiro, e-mail
// como fallback (cobre o contato que corrigiu o CNPJ depois).
func Merge(incoming entity.Lead, working []entity.Lead) MergeDecision {
	idx := matchExisting(incoming, working)
	if idx < 0 {
		return MergeDecision{Kind: MergeNew, MatchIndex: -1}
	}
	merged := mergeLeads(working[idx], incoming)
	return MergeDecision{Kind: MergeMatched, MatchIndex: idx, Merged: &merged}
}

func matchExisting(incoming entity.Lead, working []entity.Lead) int {
	cnpj := NormalizeCNPJ(incoming.CNPJ)
	if IsValidCNPJ(cnpj) {
		for i := range working {
			existing := NormalizeCNPJ(working[i].CNPJ)
			if IsValidCNPJ(existing) && existing == cnpj {
				return i
			}
		}
	}

	email := NormalizeEmail(incoming.Email)
	if email != "" {
		for i := range working {
			if NormalizeEmail(working[i].Email) == email {
				return i
			}
		}
	}

	return -1
}

// mergeLeads consolida a regra de partição de campos num lugar só:
// a planilha sobrescreve contato/endereço/categoria/atribuição, os campos
// do usuário (notas, anexos, negócio, histórico) vêm do lead existente,
// e o RegistryData — quando presente — corrige o que a planilha trouxe.
func mergeLeads(existing, incoming entity.Lead) entity.Lead {
	merged := incoming

	// Identidade interna sobrevive a correções de CNPJ/e-mail entre syncs
	merged.ID = existing.ID

	// Campos do usuário, copiados verbatim
	merged.Salesperson = existing.Salesperson
	merged.OriginalOwner = existing.OriginalOwner
	merged.TransferPending = existing.TransferPending
	merged.DealStatus = existing.DealStatus
	merged.WonAt = existing.WonAt
	merged.WonValue = existing.WonValue
	merged.LostAt = existing.LostAt
	merged.LostReason = existing.LostReason
	merged.MessageSentAt = existing.MessageSentAt
	merged.LastTemplateTitle = existing.LastTemplateTitle
	merged.MessageHistory = existing.MessageHistory
	merged.Notes = existing.Notes
	merged.Attachments = existing.Attachments
	merged.ChangeLog = existing.ChangeLog
	merged.RegistryData = existing.RegistryData

	// O enriquecimento da Receita vale mais que o form cru
	if rd := existing.RegistryData; rd != nil {
		if rd.RazaoSocial != "" {
			merged.RazaoSocial = rd.RazaoSocial
		}
		if rd.Municipio != "" {
			merged.Cidade = rd.Municipio
		}
		if rd.UF != "" {
			merged.UF = rd.UF
		}
		if rd.CEP != "" {
			merged.CEP = rd.CEP
		}
		if rd.Telefone != "" {
			merged.Telefone = rd.Telefone
		}
	}

	return merged
}
