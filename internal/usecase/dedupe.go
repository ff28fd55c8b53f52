package usecase

import (
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// ProjectDeduplicated deriva a visão canônica sem duplicatas: um
// representante por grupo de identidade. Projeção de leitura pura —
// recalculada a cada acesso, nunca muta o store.
//
// O agrupamento é transitivo: se A e B dividem CNPJ e B e C dividem
// e-mail, os três caem no mesmo grupo. Os mapas cnpj→grupo e
// e-mail→grupo são atualizados conforme a varredura avança.
func ProjectDeduplicated(leads []entity.Lead) []entity.Lead {
	byCNPJ := make(map[string]int)
	byEmail := make(map[string]int)
	var groups [][]int

	for i := range leads {
		cnpj := NormalizeCNPJ(leads[i].CNPJ)
		if !IsValidCNPJ(cnpj) {
			cnpj = ""
		}
		email := NormalizeEmail(leads[i].Email)

		g := -1
		if cnpj != "" {
			if id, ok := byCNPJ[cnpj]; ok {
				g = id
			}
		}
		if g == -1 && email != "" {
			if id, ok := byEmail[email]; ok {
				g = id
			}
		}
		if g == -1 {
			g = len(groups)
			groups = append(groups, nil)
		}

		groups[g] = append(groups[g], i)
		if cnpj != "" {
			byCNPJ[cnpj] = g
		}
		if email != "" {
			byEmail[email] = g
		}
	}

	out := make([]entity.Lead, 0, len(groups))
	for _, members := range groups {
		best := members[0]
		for _, idx := range members[1:] {
			if betterRepresentative(leads[idx], leads[best]) {
				best = idx
			}
		}
		out = append(out, leads[best])
	}
	return out
}

// Critério do representante: VALID ganha de INVALID, depois completude
// de contato, depois submissão mais recente.
func betterRepresentative(a, b entity.Lead) bool {
	aValid := a.StatusCNPJ == entity.CnpjValid
	bValid := b.StatusCNPJ == entity.CnpjValid
	if aValid != bValid {
		return aValid
	}

	ac, bc := contactCompleteness(a), contactCompleteness(b)
	if ac != bc {
		return ac > bc
	}

	return a.DataSubmissao.After(b.DataSubmissao)
}

func contactCompleteness(l entity.Lead) int {
	count := 0
	for _, field := range []string{l.Email, l.Telefone, l.NomeContato, l.RazaoSocial, l.Cidade, l.UF} {
		if field != "" {
			count++
		}
	}
	return count
}
