package usecase

import (
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// FallbackHolder: conta da casa que segura leads quando não há vendedor
// elegível (pool vazio ou dono removido aguardando redistribuição).
const FallbackHolder = "HolyFoods"

// AssignNext devolve o próximo vendedor do rodízio e o cursor avançado.
// O cursor é um contador único compartilhado entre todas as classes de
// lead; o módulo é aplicado na leitura, nunca no armazenamento, então a
// rotação continua justa mesmo com o pool mudando entre chamadas.
func AssignNext(pool []string, cursor int) (string, int) {
	if len(pool) == 0 {
		return FallbackHolder, cursor
	}
	return pool[cursor%len(pool)], cursor + 1
}

// PoolFor escolhe o pool de rodízio pela classificação do registro:
// CNPJ válido roda entre os vendedores ativos; CNPJ inválido cai na
// fila de auditoria dos admins. Função pura, avaliada antes do AssignNext.
func PoolFor(status entity.CnpjStatus, team []entity.Salesperson) []string {
	var pool []string
	for _, s := range team {
		if !s.Active {
			continue
		}
		if status == entity.CnpjInvalid {
			if s.Role == entity.RoleAdmin {
				pool = append(pool, s.Name)
			}
			continue
		}
		if s.Role == entity.RoleSales {
			pool = append(pool, s.Name)
		}
	}
	return pool
}

// ActiveSalesPool lista os nomes dos vendedores ativos (sem admins),
// na ordem do cadastro — é o pool da redistribuição em massa.
func ActiveSalesPool(team []entity.Salesperson) []string {
	var pool []string
	for _, s := range team {
		if s.Active && s.Role == entity.RoleSales {
			pool = append(pool, s.Name)
		}
	}
	return pool
}
