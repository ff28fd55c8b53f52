package usecase

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeCNPJ reduz o CNPJ/CPF ao formato canônico (só dígitos).
// Entrada vazia ou lixo vira string vazia — nunca erro: lead com dado
// ruim precisa continuar sincronizável, só não casa com ninguém.
func NormalizeCNPJ(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// IsValidCNPJ: 11 dígitos é o mínimo de um CPF; CNPJ tem 14.
// Abaixo disso o número não identifica nenhum registro real.
func IsValidCNPJ(digits string) bool {
	return len(digits) >= 11
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
