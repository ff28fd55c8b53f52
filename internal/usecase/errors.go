package usecase

// DomainError: violação de regra de negócio — vira rejeição visível
// para o usuário, não retry.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError: falha de infraestrutura — o próximo ciclo tenta de novo.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

var (
	// Invariante estrutural: sempre sobra pelo menos um admin ativo.
	ErrLastAdmin = &DomainError{
		Code:    "LAST_ADMIN",
		Message: "não é possível remover o último administrador ativo",
	}

	ErrSalespersonNotFound = &DomainError{
		Code:    "SALESPERSON_NOT_FOUND",
		Message: "vendedor não encontrado",
	}

	ErrEmptySalesPool = &DomainError{
		Code:    "EMPTY_SALES_POOL",
		Message: "nenhum vendedor ativo para receber os leads",
	}

	ErrLeadNotFound = &DomainError{
		Code:    "LEAD_NOT_FOUND",
		Message: "lead não encontrado",
	}
)
