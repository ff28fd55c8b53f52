package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSalespersonDefaults(t *testing.T) {
	s, err := NewSalesperson("Maria", "maria@holyfoods.com.br", "", RoleSales)

	assert.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Active)
	assert.Equal(t, RoleSales, s.Role)
}

func TestNewSalespersonValidation(t *testing.T) {
	_, err := NewSalesperson("", "x@x.com.br", "", RoleSales)
	assert.Error(t, err)

	_, err = NewSalesperson("Maria", "", "", SalespersonRole("GERENTE"))
	assert.Error(t, err)
}

func TestNewMessageTemplateValidation(t *testing.T) {
	tpl, err := NewMessageTemplate("Primeiro contato", "Olá {{nome}}, somos a Holy Foods!")
	assert.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	_, err = NewMessageTemplate("", "corpo")
	assert.Error(t, err)

	_, err = NewMessageTemplate("título", "")
	assert.Error(t, err)
}
