package entity

import (
	"errors"

	"github.com/google/uuid"
)

// Entidade: MessageTemplate (playbook de vendas)
type MessageTemplate struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewMessageTemplate(title, content string) (*MessageTemplate, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}
	return &MessageTemplate{
		ID:      uuid.New().String(),
		Title:   title,
		Content: content,
	}, nil
}
