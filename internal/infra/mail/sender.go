package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

// SendAssignmentDigest avisa o vendedor quantos leads novos caíram para
// ele no último sync.
func (s *EmailSender) SendAssignmentDigest(to, name string, newLeads int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@holyfoods.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s, você recebeu %d lead(s) novo(s) 🥬", name, newLeads))
	m.SetBody("text/plain", fmt.Sprintf(
		"Olá %s,\n\nO último sync da planilha atribuiu %d lead(s) novo(s) para você.\nAbra o painel para ver os detalhes.\n\n— Holy Foods",
		name, newLeads))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
