package notification

import (
	"fmt"
	"html"

	"github.com/agendahub/agenda-api/internal/domain/booking"
)

// Kind distingue a mensagem de criação da de mudança de status.
type Kind int

const (
	KindCreated Kind = iota
	KindStatusChanged
)

// Event é o snapshot do agendamento no momento do disparo. O worker só
// lê daqui; nenhuma referência ao banco atravessa a fila.
type Event struct {
	Kind Kind

	To          string
	ClientName  string
	ServiceName string
	Date        string
	Time        string
	Status      booking.Status
}

type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Compose monta assunto e corpo (texto + HTML) para um evento.
func Compose(ev Event) Message {
	var subject, action string

	switch ev.Kind {
	case KindStatusChanged:
		subject = "Atualização de Agendamento"
		action = "O status do seu agendamento foi atualizado."
	default:
		subject = "Confirmação de Agendamento"
		action = "Seu agendamento foi registrado."
	}

	if ev.ServiceName != "" {
		subject = fmt.Sprintf("%s - %s", subject, ev.ServiceName)
	}

	text := fmt.Sprintf(
		"Olá, %s!\n\n%s\n\nServiço: %s\nData: %s\nHorário: %s\nStatus: %s\n",
		ev.ClientName,
		action,
		ev.ServiceName,
		ev.Date,
		ev.Time,
		ev.Status.Label(),
	)

	htmlBody := fmt.Sprintf(
		`<p>Olá, <strong>%s</strong>!</p>
<p>%s</p>
<ul>
  <li>Serviço: %s</li>
  <li>Data: %s</li>
  <li>Horário: %s</li>
  <li>Status: <strong>%s</strong></li>
</ul>`,
		html.EscapeString(ev.ClientName),
		html.EscapeString(action),
		html.EscapeString(ev.ServiceName),
		html.EscapeString(ev.Date),
		html.EscapeString(ev.Time),
		html.EscapeString(ev.Status.Label()),
	)

	return Message{
		To:       ev.To,
		Subject:  subject,
		TextBody: text,
		HTMLBody: htmlBody,
	}
}
