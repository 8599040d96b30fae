package booking

import "github.com/agendahub/agenda-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pendente"
	StatusConfirmed Status = "confirmado"
	StatusDone      Status = "realizado"
	StatusCanceled  Status = "cancelado"
)

// DefaultStatus é o status inicial quando a criação não informa um.
func DefaultStatus() Status {
	return StatusPending
}

// Parse aceita apenas os quatro status conhecidos. Qualquer transição
// entre eles é permitida; não existe estado terminal.
func Parse(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusDone, StatusCanceled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// Label é o rótulo humano usado nas mensagens de notificação.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusConfirmed:
		return "Confirmado"
	case StatusDone:
		return "Realizado"
	case StatusCanceled:
		return "Cancelado"
	}
	return string(s)
}
