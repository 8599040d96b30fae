package booking

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	domain "github.com/agendahub/agenda-api/internal/domain/booking"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/models"
	"github.com/agendahub/agenda-api/internal/notification"
)

type SetBookingStatus struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewSetBookingStatus(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *SetBookingStatus {
	return &SetBookingStatus{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute aplica a transição de status. A máquina é totalmente
// conectada: qualquer status conhecido alcança qualquer outro; apenas
// valores desconhecidos são rejeitados. Agendamento de outra conta se
// comporta como inexistente e o status armazenado não muda.
func (uc *SetBookingStatus) Execute(
	ctx context.Context,
	bookingID uint,
	accountID uint,
	newStatus string,
) (*models.Booking, error) {

	status, err := domain.Parse(newStatus)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForAccount(ctx, bookingID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b.Status = string(status)
	if err := uc.repo.UpdateBookingStatus(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		Action:    "booking_status_changed",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]any{"status": string(status)},
	})

	// Snapshot de cliente/serviço para a mensagem. Referência
	// pendurada (cliente excluído) vira destino vazio e o dispatcher
	// pula em silêncio.
	ev := notification.Event{
		Kind:   notification.KindStatusChanged,
		Date:   b.Date,
		Time:   b.Time,
		Status: status,
	}

	if client, err := uc.repo.GetClient(ctx, accountID, b.ClientID); err == nil {
		ev.To = client.Email
		ev.ClientName = client.Name
	}
	if service, err := uc.repo.GetService(ctx, accountID, b.ServiceID); err == nil {
		ev.ServiceName = service.Name
	}

	uc.notifier.Dispatch(ev)

	return b, nil
}
