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
	"github.com/agendahub/agenda-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	AccountID uint

	ClientID  uint
	ServiceID uint

	Date string
	Time string

	// Vazio assume pendente; qualquer um dos quatro status conhecidos
	// pode ser definido já na criação.
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	notifier *notification.Dispatcher
	audit    *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	notifier *notification.Dispatcher,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute valida antes de qualquer escrita: campos, depois propriedade
// do cliente e do serviço (nessa ordem) sob a conta atuante. Referência
// de outra conta lê como inexistente. Só depois persiste e, no sucesso,
// dispara a notificação em melhor esforço.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.ClientID == 0 || in.ServiceID == 0 || in.Date == "" || in.Time == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	if !validators.IsValidDate(in.Date) || !validators.IsValidTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	status := domain.DefaultStatus()
	if in.Status != "" {
		parsed, err := domain.Parse(in.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	client, err := uc.repo.GetClient(ctx, in.AccountID, in.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, fmt.Errorf("get client: %w", err)
	}

	service, err := uc.repo.GetService(ctx, in.AccountID, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	b := &models.Booking{
		ClientID:  client.ID,
		ServiceID: service.ID,
		Date:      in.Date,
		Time:      in.Time,
		Status:    string(status),
		AccountID: in.AccountID,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: in.AccountID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	uc.notifier.Dispatch(notification.Event{
		Kind:        notification.KindCreated,
		To:          client.Email,
		ClientName:  client.Name,
		ServiceName: service.Name,
		Date:        b.Date,
		Time:        b.Time,
		Status:      status,
	})

	return b, nil
}
