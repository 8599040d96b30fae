package booking

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/audit"
	domain "github.com/agendahub/agenda-api/internal/domain/booking"
	"github.com/agendahub/agenda-api/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove incondicionalmente após a checagem de propriedade.
// Exclusão não dispara notificação.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	accountID uint,
) error {

	b, err := uc.repo.GetBookingForAccount(ctx, bookingID, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("booking_not_found")
		}
		return fmt.Errorf("get booking: %w", err)
	}

	if err := uc.repo.DeleteBooking(ctx, b.ID, accountID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		AccountID: accountID,
		Action:    "booking_deleted",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return nil
}
