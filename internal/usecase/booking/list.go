package booking

import (
	"context"
	"fmt"

	domain "github.com/agendahub/agenda-api/internal/domain/booking"
	"github.com/agendahub/agenda-api/internal/dto"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	accountID uint,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.repo.ListBookings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]dto.BookingListDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.BookingListDTO{
			ID:          row.ID,
			ClientID:    row.ClientID,
			ClientName:  row.ClientName,
			ClientPhone: row.ClientPhone,
			ClientEmail: row.ClientEmail,
			ServiceID:   row.ServiceID,
			ServiceName: row.ServiceName,
			Date:        row.Date,
			Time:        row.Time,
			Status:      row.Status,
		})
	}

	return out, nil
}
