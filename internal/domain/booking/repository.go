package booking

import (
	"context"

	"github.com/agendahub/agenda-api/internal/models"
)

// ListRow é a linha desnormalizada da listagem de agendamentos.
// Os campos de cliente/serviço vêm de LEFT JOIN e ficam vazios quando a
// entidade referenciada foi excluída.
type ListRow struct {
	ID          uint
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string
	ServiceID   uint
	ServiceName string
	Date        string
	Time        string
	Status      string
}

// Repository é a porta de persistência dos agendamentos. Toda operação
// recebe o account id e é obrigada a filtrá-lo: um registro de outra
// conta nunca é retornado nem alterado.
type Repository interface {
	// -------- Referências (validação de propriedade) --------
	GetClient(
		ctx context.Context,
		accountID uint,
		clientID uint,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		accountID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForAccount(
		ctx context.Context,
		bookingID uint,
		accountID uint,
	) (*models.Booking, error)

	UpdateBookingStatus(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		bookingID uint,
		accountID uint,
	) error

	ListBookings(
		ctx context.Context,
		accountID uint,
	) ([]ListRow, error)
}
