package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/agendahub/agenda-api/internal/domain/booking"
	"github.com/agendahub/agenda-api/internal/models"
)

// BookingGormRepository é o acesso a dados com escopo de conta: toda
// query carrega o account_id. Um id válido de outra conta se comporta
// como registro inexistente.
type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Referências
// --------------------------------------------------

func (r *BookingGormRepository) GetClient(
	ctx context.Context,
	accountID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", clientID, accountID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	accountID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", serviceID, accountID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBookingForAccount(
	ctx context.Context,
	bookingID uint,
	accountID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", bookingID, accountID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND account_id = ?", b.ID, b.AccountID).
		Update("status", b.Status).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	bookingID uint,
	accountID uint,
) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", bookingID, accountID).
		Delete(&models.Booking{}).Error
}

// ListBookings devolve as linhas desnormalizadas da conta. LEFT JOIN de
// propósito: agendamento cujo cliente ou serviço foi excluído continua
// aparecendo, com os campos juntados vazios. Ordem: data e hora
// decrescentes, id como desempate determinístico.
func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	accountID uint,
) ([]domain.ListRow, error) {

	var rows []domain.ListRow

	err := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(`b.id,
			b.client_id,
			COALESCE(c.name, '') AS client_name,
			COALESCE(c.phone, '') AS client_phone,
			COALESCE(c.email, '') AS client_email,
			b.service_id,
			COALESCE(s.name, '') AS service_name,
			b.date,
			b.time,
			b.status`).
		Joins("LEFT JOIN clients c ON c.id = b.client_id AND c.account_id = b.account_id").
		Joins("LEFT JOIN services s ON s.id = b.service_id AND s.account_id = b.account_id").
		Where("b.account_id = ?", accountID).
		Order("b.date DESC, b.time DESC, b.id ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
