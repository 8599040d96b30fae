package models

import "time"

// Booking guarda data e hora como strings ("2006-01-02" / "15:04"),
// como no restante do sistema. Não há FK com cascade: excluir um
// cliente ou serviço referenciado deixa o agendamento com referência
// pendurada e a listagem tolera isso via LEFT JOIN.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID  uint `gorm:"index" json:"client_id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	Date string `gorm:"size:10;not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Status string `gorm:"size:20;default:'pendente'" json:"status"`

	AccountID uint `gorm:"index;not null" json:"account_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
