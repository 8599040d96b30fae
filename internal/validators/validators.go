package validators

import (
	"strings"
	"time"
)

// CanReceiveEmail é o guarda mínimo antes de tentar uma entrega:
// não vazio, com "@" e ".". Propositalmente permissivo, não é
// validação RFC.
func CanReceiveEmail(email string) bool {
	if email == "" {
		return false
	}
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// IsValidDate aceita o formato "2006-01-02".
func IsValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// IsValidTime aceita o formato "15:04".
func IsValidTime(t string) bool {
	_, err := time.Parse("15:04", t)
	return err == nil
}
