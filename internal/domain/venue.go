package domain

import "time"

// Venue площадка маркетплейса с точки зрения движка цен и доступности
type Venue struct {
	ID                  int64
	OwnerID             int64
	Name                string
	Currency            string
	MinBookingHours     int
	ExternalSyncEnabled bool

	RateMatrix     *RateMatrix
	AdditionalFees []AdditionalFee

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner проверяет, является ли пользователь владельцем площадки
func (v *Venue) IsOwner(userID int64) bool {
	return v.OwnerID == userID
}
