package domain

import "time"

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusSuccess   ReservationStatus = "success"
	StatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	ID               string            `gorm:"primaryKey" json:"id"`
	ApptDate         time.Time         `json:"apptDate"`
	UserID           string            `gorm:"index" json:"user"`
	CoworkingSpaceID string            `gorm:"index" json:"coworkingSpace"`
	Status           ReservationStatus `gorm:"index" json:"status"`
	CreatedAt        time.Time         `json:"createdAt"`

	// Read projection of the target space (name, address, tel, hours).
	CoworkingSpace *CoworkingSpace `gorm:"foreignKey:CoworkingSpaceID" json:"coworkingSpaceDetail,omitempty"`
}
