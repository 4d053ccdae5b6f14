package domain

import "time"

type CoworkingSpace struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex" json:"name"`
	Address    string    `json:"address"`
	District   string    `json:"district"`
	Province   string    `json:"province"`
	Postalcode string    `json:"postalcode"`
	Tel        string    `json:"tel"`
	Region     string    `json:"region"`
	OpenTime   string    `json:"openTime"`  // HH:mm
	CloseTime  string    `json:"closeTime"` // HH:mm
	CreatedAt  time.Time `json:"createdAt"`

	// Loaded on demand; never stored on the space row.
	Reservations []Reservation `gorm:"foreignKey:CoworkingSpaceID" json:"reservations,omitempty"`
}
