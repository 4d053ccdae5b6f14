package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Name            string    `json:"name"`
	Email           string    `gorm:"uniqueIndex" json:"email"`
	TelephoneNumber string    `json:"telephoneNumber"`
	Password        string    `json:"-"`
	Role            Role      `gorm:"index" json:"role"`
	NumberOfEntries int       `json:"numberOfEntries"`
	CreatedAt       time.Time `json:"createdAt"`
}
