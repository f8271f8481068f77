package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"index" json:"email"`
	Phone    string    `json:"phone"`
	ImageURL string    `json:"imageUrl"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"invoices,omitempty"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
