package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. The status column only ever holds one of these.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	// Amount is stored in minor currency units (cents), never as a float.
	Amount int64  `gorm:"not null" json:"amount"`
	Status string `gorm:"type:varchar(10);not null" json:"status"`

	// Date is the creation date in YYYY-MM-DD form. Set once, never updated.
	Date string `gorm:"type:date;not null" json:"date"`
}

// Assign the ID before insert; the handlers never accept one from the client.
func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
