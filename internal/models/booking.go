package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking represents a table reservation made through the WhatsApp flow
type Booking struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index"`

	Customer Customer `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`

	// Date and Time are kept in the wire format the customer typed
	// ("2006-01-02" and "15:04"); both are validated on intake.
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`

	Notes       string `json:"notes,omitempty"`
	TableNumber string `json:"table_number,omitempty"`
	Status      string `json:"status" gorm:"default:pending"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingStatus constants
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// BeforeCreate hook to auto-generate the booking ID
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	return nil
}

// Reference returns the short booking reference shared with the customer
func (b *Booking) Reference() string {
	return shortRef(b.ID)
}
