package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback represents a customer rating left through the WhatsApp flow
type Feedback struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index"`

	Customer Customer `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`

	Rating  int    `json:"rating"` // 1-5
	Comment string `json:"comment,omitempty"`
	OrderID string `json:"order_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook to auto-generate the feedback ID
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
