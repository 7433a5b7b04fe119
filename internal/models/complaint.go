package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint represents a customer issue registered through the WhatsApp flow
type Complaint struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index"`

	Customer Customer `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`

	Issue   string `json:"issue"`
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status" gorm:"default:new"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComplaintStatus constants
const (
	ComplaintStatusNew        = "new"
	ComplaintStatusInProgress = "in-progress"
	ComplaintStatusResolved   = "resolved"
)

// BeforeCreate hook to auto-generate the complaint ID
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = ComplaintStatusNew
	}
	return nil
}

// Reference returns the short complaint reference shared with the customer
func (c *Complaint) Reference() string {
	return shortRef(c.ID)
}
