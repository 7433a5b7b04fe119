package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Restaurant represents a restaurant tenant and its menu
type Restaurant struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Phone       string `json:"phone"`
	Description string `json:"description"`

	// WhatsApp number the restaurant receives messages on, in Twilio
	// format without the "whatsapp:" prefix (e.g. "+14155238886").
	// Inbound webhook routing resolves restaurants through this field.
	WhatsAppNumber string `json:"whatsapp_number" gorm:"column:whatsapp_number;uniqueIndex"`

	// Menu is ordered: category and item indexes shown to WhatsApp
	// customers are 1-based positions in these slices.
	Menu []MenuCategory `json:"menu" gorm:"serializer:json"`

	Plan string `json:"plan" gorm:"default:basic"` // "basic" or "executive"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MenuCategory groups menu items under a named section
type MenuCategory struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

// MenuItem is a single orderable dish
type MenuItem struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// Plan constants
const (
	PlanBasic     = "basic"
	PlanExecutive = "executive"
)

// BeforeCreate hook to auto-generate the restaurant ID
func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Plan == "" {
		r.Plan = PlanBasic
	}
	return nil
}
