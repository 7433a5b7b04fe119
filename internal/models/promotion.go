package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Promotion represents a broadcast campaign sent to past customers.
// Broadcasts are an executive-plan feature.
type Promotion struct {
	ID           string `json:"id" gorm:"primaryKey"`
	RestaurantID string `json:"restaurant_id" gorm:"index"`

	Title   string `json:"title"`
	Message string `json:"message"`
	Status  string `json:"status" gorm:"default:draft"` // "draft" or "sent"

	Recipients int        `json:"recipients"`
	SentDate   *time.Time `json:"sent_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PromotionStatus constants
const (
	PromotionStatusDraft = "draft"
	PromotionStatusSent  = "sent"
)

// BeforeCreate hook to auto-generate the promotion ID
func (p *Promotion) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PromotionStatusDraft
	}
	return nil
}
