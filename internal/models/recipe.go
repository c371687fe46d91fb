package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe ids come from two regimes: rows ingested from the external search
// gateway keep the gateway-supplied id, user-submitted rows get a synthesized
// id above 100000. Auto-increment is disabled so both kinds insert verbatim.
type Recipe struct {
	ID         int64      `gorm:"primarykey;autoIncrement:false" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	ImageURL   string     `gorm:"size:255;not null" json:"image_url"`
	Vegetarian bool       `gorm:"not null;default:false" json:"vegetarian"`
	Vegan      bool       `gorm:"not null;default:false" json:"vegan"`
	Ketogenic  bool       `gorm:"not null;default:false" json:"ketogenic"`
	UserID     *uuid.UUID `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
}

// OwnedBy reports whether the recipe belongs to the given user. Rows
// ingested from the gateway have no owner and belong to nobody.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}
