package models

import (
	"time"

	"gorm.io/datatypes"
)

// Registration is an event sign-up. Data is whatever the form submitted and
// is never interpreted server side. Rows are immutable once created.
type Registration struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Data      datatypes.JSON `json:"data"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
