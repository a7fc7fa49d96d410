package models

import (
	"time"

	"gorm.io/datatypes"
)

const AttemptInitiated = "initiated"

// PaymentAttempt is one entry of a donation's audit trail. Rows are only ever
// appended; they disappear solely through the cascade from their donation.
type PaymentAttempt struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	DonationID  string         `gorm:"not null;index" json:"donation_id"`
	Status      string         `gorm:"not null" json:"status"`
	RawResponse datatypes.JSON `json:"raw_response"`
	CreatedAt   time.Time      `json:"created_at"`
}
