package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DonationPending = "pending"
	DonationSuccess = "success"
	DonationFailed  = "failed"
)

// Donation is mutated only through the gateway bridge. Status holds whatever
// outcome label the gateway reported last.
type Donation struct {
	ID               string           `gorm:"primaryKey" json:"id"`
	UserID           string           `gorm:"not null;index" json:"user_id"`
	User             *User            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RegistrationID   *string          `gorm:"index" json:"registration_id"`
	Registration     *Registration    `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AmountCents      int64            `gorm:"not null;check:chk_donations_amount_positive,amount_cents > 0" json:"amount_cents"`
	Status           string           `gorm:"not null;default:pending;index" json:"status"`
	GatewayReference string           `gorm:"not null;uniqueIndex" json:"gateway_reference"`
	Metadata         datatypes.JSON   `json:"metadata"`
	Attempts         []PaymentAttempt `gorm:"constraint:OnDelete:CASCADE" json:"attempts,omitempty"`
	CreatedAt        time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
