package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID fills an empty string primary key before insert.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	newID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (r *Registration) BeforeCreate(tx *gorm.DB) error {
	newID(&r.ID)
	return nil
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	newID(&d.ID)
	return nil
}

func (a *PaymentAttempt) BeforeCreate(tx *gorm.DB) error {
	newID(&a.ID)
	return nil
}
