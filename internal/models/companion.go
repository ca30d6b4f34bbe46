package models

import (
	"gorm.io/gorm"
)

// Companion is a dependent attendee attached to exactly one guest. Rows only
// exist while the parent guest's status is YES.
type Companion struct {
	gorm.Model
	Name    string `json:"name"`
	GuestID uint   `json:"guest_id"`
	Guest   *Guest `json:"-"`
}
