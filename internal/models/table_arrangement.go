package models

import (
	"gorm.io/gorm"
)

// TableArrangement is one seat: a numbered table plus exactly one of GuestID
// or CompanionID. The whole table is replaced on every save, so rows carry no
// identity beyond grouping.
type TableArrangement struct {
	gorm.Model
	TableNumber int   `json:"table_number"`
	GuestID     *uint `json:"guest_id"`
	CompanionID *uint `json:"companion_id"`
}
