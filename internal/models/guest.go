package models

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// RSVPStatus is the attendance intent of a guest.
type RSVPStatus string

const (
	RSVPYes   RSVPStatus = "YES"
	RSVPNo    RSVPStatus = "NO"
	RSVPMaybe RSVPStatus = "MAYBE"
)

// Valid reports whether s is one of the three known statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPYes, RSVPNo, RSVPMaybe:
		return true
	}
	return false
}

type Guest struct {
	gorm.Model
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	RSVPStatus  RSVPStatus  `json:"rsvp_status"`
	RespondedAt time.Time   `json:"responded_at"`
	Note        string      `json:"note"`
	Companions  []Companion `json:"companions" gorm:"constraint:OnDelete:CASCADE"`
}

// NormalizeName capitalizes the first letter of each word and lowercases the
// rest, collapsing runs of whitespace to single spaces.
// "mARIA eduARDA fACIO" -> "Maria Eduarda Facio". Empty input passes through.
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
