package seating

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dudafacio/rsvp-api/internal/models"
	"gorm.io/gorm"
)

// Engine assigns confirmed people to numbered tables. The arrangement table
// is only ever written as a whole: Save replaces every row in one
// transaction, so readers never see a half-written layout.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Person is one assignable entry: a confirmed guest or one of their
// companions. Companion names carry the "  ↳ " marker the seating UI renders
// as indentation.
type Person struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      Kind   `json:"type"`
	GuestName string `json:"guest_name,omitempty"`
}

// ListAssignablePeople returns every YES guest followed directly by their
// companions. Entries sort case-insensitively by the parent guest's name, so
// companions stay adjacent to their guest instead of drifting to their own
// alphabetical position.
func (e *Engine) ListAssignablePeople() ([]Person, error) {
	var guests []models.Guest
	if err := e.db.Preload("Companions").Where("rsvp_status = ?", models.RSVPYes).Find(&guests).Error; err != nil {
		return nil, err
	}

	people := make([]Person, 0, len(guests))
	for _, g := range guests {
		people = append(people, Person{
			ID:   PersonRef{Kind: KindGuest, ID: g.ID}.String(),
			Name: g.Name,
			Type: KindGuest,
		})
		for _, c := range g.Companions {
			people = append(people, Person{
				ID:        PersonRef{Kind: KindCompanion, ID: c.ID}.String(),
				Name:      "  ↳ " + c.Name,
				Type:      KindCompanion,
				GuestName: g.Name,
			})
		}
	}

	sort.SliceStable(people, func(i, j int) bool {
		return strings.ToLower(sortKey(people[i])) < strings.ToLower(sortKey(people[j]))
	})

	return people, nil
}

func sortKey(p Person) string {
	if p.GuestName != "" {
		return p.GuestName
	}
	return p.Name
}

// Save replaces the entire arrangement with the given layout. Every table
// number must be positive; references are assumed to be already parsed. The
// delete and reinsert run in one transaction, all or nothing.
func (e *Engine) Save(tables map[int][]PersonRef) error {
	rows := make([]models.TableArrangement, 0)
	numbers := make([]int, 0, len(tables))
	for n := range tables {
		if n <= 0 {
			return fmt.Errorf("table number must be positive, got %d", n)
		}
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		for _, ref := range tables[n] {
			row := models.TableArrangement{TableNumber: n}
			id := ref.ID
			switch ref.Kind {
			case KindGuest:
				row.GuestID = &id
			case KindCompanion:
				row.CompanionID = &id
			}
			rows = append(rows, row)
		}
	}

	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TableArrangement{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// Get returns the stored layout grouped by table number, preserving the
// insertion order of seats within each table.
func (e *Engine) Get() (map[int][]string, error) {
	var rows []models.TableArrangement
	if err := e.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	tables := make(map[int][]string)
	for _, row := range rows {
		switch {
		case row.GuestID != nil:
			tables[row.TableNumber] = append(tables[row.TableNumber], PersonRef{Kind: KindGuest, ID: *row.GuestID}.String())
		case row.CompanionID != nil:
			tables[row.TableNumber] = append(tables[row.TableNumber], PersonRef{Kind: KindCompanion, ID: *row.CompanionID}.String())
		}
	}
	return tables, nil
}

// Clear wipes the arrangement unconditionally.
func (e *Engine) Clear() error {
	return e.db.Where("1 = 1").Delete(&models.TableArrangement{}).Error
}

// RemoveFor deletes any seats held by the given references. Used by the
// registry cascades so a deleted or no-longer-confirmed person never keeps a
// dangling seat.
func RemoveFor(tx *gorm.DB, refs []PersonRef) error {
	guestIDs := make([]uint, 0, len(refs))
	companionIDs := make([]uint, 0, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case KindGuest:
			guestIDs = append(guestIDs, ref.ID)
		case KindCompanion:
			companionIDs = append(companionIDs, ref.ID)
		}
	}

	if len(guestIDs) > 0 {
		if err := tx.Where("guest_id IN ?", guestIDs).Delete(&models.TableArrangement{}).Error; err != nil {
			return err
		}
	}
	if len(companionIDs) > 0 {
		if err := tx.Where("companion_id IN ?", companionIDs).Delete(&models.TableArrangement{}).Error; err != nil {
			return err
		}
	}
	return nil
}
