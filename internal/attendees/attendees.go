package attendees

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dudafacio/rsvp-api/internal/models"
	"gorm.io/gorm"
)

// Lister derives the canonical "who is coming" list consumed by the document
// exports.
type Lister struct {
	db *gorm.DB
}

func NewLister(db *gorm.DB) *Lister {
	return &Lister{db: db}
}

// ConfirmedNames returns the names of every YES guest and their companions,
// deduplicated and sorted case-insensitively. Two people sharing the exact
// same full name collapse into one entry; that is accepted for a guest list
// this size.
func (l *Lister) ConfirmedNames() ([]string, error) {
	guests, err := l.confirmedGuests()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(guests))
	for _, g := range guests {
		if g.Name != "" {
			names = append(names, strings.TrimSpace(g.Name))
		}
		for _, c := range g.Companions {
			if c.Name != "" {
				names = append(names, strings.TrimSpace(c.Name))
			}
		}
	}

	return dedupeSorted(names), nil
}

// LabelsWithTables is ConfirmedNames with each entry suffixed by its table
// assignment (" - Mesa <n>") when one exists. Deduplication happens after
// labeling, so the same name at two tables yields two entries.
func (l *Lister) LabelsWithTables() ([]string, error) {
	guests, err := l.confirmedGuests()
	if err != nil {
		return nil, err
	}

	var rows []models.TableArrangement
	if err := l.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	guestTables := make(map[uint]int)
	companionTables := make(map[uint]int)
	for _, row := range rows {
		switch {
		case row.GuestID != nil:
			guestTables[*row.GuestID] = row.TableNumber
		case row.CompanionID != nil:
			companionTables[*row.CompanionID] = row.TableNumber
		}
	}

	labels := make([]string, 0, len(guests))
	for _, g := range guests {
		if g.Name != "" {
			labels = append(labels, label(strings.TrimSpace(g.Name), guestTables, g.ID))
		}
		for _, c := range g.Companions {
			if c.Name != "" {
				labels = append(labels, label(strings.TrimSpace(c.Name), companionTables, c.ID))
			}
		}
	}

	return dedupeSorted(labels), nil
}

func (l *Lister) confirmedGuests() ([]models.Guest, error) {
	var guests []models.Guest
	err := l.db.Preload("Companions").
		Where("rsvp_status = ?", models.RSVPYes).
		Order("name asc").
		Find(&guests).Error
	return guests, err
}

func label(name string, tables map[uint]int, id uint) string {
	if n, ok := tables[id]; ok {
		return fmt.Sprintf("%s - Mesa %d", name, n)
	}
	return name
}

func dedupeSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		unique = append(unique, it)
	}
	sort.Slice(unique, func(i, j int) bool {
		return strings.ToLower(unique[i]) < strings.ToLower(unique[j])
	})
	return unique
}

// SplitColumns numbers items sequentially and splits them into two balanced
// columns for the printable list. The left column takes the extra item when
// the count is odd, and numbering continues from left into right.
func SplitColumns(items []string) (left, right []string) {
	numbered := make([]string, len(items))
	for i, it := range items {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, it)
	}
	half := (len(numbered) + 1) / 2
	return numbered[:half], numbered[half:]
}
