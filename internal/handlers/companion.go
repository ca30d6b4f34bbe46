package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/models"
	"github.com/dudafacio/rsvp-api/internal/seating"
	"gorm.io/gorm"
)

type CompanionHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewCompanionHandler(db *gorm.DB, authHandler *auth.AuthHandler) *CompanionHandler {
	return &CompanionHandler{db: db, authHandler: authHandler}
}

// CompanionRow is the flat list shape with the parent guest resolved.
type CompanionRow struct {
	CompanionID   uint   `json:"companion_id"`
	CompanionName string `json:"companion_name"`
	GuestID       uint   `json:"guest_id"`
	GuestName     string `json:"guest_name"`
}

type ListCompanionsResponse struct {
	Body []CompanionRow
}

func (h *CompanionHandler) HandleListCompanions(ctx context.Context, input *struct{}) (*ListCompanionsResponse, error) {
	var companions []models.Companion
	if err := h.db.Preload("Guest").Find(&companions).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list companions")
	}
	return &ListCompanionsResponse{Body: companionRows(companions)}, nil
}

type FindCompanionsRequest struct {
	Q string `query:"q" doc:"Companion id or name fragment" required:"true"`
}

func (h *CompanionHandler) HandleFindCompanions(ctx context.Context, input *FindCompanionsRequest) (*ListCompanionsResponse, error) {
	pattern := "%" + strings.ToLower(input.Q) + "%"
	cond := h.db.Where("LOWER(name) LIKE ?", pattern)
	if id, err := strconv.ParseUint(input.Q, 10, 32); err == nil {
		cond = cond.Or("id = ?", id)
	}

	var companions []models.Companion
	if err := h.db.Preload("Guest").Where(cond).Find(&companions).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to search companions")
	}
	return &ListCompanionsResponse{Body: companionRows(companions)}, nil
}

func companionRows(companions []models.Companion) []CompanionRow {
	rows := make([]CompanionRow, 0, len(companions))
	for _, c := range companions {
		row := CompanionRow{
			CompanionID:   c.ID,
			CompanionName: c.Name,
			GuestID:       c.GuestID,
		}
		if c.Guest != nil {
			row.GuestName = c.Guest.Name
		}
		rows = append(rows, row)
	}
	return rows
}

type AddCompanionRequest struct {
	auth.AdminInput
	GuestID uint `path:"guestID"`
	Body    struct {
		Name string `json:"name" required:"true"`
	}
}

type AddCompanionResponse struct {
	Body struct {
		Message   string       `json:"message"`
		Companion CompanionRow `json:"companion"`
	}
}

// HandleAddCompanion attaches a companion to a confirmed guest. Guests who
// answered NO or MAYBE cannot carry companions.
func (h *CompanionHandler) HandleAddCompanion(ctx context.Context, input *AddCompanionRequest) (*AddCompanionResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.First(&guest, input.GuestID).Error; err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}
	if guest.RSVPStatus != models.RSVPYes {
		return nil, huma.Error422UnprocessableEntity("Guest has not confirmed attendance")
	}

	companion := models.Companion{
		Name:    models.NormalizeName(input.Body.Name),
		GuestID: guest.ID,
	}
	if err := h.db.Create(&companion).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to add companion")
	}

	res := &AddCompanionResponse{}
	res.Body.Message = "Companion added"
	res.Body.Companion = CompanionRow{
		CompanionID:   companion.ID,
		CompanionName: companion.Name,
		GuestID:       guest.ID,
		GuestName:     guest.Name,
	}
	return res, nil
}

type DeleteCompanionRequest struct {
	auth.AdminInput
	ID uint `path:"id"`
}

func (h *CompanionHandler) HandleDeleteCompanion(ctx context.Context, input *DeleteCompanionRequest) (*struct{}, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var companion models.Companion
	if err := h.db.First(&companion, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Companion not found")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		ref := seating.PersonRef{Kind: seating.KindCompanion, ID: companion.ID}
		if err := seating.RemoveFor(tx, []seating.PersonRef{ref}); err != nil {
			return err
		}
		return tx.Delete(&companion).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete companion")
	}

	return nil, nil
}
