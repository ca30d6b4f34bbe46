package handlers

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/models"
	"github.com/dudafacio/rsvp-api/internal/notifier"
	"github.com/dudafacio/rsvp-api/internal/seating"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewGuestHandler(db *gorm.DB, notifier notifier.Notifier, authHandler *auth.AuthHandler) *GuestHandler {
	return &GuestHandler{db: db, notifier: notifier, authHandler: authHandler}
}

type CompanionInput struct {
	Name string `json:"name" doc:"Companion name" required:"true"`
}

type CompanionResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type GuestResponse struct {
	ID          uint                `json:"id"`
	Name        string              `json:"name"`
	Phone       string              `json:"phone"`
	RSVPStatus  models.RSVPStatus   `json:"rsvp_status"`
	RespondedAt time.Time           `json:"responded_at"`
	Note        string              `json:"note"`
	Companions  []CompanionResponse `json:"companions"`
}

func guestResponse(g models.Guest) GuestResponse {
	companions := make([]CompanionResponse, 0, len(g.Companions))
	for _, c := range g.Companions {
		companions = append(companions, CompanionResponse{ID: c.ID, Name: c.Name})
	}
	return GuestResponse{
		ID:          g.ID,
		Name:        g.Name,
		Phone:       g.Phone,
		RSVPStatus:  g.RSVPStatus,
		RespondedAt: g.RespondedAt,
		Note:        g.Note,
		Companions:  companions,
	}
}

type CreateGuestRequest struct {
	Body struct {
		Name       string            `json:"name" doc:"Guest name" required:"true"`
		Phone      string            `json:"phone" doc:"Contact phone" required:"true"`
		RSVPStatus models.RSVPStatus `json:"rsvp_status" doc:"Attendance intent" enum:"YES,NO,MAYBE" required:"true"`
		Note       string            `json:"note,omitempty" doc:"Free-form message"`
		Companions []CompanionInput  `json:"companions,omitempty" doc:"Companions, only kept when rsvp_status is YES"`
	}
}

type CreateGuestResponse struct {
	Body GuestResponse
}

// HandleCreateGuest is the public RSVP submission. Companions only
// materialize when the guest answers YES; otherwise they are dropped without
// error, matching the form's behavior.
func (h *GuestHandler) HandleCreateGuest(ctx context.Context, input *CreateGuestRequest) (*CreateGuestResponse, error) {
	if !input.Body.RSVPStatus.Valid() {
		return nil, huma.Error422UnprocessableEntity("Unknown RSVP status")
	}

	guest := models.Guest{
		Name:        models.NormalizeName(input.Body.Name),
		Phone:       input.Body.Phone,
		RSVPStatus:  input.Body.RSVPStatus,
		Note:        input.Body.Note,
		RespondedAt: time.Now().UTC(),
	}
	if guest.RSVPStatus == models.RSVPYes {
		for _, c := range input.Body.Companions {
			guest.Companions = append(guest.Companions, models.Companion{Name: models.NormalizeName(c.Name)})
		}
	}

	if err := h.db.Create(&guest).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create guest: " + err.Error())
	}

	if err := h.notifier.NotifyRSVP(guest); err != nil {
		log.Printf("Failed to send RSVP notification: %v", err)
		// Announcement only; the RSVP itself is already stored.
	}

	return &CreateGuestResponse{Body: guestResponse(guest)}, nil
}

type ListGuestsRequest struct {
	auth.AdminInput
}

type ListGuestsResponse struct {
	Body []GuestResponse
}

func (h *GuestHandler) HandleListGuests(ctx context.Context, input *ListGuestsRequest) (*ListGuestsResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var guests []models.Guest
	if err := h.db.Preload("Companions").Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list guests")
	}

	response := make([]GuestResponse, 0, len(guests))
	for _, g := range guests {
		response = append(response, guestResponse(g))
	}
	return &ListGuestsResponse{Body: response}, nil
}

type FindGuestsRequest struct {
	auth.AdminInput
	Q string `query:"q" doc:"Guest id, name fragment or phone fragment" required:"true"`
}

func (h *GuestHandler) HandleFindGuests(ctx context.Context, input *FindGuestsRequest) (*ListGuestsResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(input.Q) + "%"
	cond := h.db.Where("LOWER(name) LIKE ?", pattern).Or("LOWER(phone) LIKE ?", pattern)
	if id, err := strconv.ParseUint(input.Q, 10, 32); err == nil {
		cond = cond.Or("id = ?", id)
	}

	var guests []models.Guest
	if err := h.db.Preload("Companions").Where(cond).Find(&guests).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to search guests")
	}

	response := make([]GuestResponse, 0, len(guests))
	for _, g := range guests {
		response = append(response, guestResponse(g))
	}
	return &ListGuestsResponse{Body: response}, nil
}

type GetGuestRequest struct {
	auth.AdminInput
	ID uint `path:"id"`
}

type GetGuestResponse struct {
	Body GuestResponse
}

func (h *GuestHandler) HandleGetGuest(ctx context.Context, input *GetGuestRequest) (*GetGuestResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.Preload("Companions").First(&guest, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}
	return &GetGuestResponse{Body: guestResponse(guest)}, nil
}

type UpdateGuestRequest struct {
	auth.AdminInput
	ID   uint `path:"id"`
	Body struct {
		Name       *string            `json:"name,omitempty"`
		Phone      *string            `json:"phone,omitempty"`
		RSVPStatus *models.RSVPStatus `json:"rsvp_status,omitempty" enum:"YES,NO,MAYBE"`
		Note       *string            `json:"note,omitempty"`
	}
}

// HandleUpdateGuest applies a partial update. A status or note change
// refreshes responded_at; a status change away from YES cascades into the
// guest's companions and any seats held by the guest or those companions.
func (h *GuestHandler) HandleUpdateGuest(ctx context.Context, input *UpdateGuestRequest) (*GetGuestResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.Preload("Companions").First(&guest, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}

	if input.Body.Name != nil {
		guest.Name = models.NormalizeName(*input.Body.Name)
	}
	if input.Body.Phone != nil {
		guest.Phone = *input.Body.Phone
	}

	responded := false
	if input.Body.RSVPStatus != nil {
		if !input.Body.RSVPStatus.Valid() {
			return nil, huma.Error422UnprocessableEntity("Unknown RSVP status")
		}
		if *input.Body.RSVPStatus != guest.RSVPStatus {
			guest.RSVPStatus = *input.Body.RSVPStatus
			responded = true
		}
	}
	if input.Body.Note != nil {
		guest.Note = *input.Body.Note
		responded = true
	}
	if responded {
		guest.RespondedAt = time.Now().UTC()
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if responded && guest.RSVPStatus != models.RSVPYes {
			if err := cascadeCompanions(tx, &guest, true); err != nil {
				return err
			}
			guest.Companions = nil
		}
		return tx.Omit(clause.Associations).Save(&guest).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update guest: " + err.Error())
	}

	return &GetGuestResponse{Body: guestResponse(guest)}, nil
}

type DeleteGuestRequest struct {
	auth.AdminInput
	ID uint `path:"id"`
}

func (h *GuestHandler) HandleDeleteGuest(ctx context.Context, input *DeleteGuestRequest) (*struct{}, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	var guest models.Guest
	if err := h.db.Preload("Companions").First(&guest, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Guest not found")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := cascadeCompanions(tx, &guest, true); err != nil {
			return err
		}
		return tx.Delete(&guest).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete guest: " + err.Error())
	}

	return nil, nil
}

// cascadeCompanions deletes the guest's companions and the seats referencing
// them. When dropSeat is set the guest's own seat goes too (guest deleted or
// no longer confirmed).
func cascadeCompanions(tx *gorm.DB, guest *models.Guest, dropSeat bool) error {
	refs := make([]seating.PersonRef, 0, len(guest.Companions)+1)
	if dropSeat {
		refs = append(refs, seating.PersonRef{Kind: seating.KindGuest, ID: guest.ID})
	}
	for _, c := range guest.Companions {
		refs = append(refs, seating.PersonRef{Kind: seating.KindCompanion, ID: c.ID})
	}

	if err := seating.RemoveFor(tx, refs); err != nil {
		return err
	}
	return tx.Where("guest_id = ?", guest.ID).Delete(&models.Companion{}).Error
}
