package handlers

import (
	"context"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/seating"
)

type TableHandler struct {
	engine      *seating.Engine
	authHandler *auth.AuthHandler
}

func NewTableHandler(engine *seating.Engine, authHandler *auth.AuthHandler) *TableHandler {
	return &TableHandler{engine: engine, authHandler: authHandler}
}

type ListPeopleRequest struct {
	auth.AdminInput
}

type ListPeopleResponse struct {
	Body []seating.Person
}

func (h *TableHandler) HandleListPeople(ctx context.Context, input *ListPeopleRequest) (*ListPeopleResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}
	return h.listPeople()
}

// HandleListPeoplePublic serves the guest-facing seating view; no auth.
func (h *TableHandler) HandleListPeoplePublic(ctx context.Context, input *struct{}) (*ListPeopleResponse, error) {
	return h.listPeople()
}

func (h *TableHandler) listPeople() (*ListPeopleResponse, error) {
	people, err := h.engine.ListAssignablePeople()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list people")
	}
	return &ListPeopleResponse{Body: people}, nil
}

type GetArrangementsRequest struct {
	auth.AdminInput
}

// ArrangementsResponse maps table numbers (as JSON object keys) to ordered
// person references.
type ArrangementsResponse struct {
	Body map[int][]string
}

func (h *TableHandler) HandleGetArrangements(ctx context.Context, input *GetArrangementsRequest) (*ArrangementsResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}
	return h.getArrangements()
}

// HandleViewArrangements is the public read-only counterpart.
func (h *TableHandler) HandleViewArrangements(ctx context.Context, input *struct{}) (*ArrangementsResponse, error) {
	return h.getArrangements()
}

func (h *TableHandler) getArrangements() (*ArrangementsResponse, error) {
	tables, err := h.engine.Get()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to read arrangements")
	}
	return &ArrangementsResponse{Body: tables}, nil
}

type SaveArrangementsRequest struct {
	auth.AdminInput
	Body map[string][]string `doc:"Table number to ordered person references (guest_<id> / companion_<id>)"`
}

type SaveArrangementsResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleSaveArrangements replaces the whole seating layout. Every reference
// is validated before anything is deleted, so a malformed payload leaves the
// stored arrangement untouched.
func (h *TableHandler) HandleSaveArrangements(ctx context.Context, input *SaveArrangementsRequest) (*SaveArrangementsResponse, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}

	tables := make(map[int][]seating.PersonRef, len(input.Body))
	for key, refStrings := range input.Body {
		number, err := strconv.Atoi(key)
		if err != nil || number <= 0 {
			return nil, huma.Error422UnprocessableEntity("Invalid table number: " + key)
		}
		refs := make([]seating.PersonRef, 0, len(refStrings))
		for _, s := range refStrings {
			if s == "" {
				continue
			}
			ref, err := seating.ParsePersonRef(s)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity(err.Error())
			}
			refs = append(refs, ref)
		}
		tables[number] = refs
	}

	if err := h.engine.Save(tables); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save arrangements: " + err.Error())
	}

	res := &SaveArrangementsResponse{}
	res.Body.Message = "Table arrangement saved"
	return res, nil
}

type ClearArrangementsRequest struct {
	auth.AdminInput
}

func (h *TableHandler) HandleClearArrangements(ctx context.Context, input *ClearArrangementsRequest) (*struct{}, error) {
	if err := h.authHandler.Authorize(input.AdminInput); err != nil {
		return nil, err
	}
	if err := h.engine.Clear(); err != nil {
		return nil, huma.Error500InternalServerError("Failed to clear arrangements")
	}
	return nil, nil
}
