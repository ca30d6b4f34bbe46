package handlers

import (
	"context"
	"testing"

	"github.com/dudafacio/rsvp-api/internal/models"
)

func TestHandleAddCompanion(t *testing.T) {
	db := newTestDB(t)
	guestHandler := newGuestHandler(db)
	handler := NewCompanionHandler(db, newTestAuth())

	t.Run("ConfirmedGuest", func(t *testing.T) {
		guest := createGuest(t, guestHandler, "Ana Silva", "119", models.RSVPYes)

		req := &AddCompanionRequest{AdminInput: adminInput(), GuestID: guest.ID}
		req.Body.Name = "bia COSTA"
		resp, err := handler.HandleAddCompanion(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleAddCompanion returned error: %v", err)
		}
		if resp.Body.Companion.CompanionName != "Bia Costa" {
			t.Errorf("expected normalized name Bia Costa, got %q", resp.Body.Companion.CompanionName)
		}
		if resp.Body.Companion.GuestName != "Ana Silva" {
			t.Errorf("expected guest name Ana Silva, got %q", resp.Body.Companion.GuestName)
		}
	})

	t.Run("UnconfirmedGuest", func(t *testing.T) {
		guest := createGuest(t, guestHandler, "Davi Reis", "118", models.RSVPMaybe)

		req := &AddCompanionRequest{AdminInput: adminInput(), GuestID: guest.ID}
		req.Body.Name = "Someone"
		if _, err := handler.HandleAddCompanion(context.Background(), req); err == nil {
			t.Fatal("expected error adding companion to MAYBE guest, got nil")
		}
	})

	t.Run("UnknownGuest", func(t *testing.T) {
		req := &AddCompanionRequest{AdminInput: adminInput(), GuestID: 999}
		req.Body.Name = "Someone"
		if _, err := handler.HandleAddCompanion(context.Background(), req); err == nil {
			t.Fatal("expected error for unknown guest, got nil")
		}
	})
}

func TestHandleDeleteCompanion(t *testing.T) {
	db := newTestDB(t)
	guestHandler := newGuestHandler(db)
	handler := NewCompanionHandler(db, newTestAuth())

	guest := createGuest(t, guestHandler, "Ana Silva", "119", models.RSVPYes, "Bia Costa")
	companionID := guest.Companions[0].ID
	db.Create(&models.TableArrangement{TableNumber: 2, CompanionID: &companionID})

	req := &DeleteCompanionRequest{AdminInput: adminInput(), ID: companionID}
	if _, err := handler.HandleDeleteCompanion(context.Background(), req); err != nil {
		t.Fatalf("HandleDeleteCompanion returned error: %v", err)
	}

	var companions, seats int64
	db.Model(&models.Companion{}).Count(&companions)
	db.Model(&models.TableArrangement{}).Count(&seats)
	if companions != 0 {
		t.Errorf("expected companion deleted, got %d rows", companions)
	}
	if seats != 0 {
		t.Errorf("expected companion's seat purged, got %d rows", seats)
	}

	if _, err := handler.HandleDeleteCompanion(context.Background(), req); err == nil {
		t.Fatal("expected error deleting twice, got nil")
	}
}

func TestHandleListCompanions(t *testing.T) {
	db := newTestDB(t)
	guestHandler := newGuestHandler(db)
	handler := NewCompanionHandler(db, newTestAuth())

	createGuest(t, guestHandler, "Ana Silva", "119", models.RSVPYes, "Bia Costa")

	resp, err := handler.HandleListCompanions(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleListCompanions returned error: %v", err)
	}
	if len(resp.Body) != 1 {
		t.Fatalf("expected 1 companion, got %d", len(resp.Body))
	}
	row := resp.Body[0]
	if row.CompanionName != "Bia Costa" || row.GuestName != "Ana Silva" {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestHandleFindCompanions(t *testing.T) {
	db := newTestDB(t)
	guestHandler := newGuestHandler(db)
	handler := NewCompanionHandler(db, newTestAuth())

	createGuest(t, guestHandler, "Ana Silva", "119", models.RSVPYes, "Bia Costa", "Caio Mota")

	resp, err := handler.HandleFindCompanions(context.Background(), &FindCompanionsRequest{Q: "costa"})
	if err != nil {
		t.Fatalf("HandleFindCompanions returned error: %v", err)
	}
	if len(resp.Body) != 1 || resp.Body[0].CompanionName != "Bia Costa" {
		t.Errorf("find(costa) = %+v", resp.Body)
	}
}
