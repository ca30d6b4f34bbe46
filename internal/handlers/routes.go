package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoutes(
	r *chi.Mux,
	cfg *config.Config,
	authHandler *auth.AuthHandler,
	guestHandler *GuestHandler,
	companionHandler *CompanionHandler,
	tableHandler *TableHandler,
	photoHandler *PhotoHandler,
	exportHandler *ExportHandler,
) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Admin-Token"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Formatura RSVP API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"adminToken": {
			Type: "apiKey",
			In:   "header",
			Name: "X-Admin-Token",
		},
	}
	api := humachi.New(r, humaConfig)

	adminOp := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"adminToken": {}}}
	}

	// Public routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("RSVP API is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	huma.Post(api, "/auth/login", authHandler.HandleLogin)

	// Guests: the RSVP form posts without auth, everything else is admin.
	huma.Post(api, "/guests", guestHandler.HandleCreateGuest)
	huma.Get(api, "/guests", guestHandler.HandleListGuests, adminOp)
	huma.Get(api, "/guests/find", guestHandler.HandleFindGuests, adminOp)
	huma.Get(api, "/guests/{id}", guestHandler.HandleGetGuest, adminOp)
	huma.Patch(api, "/guests/{id}", guestHandler.HandleUpdateGuest, adminOp)
	huma.Delete(api, "/guests/{id}", guestHandler.HandleDeleteGuest, adminOp)

	// Companions
	huma.Get(api, "/companions", companionHandler.HandleListCompanions)
	huma.Get(api, "/companions/find", companionHandler.HandleFindCompanions)
	huma.Post(api, "/companions/{guestID}", companionHandler.HandleAddCompanion, adminOp)
	huma.Delete(api, "/companions/{id}", companionHandler.HandleDeleteCompanion, adminOp)

	// Tables: /view and /people/public are the guest-facing read-only pair.
	huma.Get(api, "/tables/people", tableHandler.HandleListPeople, adminOp)
	huma.Get(api, "/tables/people/public", tableHandler.HandleListPeoplePublic)
	huma.Get(api, "/tables/arrangements", tableHandler.HandleGetArrangements, adminOp)
	huma.Post(api, "/tables/arrangements", tableHandler.HandleSaveArrangements, adminOp)
	huma.Delete(api, "/tables/arrangements", tableHandler.HandleClearArrangements, adminOp)
	huma.Get(api, "/tables/view", tableHandler.HandleViewArrangements)

	// Photos
	huma.Get(api, "/photos", photoHandler.HandleListPhotos)
	huma.Get(api, "/photos/count", photoHandler.HandleCountPhotos)
	huma.Delete(api, "/photos/{id}", photoHandler.HandleDeletePhoto, adminOp)
	r.Post("/photos/upload", photoHandler.HandleUpload)

	// File downloads bypass huma; the admin gate runs as chi middleware.
	r.Group(func(r chi.Router) {
		r.Use(authHandler.RequireAdmin)
		r.Get("/guests/export/confirmed.{format}", exportHandler.HandleConfirmedExport)
	})
}
