package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/dudafacio/rsvp-api/internal/attendees"
	"github.com/dudafacio/rsvp-api/internal/auth"
	"github.com/dudafacio/rsvp-api/internal/config"
	"github.com/dudafacio/rsvp-api/internal/database"
	"github.com/dudafacio/rsvp-api/internal/handlers"
	"github.com/dudafacio/rsvp-api/internal/notifier"
	"github.com/dudafacio/rsvp-api/internal/seating"
	"github.com/dudafacio/rsvp-api/internal/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Initialize Collaborators
	var session *discordgo.Session
	if cfg.DiscordBotToken != "" {
		var err error
		session, err = discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
			session = nil
		}
	}
	rsvpNotifier := notifier.NewDiscordNotifier(session, cfg.DiscordRSVPChannelID)
	imageStorage := storage.NewSupabaseStorage(cfg)

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg)
	engine := seating.NewEngine(db)
	lister := attendees.NewLister(db)

	guestHandler := handlers.NewGuestHandler(db, rsvpNotifier, authHandler)
	companionHandler := handlers.NewCompanionHandler(db, authHandler)
	tableHandler := handlers.NewTableHandler(engine, authHandler)
	photoHandler := handlers.NewPhotoHandler(db, imageStorage, authHandler)
	exportHandler := handlers.NewExportHandler(lister)

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, cfg, authHandler, guestHandler, companionHandler, tableHandler, photoHandler, exportHandler)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
