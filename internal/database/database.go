package database

import (
	"log"
	"strings"

	"github.com/dudafacio/rsvp-api/internal/config"
	"github.com/dudafacio/rsvp-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.Guest{},
		&models.Companion{},
		&models.TableArrangement{},
		&models.Photo{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}

// open picks the driver from the URL: postgres DSNs go to the postgres
// driver, anything else is treated as a sqlite file path.
func open(url string) gorm.Dialector {
	// Some hosts still hand out the legacy postgres:// scheme.
	if strings.HasPrefix(url, "postgres://") {
		url = "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	if strings.HasPrefix(url, "postgresql://") || strings.Contains(url, "host=") {
		return postgres.Open(url)
	}
	return sqlite.Open(url)
}
