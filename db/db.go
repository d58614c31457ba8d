package db

import (
	"os"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stocksim.com/types"
)

var DB *gorm.DB

// Init opens the configured database and migrates the schema. DB_TYPE selects
// the driver: POSTGRES_DSN for postgres, anything else falls back to the
// pure-Go sqlite driver on SQLITE_PATH.
func Init() {
	var dialector gorm.Dialector
	if os.Getenv("DB_TYPE") == "POSTGRES_DSN" {
		dialector = postgres.Open(os.Getenv("POSTGRES_DSN"))
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "stocksim.db"
		}
		dialector = sqlite.Open(path)
	}

	database, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(&types.User{}, &types.Transaction{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	DB = database
}
