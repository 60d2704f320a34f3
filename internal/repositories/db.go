package repositories

import (
	"log"

	"github.com/anshul-dev/notesvault/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the Postgres connection and runs migrations.
// TranslateError lets the stores map unique-index violations to ErrDuplicate.
func ConnectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.PublicNote{},
		&models.PrivateNote{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Successfully connected to database")
	return db, nil
}
