package pkg

import (
	"fmt"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ScholarStream/scholarship-service/internal/config"
	"github.com/ScholarStream/scholarship-service/internal/models"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
)

// InitDatabase opens the shared database handle. The connection is opened
// lazily exactly once; subsequent calls return the same handle.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	dbOnce.Do(func() {
		db, dbErr = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if dbErr != nil {
			dbErr = fmt.Errorf("failed to connect to database: %w", dbErr)
			return
		}

		dbErr = db.AutoMigrate(
			&models.User{},
			&models.Scholarship{},
			&models.Application{},
			&models.Review{},
		)
		if dbErr != nil {
			dbErr = fmt.Errorf("failed to migrate database: %w", dbErr)
		}
	})
	return db, dbErr
}
