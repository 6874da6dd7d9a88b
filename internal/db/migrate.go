package db

import (
	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Store{},
		&model.UserStore{},
		&model.Sales{},
		&model.Visitor{},
		&model.DailyClose{},
		&model.DailySalesItem{},
		&model.Menu{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.Inventory{},
		&model.ExpenseItem{},
		&model.Target{},
		&model.ABCHistory{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
