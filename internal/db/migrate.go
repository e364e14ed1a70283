package db

import "inboundlogistics/internal/models"

// AutoMigrate creates the tables this service owns. The purchase order,
// invoice, and arrival views are managed upstream and deliberately excluded.
func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(
		&models.ReportSchedule{},
		&models.ReportRun{},
	)
}
