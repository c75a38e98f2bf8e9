package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"modelscan/internal/catalog"
	"modelscan/internal/database"
)

// NewTestCatalog creates an in-memory SQLite catalog with the schema
// applied and returns it along with the underlying GORM handle for row
// assertions. The catalog is automatically closed when the test
// completes.
func NewTestCatalog(t *testing.T) (*database.GormCatalog, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.New(nil, logger.Config{}),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// A single pooled connection keeps the in-memory database alive and
	// visible for the whole test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&catalog.Creator{},
		&catalog.Collection{},
		&catalog.Model{},
		&catalog.ModelFile{},
	); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	cat := database.NewGormCatalogFromDB(db)

	t.Cleanup(func() {
		cat.Close()
	})

	return cat, db
}
