package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guangfu250923/relief-backend/repository/models"
)

// newTestRepo opens an in-memory database and migrates the schema. The pool
// is pinned to one connection so the database survives for the whole test.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewRepositoryWithDB(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return repo
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// mustCreateSupply seeds one supply with the given item lines and returns it
// with its generated PIN still attached.
func mustCreateSupply(t *testing.T, repo *Repository, items ...SupplyItemSpec) *models.Supply {
	t.Helper()
	supply, repoErr := repo.CreateSupplyWithItems(SupplyHeader{
		Name:    strPtr("Guangfu Elementary Collection Point"),
		Address: strPtr("No. 1 Zhongshan Rd"),
		Phone:   strPtr("0912345678"),
	}, items)
	if repoErr != nil {
		t.Fatalf("seeding supply: %v", repoErr)
	}
	return supply
}
