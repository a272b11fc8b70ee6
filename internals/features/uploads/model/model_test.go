package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

// The id columns carry no database-side default, so the schema has to
// migrate cleanly on sqlite and the BeforeCreate hooks must fill the ids.
func TestMigrateAndCreateOnSqlite(t *testing.T) {
	db := setupTestDB(t, t.Name())
	if err := db.AutoMigrate(
		&UploadModel{},
		&UploadRowModel{},
		&EmployeeRecordModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	up := &UploadModel{
		FileName:  "folha.csv",
		FileSize:  10,
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
	}
	if err := db.Create(up).Error; err != nil {
		t.Fatalf("create upload: %v", err)
	}
	if up.ID == uuid.Nil {
		t.Fatalf("expected upload id to be generated")
	}
	if up.Status != "pending" {
		t.Fatalf("expected default pending status, got %s", up.Status)
	}

	rec := &EmployeeRecordModel{
		CompanyID:     up.CompanyID,
		UploadID:      up.ID,
		Name:          "Maria",
		UnionBase:     "Campinas",
		BirthDate:     time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
		AdmissionDate: time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("create record: %v", err)
	}
	if rec.ID == uuid.Nil {
		t.Fatalf("expected record id to be generated")
	}
}
