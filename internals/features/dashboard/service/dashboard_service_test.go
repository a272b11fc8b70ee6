package service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/uploads/model"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.EmployeeRecordModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRecord(t *testing.T, db *gorm.DB, companyID uuid.UUID, name, unionBase, monthRef string, fee *float64) {
	rec := &model.EmployeeRecordModel{
		CompanyID:     companyID,
		UploadID:      uuid.New(),
		Name:          name,
		UnionBase:     unionBase,
		BirthDate:     time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC),
		AdmissionDate: time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC),
		MonthlyFee:    fee,
	}
	if monthRef != "" {
		rec.MonthRef = &monthRef
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func fee(v float64) *float64 { return &v }

func TestBuildDefaultsToMostRecentPeriod(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDashboardService(db, nil)
	company := uuid.New()

	seedRecord(t, db, company, "Maria", "Campinas", "01/2024", fee(10))
	seedRecord(t, db, company, "Joao", "Campinas", "03/2024", fee(20))
	seedRecord(t, db, company, "Ana", "Campinas", "12/2023", fee(30))

	resp, err := svc.Build(context.Background(), Query{CompanyID: company})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if resp.Period != "03/2024" {
		t.Fatalf("expected most recent period 03/2024, got %s", resp.Period)
	}
	if len(resp.Records) != 1 || resp.Records[0].Name != "Joao" {
		t.Fatalf("expected only the 03/2024 record, got %v", resp.Records)
	}
	want := []string{"03/2024", "01/2024", "12/2023"}
	if len(resp.Periods) != 3 {
		t.Fatalf("expected 3 periods, got %v", resp.Periods)
	}
	for i, p := range want {
		if resp.Periods[i] != p {
			t.Fatalf("periods out of order: got %v, want %v", resp.Periods, want)
		}
	}
}

func TestBuildScopedToOwnCompany(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDashboardService(db, nil)
	mine := uuid.New()
	other := uuid.New()

	seedRecord(t, db, mine, "Maria", "Campinas", "03/2024", fee(10))
	seedRecord(t, db, other, "Intruso", "Santos", "03/2024", fee(99))

	// a non-owner caller's scope request is ignored: the query is pinned to
	// their own company before it reaches the service
	resp, err := svc.Build(context.Background(), Query{CompanyID: mine})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].Name != "Maria" {
		t.Fatalf("expected only own-company records, got %v", resp.Records)
	}
	if resp.Scopes != nil {
		t.Fatalf("scope list is owner-only, got %v", resp.Scopes)
	}
}

func TestBuildOwnerScopeFilter(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDashboardService(db, nil)
	a := uuid.New()
	b := uuid.New()

	seedRecord(t, db, a, "Maria", "Campinas", "03/2024", fee(10))
	seedRecord(t, db, b, "Joao", "Santos", "03/2024", fee(20))

	resp, err := svc.Build(context.Background(), Query{
		CompanyID: a,
		OwnerView: true,
		Scope:     "santos",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].Name != "Joao" {
		t.Fatalf("expected the Santos record across tenants, got %v", resp.Records)
	}
	if len(resp.Scopes) != 2 {
		t.Fatalf("expected both union bases listed, got %v", resp.Scopes)
	}
}

func TestSummarize(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewDashboardService(db, nil)
	company := uuid.New()

	seedRecord(t, db, company, "Maria", "Campinas", "03/2024", fee(10))
	seedRecord(t, db, company, "Joao", "Campinas", "03/2024", fee(20))
	seedRecord(t, db, company, "Ana", "Campinas", "03/2024", nil)

	resp, err := svc.Build(context.Background(), Query{CompanyID: company, Period: "03/2024"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s := resp.Summary
	if s.Total != 3 || s.Valid != 2 || s.Invalid != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if math.Abs(s.AverageMonthlyFee-15) > 1e-9 {
		t.Fatalf("expected mean fee 15, got %v", s.AverageMonthlyFee)
	}
}
