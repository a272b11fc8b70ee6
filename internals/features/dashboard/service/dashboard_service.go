package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/dashboard/dto"
	"sindiplus_backend/internals/helpers/cache"

	recordModel "sindiplus_backend/internals/features/uploads/model"
)

// DashboardService recomputes summary statistics from employee_records on
// every request. There is no incremental aggregate; datasets are small enough
// that a full rescan plus a short Redis TTL is the simpler trade.
type DashboardService struct {
	DB       *gorm.DB
	Cache    *cache.Service
	CacheTTL time.Duration
}

func NewDashboardService(db *gorm.DB, cacheSvc *cache.Service) *DashboardService {
	return &DashboardService{
		DB:       db,
		Cache:    cacheSvc,
		CacheTTL: 5 * time.Minute,
	}
}

// Query carries the resolved (post access-rule) parameters of one request.
type Query struct {
	CompanyID uuid.UUID
	// OwnerView is true only for the owner tenant's admin; it unlocks the
	// cross-tenant union-base scope selector.
	OwnerView bool
	Scope     string
	Period    string
}

func (s *DashboardService) cacheKey(q Query) string {
	company := q.CompanyID.String()
	if q.OwnerView {
		company = "all"
	}
	scope := q.Scope
	if scope == "" {
		scope = "-"
	}
	period := q.Period
	if period == "" {
		period = "latest"
	}
	return fmt.Sprintf("dashboard:%s:%s:%s", company, scope, period)
}

// Build assembles the dashboard payload for one query, reading through the
// cache when available.
func (s *DashboardService) Build(ctx context.Context, q Query) (*dto.DashboardResponse, error) {
	key := s.cacheKey(q)
	if s.Cache.Enabled() {
		if raw, err := s.Cache.Get(ctx, key); err == nil {
			var cached dto.DashboardResponse
			if err := sonic.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	resp, err := s.compute(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.Cache.Enabled() {
		if raw, err := sonic.Marshal(resp); err == nil {
			if err := s.Cache.Set(ctx, key, string(raw), s.CacheTTL); err != nil {
				log.Printf("[WARN] dashboard cache set failed: %v", err)
			}
		}
	}
	return resp, nil
}

func (s *DashboardService) compute(ctx context.Context, q Query) (*dto.DashboardResponse, error) {
	records, err := s.loadRecords(ctx, q)
	if err != nil {
		return nil, err
	}

	// Bucket every record by its extracted period token. Records whose month
	// field yields no token are kept under the empty token and only shown
	// when no period filtering applies.
	byPeriod := make(map[string][]recordModel.EmployeeRecordModel)
	var periods []string
	for _, r := range records {
		var token string
		if r.MonthRef != nil {
			token, _ = ExtractPeriodToken(*r.MonthRef)
		}
		if _, seen := byPeriod[token]; !seen && token != "" {
			periods = append(periods, token)
		}
		byPeriod[token] = append(byPeriod[token], r)
	}
	SortPeriodsDesc(periods)

	period := q.Period
	if period == "" && len(periods) > 0 {
		period = periods[0]
	}

	selected := byPeriod[period]
	if period == "" {
		selected = records
	}

	resp := &dto.DashboardResponse{
		Period:  period,
		Periods: periods,
		Columns: DashboardColumns(),
		Records: make([]dto.DashboardRecord, 0, len(selected)),
		Summary: summarize(selected),
	}
	if resp.Periods == nil {
		resp.Periods = []string{}
	}
	for _, r := range selected {
		resp.Records = append(resp.Records, dto.ToDashboardRecord(r))
	}

	if q.OwnerView {
		scopes, err := s.distinctScopes(ctx)
		if err != nil {
			return nil, err
		}
		resp.Scopes = scopes
	}
	return resp, nil
}

func (s *DashboardService) loadRecords(ctx context.Context, q Query) ([]recordModel.EmployeeRecordModel, error) {
	tx := s.DB.WithContext(ctx).Model(&recordModel.EmployeeRecordModel{})
	if q.OwnerView {
		if q.Scope != "" {
			tx = tx.Where("LOWER(union_base) = LOWER(?)", q.Scope)
		}
	} else {
		tx = tx.Where("company_id = ?", q.CompanyID)
	}

	var records []recordModel.EmployeeRecordModel
	if err := tx.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("dashboard: load records: %w", err)
	}
	return records, nil
}

func (s *DashboardService) distinctScopes(ctx context.Context) ([]string, error) {
	var scopes []string
	err := s.DB.WithContext(ctx).
		Model(&recordModel.EmployeeRecordModel{}).
		Distinct("union_base").
		Where("union_base <> ''").
		Order("union_base ASC").
		Pluck("union_base", &scopes).Error
	if err != nil {
		return nil, fmt.Errorf("dashboard: load scopes: %w", err)
	}
	if scopes == nil {
		scopes = []string{}
	}
	return scopes, nil
}

// summarize rescans the selected records and derives the summary block. A
// record is valid when it carries a positive monthly fee.
func summarize(records []recordModel.EmployeeRecordModel) dto.DashboardSummary {
	sum := dto.DashboardSummary{Total: len(records)}

	companies := make(map[string]struct{})
	departments := make(map[string]struct{})
	var feeTotal float64

	for _, r := range records {
		if r.MonthlyFee != nil && *r.MonthlyFee > 0 {
			sum.Valid++
			feeTotal += *r.MonthlyFee
		} else {
			sum.Invalid++
		}
		if r.CompanyName != nil {
			if name := strings.TrimSpace(*r.CompanyName); name != "" {
				companies[strings.ToLower(name)] = struct{}{}
			}
		}
		if r.Department != nil {
			if dept := strings.TrimSpace(*r.Department); dept != "" {
				departments[strings.ToLower(dept)] = struct{}{}
			}
		}
	}

	sum.DistinctCompanies = len(companies)
	sum.DistinctDepartments = len(departments)
	if sum.Valid > 0 {
		sum.AverageMonthlyFee = feeTotal / float64(sum.Valid)
	}
	return sum
}
