package service

import (
	"sort"
	"time"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
)

// ReportService recomputes every summary from the current ledger and log rows
// on each call. Nothing is cached or materialized: summaries are advisory and
// may lag concurrent mutations by one read.
type ReportService interface {
	UnitFinancialSummary(unitCode string) (*UnitSummary, error)
	UnitReport(unitCode string) (*UnitReport, error)
	CompanySummary() (*CompanySummary, error)
	EmployeePerformance(unitCode, username string) (*EmployeeSales, error)
	EmployeeRanking(limit int) ([]EmployeeSales, error)
	MonthlySales(from, to time.Time) ([]MonthlyBucket, error)
}

// UnitSummary holds the two gain figures for a unit: realized (net effect of
// completed sales minus purchase outlay) and potential (unsold stock valued at
// the current selling price).
type UnitSummary struct {
	RealizedGain  float64 `json:"realized_gain"`
	PotentialGain float64 `json:"potential_gain"`
}

type UnitReport struct {
	UnitCode       string      `json:"unit_code"`
	UnitName       string      `json:"unit_name"`
	Summary        UnitSummary `json:"summary"`
	VolumeUsagePct float64     `json:"volume_usage_pct"`
	StaffCount     int         `json:"staff_count"`
}

type CompanySummary struct {
	TotalRealizedGain  float64      `json:"total_realized_gain"`
	TotalPotentialGain float64      `json:"total_potential_gain"`
	VolumeUsagePct     float64      `json:"volume_usage_pct"`
	UnitCount          int          `json:"unit_count"`
	StaffCount         int          `json:"staff_count"`
	Units              []UnitReport `json:"units"`
}

type EmployeeSales struct {
	Username         string  `json:"username"`
	FullName         string  `json:"full_name"`
	UnitCode         string  `json:"unit_code"`
	TotalSales       float64 `json:"total_sales"`
	TotalQuantity    int     `json:"total_quantity"`
	TransactionCount int     `json:"transaction_count"`
}

type MonthlyBucket struct {
	Key       string  `json:"key"` // YYYY-MM
	MonthName string  `json:"month_name"`
	Amount    float64 `json:"amount"`
	Quantity  int     `json:"quantity"`
}

// DefaultRankingLimit caps the company-wide employee ranking.
const DefaultRankingLimit = 10

type reportService struct {
	unitRepo  repository.UnitRepository
	stockRepo repository.StockRepository
	txRepo    repository.TransactionRepository
	userRepo  repository.UserRepository
}

func NewReportService(unitRepo repository.UnitRepository, stockRepo repository.StockRepository,
	txRepo repository.TransactionRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{
		unitRepo:  unitRepo,
		stockRepo: stockRepo,
		txRepo:    txRepo,
		userRepo:  userRepo,
	}
}

func (s *reportService) UnitFinancialSummary(unitCode string) (*UnitSummary, error) {
	rows, err := s.stockRepo.Query(unitCode, repository.StockQuery{})
	if err != nil {
		return nil, err
	}
	summary := summarize(rows)
	return &summary, nil
}

func (s *reportService) UnitReport(unitCode string) (*UnitReport, error) {
	unit, err := s.unitRepo.FindByCode(unitCode)
	if err != nil {
		return nil, ErrUnitNotFound
	}
	report, _, err := s.buildUnitReport(unit)
	return report, err
}

// buildUnitReport also returns the raw volume used, so CompanySummary can sum
// it without scanning the unit's rows a second time.
func (s *reportService) buildUnitReport(unit *model.Unit) (*UnitReport, float64, error) {
	rows, err := s.stockRepo.Query(unit.Code, repository.StockQuery{})
	if err != nil {
		return nil, 0, err
	}

	staff, err := s.userRepo.CountByUnit(unit.Code)
	if err != nil {
		return nil, 0, err
	}

	var volumeUsed float64
	for _, row := range rows {
		volumeUsed += float64(row.Quantity) * row.Volume
	}

	return &UnitReport{
		UnitCode:       unit.Code,
		UnitName:       unit.Name,
		Summary:        summarize(rows),
		VolumeUsagePct: usagePct(volumeUsed, unit.VolumeCapacity),
		StaffCount:     int(staff),
	}, volumeUsed, nil
}

func (s *reportService) CompanySummary() (*CompanySummary, error) {
	units, err := s.unitRepo.FindAll()
	if err != nil {
		return nil, err
	}

	company := &CompanySummary{
		UnitCount: len(units),
		Units:     make([]UnitReport, 0, len(units)),
	}

	var volumeUsed, capacity float64
	for i := range units {
		report, unitVolume, err := s.buildUnitReport(&units[i])
		if err != nil {
			return nil, err
		}
		volumeUsed += unitVolume
		capacity += units[i].VolumeCapacity

		company.TotalRealizedGain += report.Summary.RealizedGain
		company.TotalPotentialGain += report.Summary.PotentialGain
		company.StaffCount += report.StaffCount
		company.Units = append(company.Units, *report)
	}

	company.VolumeUsagePct = usagePct(volumeUsed, capacity)
	return company, nil
}

func (s *reportService) EmployeePerformance(unitCode, username string) (*EmployeeSales, error) {
	sales, err := s.txRepo.FindSalesByPerformer(unitCode, username)
	if err != nil {
		return nil, err
	}

	perf := &EmployeeSales{Username: username, UnitCode: unitCode}
	for _, t := range sales {
		perf.TotalSales += t.TotalAmount
		perf.TotalQuantity += t.Quantity
		perf.TransactionCount++
	}
	return perf, nil
}

// EmployeeRanking ranks employees company-wide by total sales, descending.
// Ties keep their first-seen order (units by code, then usernames within a
// unit), so the sort must be stable.
func (s *reportService) EmployeeRanking(limit int) ([]EmployeeSales, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}

	units, err := s.unitRepo.FindAll()
	if err != nil {
		return nil, err
	}

	ranking := make([]EmployeeSales, 0)
	for _, unit := range units {
		staff, err := s.userRepo.FindByUnit(unit.Code)
		if err != nil {
			return nil, err
		}
		for _, user := range staff {
			if user.RoleCode() != model.RoleEmployee {
				continue
			}
			perf, err := s.EmployeePerformance(unit.Code, user.Username)
			if err != nil {
				return nil, err
			}
			if perf.TotalSales <= 0 {
				continue
			}
			perf.FullName = user.Name + " " + user.Surname
			ranking = append(ranking, *perf)
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalSales > ranking[j].TotalSales
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// MonthlySales buckets sale transactions by calendar month, chronologically
// ascending, for charting.
func (s *reportService) MonthlySales(from, to time.Time) ([]MonthlyBucket, error) {
	sales, err := s.txRepo.FindSalesBetween(from, to)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyBucket)
	for _, t := range sales {
		key := t.CreatedAt.Format("2006-01")
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthlyBucket{
				Key:       key,
				MonthName: t.CreatedAt.Month().String() + " " + t.CreatedAt.Format("2006"),
			}
			byMonth[key] = bucket
		}
		bucket.Amount += t.TotalAmount
		bucket.Quantity += t.Quantity
	}

	buckets := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets, nil
}

func summarize(rows []repository.StockRow) UnitSummary {
	var summary UnitSummary
	for _, row := range rows {
		summary.RealizedGain += row.UnitGain
		summary.PotentialGain += float64(row.Quantity) * row.SellingPrice
	}
	return summary
}

func usagePct(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return used / capacity * 100
}
