package stats

import (
	"errors"
	"math"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrShopCodeRequired = errors.New("shop code is required")

// Service computes aggregate sales and warranty reporting straight from the
// invoice and warranty tables. All queries are read-only.
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{db: db, log: log}
}

// PeriodTotals is the sales volume of one period.
type PeriodTotals struct {
	TotalSales    float64 `json:"total_sales"`
	TotalInvoices int64   `json:"total_invoices"`
}

// Comparison is a current/previous period pair with percent changes.
// A zero previous period reports 100% change, matching the dashboards.
type Comparison struct {
	Current         PeriodTotals `json:"current"`
	Previous        PeriodTotals `json:"previous"`
	SalesChange     float64      `json:"sales_change"`
	InvoicesChange  float64      `json:"invoices_change"`
	TopSellingModel string       `json:"top_selling_model"`
}

// WarrantyCounters are the admin-only warranty figures.
type WarrantyCounters struct {
	TotalActiveWarranties   int64 `json:"total_active_warranties"`
	TotalExtendedWarranties int64 `json:"total_extended_warranties"`
}

// Lifetime is the all-time summary for a shop or the whole system.
type Lifetime struct {
	TotalSales         float64    `json:"total_sales"`
	TotalInvoices      int64      `json:"total_invoices"`
	FirstSaleDate      *time.Time `json:"first_sale_date"`
	AvgMonthlySales    float64    `json:"avg_monthly_sales"`
	AvgMonthlyInvoices float64    `json:"avg_monthly_invoices"`
	TopSellingModel    string     `json:"top_selling_model"`
}

const (
	monthCond     = "to_char(date, 'YYYY-MM') = to_char(CURRENT_DATE, 'YYYY-MM')"
	prevMonthCond = "to_char(date, 'YYYY-MM') = to_char(CURRENT_DATE - INTERVAL '1 month', 'YYYY-MM')"
	yearCond      = "EXTRACT(YEAR FROM date) = EXTRACT(YEAR FROM CURRENT_DATE)"
	prevYearCond  = "EXTRACT(YEAR FROM date) = EXTRACT(YEAR FROM CURRENT_DATE) - 1"
)

// ShopMonthly compares the shop's current month against the previous one.
func (s *Service) ShopMonthly(shopCode string) (*Comparison, error) {
	return s.compare(shopCode, monthCond, prevMonthCond)
}

// ShopYearly compares the shop's current year against the previous one.
func (s *Service) ShopYearly(shopCode string) (*Comparison, error) {
	return s.compare(shopCode, yearCond, prevYearCond)
}

// ShopLifetime is the shop's all-time summary with monthly averages.
func (s *Service) ShopLifetime(shopCode string) (*Lifetime, error) {
	return s.lifetime(shopCode)
}

// AdminComparison adds warranty counters and the top manager to the period
// comparison.
type AdminComparison struct {
	Comparison
	Warranties WarrantyCounters `json:"warranties"`
	TopManager string           `json:"top_manager"`
}

func (s *Service) AdminMonthly() (*AdminComparison, error) {
	return s.adminCompare(monthCond, prevMonthCond)
}

func (s *Service) AdminYearly() (*AdminComparison, error) {
	return s.adminCompare(yearCond, prevYearCond)
}

// AdminLifetime is the system-wide all-time summary.
type AdminLifetime struct {
	Lifetime
	Warranties WarrantyCounters `json:"warranties"`
	TopManager string           `json:"top_manager"`
}

func (s *Service) AdminLifetime() (*AdminLifetime, error) {
	life, err := s.lifetime("")
	if err != nil {
		return nil, err
	}
	out := &AdminLifetime{Lifetime: *life}
	if err := s.warrantyCounters(&out.Warranties, ""); err != nil {
		return nil, err
	}
	out.TopManager, err = s.topManager("1=1")
	return out, err
}

func (s *Service) compare(shopCode, currentCond, previousCond string) (*Comparison, error) {
	if shopCode == "" {
		return nil, ErrShopCodeRequired
	}
	return s.buildComparison("shop_code = ?", currentCond, previousCond, shopCode)
}

func (s *Service) adminCompare(currentCond, previousCond string) (*AdminComparison, error) {
	cmp, err := s.buildComparison("1=1", currentCond, previousCond)
	if err != nil {
		return nil, err
	}
	out := &AdminComparison{Comparison: *cmp}
	if err := s.warrantyCounters(&out.Warranties, ""); err != nil {
		return nil, err
	}
	out.TopManager, err = s.topManager(currentCond)
	return out, err
}

func (s *Service) buildComparison(scopeCond, currentCond, previousCond string, args ...interface{}) (*Comparison, error) {
	cmp := &Comparison{}
	if err := s.totals(&cmp.Current, scopeCond+" AND "+currentCond, args...); err != nil {
		return nil, err
	}
	if err := s.totals(&cmp.Previous, scopeCond+" AND "+previousCond, args...); err != nil {
		return nil, err
	}
	cmp.SalesChange = percentChange(cmp.Current.TotalSales, cmp.Previous.TotalSales)
	cmp.InvoicesChange = percentChange(float64(cmp.Current.TotalInvoices), float64(cmp.Previous.TotalInvoices))
	model, err := s.topModel(scopeCond+" AND "+currentCond, args...)
	if err != nil {
		return nil, err
	}
	cmp.TopSellingModel = model
	return cmp, nil
}

func (s *Service) totals(out *PeriodTotals, cond string, args ...interface{}) error {
	return s.db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(device_price), 0) AS total_sales, COUNT(*) AS total_invoices").
		Where(cond, args...).
		Scan(out).Error
}

func (s *Service) topModel(cond string, args ...interface{}) (string, error) {
	var rows []struct {
		DeviceModelName string
	}
	err := s.db.Model(&models.Invoice{}).
		Select("device_model_name").
		Where(cond, args...).
		Group("device_model_name").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return "-", err
	}
	return rows[0].DeviceModelName, nil
}

func (s *Service) topManager(cond string, args ...interface{}) (string, error) {
	var rows []struct {
		ManagerCode string
	}
	err := s.db.Table("invoices i").
		Select("m.manager_code").
		Joins("JOIN managers m ON m.user_id = i.created_by").
		Where(cond, args...).
		Group("m.manager_code").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return "-", err
	}
	return rows[0].ManagerCode, nil
}

func (s *Service) warrantyCounters(out *WarrantyCounters, shopCode string) error {
	query := s.db.Table("warranties w").
		Select(`SUM(CASE WHEN w.renewed_on IS NOT NULL THEN 1 ELSE 0 END) AS total_extended_warranties,
			SUM(CASE WHEN w.status = ? AND w.end_date > CURRENT_DATE THEN 1 ELSE 0 END) AS total_active_warranties`,
			models.WarrantyActive)
	if shopCode != "" {
		query = query.Joins("JOIN invoices i ON i.id = w.invoice_id").
			Where("i.shop_code = ?", shopCode)
	}
	return query.Scan(out).Error
}

func (s *Service) lifetime(shopCode string) (*Lifetime, error) {
	cond := "1=1"
	var args []interface{}
	if shopCode != "" {
		cond = "shop_code = ?"
		args = append(args, shopCode)
	}

	var agg struct {
		TotalSales    float64
		TotalInvoices int64
		FirstSaleDate *time.Time
		AvgSales      *float64
		AvgInvoices   *float64
	}
	err := s.db.Model(&models.Invoice{}).
		Select(`COALESCE(SUM(device_price), 0) AS total_sales,
			COUNT(*) AS total_invoices,
			MIN(date) AS first_sale_date,
			SUM(device_price) / NULLIF(COUNT(DISTINCT to_char(date, 'YYYY-MM')), 0) AS avg_sales,
			COUNT(*)::float / NULLIF(COUNT(DISTINCT to_char(date, 'YYYY-MM')), 0) AS avg_invoices`).
		Where(cond, args...).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	life := &Lifetime{
		TotalSales:    agg.TotalSales,
		TotalInvoices: agg.TotalInvoices,
		FirstSaleDate: agg.FirstSaleDate,
	}
	if agg.AvgSales != nil {
		life.AvgMonthlySales = math.Round(*agg.AvgSales)
	}
	if agg.AvgInvoices != nil {
		life.AvgMonthlyInvoices = math.Round(*agg.AvgInvoices)
	}
	life.TopSellingModel, err = s.topModel(cond, args...)
	return life, err
}

// percentChange rounds to one decimal and reports 100 when there is no
// previous period to compare against.
func percentChange(current, previous float64) float64 {
	if previous <= 0 {
		return 100
	}
	return math.Round((current-previous)/previous*1000) / 10
}

// ModelCount is one bar of the top-models chart.
type ModelCount struct {
	DeviceModelName string `json:"device_model_name"`
	InvoiceCount    int64  `json:"invoice_count"`
}

// ModelCounts returns the scope's ten most-sold device models for the given
// duration (monthly, yearly or lifetime).
func (s *Service) ModelCounts(scope auth.Scope, duration string) ([]ModelCount, error) {
	query := s.db.Model(&models.Invoice{}).
		Select("device_model_name, COUNT(*) AS invoice_count").
		Group("device_model_name").
		Order("invoice_count DESC").
		Limit(10)
	query = scopeFilter(query, scope)
	query = durationFilter(query, duration)

	rows := []ModelCount{}
	err := query.Scan(&rows).Error
	return rows, err
}

// TrendPoint is one day of sales for one model.
type TrendPoint struct {
	Date  string `json:"date"`
	Sales int64  `json:"sales"`
}

// SalesTrend returns per-day sales counts grouped by device model.
func (s *Service) SalesTrend(scope auth.Scope, duration string) (map[string][]TrendPoint, error) {
	var rows []struct {
		Day             time.Time
		DeviceModelName string
		SalesCount      int64
	}
	query := s.db.Model(&models.Invoice{}).
		Select("date AS day, device_model_name, COUNT(*) AS sales_count").
		Group("date, device_model_name").
		Order("day ASC, sales_count DESC")
	query = scopeFilter(query, scope)
	query = durationFilter(query, duration)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	trends := make(map[string][]TrendPoint)
	for _, row := range rows {
		trends[row.DeviceModelName] = append(trends[row.DeviceModelName], TrendPoint{
			Date:  row.Day.Format("2006-01-02"),
			Sales: row.SalesCount,
		})
	}
	return trends, nil
}

func scopeFilter(query *gorm.DB, scope auth.Scope) *gorm.DB {
	switch scope.Role {
	case auth.RoleShopOwner:
		return query.Where("shop_code = ?", scope.ShopCode)
	case auth.RoleManager:
		return query.Where("created_by = ?", scope.UserID)
	}
	return query
}

func durationFilter(query *gorm.DB, duration string) *gorm.DB {
	switch duration {
	case "yearly":
		return query.Where("date >= CURRENT_DATE - INTERVAL '1 year'")
	case "monthly":
		return query.Where("date >= CURRENT_DATE - INTERVAL '30 days'")
	}
	return query
}
