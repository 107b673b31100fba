package warranty

import (
	"sort"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/models"
)

// Horizon of the expiry notification window.
const notifyWindowDays = 30

// Expiring returns warranties entering the 30-day expiry window, nearest
// expiry first. The window is inclusive on both ends and reads the stored
// status: its lower bound (today) already excludes anything past expiry.
func (e *Engine) Expiring(scope auth.Scope) ([]Entry, error) {
	if !scope.CanRead() {
		return nil, ErrForbidden
	}
	if scope.Role == auth.RoleShopOwner && scope.ShopCode == "" {
		return nil, ErrShopCodeRequired
	}

	today := dateOnly(time.Now())
	until := today.AddDate(0, 0, notifyWindowDays)

	var rows []Row
	query := e.db.Table("warranties w").
		Select(`w.id AS warranty_id, i.invoice_id, i.customer_name,
			i.device_model_name, i.imei_number, i.shop_code, s.shop_name,
			w.start_date, w.end_date, w.status`).
		Joins("JOIN invoices i ON i.id = w.invoice_id").
		Joins("LEFT JOIN shops s ON s.shop_code = i.shop_code").
		Where("w.status = ?", models.WarrantyActive).
		Where("w.end_date BETWEEN ? AND ?", today, until).
		Order("w.end_date ASC")
	switch scope.Role {
	case auth.RoleShopOwner:
		query = query.Where("i.shop_code = ?", scope.ShopCode)
	case auth.RoleManager:
		query = query.Where("i.created_by = ?", scope.UserID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return buildNotifications(rows, today), nil
}

// AdminSummary is the admin notification payload: the flat list plus the
// same rows grouped per shop and two counters derived from them.
type AdminSummary struct {
	Total         int                `json:"total_count"`
	ShopsAffected int                `json:"shops_affected"`
	Notifications []Entry            `json:"notifications"`
	ByShop        map[string][]Entry `json:"by_shop"`
}

// ExpiringAdmin returns the global expiry window aggregated by shop. The
// grouping and counters are computed over the already-fetched list, there is
// no second query.
func (e *Engine) ExpiringAdmin() (*AdminSummary, error) {
	entries, err := e.Expiring(auth.AdminScope())
	if err != nil {
		return nil, err
	}
	return summarize(entries), nil
}

// buildNotifications converts rows into entries sorted strictly ascending by
// end date. The SQL already orders; sorting again keeps the contract
// independent of how the rows were fetched.
func buildNotifications(rows []Row, today time.Time) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry(today))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EndDate < entries[j].EndDate
	})
	return entries
}

func summarize(entries []Entry) *AdminSummary {
	byShop := make(map[string][]Entry)
	for _, entry := range entries {
		byShop[entry.ShopCode] = append(byShop[entry.ShopCode], entry)
	}
	return &AdminSummary{
		Total:         len(entries),
		ShopsAffected: len(byShop),
		Notifications: entries,
		ByShop:        byShop,
	}
}
