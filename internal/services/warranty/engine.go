package warranty

import (
	"errors"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/models"
	"warranty-management-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("warranty not found")
	ErrForbidden        = errors.New("warranty access forbidden")
	ErrShopCodeRequired = errors.New("shop code is required")
	ErrInvalidDuration  = errors.New("invalid warranty duration")
)

// Engine owns the warranty lifecycle: one record per invoice, calendar-aware
// expiry, effective status derived at read time, and lazy self-healing of
// stale stored status on every listing.
type Engine struct {
	warranties *repository.WarrantyRepository
	db         *gorm.DB
	log        *logrus.Logger
}

func NewEngine(warranties *repository.WarrantyRepository, log *logrus.Logger) *Engine {
	return &Engine{
		warranties: warranties,
		db:         warranties.DB(),
		log:        log,
	}
}

// Create derives and inserts the warranty for a just-created invoice. It must
// run in the same transaction as the invoice insert so neither commits alone.
// A duplicate on the invoice unique index means a retried creation already
// covered this invoice and is treated as a no-op.
func (e *Engine) Create(tx *gorm.DB, invoiceID uuid.UUID, purchaseDate time.Time, years int) error {
	if years <= 0 {
		return ErrInvalidDuration
	}
	w := &models.Warranty{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		StartDate: dateOnly(purchaseDate),
		EndDate:   computeEndDate(purchaseDate, years),
		Status:    models.WarrantyActive,
		CreatedAt: time.Now(),
	}
	err := e.warranties.Insert(tx, w)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		e.log.WithField("invoice_id", invoiceID).Warn("warranty already exists, skipping insert")
		return nil
	}
	return err
}

// Row is one warranty joined with its invoice and (left-joined) shop.
type Row struct {
	WarrantyID      uuid.UUID `gorm:"column:warranty_id"`
	InvoiceID       string
	CustomerName    string
	DeviceModelName string
	IMEINumber      string `gorm:"column:imei_number"`
	ShopCode        string
	ShopName        string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	RenewedOn       *time.Time
	RenewalNotes    *string
}

// Entry is the JSON shape returned to dashboards, with dates as ISO calendar
// dates and status already replaced by the effective status.
type Entry struct {
	WarrantyID      uuid.UUID `json:"warranty_id"`
	InvoiceID       string    `json:"invoice_id"`
	CustomerName    string    `json:"customer_name"`
	DeviceModelName string    `json:"device_model_name"`
	IMEINumber      string    `json:"imei_number"`
	ShopCode        string    `json:"shop_code"`
	ShopName        string    `json:"shop_name"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Status          string    `json:"status"`
	RenewedOn       *string   `json:"renewed_on,omitempty"`
	RenewalNotes    *string   `json:"renewal_notes,omitempty"`
	DaysRemaining   int       `json:"days_remaining"`
}

// List returns every warranty visible to the scope, newest expiry first.
// Rows whose stored status lags behind their dates are corrected in one
// batched update; a failed correction is logged, never surfaced, and the
// caller still sees the computed status.
func (e *Engine) List(scope auth.Scope) ([]Entry, error) {
	if !scope.CanRead() {
		return nil, ErrForbidden
	}
	shopCode := ""
	if scope.Role == auth.RoleShopOwner {
		if scope.ShopCode == "" {
			return nil, ErrShopCodeRequired
		}
		shopCode = scope.ShopCode
	}

	rows, err := e.fetchRows(shopCode)
	if err != nil {
		return nil, err
	}

	today := dateOnly(time.Now())
	if stale := staleExpired(rows, today); len(stale) > 0 {
		if err := e.warranties.ReconcileExpired(stale); err != nil {
			e.log.WithError(err).WithField("count", len(stale)).
				Error("self-heal of expired warranties failed")
		}
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toEntry(today))
	}
	return entries, nil
}

// Get returns one enriched warranty. A shop-scoped caller asking for another
// shop's warranty gets ErrForbidden, never a not-found.
func (e *Engine) Get(id uuid.UUID, scope auth.Scope) (*Detail, error) {
	if !scope.CanRead() {
		return nil, ErrForbidden
	}
	row, err := e.fetchDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.finish(scope, dateOnly(time.Now()))
}

// Renew extends coverage from the previous end date and reactivates the row.
func (e *Engine) Renew(id uuid.UUID, years int, notes string) (*models.Warranty, error) {
	if years <= 0 {
		return nil, ErrInvalidDuration
	}
	w, err := e.warranties.GetModel(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	now := time.Now()
	w.EndDate = w.EndDate.AddDate(years, 0, 0)
	w.Status = models.WarrantyActive
	w.RenewedOn = &now
	if notes != "" {
		w.RenewalNotes = &notes
	}
	if err := e.warranties.Save(w); err != nil {
		return nil, err
	}
	return w, nil
}

// detailRow is the single-warranty join as it comes off the database.
type detailRow struct {
	WarrantyID               uuid.UUID `gorm:"column:warranty_id"`
	InvoiceID                string
	CustomerName             string
	CustomerContactNumber    string
	CustomerAltContactNumber string
	DeviceModelName          string
	IMEINumber               string `gorm:"column:imei_number"`
	ShopCode                 string
	ShopName                 string
	ShopAddress              string
	ShopContact              string
	StartDate                time.Time
	EndDate                  time.Time
	Status                   string
	RenewedOn                *time.Time
	RenewalNotes             *string
}

// Detail is the single-warranty view with customer and shop contact data,
// dates rendered as ISO calendar dates like the listing entries.
type Detail struct {
	WarrantyID               uuid.UUID `json:"warranty_id"`
	InvoiceID                string    `json:"invoice_id"`
	CustomerName             string    `json:"customer_name"`
	CustomerContactNumber    string    `json:"customer_contact_number"`
	CustomerAltContactNumber string    `json:"customer_alt_contact_number"`
	DeviceModelName          string    `json:"device_model_name"`
	IMEINumber               string    `json:"imei_number"`
	ShopCode                 string    `json:"shop_code"`
	ShopName                 string    `json:"shop_name"`
	ShopAddress              string    `json:"shop_address"`
	ShopContact              string    `json:"shop_contact"`
	StartDate                string    `json:"start_date"`
	EndDate                  string    `json:"end_date"`
	Status                   string    `json:"status"`
	RenewedOn                *string   `json:"renewed_on,omitempty"`
	RenewalNotes             *string   `json:"renewal_notes,omitempty"`
	DaysRemaining            int       `json:"days_remaining"`
}

// finish applies the ownership gate and derives the read-time fields. A
// shop-scoped caller never learns whether another shop's warranty exists
// beyond the forbidden answer itself.
func (r detailRow) finish(scope auth.Scope, today time.Time) (*Detail, error) {
	if !scope.AllowsShop(r.ShopCode) {
		return nil, ErrForbidden
	}
	d := &Detail{
		WarrantyID:               r.WarrantyID,
		InvoiceID:                r.InvoiceID,
		CustomerName:             r.CustomerName,
		CustomerContactNumber:    r.CustomerContactNumber,
		CustomerAltContactNumber: r.CustomerAltContactNumber,
		DeviceModelName:          r.DeviceModelName,
		IMEINumber:               r.IMEINumber,
		ShopCode:                 r.ShopCode,
		ShopName:                 r.ShopName,
		ShopAddress:              r.ShopAddress,
		ShopContact:              r.ShopContact,
		StartDate:                r.StartDate.Format("2006-01-02"),
		EndDate:                  r.EndDate.Format("2006-01-02"),
		Status:                   EffectiveStatus(r.Status, r.EndDate, today),
		RenewalNotes:             r.RenewalNotes,
		DaysRemaining:            daysBetween(today, r.EndDate),
	}
	if r.RenewedOn != nil {
		s := r.RenewedOn.Format("2006-01-02")
		d.RenewedOn = &s
	}
	return d, nil
}

func (e *Engine) fetchRows(shopCode string) ([]Row, error) {
	var rows []Row
	query := e.db.Table("warranties w").
		Select(`w.id AS warranty_id, i.invoice_id, i.customer_name,
			i.device_model_name, i.imei_number, i.shop_code, s.shop_name,
			w.start_date, w.end_date, w.status, w.renewed_on, w.renewal_notes`).
		Joins("JOIN invoices i ON i.id = w.invoice_id").
		Joins("LEFT JOIN shops s ON s.shop_code = i.shop_code").
		Order("w.end_date DESC")
	if shopCode != "" {
		query = query.Where("i.shop_code = ?", shopCode)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

func (e *Engine) fetchDetail(id uuid.UUID) (*detailRow, error) {
	var detail detailRow
	err := e.db.Table("warranties w").
		Select(`w.id AS warranty_id, i.invoice_id, i.customer_name,
			i.customer_contact_number, i.customer_alt_contact_number,
			i.device_model_name, i.imei_number, i.shop_code, s.shop_name,
			s.shop_address, s.contact_number AS shop_contact,
			w.start_date, w.end_date, w.status, w.renewed_on, w.renewal_notes`).
		Joins("JOIN invoices i ON i.id = w.invoice_id").
		Joins("LEFT JOIN shops s ON s.shop_code = i.shop_code").
		Where("w.id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r Row) toEntry(today time.Time) Entry {
	entry := Entry{
		WarrantyID:      r.WarrantyID,
		InvoiceID:       r.InvoiceID,
		CustomerName:    r.CustomerName,
		DeviceModelName: r.DeviceModelName,
		IMEINumber:      r.IMEINumber,
		ShopCode:        r.ShopCode,
		ShopName:        r.ShopName,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		Status:          EffectiveStatus(r.Status, r.EndDate, today),
		RenewalNotes:    r.RenewalNotes,
		DaysRemaining:   daysBetween(today, r.EndDate),
	}
	if r.RenewedOn != nil {
		s := r.RenewedOn.Format("2006-01-02")
		entry.RenewedOn = &s
	}
	return entry
}

// EffectiveStatus derives the status a reader should see: past the end date
// the row is expired no matter what storage still says.
func EffectiveStatus(stored string, endDate, today time.Time) string {
	if dateOnly(endDate).Before(dateOnly(today)) {
		return models.WarrantyExpired
	}
	return stored
}

// staleExpired picks the rows whose stored status lags behind their dates.
// Running it again after the corrective write yields nothing, which is what
// makes the self-heal idempotent.
func staleExpired(rows []Row, today time.Time) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range rows {
		if r.Status != models.WarrantyExpired &&
			EffectiveStatus(r.Status, r.EndDate, today) == models.WarrantyExpired {
			ids = append(ids, r.WarrantyID)
		}
	}
	return ids
}

// computeEndDate advances the start date by whole calendar years. AddDate
// normalizes: a Feb-29 start landing in a non-leap year becomes Mar-1.
func computeEndDate(start time.Time, years int) time.Time {
	return dateOnly(start).AddDate(years, 0, 0)
}

// daysBetween counts whole calendar days from one date to another, negative
// when `to` is already past.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
