package invoicing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/models"
	"warranty-management-backend/internal/repository"
	"warranty-management-backend/internal/services/warranty"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrForbidden = errors.New("operation forbidden for role")
	ErrNotFound  = errors.New("invoice not found")
	ErrDuplicate = errors.New("invoice already exists for this shop")
)

// ValidationError carries the per-field problems of one invoice.
type ValidationError struct {
	InvoiceID string   `json:"invoice_id"`
	Errors    []string `json:"errors"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invoice %q: %s", e.InvoiceID, strings.Join(e.Errors, "; "))
}

// InvalidShopError names the shop codes no invoice may reference.
type InvalidShopError struct {
	Codes []string `json:"invalid_shop_codes"`
}

func (e *InvalidShopError) Error() string {
	return "invalid shop codes: " + strings.Join(e.Codes, ", ")
}

// Service owns invoice CRUD. Every successful creation, single or bulk,
// produces exactly one warranty inside the same transaction.
type Service struct {
	invoices *repository.InvoiceRepository
	shops    *repository.ShopRepository
	engine   *warranty.Engine
	db       *gorm.DB
	log      *logrus.Logger
}

func NewService(
	invoices *repository.InvoiceRepository,
	shops *repository.ShopRepository,
	engine *warranty.Engine,
	log *logrus.Logger,
) *Service {
	return &Service{
		invoices: invoices,
		shops:    shops,
		engine:   engine,
		db:       invoices.DB(),
		log:      log,
	}
}

// Create validates and inserts one invoice plus its warranty, atomically.
func (s *Service) Create(scope auth.Scope, in InvoiceInput) (*models.Invoice, error) {
	if !scope.CanEdit() {
		return nil, ErrForbidden
	}
	if errs := validate(in); len(errs) > 0 {
		return nil, &ValidationError{InvoiceID: in.InvoiceID, Errors: errs}
	}
	known, err := s.shops.ExistingCodes([]string{in.ShopCode})
	if err != nil {
		return nil, err
	}
	if !known[in.ShopCode] {
		return nil, &InvalidShopError{Codes: []string{in.ShopCode}}
	}
	exists, err := s.invoices.ExistsBusinessKey(in.InvoiceID, in.ShopCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}
	return s.insertWithWarranty(scope, in)
}

func (s *Service) insertWithWarranty(scope auth.Scope, in InvoiceInput) (*models.Invoice, error) {
	years, err := warrantyYears(in)
	if err != nil {
		return nil, &ValidationError{InvoiceID: in.InvoiceID, Errors: []string{err.Error()}}
	}
	date, _ := parseDate(in.Date) // validated already

	inv := &models.Invoice{
		ID:                       uuid.New(),
		InvoiceID:                in.InvoiceID,
		ShopCode:                 in.ShopCode,
		Date:                     date,
		CustomerName:             in.CustomerName,
		CustomerContactNumber:    in.CustomerContactNumber,
		CustomerAltContactNumber: in.CustomerAltContactNumber,
		DeviceModelName:          in.DeviceModelName,
		IMEINumber:               in.IMEINumber,
		DevicePrice:              in.DevicePrice,
		PaymentMode:              in.PaymentMode,
		WarrantyYears:            years,
		CreatedBy:                scope.UserID,
		CreatedAt:                time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.invoices.Create(tx, inv); err != nil {
			return err
		}
		return s.engine.Create(tx, inv.ID, inv.Date, years)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return inv, nil
}

func warrantyYears(in InvoiceInput) (int, error) {
	if in.WarrantyYears != 0 {
		if in.WarrantyYears < 0 || in.WarrantyYears > 10 {
			return 0, warranty.ErrInvalidDuration
		}
		return in.WarrantyYears, nil
	}
	return warranty.ParseDurationYears(in.WarrantyDuration)
}

// BulkResult summarizes a bulk import so partial success stays legible.
type BulkResult struct {
	Success          int               `json:"success_count"`
	Failed           int               `json:"failed_count"`
	Duplicates       int               `json:"duplicate_count"`
	FailedIDs        []string          `json:"failed_ids"`
	DuplicateIDs     []string          `json:"duplicate_ids"`
	ValidationErrors []ValidationError `json:"validation_errors"`
	BatchID          uuid.UUID         `json:"batch_id"`
}

// rowOutcome is what BulkImport decided to do with one row.
type rowOutcome int

const (
	rowInsert rowOutcome = iota
	rowInvalid
	rowUnknownShop
	rowDuplicate
)

func businessKey(row InvoiceInput) string {
	return row.InvoiceID + "|" + row.ShopCode
}

// classifyRow sorts one bulk row into its outcome: field errors, an unknown
// shop, a duplicate of an earlier batch row or a stored invoice, or an
// insert. Validation runs first, so a malformed row is never reported as a
// duplicate. The same (invoice_id, shop_code) pair is a duplicate; the same
// invoice_id under a different shop is not.
func classifyRow(
	row InvoiceInput,
	known map[string]bool,
	seen map[string]bool,
	stored func(invoiceID, shopCode string) (bool, error),
) (rowOutcome, []string, error) {
	if errs := validate(row); len(errs) > 0 {
		return rowInvalid, errs, nil
	}
	if !known[row.ShopCode] {
		return rowUnknownShop, []string{(&InvalidShopError{Codes: []string{row.ShopCode}}).Error()}, nil
	}
	if seen[businessKey(row)] {
		return rowDuplicate, nil, nil
	}
	dup, err := stored(row.InvoiceID, row.ShopCode)
	if err != nil {
		return rowInsert, nil, err
	}
	if dup {
		return rowDuplicate, nil, nil
	}
	return rowInsert, nil, nil
}

// BulkImport processes rows independently: a bad row lands in the summary,
// it never aborts the batch. Shop codes are resolved once up front; each
// surviving row gets its own invoice+warranty transaction.
func (s *Service) BulkImport(scope auth.Scope, rows []InvoiceInput) (*BulkResult, error) {
	if !scope.CanEdit() {
		return nil, ErrForbidden
	}

	known, err := s.knownShops(rows)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{
		FailedIDs:        []string{},
		DuplicateIDs:     []string{},
		ValidationErrors: []ValidationError{},
	}
	seen := make(map[string]bool) // duplicates inside the batch itself

	for _, row := range rows {
		outcome, errs, err := classifyRow(row, known, seen, s.invoices.ExistsBusinessKey)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case rowInvalid, rowUnknownShop:
			result.Failed++
			result.ValidationErrors = append(result.ValidationErrors,
				ValidationError{InvoiceID: row.InvoiceID, Errors: errs})
			if row.InvoiceID != "" {
				result.FailedIDs = append(result.FailedIDs, row.InvoiceID)
			}
			continue
		case rowDuplicate:
			result.Duplicates++
			result.DuplicateIDs = append(result.DuplicateIDs, row.InvoiceID)
			continue
		}
		seen[businessKey(row)] = true

		if _, err := s.insertWithWarranty(scope, row); err != nil {
			var validationErr *ValidationError
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate):
				result.Duplicates++
				result.DuplicateIDs = append(result.DuplicateIDs, row.InvoiceID)
			case errors.As(err, &validationErr):
				result.Failed++
				result.FailedIDs = append(result.FailedIDs, row.InvoiceID)
				result.ValidationErrors = append(result.ValidationErrors, *validationErr)
			default:
				s.log.WithError(err).WithField("invoice_id", row.InvoiceID).
					Error("bulk import row failed")
				result.Failed++
				result.FailedIDs = append(result.FailedIDs, row.InvoiceID)
			}
			continue
		}
		result.Success++
	}

	result.BatchID = s.recordBatch(scope, len(rows), result)
	return result, nil
}

func (s *Service) knownShops(rows []InvoiceInput) (map[string]bool, error) {
	codeSet := make(map[string]bool)
	var codes []string
	for _, row := range rows {
		if row.ShopCode != "" && !codeSet[row.ShopCode] {
			codeSet[row.ShopCode] = true
			codes = append(codes, row.ShopCode)
		}
	}
	if len(codes) == 0 {
		return map[string]bool{}, nil
	}
	return s.shops.ExistingCodes(codes)
}

func (s *Service) recordBatch(scope auth.Scope, total int, result *BulkResult) uuid.UUID {
	errsJSON, _ := json.Marshal(result.ValidationErrors)
	batch := &models.ImportBatch{
		ID:               uuid.New(),
		UploadedBy:       scope.UserID,
		TotalRows:        total,
		SuccessCount:     result.Success,
		FailedCount:      result.Failed,
		DuplicateCount:   result.Duplicates,
		ValidationErrors: errsJSON,
		CreatedAt:        time.Now(),
	}
	if err := s.db.Create(batch).Error; err != nil {
		s.log.WithError(err).Error("failed to persist import batch record")
	}
	return batch.ID
}

// List returns invoices for the scope; managers can restrict to their own.
func (s *Service) List(scope auth.Scope, mineOnly bool) ([]models.Invoice, error) {
	if !scope.CanRead() {
		return nil, ErrForbidden
	}
	var createdBy *uuid.UUID
	if mineOnly && scope.Role == auth.RoleManager {
		createdBy = &scope.UserID
	}
	invoices, err := s.invoices.List(createdBy)
	if err != nil {
		return nil, err
	}
	if scope.Role == auth.RoleShopOwner {
		scoped := invoices[:0]
		for _, inv := range invoices {
			if scope.AllowsShop(inv.ShopCode) {
				scoped = append(scoped, inv)
			}
		}
		invoices = scoped
	}
	return invoices, nil
}

func (s *Service) Get(id uuid.UUID, scope auth.Scope) (*models.Invoice, error) {
	if !scope.CanRead() {
		return nil, ErrForbidden
	}
	inv, err := s.invoices.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !scope.AllowsShop(inv.ShopCode) {
		return nil, ErrForbidden
	}
	return inv, nil
}

// Update rewrites the mutable invoice fields. Warranty dates are derived at
// creation and deliberately untouched here.
func (s *Service) Update(id uuid.UUID, scope auth.Scope, in InvoiceInput) error {
	if !scope.CanEdit() {
		return ErrForbidden
	}
	if errs := validate(in); len(errs) > 0 {
		return &ValidationError{InvoiceID: in.InvoiceID, Errors: errs}
	}
	date, _ := parseDate(in.Date)
	fields := map[string]interface{}{
		"date":                        date,
		"customer_name":               in.CustomerName,
		"customer_contact_number":     in.CustomerContactNumber,
		"customer_alt_contact_number": in.CustomerAltContactNumber,
		"device_model_name":           in.DeviceModelName,
		"imei_number":                 in.IMEINumber,
		"device_price":                in.DevicePrice,
		"payment_mode":                in.PaymentMode,
		"shop_code":                   in.ShopCode,
	}
	return s.invoices.Update(id, fields)
}

func (s *Service) Delete(id uuid.UUID, scope auth.Scope) error {
	if !scope.CanEdit() {
		return ErrForbidden
	}
	return s.invoices.Delete(id)
}
