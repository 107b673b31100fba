package invoicing

import (
	"regexp"
	"time"

	"warranty-management-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	imeiRe    = regexp.MustCompile(`^\d{15}$`)
	contactRe = regexp.MustCompile(`^\d{10}$`)
)

var paymentModes = map[string]bool{
	models.PaymentCash:         true,
	models.PaymentUPI:          true,
	models.PaymentCard:         true,
	models.PaymentBankTransfer: true,
}

// InvoiceInput is one invoice as submitted, single create or bulk row.
// warranty_duration carries the legacy "2 years" text; warranty_years is the
// structured replacement and wins when both are present.
type InvoiceInput struct {
	InvoiceID                string          `json:"invoice_id"`
	Date                     string          `json:"date"`
	CustomerName             string          `json:"customer_name"`
	CustomerContactNumber    string          `json:"customer_contact_number"`
	CustomerAltContactNumber string          `json:"customer_alt_contact_number"`
	DeviceModelName          string          `json:"device_model_name"`
	IMEINumber               string          `json:"imei_number"`
	DevicePrice              decimal.Decimal `json:"device_price"`
	PaymentMode              string          `json:"payment_mode"`
	ShopCode                 string          `json:"shop_code"`
	WarrantyYears            int             `json:"warranty_years"`
	WarrantyDuration         string          `json:"warranty_duration"`
}

// validate returns every field problem at once so a bulk row reports its
// full error list in a single pass.
func validate(in InvoiceInput) []string {
	var errs []string
	if in.InvoiceID == "" {
		errs = append(errs, "invoice_id is required")
	}
	if in.ShopCode == "" {
		errs = append(errs, "shop_code is required")
	}
	if in.CustomerName == "" {
		errs = append(errs, "customer_name is required")
	}
	if in.DeviceModelName == "" {
		errs = append(errs, "device_model_name is required")
	}
	if _, err := parseDate(in.Date); err != nil {
		errs = append(errs, "date must be a valid calendar date")
	}
	if !imeiRe.MatchString(in.IMEINumber) {
		errs = append(errs, "imei_number must be exactly 15 digits")
	}
	if in.CustomerContactNumber != "" && !contactRe.MatchString(in.CustomerContactNumber) {
		errs = append(errs, "customer_contact_number must be exactly 10 digits")
	}
	if in.CustomerAltContactNumber != "" && !contactRe.MatchString(in.CustomerAltContactNumber) {
		errs = append(errs, "customer_alt_contact_number must be exactly 10 digits")
	}
	if !in.DevicePrice.IsPositive() {
		errs = append(errs, "device_price must be positive")
	}
	if !paymentModes[in.PaymentMode] {
		errs = append(errs, "payment_mode must be one of CASH, UPI, CARD, BANK_TRANSFER")
	}
	if _, err := warrantyYears(in); err != nil {
		errs = append(errs, "warranty duration must be a whole number of years between 1 and 10")
	}
	return errs
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse("02-01-2006", s)
	}
	return t, err
}
