package invoicing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validInput() InvoiceInput {
	return InvoiceInput{
		InvoiceID:             "INV100",
		Date:                  "2023-01-15",
		CustomerName:          "Asha Rao",
		CustomerContactNumber: "9876543210",
		DeviceModelName:       "Pixel 8",
		IMEINumber:            "123456789012345",
		DevicePrice:           decimal.NewFromInt(34999),
		PaymentMode:           "UPI",
		ShopCode:              "SP001",
	}
}

func TestValidateAcceptsGoodInput(t *testing.T) {
	assert.Empty(t, validate(validInput()))
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*InvoiceInput)
		wantMsg string
	}{
		{
			name:    "missing invoice id",
			mutate:  func(in *InvoiceInput) { in.InvoiceID = "" },
			wantMsg: "invoice_id is required",
		},
		{
			name:    "missing shop code",
			mutate:  func(in *InvoiceInput) { in.ShopCode = "" },
			wantMsg: "shop_code is required",
		},
		{
			name:    "short IMEI",
			mutate:  func(in *InvoiceInput) { in.IMEINumber = "12345678901234" },
			wantMsg: "imei_number must be exactly 15 digits",
		},
		{
			name:    "alphanumeric IMEI",
			mutate:  func(in *InvoiceInput) { in.IMEINumber = "12345678901234a" },
			wantMsg: "imei_number must be exactly 15 digits",
		},
		{
			name:    "contact too short",
			mutate:  func(in *InvoiceInput) { in.CustomerContactNumber = "12345" },
			wantMsg: "customer_contact_number must be exactly 10 digits",
		},
		{
			name:    "alt contact too long",
			mutate:  func(in *InvoiceInput) { in.CustomerAltContactNumber = "12345678901" },
			wantMsg: "customer_alt_contact_number must be exactly 10 digits",
		},
		{
			name:    "zero price",
			mutate:  func(in *InvoiceInput) { in.DevicePrice = decimal.Zero },
			wantMsg: "device_price must be positive",
		},
		{
			name:    "negative price",
			mutate:  func(in *InvoiceInput) { in.DevicePrice = decimal.NewFromInt(-1) },
			wantMsg: "device_price must be positive",
		},
		{
			name:    "unknown payment mode",
			mutate:  func(in *InvoiceInput) { in.PaymentMode = "CHEQUE" },
			wantMsg: "payment_mode must be one of CASH, UPI, CARD, BANK_TRANSFER",
		},
		{
			name:    "garbage date",
			mutate:  func(in *InvoiceInput) { in.Date = "15/01/2023" },
			wantMsg: "date must be a valid calendar date",
		},
		{
			name:    "unparseable warranty duration",
			mutate:  func(in *InvoiceInput) { in.WarrantyDuration = "soon" },
			wantMsg: "warranty duration must be a whole number of years between 1 and 10",
		},
		{
			name:    "warranty years out of range",
			mutate:  func(in *InvoiceInput) { in.WarrantyYears = 15 },
			wantMsg: "warranty duration must be a whole number of years between 1 and 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			assert.Contains(t, validate(in), tt.wantMsg)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	in := InvoiceInput{}
	errs := validate(in)
	// Every required rule should fire at once, not just the first.
	assert.GreaterOrEqual(t, len(errs), 6)
}

func TestValidateContactOptional(t *testing.T) {
	in := validInput()
	in.CustomerContactNumber = ""
	in.CustomerAltContactNumber = ""
	assert.Empty(t, validate(in))
}

func TestParseDateFormats(t *testing.T) {
	iso, err := parseDate("2023-01-15")
	assert.NoError(t, err)
	assert.Equal(t, "2023-01-15", iso.Format("2006-01-02"))

	legacy, err := parseDate("15-01-2023")
	assert.NoError(t, err)
	assert.Equal(t, iso, legacy)
}

func TestWarrantyYears(t *testing.T) {
	in := validInput()

	// Default when nothing is supplied.
	years, err := warrantyYears(in)
	assert.NoError(t, err)
	assert.Equal(t, 2, years)

	// Structured field wins over the legacy text.
	in.WarrantyYears = 3
	in.WarrantyDuration = "1 year"
	years, err = warrantyYears(in)
	assert.NoError(t, err)
	assert.Equal(t, 3, years)

	// Legacy text still honored when that is all we get.
	in.WarrantyYears = 0
	years, err = warrantyYears(in)
	assert.NoError(t, err)
	assert.Equal(t, 1, years)

	in.WarrantyDuration = "soon"
	_, err = warrantyYears(in)
	assert.Error(t, err)
}
