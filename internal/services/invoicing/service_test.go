package invoicing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noStored(invoiceID, shopCode string) (bool, error) {
	return false, nil
}

func TestClassifyRowSameInvoiceIDAcrossShops(t *testing.T) {
	known := map[string]bool{"SP001": true, "SP002": true}
	seen := map[string]bool{}

	first := validInput()
	first.InvoiceID = "INV100"
	first.ShopCode = "SP001"

	second := first
	second.ShopCode = "SP002"

	// Same invoice number under two different shops: both insert.
	outcome, _, err := classifyRow(first, known, seen, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowInsert, outcome)
	seen[businessKey(first)] = true

	outcome, _, err = classifyRow(second, known, seen, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowInsert, outcome)
	seen[businessKey(second)] = true

	// A third row repeating (INV100, SP001) is a duplicate, not a
	// validation failure.
	outcome, errs, err := classifyRow(first, known, seen, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowDuplicate, outcome)
	assert.Empty(t, errs)
}

func TestClassifyRowStoredDuplicate(t *testing.T) {
	known := map[string]bool{"SP001": true}
	row := validInput()

	outcome, _, err := classifyRow(row, known, map[string]bool{},
		func(invoiceID, shopCode string) (bool, error) {
			return invoiceID == row.InvoiceID && shopCode == row.ShopCode, nil
		})
	require.NoError(t, err)
	assert.Equal(t, rowDuplicate, outcome)
}

func TestClassifyRowInvalidBeforeDuplicate(t *testing.T) {
	known := map[string]bool{"SP001": true}
	row := validInput()
	row.IMEINumber = "bad"
	seen := map[string]bool{businessKey(row): true}

	// A malformed row is reported with its field errors even when its
	// business key was already used.
	outcome, errs, err := classifyRow(row, known, seen, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowInvalid, outcome)
	assert.Contains(t, errs, "imei_number must be exactly 15 digits")
}

func TestClassifyRowInvalidDuration(t *testing.T) {
	known := map[string]bool{"SP001": true}
	row := validInput()
	row.WarrantyDuration = "soon"

	outcome, errs, err := classifyRow(row, known, map[string]bool{}, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowInvalid, outcome)
	assert.Contains(t, errs, "warranty duration must be a whole number of years between 1 and 10")
}

func TestClassifyRowUnknownShop(t *testing.T) {
	row := validInput()
	row.ShopCode = "SP999"

	outcome, errs, err := classifyRow(row, map[string]bool{"SP001": true}, map[string]bool{}, noStored)
	require.NoError(t, err)
	assert.Equal(t, rowUnknownShop, outcome)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "SP999")
}

func TestClassifyRowStorageError(t *testing.T) {
	boom := errors.New("connection reset")
	_, _, err := classifyRow(validInput(), map[string]bool{"SP001": true}, map[string]bool{},
		func(string, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
