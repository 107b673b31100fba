package warranty

import (
	"testing"
	"time"

	"warranty-management-backend/internal/auth"
	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveStatus(t *testing.T) {
	today := date(2026, time.June, 15)

	tests := []struct {
		name    string
		stored  string
		endDate time.Time
		want    string
	}{
		{
			name:    "active with future end date stays active",
			stored:  models.WarrantyActive,
			endDate: date(2027, time.January, 1),
			want:    models.WarrantyActive,
		},
		{
			name:    "end date today is not yet expired",
			stored:  models.WarrantyActive,
			endDate: today,
			want:    models.WarrantyActive,
		},
		{
			name:    "stale active past end date reads expired",
			stored:  models.WarrantyActive,
			endDate: date(2026, time.June, 14),
			want:    models.WarrantyExpired,
		},
		{
			name:    "already expired stays expired",
			stored:  models.WarrantyExpired,
			endDate: date(2020, time.January, 1),
			want:    models.WarrantyExpired,
		},
		{
			name:    "legacy pending past end date reads expired",
			stored:  models.WarrantyPending,
			endDate: date(2025, time.March, 3),
			want:    models.WarrantyExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveStatus(tt.stored, tt.endDate, today))
		})
	}
}

func TestComputeEndDate(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		years int
		want  time.Time
	}{
		{
			name:  "two year default",
			start: date(2023, time.January, 15),
			years: 2,
			want:  date(2025, time.January, 15),
		},
		{
			name:  "leap day start normalizes to March 1",
			start: date(2024, time.February, 29),
			years: 2,
			want:  date(2026, time.March, 1),
		},
		{
			name:  "leap day start into a leap year keeps Feb 29",
			start: date(2024, time.February, 29),
			years: 4,
			want:  date(2028, time.February, 29),
		},
		{
			name:  "time of day is dropped",
			start: time.Date(2023, time.July, 1, 23, 59, 0, 0, time.UTC),
			years: 1,
			want:  date(2024, time.July, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeEndDate(tt.start, tt.years))
		})
	}
}

func TestStaleExpired(t *testing.T) {
	today := date(2026, time.June, 15)

	staleID := uuid.New()
	rows := []Row{
		{WarrantyID: uuid.New(), Status: models.WarrantyActive, EndDate: date(2026, time.July, 1)},
		{WarrantyID: staleID, Status: models.WarrantyActive, EndDate: date(2026, time.June, 14)},
		{WarrantyID: uuid.New(), Status: models.WarrantyExpired, EndDate: date(2026, time.January, 1)},
	}

	stale := staleExpired(rows, today)
	assert.Equal(t, []uuid.UUID{staleID}, stale)
}

func TestStaleExpiredIdempotent(t *testing.T) {
	today := date(2026, time.June, 15)
	rows := []Row{
		{WarrantyID: uuid.New(), Status: models.WarrantyActive, EndDate: date(2026, time.June, 1)},
		{WarrantyID: uuid.New(), Status: models.WarrantyActive, EndDate: date(2026, time.May, 1)},
	}

	first := staleExpired(rows, today)
	assert.Len(t, first, 2)

	// Simulate the reconcile write and list again: no further corrections.
	for i := range rows {
		rows[i].Status = models.WarrantyExpired
	}
	assert.Empty(t, staleExpired(rows, today))
}

func TestRowToEntryOverwritesStatus(t *testing.T) {
	today := date(2026, time.June, 15)
	row := Row{
		WarrantyID: uuid.New(),
		InvoiceID:  "INV100",
		ShopCode:   "SP001",
		StartDate:  date(2024, time.June, 1),
		EndDate:    date(2026, time.June, 1),
		Status:     models.WarrantyActive,
	}

	entry := row.toEntry(today)
	assert.Equal(t, models.WarrantyExpired, entry.Status)
	assert.Equal(t, "2024-06-01", entry.StartDate)
	assert.Equal(t, "2026-06-01", entry.EndDate)
	assert.Equal(t, -14, entry.DaysRemaining)
}

func TestDetailFinishCrossShopForbidden(t *testing.T) {
	today := date(2026, time.June, 15)
	row := detailRow{
		WarrantyID: uuid.New(),
		ShopCode:   "SP002",
		StartDate:  date(2025, time.January, 1),
		EndDate:    date(2027, time.January, 1),
		Status:     models.WarrantyActive,
	}

	owner := auth.Scope{Role: auth.RoleShopOwner, ShopCode: "SP001"}
	_, err := row.finish(owner, today)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDetailFinishFormatsCalendarDates(t *testing.T) {
	today := date(2026, time.June, 15)
	renewed := date(2025, time.March, 10)
	row := detailRow{
		WarrantyID: uuid.New(),
		InvoiceID:  "INV100",
		ShopCode:   "SP001",
		StartDate:  date(2023, time.January, 15),
		EndDate:    date(2025, time.January, 15),
		Status:     models.WarrantyActive,
		RenewedOn:  &renewed,
	}

	detail, err := row.finish(auth.Scope{Role: auth.RoleShopOwner, ShopCode: "SP001"}, today)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", detail.StartDate)
	assert.Equal(t, "2025-01-15", detail.EndDate)
	require.NotNil(t, detail.RenewedOn)
	assert.Equal(t, "2025-03-10", *detail.RenewedOn)

	// Past the end date the detail reads expired regardless of storage.
	assert.Equal(t, models.WarrantyExpired, detail.Status)
	assert.Negative(t, detail.DaysRemaining)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, daysBetween(date(2026, time.June, 15), date(2026, time.June, 15)))
	assert.Equal(t, 30, daysBetween(date(2026, time.June, 15), date(2026, time.July, 15)))
	assert.Equal(t, -1, daysBetween(date(2026, time.June, 15), date(2026, time.June, 14)))
}
