package warranty

import (
	"testing"
	"time"

	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifRow(shop string, endDate time.Time) Row {
	return Row{
		WarrantyID: uuid.New(),
		ShopCode:   shop,
		StartDate:  endDate.AddDate(-2, 0, 0),
		EndDate:    endDate,
		Status:     models.WarrantyActive,
	}
}

func TestBuildNotificationsOrdering(t *testing.T) {
	today := date(2026, time.June, 1)

	// Deliberately unsorted, shops interleaved.
	rows := []Row{
		notifRow("SP002", date(2026, time.June, 20)),
		notifRow("SP001", date(2026, time.June, 3)),
		notifRow("SP003", date(2026, time.July, 1)),
		notifRow("SP001", date(2026, time.June, 10)),
		notifRow("SP002", date(2026, time.June, 1)),
	}

	entries := buildNotifications(rows, today)
	require.Len(t, entries, 5)

	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i-1].EndDate, entries[i].EndDate,
			"entries must be ascending by end_date")
	}
	assert.Equal(t, "SP002", entries[0].ShopCode)
	assert.Equal(t, "SP003", entries[len(entries)-1].ShopCode)
}

func TestBuildNotificationsDaysRemainingBounds(t *testing.T) {
	today := date(2026, time.June, 1)
	rows := []Row{
		notifRow("SP001", today),
		notifRow("SP001", today.AddDate(0, 0, 15)),
		notifRow("SP002", today.AddDate(0, 0, 30)),
	}

	for _, entry := range buildNotifications(rows, today) {
		assert.GreaterOrEqual(t, entry.DaysRemaining, 0)
		assert.LessOrEqual(t, entry.DaysRemaining, 30)
	}
}

func TestSummarizeCounters(t *testing.T) {
	today := date(2026, time.June, 1)
	rows := []Row{
		notifRow("SP001", today.AddDate(0, 0, 1)),
		notifRow("SP001", today.AddDate(0, 0, 2)),
		notifRow("SP002", today.AddDate(0, 0, 3)),
		notifRow("SP003", today.AddDate(0, 0, 4)),
	}

	summary := summarize(buildNotifications(rows, today))

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.ShopsAffected)

	groupTotal := 0
	for _, group := range summary.ByShop {
		groupTotal += len(group)
	}
	assert.Equal(t, summary.Total, groupTotal)
	assert.Len(t, summary.ByShop["SP001"], 2)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := summarize(nil)
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.ShopsAffected)
}
