package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint before", "2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08", false},
		{"disjoint after", "2024-01-05", "2024-01-08", "2024-01-01", "2024-01-03", false},
		{"shared boundary day conflicts", "2024-01-01", "2024-01-05", "2024-01-05", "2024-01-09", true},
		{"start inside existing", "2024-01-03", "2024-01-10", "2024-01-01", "2024-01-05", true},
		{"end inside existing", "2024-01-01", "2024-01-04", "2024-01-03", "2024-01-08", true},
		{"fully contains existing", "2024-01-01", "2024-01-10", "2024-01-03", "2024-01-05", true},
		{"fully contained by existing", "2024-01-03", "2024-01-05", "2024-01-01", "2024-01-10", true},
		{"identical", "2024-01-01", "2024-01-05", "2024-01-01", "2024-01-05", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aStart), day(tc.aEnd), day(tc.bStart), day(tc.bEnd))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestRentalDays(t *testing.T) {
	require.Equal(t, 2, RentalDays(day("2024-01-01"), day("2024-01-03")))
	require.Equal(t, 1, RentalDays(day("2024-01-01"), day("2024-01-02")))
	require.Equal(t, 0, RentalDays(day("2024-01-01"), day("2024-01-01")))

	// Reversed arguments still yield the absolute span.
	require.Equal(t, 2, RentalDays(day("2024-01-03"), day("2024-01-01")))

	// A partial day counts as a whole day.
	pickup := day("2024-01-01")
	ret := pickup.Add(24*time.Hour + 30*time.Minute)
	require.Equal(t, 2, RentalDays(pickup, ret))
}

func TestRentalAmount(t *testing.T) {
	days := RentalDays(day("2024-01-01"), day("2024-01-03"))
	require.Equal(t, 200.0, float64(days)*100.0)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{
		"2024-03-15",
		"2024-03-15T10:30:00Z",
		"2024-03-15 10:30:00",
		"2024-03-15T10:30:00",
	} {
		got, ok := ParseDate(s)
		require.True(t, ok, s)
		require.Equal(t, 2024, got.Year())
		require.Equal(t, time.March, got.Month())
		require.Equal(t, 15, got.Day())
		require.Equal(t, time.UTC, got.Location())
	}

	for _, s := range []string{"", "not-a-date", "15/03/2024"} {
		_, ok := ParseDate(s)
		require.False(t, ok, s)
	}
}

func TestStatusSets(t *testing.T) {
	// The update path accepts every lifecycle state except confirmed.
	for _, s := range []string{StatusPending, StatusActive, StatusUpcoming, StatusCompleted, StatusCancelled} {
		require.True(t, ValidUpdateStatus(s), s)
	}
	require.False(t, ValidUpdateStatus(StatusConfirmed))

	// The status-patch path is narrower: active and upcoming are
	// reachable only through the general update.
	for _, s := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		require.True(t, ValidPatchStatus(s), s)
	}
	require.False(t, ValidPatchStatus(StatusActive))
	require.False(t, ValidPatchStatus(StatusUpcoming))

	require.False(t, ValidUpdateStatus("deleted"))
	require.False(t, ValidPatchStatus(""))
}

func TestPaymentStatusesAndSources(t *testing.T) {
	for _, s := range []string{PaymentPending, "paid", PaymentCompleted, PaymentFailed, PaymentRefunded} {
		require.True(t, ValidPaymentStatus(s), s)
	}
	require.False(t, ValidPaymentStatus("chargeback"))

	for _, s := range []string{"website", "admin", "phone", "walk-in"} {
		require.True(t, ValidSource(s), s)
	}
	require.False(t, ValidSource("fax"))
}

func TestBlockingStatuses(t *testing.T) {
	require.ElementsMatch(t, []string{StatusPending, StatusActive, StatusUpcoming}, BlockingStatuses)
}
