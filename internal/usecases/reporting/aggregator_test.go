package reporting

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	return loc
}

func testLead(id, phone, city, area, platform string, createdAt time.Time) domain.Lead {
	return domain.Lead{
		ID:        id,
		Name:      "Test " + id,
		Phone:     phone,
		Area:      area,
		Location:  city,
		Platform:  platform,
		CreatedAt: createdAt,
	}
}

func TestAggregate_FiltersByCalendarDate(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewRange(
		time.Date(2026, 2, 22, 0, 0, 0, 0, loc),
		time.Date(2026, 2, 22, 0, 0, 0, 0, loc),
		domain.WindowKindRange,
	)

	leads := []domain.Lead{
		testLead("a", "+380501112233", "Київ", "до 50 м²", "ig", time.Date(2026, 2, 22, 10, 0, 0, 0, loc)),
		testLead("b", "+380502223344", "Львів", "до 50 м²", "fb", time.Date(2026, 2, 21, 23, 59, 0, 0, loc)),
	}

	report := aggregator.Aggregate(window, leads)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 0, report.Duplicates)
	assert.Equal(t, []domain.BucketCount{{Name: "київ", Count: 1}}, report.Cities)
}

func TestAggregate_BoundaryDaysInclusive(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewRange(
		time.Date(2026, 2, 1, 0, 0, 0, 0, loc),
		time.Date(2026, 2, 22, 0, 0, 0, 0, loc),
		domain.WindowKindRange,
	)

	leads := []domain.Lead{
		// First second of the start day and last second of the end day.
		testLead("a", "1", "Kyiv", "50", "fb", time.Date(2026, 2, 1, 0, 0, 0, 0, loc)),
		testLead("b", "2", "Kyiv", "50", "fb", time.Date(2026, 2, 22, 23, 59, 59, 0, loc)),
		// One second outside either end.
		testLead("c", "3", "Kyiv", "50", "fb", time.Date(2026, 1, 31, 23, 59, 59, 0, loc)),
		testLead("d", "4", "Kyiv", "50", "fb", time.Date(2026, 2, 23, 0, 0, 0, 0, loc)),
	}

	report := aggregator.Aggregate(window, leads)
	assert.Equal(t, 2, report.Total)
}

func TestAggregate_UTCTimestampsConvertToReportCalendar(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewDay(time.Date(2026, 2, 22, 0, 0, 0, 0, loc), domain.WindowKindSingle)

	// 23:30 UTC on the 21st is already 01:30 on the 22nd in Kyiv (UTC+2).
	leads := []domain.Lead{
		testLead("a", "1", "Kyiv", "50", "fb", time.Date(2026, 2, 21, 23, 30, 0, 0, time.UTC)),
	}

	report := aggregator.Aggregate(window, leads)
	assert.Equal(t, 1, report.Total)
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewRange(
		time.Date(2026, 2, 1, 0, 0, 0, 0, loc),
		time.Date(2026, 2, 22, 0, 0, 0, 0, loc),
		domain.WindowKindRange,
	)

	leads := []domain.Lead{
		testLead("a", "+380501112233", "Київ", "до 50 м²", "ig", time.Date(2026, 2, 10, 9, 0, 0, 0, loc)),
		// Same phone, different city: the earlier lead must win the dedup
		// no matter the input order.
		testLead("b", "+380501112233", "Львів", "до 50 м²", "fb", time.Date(2026, 2, 11, 9, 0, 0, 0, loc)),
		testLead("c", "+380502223344", "Львів", "понад 100 м²", "fb", time.Date(2026, 2, 12, 9, 0, 0, 0, loc)),
		testLead("d", "+380503334455", "Одеса", "до 50 м²", "ig", time.Date(2026, 2, 13, 9, 0, 0, 0, loc)),
	}

	baseline := aggregator.Aggregate(window, leads)
	require.Equal(t, 3, baseline.Total)
	require.Equal(t, 1, baseline.Duplicates)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.Lead, len(leads))
		copy(shuffled, leads)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		assert.Equal(t, baseline, aggregator.Aggregate(window, shuffled))
	}
}

func TestAggregate_EmptyWindowIsZeroReportNotError(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewDay(time.Date(2026, 2, 22, 0, 0, 0, 0, loc), domain.WindowKindSingle)

	report := aggregator.Aggregate(window, nil)

	require.NotNil(t, report)
	assert.True(t, report.Empty())
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Duplicates)
	assert.Empty(t, report.Cities)
	assert.Empty(t, report.Areas)

	// The platform buckets keep the full known set, all zero-valued.
	require.Len(t, report.Platforms, len(domain.KnownPlatforms))
	for _, bucket := range report.Platforms {
		assert.Equal(t, 0, bucket.Count)
	}
}

func TestAggregate_PlatformBucketsStable(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewDay(time.Date(2026, 2, 22, 0, 0, 0, 0, loc), domain.WindowKindSingle)

	leads := []domain.Lead{
		testLead("a", "1", "Kyiv", "50", "ig", time.Date(2026, 2, 22, 9, 0, 0, 0, loc)),
		testLead("b", "2", "Kyiv", "50", "Instagram", time.Date(2026, 2, 22, 10, 0, 0, 0, loc)),
		testLead("c", "3", "Kyiv", "50", "tiktok", time.Date(2026, 2, 22, 11, 0, 0, 0, loc)),
	}

	report := aggregator.Aggregate(window, leads)

	assert.Equal(t, []domain.BucketCount{
		{Name: domain.PlatformFacebook, Count: 0},
		{Name: domain.PlatformInstagram, Count: 2},
		{Name: domain.PlatformMessenger, Count: 0},
		{Name: domain.PlatformOther, Count: 1},
	}, report.Platforms)
}

func TestAggregate_CityNormalization(t *testing.T) {
	loc := kyiv(t)
	aggregator := NewAggregator()

	window := domain.NewDay(time.Date(2026, 2, 22, 0, 0, 0, 0, loc), domain.WindowKindSingle)

	leads := []domain.Lead{
		testLead("a", "1", "Кривий_Ріг", "50", "fb", time.Date(2026, 2, 22, 9, 0, 0, 0, loc)),
		testLead("b", "2", "кривий ріг", "50", "fb", time.Date(2026, 2, 22, 10, 0, 0, 0, loc)),
		testLead("c", "3", "Кривий-Ріг", "50", "fb", time.Date(2026, 2, 22, 11, 0, 0, 0, loc)),
	}

	report := aggregator.Aggregate(window, leads)

	assert.Equal(t, []domain.BucketCount{{Name: "кривий ріг", Count: 3}}, report.Cities)
}
