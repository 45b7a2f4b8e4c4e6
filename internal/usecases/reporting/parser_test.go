package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

var testMonthTokens = map[string]int{
	"месяц":   0,
	"місяць":  0,
	"февраль": 2,
	"лютий":   2,
	"январь":  1,
}

func newTestParser(t *testing.T) (*DateExpressionParser, time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	// Fixed reference instant: Sunday 22.02.2026, 15:04 local time.
	now := time.Date(2026, 2, 22, 15, 4, 0, 0, loc)
	return NewDateExpressionParser(loc, testMonthTokens), now
}

func day(t *testing.T, year int, month time.Month, d int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	return time.Date(year, month, d, 0, 0, 0, 0, loc)
}

func TestParse_EmptyExpressionIsToday(t *testing.T) {
	parser, now := newTestParser(t)

	for _, raw := range []string{"", "   "} {
		window, err := parser.Parse(raw, now)
		require.NoError(t, err)

		assert.Equal(t, domain.WindowKindToday, window.Kind)
		assert.Equal(t, day(t, 2026, time.February, 22), window.Start)
		assert.Equal(t, day(t, 2026, time.February, 22), window.End)
		assert.True(t, window.SingleDay())
	}
}

func TestParse_SingleDates(t *testing.T) {
	parser, now := newTestParser(t)

	tests := []struct {
		name       string
		expression string
		start      time.Time
		end        time.Time
	}{
		{
			name:       "explicit year",
			expression: "22.02.2026",
			start:      day(t, 2026, time.February, 22),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "previous year stays explicit",
			expression: "31.12.2025",
			start:      day(t, 2025, time.December, 31),
			end:        day(t, 2025, time.December, 31),
		},
		{
			name:       "year defaults to current",
			expression: "05.01",
			start:      day(t, 2026, time.January, 5),
			end:        day(t, 2026, time.January, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := parser.Parse(tt.expression, now)
			require.NoError(t, err)

			assert.Equal(t, domain.WindowKindSingle, window.Kind)
			assert.Equal(t, tt.start, window.Start)
			assert.Equal(t, tt.end, window.End)
		})
	}
}

func TestParse_InvalidCalendarDates(t *testing.T) {
	parser, now := newTestParser(t)

	for _, expression := range []string{
		"31.02.2026", // February has no day 31
		"30.02",
		"31.04.2026", // April has 30 days
		"00.01.2026",
		"15.13.2026", // month 13
	} {
		t.Run(expression, func(t *testing.T) {
			_, err := parser.Parse(expression, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParse_Ranges(t *testing.T) {
	parser, now := newTestParser(t)

	tests := []struct {
		name       string
		expression string
		start      time.Time
		end        time.Time
	}{
		{
			name:       "plain range",
			expression: "01.02-22.02",
			start:      day(t, 2026, time.February, 1),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "single-day range",
			expression: "22.02-22.02",
			start:      day(t, 2026, time.February, 22),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "en dash and spaces",
			expression: "01.02 – 10.02",
			start:      day(t, 2026, time.February, 1),
			end:        day(t, 2026, time.February, 10),
		},
		{
			name:       "explicit years may span a year boundary",
			expression: "28.12.2025-03.01.2026",
			start:      day(t, 2025, time.December, 28),
			end:        day(t, 2026, time.January, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := parser.Parse(tt.expression, now)
			require.NoError(t, err)

			assert.Equal(t, domain.WindowKindRange, window.Kind)
			assert.Equal(t, tt.start, window.Start)
			assert.Equal(t, tt.end, window.End)
		})
	}
}

func TestParse_RangeStartAfterEnd(t *testing.T) {
	parser, now := newTestParser(t)

	for _, expression := range []string{
		"22.02-01.02",
		// Without explicit years both ends resolve to the current year,
		// so a logical year-boundary span is rejected rather than guessed.
		"28.12-03.01",
	} {
		t.Run(expression, func(t *testing.T) {
			_, err := parser.Parse(expression, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDate)
		})
	}
}

func TestParse_MonthTokens(t *testing.T) {
	parser, now := newTestParser(t)

	tests := []struct {
		name       string
		expression string
		start      time.Time
		end        time.Time
	}{
		{
			name:       "generic month alias means current month to date",
			expression: "месяц",
			start:      day(t, 2026, time.February, 1),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "current month by name, case-insensitive",
			expression: "Февраль",
			start:      day(t, 2026, time.February, 1),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "ukrainian current month name",
			expression: "лютий",
			start:      day(t, 2026, time.February, 1),
			end:        day(t, 2026, time.February, 22),
		},
		{
			name:       "past month resolves to the whole month",
			expression: "январь",
			start:      day(t, 2026, time.January, 1),
			end:        day(t, 2026, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := parser.Parse(tt.expression, now)
			require.NoError(t, err)

			assert.Equal(t, domain.WindowKindMonth, window.Kind)
			assert.Equal(t, tt.start, window.Start)
			assert.Equal(t, tt.end, window.End)
		})
	}
}

func TestParse_UnknownMonthWord(t *testing.T) {
	parser, now := newTestParser(t)

	// A Cyrillic word outside the token set is a failed month lookup.
	_, err := parser.Parse("гррр", now)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMonth)

	expression, ok := ExpressionFromError(err)
	require.True(t, ok)
	assert.Equal(t, "гррр", expression)
}

func TestParse_UnrecognizedFormat(t *testing.T) {
	parser, now := newTestParser(t)

	for _, expression := range []string{
		"zzz",
		"2026-02-22",
		"22/02/2026",
		"1.2",
		"22.02.26",
		"01.02-22.02-23.02",
	} {
		t.Run(expression, func(t *testing.T) {
			_, err := parser.Parse(expression, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnrecognizedFormat)

			got, ok := ExpressionFromError(err)
			require.True(t, ok)
			assert.Equal(t, expression, got)
		})
	}
}

func TestParse_DeterministicForFixedNow(t *testing.T) {
	parser, now := newTestParser(t)

	first, err1 := parser.Parse("01.02-22.02", now)
	second, err2 := parser.Parse("01.02-22.02", now)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
