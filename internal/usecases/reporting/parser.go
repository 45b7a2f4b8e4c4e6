package reporting

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

const dayMonthYearLayout = "02.01.2006"

var (
	// A range is two day.month dates (year optional on either end) joined
	// by a hyphen or an en dash, as the original command accepted.
	rangeRe = regexp.MustCompile(`^(\d{2}\.\d{2}(?:\.\d{4})?)\s*[-–]\s*(\d{2}\.\d{2}(?:\.\d{4})?)$`)
	dayRe   = regexp.MustCompile(`^\d{2}\.\d{2}(?:\.\d{4})?$`)
	wordRe  = regexp.MustCompile(`^\p{L}+$`)
)

// DateExpressionParser resolves a free-form date argument into a Window.
// The reference instant is always an explicit parameter, so for a fixed
// "now" the parser is a pure function of its input.
type DateExpressionParser struct {
	loc         *time.Location
	monthTokens map[string]time.Month
}

// NewDateExpressionParser builds a parser for the given report timezone and
// month-token mapping (token → month number, 0 meaning the current month).
func NewDateExpressionParser(loc *time.Location, monthTokens map[string]int) *DateExpressionParser {
	tokens := make(map[string]time.Month, len(monthTokens))
	for token, month := range monthTokens {
		if month < 0 || month > 12 {
			continue
		}
		tokens[strings.ToLower(token)] = time.Month(month)
	}
	return &DateExpressionParser{loc: loc, monthTokens: tokens}
}

// Parse maps the expression to a Window. Grammar forms are tried in order;
// the first match wins:
//
//  1. empty string        → [today, today]
//  2. DD.MM-DD.MM         → inclusive range, year defaults to now's year
//  3. DD.MM.YYYY or DD.MM → single day
//  4. month word          → [first day of month, today] for the current
//     month, the whole month otherwise
//
// Anything else fails with ErrUnrecognizedFormat carrying the expression.
func (p *DateExpressionParser) Parse(raw string, now time.Time) (domain.Window, error) {
	now = now.In(p.loc)
	today := domain.Midnight(now)
	expr := strings.TrimSpace(raw)

	if expr == "" {
		return domain.NewDay(today, domain.WindowKindToday), nil
	}

	if m := rangeRe.FindStringSubmatch(expr); m != nil {
		start, err := p.parseDate(m[1], now.Year())
		if err != nil {
			return domain.Window{}, newParseError(ErrInvalidDate, expr)
		}
		end, err := p.parseDate(m[2], now.Year())
		if err != nil {
			return domain.Window{}, newParseError(ErrInvalidDate, expr)
		}
		if start.After(end) {
			// Covers reversed ranges and year-boundary spans like
			// 28.12-03.01; the latter need explicit years.
			return domain.Window{}, newParseError(ErrInvalidDate, expr)
		}
		return domain.NewRange(start, end, domain.WindowKindRange), nil
	}

	if dayRe.MatchString(expr) {
		day, err := p.parseDate(expr, now.Year())
		if err != nil {
			return domain.Window{}, newParseError(ErrInvalidDate, expr)
		}
		return domain.NewDay(day, domain.WindowKindSingle), nil
	}

	if wordRe.MatchString(expr) {
		if window, ok := p.resolveMonthToken(expr, today); ok {
			return window, nil
		}
		// A word written in the token set's script is a failed month
		// lookup; plain ASCII garbage is just an unknown format.
		if containsNonASCII(expr) {
			return domain.Window{}, newParseError(ErrUnknownMonth, expr)
		}
	}

	return domain.Window{}, newParseError(ErrUnrecognizedFormat, expr)
}

// parseDate parses DD.MM.YYYY, or DD.MM with the given default year.
// time.ParseInLocation rejects calendar-impossible dates such as 31.02.
func (p *DateExpressionParser) parseDate(s string, defaultYear int) (time.Time, error) {
	if strings.Count(s, ".") == 1 {
		s = fmt.Sprintf("%s.%04d", s, defaultYear)
	}
	return time.ParseInLocation(dayMonthYearLayout, s, p.loc)
}

func (p *DateExpressionParser) resolveMonthToken(word string, today time.Time) (domain.Window, bool) {
	month, ok := p.monthTokens[strings.ToLower(word)]
	if !ok {
		return domain.Window{}, false
	}

	if month == 0 || month == today.Month() {
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, p.loc)
		return domain.NewRange(first, today, domain.WindowKindMonth), true
	}

	first := time.Date(today.Year(), month, 1, 0, 0, 0, 0, p.loc)
	last := first.AddDate(0, 1, -1)
	return domain.NewRange(first, last, domain.WindowKindMonth), true
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}
