package reporting

import (
	"regexp"
	"strings"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

var citySeparatorsRe = regexp.MustCompile(`[_\-]+`)

// Aggregator computes deterministic per-bucket counts for the leads that
// fall into a window. It holds no state between calls, so concurrent
// invocations never interfere.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate filters leads by the window's calendar dates, collapses leads
// sharing a phone number, and counts the rest per city, area and platform.
// The result depends only on the set of leads, never on their order: the
// dedup winner is the earliest lead (ID as tiebreaker) and dynamic buckets
// are sorted by count then name. An empty window yields a zero-valued
// report, not an error.
func (a *Aggregator) Aggregate(window domain.Window, leads []domain.Lead) *domain.Report {
	unique := make(map[string]domain.Lead)
	included := 0

	for _, lead := range leads {
		if !window.Contains(lead.CreatedAt) {
			continue
		}
		included++

		phone := strings.TrimSpace(lead.Phone)
		current, seen := unique[phone]
		if !seen || earlierLead(lead, current) {
			unique[phone] = lead
		}
	}

	cities := make(map[string]int)
	areas := make(map[string]int)
	platforms := make(map[string]int, len(domain.KnownPlatforms))
	for _, platform := range domain.KnownPlatforms {
		platforms[platform] = 0
	}

	for _, lead := range unique {
		cities[NormalizeCity(lead.Location)]++
		areas[strings.TrimSpace(lead.Area)]++
		platforms[domain.NormalizePlatform(lead.Platform)]++
	}

	platformBuckets := make([]domain.BucketCount, 0, len(domain.KnownPlatforms))
	for _, platform := range domain.KnownPlatforms {
		platformBuckets = append(platformBuckets, domain.BucketCount{
			Name:  platform,
			Count: platforms[platform],
		})
	}

	return &domain.Report{
		Window:     window,
		Total:      len(unique),
		Duplicates: included - len(unique),
		Platforms:  platformBuckets,
		Cities:     domain.SortBuckets(cities),
		Areas:      domain.SortBuckets(areas),
	}
}

// earlierLead reports whether a should win the phone dedup against b.
func earlierLead(a, b domain.Lead) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// NormalizeCity folds city spellings: lower case, underscores and hyphens
// become spaces.
func NormalizeCity(raw string) string {
	city := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimSpace(citySeparatorsRe.ReplaceAllString(city, " "))
}
