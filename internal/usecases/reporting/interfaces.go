package reporting

import (
	"context"
	"time"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// LeadSource supplies lead records whose creation timestamp falls within an
// inclusive date range. The reporting pipeline only ever reads from it.
type LeadSource interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Lead, error)
}

// Reporter turns a raw date argument and a reference instant into an
// aggregated report.
type Reporter interface {
	BuildReport(ctx context.Context, expression string, now time.Time) (*domain.Report, error)
}
