package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

// Service is the report pipeline: parse → fetch → aggregate. Each call is an
// independent computation; a parse failure short-circuits the fetch and a
// fetch failure never produces a partial report.
type Service struct {
	parser     *DateExpressionParser
	aggregator *Aggregator
	source     LeadSource
}

func NewService(parser *DateExpressionParser, aggregator *Aggregator, source LeadSource) Reporter {
	return &Service{
		parser:     parser,
		aggregator: aggregator,
		source:     source,
	}
}

func (s *Service) BuildReport(ctx context.Context, expression string, now time.Time) (*domain.Report, error) {
	window, err := s.parser.Parse(expression, now)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"expression": expression,
			"error":      err.Error(),
		}).Warn("report: date expression rejected")
		return nil, err
	}

	leads, err := s.source.ListByDateRange(ctx, window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"window": window.Label,
			"error":  err.Error(),
		}).Error("report: lead fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}

	report := s.aggregator.Aggregate(window, leads)

	logrus.WithFields(logrus.Fields{
		"window":     window.Label,
		"kind":       window.Kind,
		"total":      report.Total,
		"duplicates": report.Duplicates,
	}).Info("report: built")

	return report, nil
}
