package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/infrastructure/repository"
	"github.com/leadreports/lead-report-bot/internal/config"
	"github.com/leadreports/lead-report-bot/internal/domain"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
)

//go:generate mockgen -source=daily_report.go -destination=mocks/daily_report.go -package=mocks

// ReportSender delivers a finished report to the operator chat.
type ReportSender interface {
	SendDailyReport(ctx context.Context, report *domain.Report) error
}

// DailyReportConfig holds the schedule of the automatic daily report.
type DailyReportConfig struct {
	Enabled bool
	// SendAt is the local wall-clock send time in HH:MM.
	SendAt string
	// RetentionDays is how long leads are kept; 0 disables pruning.
	RetentionDays int
}

// pruneAt keeps the retention delete away from the report send and from
// the busy evening hours.
const pruneAt = "03:30"

// DailyReportService runs the report pipeline once a day with the implicit
// "today" argument and hands the result to the sender. The service itself
// holds no report state; every run is the same pure pipeline the /report
// command uses.
type DailyReportService struct {
	scheduler          *gocron.Scheduler
	config             DailyReportConfig
	reporter           reporting.Reporter
	sender             ReportSender
	leadRepo           repository.LeadRepository
	loc                *time.Location
	running            bool
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
}

func NewDailyReportService(
	reporter reporting.Reporter,
	sender ReportSender,
	leadRepo repository.LeadRepository,
	appConfig *config.Config,
	loc *time.Location,
) (*DailyReportService, error) {
	if _, _, err := appConfig.DailyReport.SendTime(); err != nil {
		return nil, err
	}

	reportConfig := DailyReportConfig{
		Enabled:       appConfig.DailyReport.Enabled,
		SendAt:        appConfig.DailyReport.Time,
		RetentionDays: appConfig.Report.RetentionDays,
	}

	logrus.WithFields(logrus.Fields{
		"enabled":        reportConfig.Enabled,
		"send_at":        reportConfig.SendAt,
		"retention_days": reportConfig.RetentionDays,
		"timezone":       loc.String(),
	}).Info("daily report: scheduler configured")

	return &DailyReportService{
		scheduler: gocron.NewScheduler(loc),
		config:    reportConfig,
		reporter:  reporter,
		sender:    sender,
		leadRepo:  leadRepo,
		loc:       loc,
	}, nil
}

// Start schedules the daily job and stops it when the context is canceled.
func (s *DailyReportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("daily report: disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Every(1).Day().At(s.config.SendAt).Do(func() {
		s.sendDailyReport(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling daily report: %w", err)
	}

	if s.config.RetentionDays > 0 && s.leadRepo != nil {
		_, err = s.scheduler.Every(1).Day().At(pruneAt).Do(func() {
			s.pruneOldLeads(context.Background())
		})
		if err != nil {
			return fmt.Errorf("scheduling lead retention: %w", err)
		}
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("daily report: stopping scheduler")
		s.scheduler.Stop()
	}()

	logrus.WithField("send_at", s.config.SendAt).Info("daily report: scheduler started")
	return nil
}

func (s *DailyReportService) sendDailyReport(ctx context.Context) {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("daily report: previous run still in progress, skipping")
		return
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.runMutex.Unlock()

	defer func() {
		s.runMutex.Lock()
		s.running = false
		s.lastRunCompletedAt = time.Now()
		s.runMutex.Unlock()
	}()

	report, err := s.reporter.BuildReport(ctx, "", time.Now().In(s.loc))
	if err != nil {
		logrus.WithError(err).Error("daily report: pipeline failed")
		return
	}

	if err := s.sender.SendDailyReport(ctx, report); err != nil {
		logrus.WithError(err).Error("daily report: delivery failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"window": report.Window.Label,
		"total":  report.Total,
	}).Info("daily report: sent")
}

// pruneOldLeads deletes leads past the retention window.
func (s *DailyReportService) pruneOldLeads(ctx context.Context) {
	deleted, err := s.leadRepo.DeleteOlderThan(ctx, s.config.RetentionDays)
	if err != nil {
		logrus.WithError(err).Error("daily report: lead retention delete failed")
		return
	}

	if deleted > 0 {
		logrus.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.RetentionDays,
		}).Info("daily report: old leads pruned")
	}
}

// TriggerManualSend runs the daily report outside its schedule.
func (s *DailyReportService) TriggerManualSend() {
	s.runMutex.Lock()
	if s.running {
		s.runMutex.Unlock()
		logrus.Info("daily report: run already in progress, ignoring manual trigger")
		return
	}
	s.runMutex.Unlock()

	logrus.Info("daily report: manual trigger")
	go s.sendDailyReport(context.Background())
}

// GetStatus reports the scheduler state for the status API.
func (s *DailyReportService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"send_at":               s.config.SendAt,
		"retention_days":        s.config.RetentionDays,
		"timezone":              s.loc.String(),
		"running":               s.running,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
	}
}
