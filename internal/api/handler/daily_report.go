package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/internal/scheduler"
	"github.com/leadreports/lead-report-bot/pkg/apiErrors"
)

// RunDailyReport triggers the scheduled daily report outside its schedule.
func RunDailyReport(service *scheduler.DailyReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunDailyReport")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "daily report service is not available", nil)
			return
		}

		service.TriggerManualSend()

		w.Header().Set("Content-Type", "application/json")
		response := map[string]any{
			"message": "daily report triggered",
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.WithError(err).Error("error encoding trigger response")
		}
	}
}

// GetDailyReportStatus returns the scheduler state.
func GetDailyReportStatus(service *scheduler.DailyReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetDailyReportStatus")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "daily report service is not available", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		status := map[string]any{
			"daily_report": service.GetStatus(),
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.WithError(err).Error("error encoding status response")
		}
	}
}
