package handler

import (
	"net/http"
	"time"

	"github.com/leadreports/lead-report-bot/internal/api/handler/router"
	"github.com/leadreports/lead-report-bot/internal/scheduler"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
	"github.com/leadreports/lead-report-bot/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Report(reporter reporting.Reporter, loc *time.Location, apiKey string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/report",
			Method:      http.MethodGet,
			Handler:     GetReport(reporter, loc),
			Middlewares: []func(http.Handler) http.Handler{middleware.APIKey(apiKey)},
		},
	}
}

func DailyReport(service *scheduler.DailyReportService, apiKey string) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/daily-report/run",
			Method:      http.MethodPost,
			Handler:     RunDailyReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.APIKey(apiKey)},
		},
		{
			Path:        "/v1/daily-report/status",
			Method:      http.MethodGet,
			Handler:     GetDailyReportStatus(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.APIKey(apiKey)},
		},
	}
}
