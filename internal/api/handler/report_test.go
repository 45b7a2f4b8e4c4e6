package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/leadreports/lead-report-bot/internal/api/handler"
	"github.com/leadreports/lead-report-bot/internal/domain"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
	"github.com/leadreports/lead-report-bot/internal/usecases/reporting/mocks"
)

func kyiv(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Kyiv")
	require.NoError(t, err)
	return loc
}

func TestGetReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := kyiv(t)
	day := time.Date(2026, 2, 22, 0, 0, 0, 0, loc)
	report := &domain.Report{
		Window: domain.NewDay(day, domain.WindowKindSingle),
		Total:  3,
	}

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().
		BuildReport(gomock.Any(), "22.02.2026", gomock.Any()).
		Return(report, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/report?expr=22.02.2026", nil)
	rec := httptest.NewRecorder()

	handler.GetReport(reporter, loc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":3`)
	assert.Contains(t, rec.Body.String(), `"label":"22.02.2026"`)
}

func TestGetReport_FromToTranslatesToRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := kyiv(t)

	reporter := mocks.NewMockReporter(ctrl)
	reporter.EXPECT().
		BuildReport(gomock.Any(), "01.02.2026-22.02.2026", gomock.Any()).
		Return(&domain.Report{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/report?from=2026-02-01&to=2026-02-22", nil)
	rec := httptest.NewRecorder()

	handler.GetReport(reporter, loc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetReport_BadISODate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockReporter(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/v1/report?from=not-a-date", nil)
	rec := httptest.NewRecorder()

	handler.GetReport(reporter, kyiv(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
}

func TestGetReport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid date",
			err:        &reporting.ParseError{Err: reporting.ErrInvalidDate, Expression: "31.02.2026"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VAL_003",
		},
		{
			name:       "unknown month",
			err:        &reporting.ParseError{Err: reporting.ErrUnknownMonth, Expression: "гррр"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VAL_004",
		},
		{
			name:       "unrecognized format",
			err:        &reporting.ParseError{Err: reporting.ErrUnrecognizedFormat, Expression: "zzz"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VAL_005",
		},
		{
			name:       "source unavailable",
			err:        reporting.ErrDataSourceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "SRV_002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reporter := mocks.NewMockReporter(ctrl)
			reporter.EXPECT().
				BuildReport(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/report?expr=whatever", nil)
			rec := httptest.NewRecorder()

			handler.GetReport(reporter, kyiv(t)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}
