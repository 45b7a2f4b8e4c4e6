package handler

import (
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/leadreports/lead-report-bot/internal/usecases/reporting"
	"github.com/leadreports/lead-report-bot/pkg/apiErrors"
	"github.com/leadreports/lead-report-bot/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetReport builds a report for the date expression in the "expr" query
// parameter. An absent parameter means today, same as the chat command.
// "from"/"to" ISO dates are accepted as an alternative to "expr".
func GetReport(reporter reporting.Reporter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		expression, err := reportExpression(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "from/to must be ISO dates (yyyy-mm-dd)", nil)
			return
		}

		logrus.WithField("expression", expression).Info("INIT - GetReport")

		report, err := reporter.BuildReport(r.Context(), expression, time.Now().In(loc))
		if err != nil {
			writeReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.WithError(err).Error("error encoding report response")
		}
	}
}

// reportExpression resolves the query parameters to the same expression
// grammar the chat command uses.
func reportExpression(r *http.Request) (string, error) {
	query := r.URL.Query()
	if expr := query.Get("expr"); expr != "" || query.Get("from") == "" {
		return expr, nil
	}

	from, err := utils.ParseDate(query.Get("from"))
	if err != nil {
		return "", err
	}

	to := from
	if rawTo := query.Get("to"); rawTo != "" {
		if to, err = utils.ParseDate(rawTo); err != nil {
			return "", err
		}
	}

	return from.Format("02.01.2006") + "-" + to.Format("02.01.2006"), nil
}

func writeReportError(w http.ResponseWriter, err error) {
	expression, _ := reporting.ExpressionFromError(err)
	details := map[string]string{"expression": expression}

	switch {
	case errors.Is(err, reporting.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDate, "calendar-impossible date or reversed range", details)
	case errors.Is(err, reporting.ErrUnknownMonth):
		apiErrors.WriteError(w, apiErrors.ErrUnknownMonth, "month token is not in the mapping", details)
	case errors.Is(err, reporting.ErrUnrecognizedFormat):
		apiErrors.WriteError(w, apiErrors.ErrUnrecognizedFormat, "date expression matches no supported format", details)
	case errors.Is(err, reporting.ErrDataSourceUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrDataSourceUnavailable, "lead storage is unreachable", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "report pipeline failed", nil)
	}
}
