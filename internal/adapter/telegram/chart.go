package telegram

import (
	"bytes"
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/leadreports/lead-report-bot/internal/domain"
)

const maxChartBars = 10

// RenderCityChart renders the city distribution as a PNG bar chart.
func RenderCityChart(report *domain.Report) ([]byte, error) {
	if report.Empty() {
		return nil, errors.New("nothing to chart for an empty report")
	}

	cities := report.Cities
	if len(cities) > maxChartBars {
		cities = cities[:maxChartBars]
	}

	bars := make([]chart.Value, 0, len(cities))
	maxCount := 0
	for _, bucket := range cities {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
		bars = append(bars, chart.Value{
			Value: float64(bucket.Count),
			Label: titleCase(bucket.Name),
		})
	}

	// go-chart rejects a zero-height value range.
	yMax := float64(maxCount)
	if yMax <= 0 {
		yMax = 1
	}

	graph := chart.BarChart{
		Title:    "Заявки по городам — " + windowLabel(report.Window),
		Width:    1100,
		Height:   600,
		BarWidth: 56,
		Background: chart.Style{Padding: chart.Box{
			Top:   50,
			Left:  16,
			Right: 16,
		}},
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: yMax}},
		Bars:  bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
