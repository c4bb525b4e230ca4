package charts

import (
	"bytes"
	"fmt"

	"SpendLens-Backend/domain"

	"github.com/wcharczuk/go-chart/v2"
)

// ChartGenerator renders spending visuals as PNG images.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateSpendChart draws a bar per budget category with the amount spent so
// far, converted from minor units for display.
func (g *ChartGenerator) GenerateSpendChart(summaries []domain.BudgetSummaryResponse) ([]byte, error) {
	if len(summaries) == 0 {
		return nil, domain.ErrNoBudgetsForChart
	}

	bars := make([]chart.Value, 0, len(summaries))
	for _, summary := range summaries {
		bars = append(bars, chart.Value{
			Label: summary.Category,
			Value: float64(summary.Spent) / 100,
		})
	}

	graph := chart.BarChart{
		Title:    "Spending by Category",
		Width:    900,
		Height:   450,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   25,
				Right:  25,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
			Style: chart.Style{
				FontSize: 12,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
