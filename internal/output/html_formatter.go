package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/rpgo/glidepath/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG glide path chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"signed": FormatSignedCurrency,
	"rate":   FormatRate,
	"age":    FormatAge,
	"add":    func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chart geometry in SVG user units
const (
	chartWidth   = 720.0
	chartHeight  = 300.0
	chartPadding = 40.0
)

var chartColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd", "#8c564b"}

type chartSeries struct {
	Name   string
	Color  string
	Points string
}

type chartData struct {
	Width, Height float64
	Series        []chartSeries
	MinAge        int
	MaxAge        int
	MaxBalance    string
}

func (h HTMLFormatter) Format(results *domain.StrategyComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.StrategyComparison
		Assumptions []string
		Ranked      []domain.StrategySummary
		Chart       chartData
	}{results, assumptionsFor(results), RankStrategies(results), buildChart(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildChart scales every strategy's start-of-year balance into polyline points.
func buildChart(results *domain.StrategyComparison) chartData {
	c := chartData{Width: chartWidth, Height: chartHeight}
	maxBal := 0.0
	first := true
	for _, s := range results.Strategies {
		for _, ys := range s.Result.Snapshots {
			if first || ys.Age < c.MinAge {
				c.MinAge = ys.Age
			}
			if first || ys.Age > c.MaxAge {
				c.MaxAge = ys.Age
			}
			first = false
			if v := ys.MortgageBalance.InexactFloat64(); v > maxBal {
				maxBal = v
			}
		}
	}
	if first {
		return c
	}
	c.MaxBalance = fmt.Sprintf("£%.0f", maxBal)
	span := float64(c.MaxAge - c.MinAge)
	if span == 0 {
		span = 1
	}
	if maxBal == 0 {
		maxBal = 1
	}
	plotW := chartWidth - 2*chartPadding
	plotH := chartHeight - 2*chartPadding
	for i, s := range results.Strategies {
		pts := make([]string, 0, len(s.Result.Snapshots))
		for _, ys := range s.Result.Snapshots {
			x := chartPadding + float64(ys.Age-c.MinAge)/span*plotW
			y := chartPadding + plotH - ys.MortgageBalance.InexactFloat64()/maxBal*plotH
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
		}
		c.Series = append(c.Series, chartSeries{
			Name:   s.Name,
			Color:  chartColors[i%len(chartColors)],
			Points: strings.Join(pts, " "),
		})
	}
	return c
}
