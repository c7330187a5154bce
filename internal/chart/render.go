package chart

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/dukerupert/energydash/internal/model"
)

var (
	colorProduction  = drawing.ColorFromHex("2ca02c")
	colorConsumption = drawing.ColorFromHex("d62728")
	colorStored      = drawing.ColorFromHex("1f77b4")
	colorPoint       = drawing.ColorFromHex("636efa")
)

var titles = map[Kind]string{
	KindProduction:  "Produção Diária",
	KindConsumption: "Consumo Diário",
	KindStacked:     "Produção e Consumo Diários",
	KindScatter:     "Dispersão: Produção vs Consumo",
	KindPie:         "Porcentagem de Energia Usada vs Armazenada",
}

const (
	chartWidth  = 1100
	chartHeight = 420
	barWidth    = 22
	barSpacing  = 10
)

func renderSVG(kind Kind, s *model.Stats, w io.Writer) error {
	switch kind {
	case KindProduction:
		return dailyBars(titles[kind], s.ProductionDaily, colorProduction).Render(gochart.SVG, w)
	case KindConsumption:
		return dailyBars(titles[kind], s.ConsumptionDaily, colorConsumption).Render(gochart.SVG, w)
	case KindStacked:
		return stackedBars(s).Render(gochart.SVG, w)
	case KindScatter:
		if flat(s.ProductionDaily) || flat(s.ConsumptionDaily) {
			return ErrNoData
		}
		return scatter(s).Render(gochart.SVG, w)
	case KindPie:
		pie, err := usedVsStored(s)
		if err != nil {
			return err
		}
		return pie.Render(gochart.SVG, w)
	default:
		return fmt.Errorf("unknown chart kind %q", kind)
	}
}

// flat reports whether values span no range, which go-chart cannot scale.
func flat(values []float64) bool {
	return len(values) == 0 || floats.Min(values) == floats.Max(values)
}

// upperBound keeps the y axis anchored at zero and non-degenerate.
func upperBound(values ...[]float64) float64 {
	upper := 1.0
	for _, v := range values {
		if len(v) > 0 {
			upper = math.Max(upper, floats.Max(v))
		}
	}
	return upper
}

func fill(c drawing.Color) gochart.Style {
	return gochart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

func dailyBars(title string, values []float64, c drawing.Color) gochart.BarChart {
	bars := make([]gochart.Value, len(values))
	for i, v := range values {
		bars[i] = gochart.Value{Value: v, Label: strconv.Itoa(i + 1), Style: fill(c)}
	}
	return gochart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: upperBound(values)},
		},
		Bars: bars,
	}
}

func stackedBars(s *model.Stats) gochart.StackedBarChart {
	bars := make([]gochart.StackedBar, len(s.ProductionDaily))
	for i := range s.ProductionDaily {
		bars[i] = gochart.StackedBar{
			Name:  strconv.Itoa(i + 1),
			Width: barWidth,
			Values: []gochart.Value{
				{Value: s.ProductionDaily[i], Label: "Produção Diária", Style: fill(colorProduction)},
				{Value: s.ConsumptionDaily[i], Label: "Consumo Diário", Style: fill(colorConsumption)},
			},
		}
	}
	return gochart.StackedBarChart{
		Title:      titles[KindStacked],
		Width:      chartWidth,
		Height:     chartHeight,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Bars:       bars,
	}
}

func scatter(s *model.Stats) gochart.Chart {
	points := gochart.ContinuousSeries{
		Name: "Dias",
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    5,
			DotColor:    colorPoint,
		},
		XValues: s.ProductionDaily,
		YValues: s.ConsumptionDaily,
	}

	series := []gochart.Series{points}
	if s.RegressionValid {
		series = append(series, &gochart.LinearRegressionSeries{
			Name:        "Tendência",
			Style:       gochart.Style{StrokeColor: colorConsumption, StrokeWidth: 2},
			InnerSeries: points,
		})
	}

	return gochart.Chart{
		Title:      titles[KindScatter],
		Width:      chartWidth,
		Height:     chartHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20}},
		XAxis:      gochart.XAxis{Name: "Produção Diária (kWh)"},
		YAxis:      gochart.YAxis{Name: "Consumo Diário (kWh)"},
		Series:     series,
	}
}

func usedVsStored(s *model.Stats) (gochart.PieChart, error) {
	slices := []gochart.Value{
		{Value: s.UsedPercentage, Label: fmt.Sprintf("Usada %.1f%%", s.UsedPercentage), Style: fill(colorConsumption)},
		{Value: s.StoredPercentage, Label: fmt.Sprintf("Armazenada %.1f%%", s.StoredPercentage), Style: fill(colorStored)},
	}

	var values []gochart.Value
	for _, v := range slices {
		if v.Value > 0 {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return gochart.PieChart{}, ErrNoData
	}

	return gochart.PieChart{
		Title:  titles[KindPie],
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}, nil
}

var pageTmpl = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{margin:0;font-family:sans-serif}svg{max-width:100%;height:auto}.empty{padding:2rem;color:#666}</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

func writePage(w io.Writer, title string, body []byte) error {
	return pageTmpl.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body),
	})
}
