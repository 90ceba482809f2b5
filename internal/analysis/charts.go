package analysis

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	panelWidth  = 560
	panelHeight = 420
	gridCols    = 3
)

// RenderCharts draws the five comparison panels and writes them to path as a
// single PNG laid out on a 3x2 grid.
func RenderCharts(path string, results []PlayerComparison) error {
	if len(results) == 0 {
		return fmt.Errorf("no comparison data to chart")
	}

	panels := make([]image.Image, 0, 5)
	renderers := []func([]PlayerComparison) (image.Image, error){
		renderPointsDiffBars,
		renderBeforeAfterScatter,
		renderOverallAverages,
		renderOutcomePie,
		renderSecondaryDiffs,
	}
	for _, render := range renderers {
		img, err := render(results)
		if err != nil {
			return fmt.Errorf("failed to render chart panel: %w", err)
		}
		panels = append(panels, img)
	}

	grid := composeGrid(panels, gridCols)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, grid); err != nil {
		return fmt.Errorf("failed to encode chart png: %w", err)
	}
	return nil
}

// renderPointsDiffBars charts the point difference for the top-ranked
// players, green when better after sunset, red when worse.
func renderPointsDiffBars(results []PlayerComparison) (image.Image, error) {
	top := results
	if len(top) > 10 {
		top = top[:10]
	}

	bars := make([]chart.Value, 0, len(top))
	for _, r := range top {
		fill := chart.ColorGreen
		if r.PointsDiff < 0 {
			fill = chart.ColorRed
		}
		bars = append(bars, chart.Value{
			Value: r.PointsDiff,
			Label: lastName(r.Name),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	bc := chart.BarChart{
		Title:    "Point Difference (After - Before Sunset)",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 34,
		Bars:     bars,
	}
	return renderPNG(bc.Render)
}

// renderBeforeAfterScatter plots average points before sunset against after,
// with the y=x line for reference.
func renderBeforeAfterScatter(results []PlayerComparison) (image.Image, error) {
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	max := 1.0
	for i, r := range results {
		xs[i] = r.Before.AvgPoints
		ys[i] = r.After.AvgPoints
		if xs[i] > max {
			max = xs[i]
		}
		if ys[i] > max {
			max = ys[i]
		}
	}

	graph := chart.Chart{
		Title:  "Avg Points: Before vs After Sunset",
		Width:  panelWidth,
		Height: panelHeight,
		XAxis:  chart.XAxis{Name: "Before sunset"},
		YAxis:  chart.YAxis{Name: "After sunset"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    5,
					DotColor:    chart.ColorBlue,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeDashArray: []float64{5.0, 5.0},
				},
				XValues: []float64{0, max},
				YValues: []float64{0, max},
			},
		},
	}
	return renderPNG(graph.Render)
}

// renderOverallAverages charts league-wide averages per category in each
// sunset bucket.
func renderOverallAverages(results []PlayerComparison) (image.Image, error) {
	var beforePts, beforeReb, beforeAst float64
	var afterPts, afterReb, afterAst float64
	n := float64(len(results))
	for _, r := range results {
		beforePts += r.Before.AvgPoints
		beforeReb += r.Before.AvgRebounds
		beforeAst += r.Before.AvgAssists
		afterPts += r.After.AvgPoints
		afterReb += r.After.AvgRebounds
		afterAst += r.After.AvgAssists
	}

	beforeStyle := chart.Style{FillColor: chart.ColorOrange, StrokeColor: chart.ColorOrange}
	afterStyle := chart.Style{FillColor: chart.ColorAlternateBlue, StrokeColor: chart.ColorAlternateBlue}

	bc := chart.BarChart{
		Title:    "Overall Averages by Category",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 46,
		Bars: []chart.Value{
			{Value: beforePts / n, Label: "Pts (before)", Style: beforeStyle},
			{Value: afterPts / n, Label: "Pts (after)", Style: afterStyle},
			{Value: beforeReb / n, Label: "Reb (before)", Style: beforeStyle},
			{Value: afterReb / n, Label: "Reb (after)", Style: afterStyle},
			{Value: beforeAst / n, Label: "Ast (before)", Style: beforeStyle},
			{Value: afterAst / n, Label: "Ast (after)", Style: afterStyle},
		},
	}
	return renderPNG(bc.Render)
}

// renderOutcomePie shows how many players were better, worse, or unchanged
// after sunset by points.
func renderOutcomePie(results []PlayerComparison) (image.Image, error) {
	var better, worse, same int
	for _, r := range results {
		switch {
		case r.PointsDiff > 0:
			better++
		case r.PointsDiff < 0:
			worse++
		default:
			same++
		}
	}

	values := make([]chart.Value, 0, 3)
	if better > 0 {
		values = append(values, chart.Value{Value: float64(better), Label: fmt.Sprintf("Better after (%d)", better)})
	}
	if worse > 0 {
		values = append(values, chart.Value{Value: float64(worse), Label: fmt.Sprintf("Worse after (%d)", worse)})
	}
	if same > 0 {
		values = append(values, chart.Value{Value: float64(same), Label: fmt.Sprintf("No change (%d)", same)})
	}

	pc := chart.PieChart{
		Title:  "Players Better vs Worse After Sunset",
		Width:  panelWidth,
		Height: panelHeight,
		Values: values,
	}
	return renderPNG(pc.Render)
}

// renderSecondaryDiffs charts rebound and assist differences for the
// top-ranked players.
func renderSecondaryDiffs(results []PlayerComparison) (image.Image, error) {
	top := results
	if len(top) > 8 {
		top = top[:8]
	}

	rebStyle := chart.Style{FillColor: chart.ColorAlternateGreen, StrokeColor: chart.ColorAlternateGreen}
	astStyle := chart.Style{FillColor: chart.ColorAlternateGray, StrokeColor: chart.ColorAlternateGray}

	bars := make([]chart.Value, 0, len(top)*2)
	for _, r := range top {
		name := lastName(r.Name)
		bars = append(bars,
			chart.Value{Value: r.ReboundsDiff, Label: name + " reb", Style: rebStyle},
			chart.Value{Value: r.AssistsDiff, Label: name + " ast", Style: astStyle},
		)
	}

	bc := chart.BarChart{
		Title:    "Rebound and Assist Differences",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 22,
		Bars:     bars,
	}
	return renderPNG(bc.Render)
}

// renderPNG runs one of go-chart's Render funcs and decodes the result back
// into an image for grid composition.
func renderPNG(render func(chart.RendererProvider, io.Writer) error) (image.Image, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// composeGrid lays the panels out left to right, top to bottom, on a white
// canvas.
func composeGrid(panels []image.Image, cols int) *image.RGBA {
	rows := (len(panels) + cols - 1) / cols
	grid := image.NewRGBA(image.Rect(0, 0, cols*panelWidth, rows*panelHeight))
	draw.Draw(grid, grid.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, panel := range panels {
		x := (i % cols) * panelWidth
		y := (i / cols) * panelHeight
		rect := image.Rect(x, y, x+panelWidth, y+panelHeight)
		draw.Draw(grid, rect, panel, panel.Bounds().Min, draw.Over)
	}
	return grid
}

func lastName(full string) string {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[i+1:]
		}
	}
	return full
}
