// Package report turns training progress into an HTML line chart.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var ErrNoPoints = errors.New("chart has no points")

// Point holds the outcome rates of one reporting window.
type Point struct {
	Episode  int
	WinRateA float64
	WinRateB float64
	DrawRate float64
}

type Chart struct {
	title  string
	points []Point
}

func NewChart(title string) *Chart {
	return &Chart{title: title}
}

func (that *Chart) Add(point Point) {
	that.points = append(that.points, point)
}

func (that *Chart) Points() []Point {
	return append([]Point(nil), that.points...)
}

func (that *Chart) Render(w io.Writer) error {
	if len(that.points) == 0 {
		return ErrNoPoints
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: that.title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	steps := make([]string, 0, len(that.points))
	winsA := make([]opts.LineData, 0, len(that.points))
	winsB := make([]opts.LineData, 0, len(that.points))
	draws := make([]opts.LineData, 0, len(that.points))

	for _, point := range that.points {
		steps = append(steps, fmt.Sprintf("%d", point.Episode))
		winsA = append(winsA, opts.LineData{Value: point.WinRateA})
		winsB = append(winsB, opts.LineData{Value: point.WinRateB})
		draws = append(draws, opts.LineData{Value: point.DrawRate})
	}

	line.SetXAxis(steps).
		AddSeries("wins O", winsA).
		AddSeries("wins X", winsB).
		AddSeries("draws", draws)

	page := components.NewPage()
	page.AddCharts(line)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	return nil
}

// Save renders the chart into an HTML file, creating parent directories.
func (that *Chart) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create chart directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err = that.Render(file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
