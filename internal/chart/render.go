package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when there is nothing to draw.
var ErrEmptySeries = errors.New("chart series is empty")

// Format selects the image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q (use png or svg)", s)
	}
}

const barWidth = 30

// RenderText writes a terminal rendering of a pie chart: the title, then one
// legend row per slice with its visits, share and color, and a bar whose
// length is proportional to the share.
func RenderText(w io.Writer, title string, points []Point) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", utf8.RuneCountInString(title))); err != nil {
		return err
	}

	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "  (no data)")
		return err
	}

	labelWidth := 0
	for _, p := range points {
		labelWidth = max(labelWidth, utf8.RuneCountInString(p.Label))
	}

	for _, p := range points {
		n := int(math.Round(p.Percentage / 100 * barWidth))
		n = max(0, min(n, barWidth))
		_, err := fmt.Fprintf(w, "  %-*s  %6s visits  %6s%%  %s  %s\n",
			labelWidth, p.Label,
			formatNumber(p.Value),
			formatNumber(p.Percentage),
			p.Color,
			strings.Repeat("#", n),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// SliceLabel is the label drawn on a pie slice.
func SliceLabel(p Point) string {
	return fmt.Sprintf("%s: %s%%", p.Label, formatNumber(p.Percentage))
}

// RenderImage draws a pie chart of points with go-chart and writes it to w
// in the requested format.
func RenderImage(w io.Writer, format Format, title string, width, height int, points []Point) error {
	total := 0.0
	for _, p := range points {
		total += p.Value
	}
	if len(points) == 0 || total <= 0 {
		return ErrEmptySeries
	}

	values := make([]gochart.Value, 0, len(points))
	for _, p := range points {
		values = append(values, gochart.Value{
			Value: p.Value,
			Label: SliceLabel(p),
			Style: gochart.Style{
				FillColor:   drawing.ColorFromHex(strings.TrimPrefix(p.Color, "#")),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}

	pie := gochart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		Values: values,
	}

	var provider gochart.RendererProvider
	switch format {
	case FormatPNG:
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}

	if err := pie.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
