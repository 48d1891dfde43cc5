package chart

import "github.com/runnerr0/browseiq/internal/analytics"

// DefaultDomainLimit is how many domains the domain chart shows.
const DefaultDomainLimit = 8

// FallbackColor is used for unknown categories and for domains past the
// end of the palette.
const FallbackColor = "#6B7280"

// Point is one renderable slice of a chart.
type Point struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

var categoryColors = map[string]string{
	"Other":          "#6B7280",
	"Search":         "#F59E0B",
	"Technology":     "#3B82F6",
	"News & Media":   "#EF4444",
	"Social Media":   "#8B5CF6",
	"E-commerce":     "#10B981",
	"Business Tools": "#F97316",
	"Entertainment":  "#EC4899",
	"Education":      "#14B8A6",
}

var domainPalette = [...]string{
	"#F59E0B", "#3B82F6", "#EF4444", "#8B5CF6", "#10B981",
	"#F97316", "#EC4899", "#14B8A6", "#6366F1", "#84CC16",
}

// CategoryColor returns the fixed color for a category, or FallbackColor
// when the category is not known.
func CategoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return FallbackColor
}

// DomainColor returns the palette color for the domain at position i.
func DomainColor(i int) string {
	if i >= 0 && i < len(domainPalette) {
		return domainPalette[i]
	}
	return FallbackColor
}

// ToCategorySeries maps every category record to a point, in order.
func ToCategorySeries(s *analytics.Snapshot) []Point {
	if s == nil {
		return []Point{}
	}

	points := make([]Point, 0, len(s.CategoryBreakdown))
	for _, c := range s.CategoryBreakdown {
		points = append(points, Point{
			Label:      c.Category,
			Value:      float64(c.Visits),
			Percentage: c.Percentage,
			Color:      CategoryColor(c.Category),
		})
	}
	return points
}

// ToDomainSeries maps the first limit domain records to points, keeping
// their order. A limit <= 0 means DefaultDomainLimit. Records are not
// re-sorted.
func ToDomainSeries(s *analytics.Snapshot, limit int) []Point {
	if s == nil {
		return []Point{}
	}
	if limit <= 0 {
		limit = DefaultDomainLimit
	}

	top := s.DomainFrequency
	if len(top) > limit {
		top = top[:limit]
	}

	points := make([]Point, 0, len(top))
	for i, d := range top {
		points = append(points, Point{
			Label:      d.Domain,
			Value:      float64(d.Visits),
			Percentage: d.Percentage,
			Color:      DomainColor(i),
		})
	}
	return points
}
