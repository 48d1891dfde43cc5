// Package dashboard turns an analytics load state into what the user sees.
package dashboard

import (
	"github.com/runnerr0/browseiq/internal/analytics"
	"github.com/runnerr0/browseiq/internal/chart"
)

const (
	SampleBanner  = "Using sample data for demonstration. Failed to load analytics data"
	NoDataMessage = "No analytics data available"
	LoadingText   = "Loading analytics..."
)

// Status is the top-level shape of a View.
type Status string

const (
	StatusLoading Status = "loading"
	StatusCharts  Status = "charts"
	StatusNoData  Status = "no_data"
)

// View is a renderable description of the analytics dashboard.
type View struct {
	Status     Status        `json:"status"`
	Banner     string        `json:"banner,omitempty"`
	Message    string        `json:"message,omitempty"`
	Sample     bool          `json:"sample"`
	Visits     int           `json:"total_visits,omitempty"`
	Categories []chart.Point `json:"categories,omitempty"`
	Domains    []chart.Point `json:"domains,omitempty"`
}

// Present maps state to a view. Network failures fall back to the sample
// dataset with a banner; malformed or empty responses show a message and
// no charts.
func Present(state analytics.LoadState, domainLimit int) View {
	switch state.Phase {
	case analytics.PhaseLoading:
		return View{Status: StatusLoading, Message: LoadingText}

	case analytics.PhaseFailed:
		if state.Failure == analytics.NetworkFailure {
			v := charts(analytics.SampleSnapshot(), domainLimit)
			v.Banner = SampleBanner
			v.Sample = true
			return v
		}
		return View{Status: StatusNoData, Message: NoDataMessage}

	case analytics.PhaseReady:
		if state.Snapshot == nil || state.Snapshot.Empty() {
			return View{Status: StatusNoData, Message: NoDataMessage}
		}
		return charts(state.Snapshot, domainLimit)
	}

	return View{Status: StatusNoData, Message: NoDataMessage}
}

func charts(s *analytics.Snapshot, domainLimit int) View {
	return View{
		Status:     StatusCharts,
		Visits:     s.TotalVisits(),
		Categories: chart.ToCategorySeries(s),
		Domains:    chart.ToDomainSeries(s, domainLimit),
	}
}
