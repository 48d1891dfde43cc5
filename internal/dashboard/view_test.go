package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/browseiq/internal/analytics"
	"github.com/runnerr0/browseiq/internal/chart"
)

func TestPresent_Ready(t *testing.T) {
	snap := &analytics.Snapshot{
		DomainFrequency:   []analytics.DomainRecord{{Domain: "google.com", Visits: 50, Category: "Search", Percentage: 25}},
		CategoryBreakdown: []analytics.CategoryRecord{{Category: "Search", Visits: 50, Percentage: 100}},
	}

	v := Present(analytics.Ready(snap), 8)

	assert.Equal(t, StatusCharts, v.Status)
	assert.Empty(t, v.Banner)
	assert.False(t, v.Sample)
	require.Len(t, v.Categories, 1)
	assert.Equal(t, "#F59E0B", v.Categories[0].Color)
	require.Len(t, v.Domains, 1)
	assert.Equal(t, "google.com", v.Domains[0].Label)
	assert.Equal(t, 50, v.Visits)
}

func TestPresent_UnknownCategoriesRenderGray(t *testing.T) {
	snap := &analytics.Snapshot{
		DomainFrequency: []analytics.DomainRecord{{Domain: "example.org", Visits: 7, Category: ""}},
		CategoryBreakdown: []analytics.CategoryRecord{
			{Category: "", Visits: 4, Percentage: 57.1},
			{Category: "Quantum Knitting", Visits: 3, Percentage: 42.9},
		},
	}

	v := Present(analytics.Ready(snap), 8)

	assert.Equal(t, StatusCharts, v.Status)
	require.Len(t, v.Categories, 2)
	for _, slice := range v.Categories {
		assert.Equal(t, chart.FallbackColor, slice.Color)
	}
	assert.Equal(t, 7, v.Visits)
}

func TestPresent_NetworkFailureFallsBackToSample(t *testing.T) {
	state := analytics.Failed(&analytics.FetchError{Kind: analytics.NetworkFailure, Err: errors.New("refused")})

	v := Present(state, 8)

	assert.Equal(t, StatusCharts, v.Status)
	assert.True(t, v.Sample)
	assert.Equal(t, SampleBanner, v.Banner)
	sample := analytics.SampleSnapshot()
	assert.Len(t, v.Categories, len(sample.CategoryBreakdown))
	assert.Len(t, v.Domains, len(sample.DomainFrequency))
}

func TestPresent_MalformedShowsNoData(t *testing.T) {
	state := analytics.Failed(&analytics.FetchError{Kind: analytics.MalformedResponse, Err: errors.New("bad")})

	v := Present(state, 8)

	assert.Equal(t, StatusNoData, v.Status)
	assert.Equal(t, NoDataMessage, v.Message)
	assert.Empty(t, v.Banner)
	assert.Nil(t, v.Categories)
	assert.Nil(t, v.Domains)
}

func TestPresent_EmptyShowsNoData(t *testing.T) {
	v := Present(analytics.Ready(&analytics.Snapshot{
		DomainFrequency:   []analytics.DomainRecord{},
		CategoryBreakdown: []analytics.CategoryRecord{},
	}), 8)

	assert.Equal(t, StatusNoData, v.Status)
	assert.Equal(t, NoDataMessage, v.Message)
}

func TestPresent_Loading(t *testing.T) {
	v := Present(analytics.Loading(), 8)

	assert.Equal(t, StatusLoading, v.Status)
	assert.Equal(t, LoadingText, v.Message)
}
