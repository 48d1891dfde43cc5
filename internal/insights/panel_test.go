package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	mu      sync.Mutex
	started map[string]chan struct{}
	release map[string]chan struct{}
	results map[string]string
	errs    map[string]error
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		started: map[string]chan struct{}{},
		release: map[string]chan struct{}{},
		results: map[string]string{},
		errs:    map[string]error{},
	}
}

// hold makes the query for day block until the returned func is called.
// The blocked query ignores cancellation.
func (f *fakeQuerier) hold(day string) (started <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, r := make(chan struct{}), make(chan struct{})
	f.started[day], f.release[day] = s, r
	return s, func() { close(r) }
}

func (f *fakeQuerier) QueryByDate(_ context.Context, date time.Time) (string, error) {
	day := FormatDate(date)
	f.mu.Lock()
	s, r := f.started[day], f.release[day]
	result, err := f.results[day], f.errs[day]
	f.mu.Unlock()

	if s != nil {
		close(s)
		<-r
	}
	return result, err
}

var (
	day1 = time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
)

func TestPanel_InitiallyIdle(t *testing.T) {
	p := NewPanel(newFakeQuerier(), nil)
	assert.Equal(t, PhaseIdle, p.State().Phase)
}

func TestPanel_ReadyWithResult(t *testing.T) {
	q := newFakeQuerier()
	q.results["2025-01-15"] = "Mostly docs."
	p := NewPanel(q, nil)

	st := p.Select(context.Background(), day2)

	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, "Mostly docs.", st.Text)
	assert.Equal(t, st, p.State())
}

func TestPanel_EmptyResultUsesPlaceholder(t *testing.T) {
	p := NewPanel(newFakeQuerier(), nil)

	st := p.Select(context.Background(), day2)

	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, NoInsightsMessage, st.Text)
}

func TestPanel_FailureMessage(t *testing.T) {
	q := newFakeQuerier()
	q.results["2025-01-15"] = "ignored"
	q.errs["2025-01-15"] = errors.New("connection refused")
	p := NewPanel(q, nil)

	st := p.Select(context.Background(), day2)

	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, FailedMessage, st.Text)
}

func TestPanel_LatestSelectionWins(t *testing.T) {
	q := newFakeQuerier()
	q.results["2025-01-14"] = "first"
	q.results["2025-01-15"] = "second"
	started1, release1 := q.hold("2025-01-14")
	p := NewPanel(q, nil)

	var wg sync.WaitGroup
	var stale State
	wg.Add(1)
	go func() {
		defer wg.Done()
		stale = p.Select(context.Background(), day1)
	}()
	<-started1

	latest := p.Select(context.Background(), day2)
	require.Equal(t, PhaseReady, latest.Phase)
	require.Equal(t, "second", latest.Text)

	release1()
	wg.Wait()

	assert.Equal(t, "second", p.State().Text)
	assert.Equal(t, day2, p.State().Date)
	assert.Equal(t, latest, stale)
}

func TestPanel_TokensIncrease(t *testing.T) {
	p := NewPanel(newFakeQuerier(), nil)

	a := p.Select(context.Background(), day1)
	b := p.Select(context.Background(), day2)

	assert.Less(t, a.Token, b.Token)
}

func TestPanel_OnChange(t *testing.T) {
	q := newFakeQuerier()
	q.results["2025-01-15"] = "hello"
	p := NewPanel(q, nil)

	var phases []Phase
	p.OnChange(func(s State) { phases = append(phases, s.Phase) })

	p.Select(context.Background(), day2)

	assert.Equal(t, []Phase{PhaseLoading, PhaseReady}, phases)
}

func TestPanel_CancelsSupersededRequest(t *testing.T) {
	firstArrived := make(chan struct{})
	firstCanceled := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Date == "2025-01-14" {
			close(firstArrived)
			<-r.Context().Done()
			close(firstCanceled)
			return
		}
		_, _ = w.Write([]byte(`{"result":"insights for ` + req.Date + `"}`))
	}))
	defer srv.Close()

	p := NewPanel(NewClient(srv.URL, 5*time.Second, nil), nil)

	done := make(chan State, 1)
	go func() { done <- p.Select(context.Background(), day1) }()
	<-firstArrived

	latest := p.Select(context.Background(), day2)
	assert.Equal(t, "insights for 2025-01-15", latest.Text)

	select {
	case <-firstCanceled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request was not canceled")
	}
	stale := <-done
	assert.Equal(t, latest.Token, stale.Token)
	assert.Equal(t, latest, p.State())
}

func TestPanel_ObserversSeeStatesInOrder(t *testing.T) {
	q := newFakeQuerier()
	q.results["2025-01-14"] = "first"
	q.results["2025-01-15"] = "second"
	p := NewPanel(q, nil)

	entered, gate := make(chan struct{}), make(chan struct{})
	var (
		mu     sync.Mutex
		events []State
		once   sync.Once
	)
	p.OnChange(func(s State) {
		once.Do(func() {
			close(entered)
			<-gate
		})
		mu.Lock()
		events = append(events, s)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.Select(context.Background(), day1)
	}()
	<-entered

	go func() {
		defer wg.Done()
		p.Select(context.Background(), day2)
	}()
	require.Eventually(t, func() bool { return p.State().Token == 2 }, time.Second, time.Millisecond)
	close(gate)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	for i := 1; i < len(events); i++ {
		assert.LessOrEqual(t, events[i-1].Token, events[i].Token)
	}
	last := events[len(events)-1]
	assert.Equal(t, PhaseReady, last.Phase)
	assert.Equal(t, "second", last.Text)
	assert.Equal(t, day2, last.Date)
	assert.Equal(t, p.State(), last)
}
