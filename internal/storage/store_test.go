package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromiumSchema = `
CREATE TABLE urls (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url LONGVARCHAR,
	title LONGVARCHAR,
	visit_count INTEGER DEFAULT 0 NOT NULL,
	typed_count INTEGER DEFAULT 0 NOT NULL,
	last_visit_time INTEGER NOT NULL,
	hidden INTEGER DEFAULT 0 NOT NULL
);
CREATE TABLE visits (
	id INTEGER PRIMARY KEY,
	url INTEGER NOT NULL,
	visit_time INTEGER NOT NULL,
	from_visit INTEGER,
	transition INTEGER DEFAULT 0 NOT NULL
);
`

var fixtureNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

// writeHistoryFixture creates a History file shaped like Chromium's with
// three recent URLs and one that is two weeks old.
func writeHistoryFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "History")

	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(chromiumSchema)
	require.NoError(t, err)

	urls := []struct {
		id    int64
		url   string
		title any
		count int
		ago   time.Duration
	}{
		{1, "https://google.com/search?q=go", "go - Google Search", 3, 1 * time.Hour},
		{2, "https://github.com/golang/go", "golang/go", 1, 30 * time.Minute},
		{3, "https://news.ycombinator.com/", nil, 2, 48 * time.Hour},
		{4, "https://old.example.com/", "Old", 1, 14 * 24 * time.Hour},
	}
	for _, u := range urls {
		_, err := db.Exec(
			`INSERT INTO urls (id, url, title, visit_count, typed_count, last_visit_time) VALUES (?, ?, ?, ?, 0, ?)`,
			u.id, u.url, u.title, u.count, ToWebKit(fixtureNow.Add(-u.ago)),
		)
		require.NoError(t, err)
	}

	visits := []struct {
		id, url    int64
		ago        time.Duration
		from       any
		transition int64
	}{
		{10, 1, 3 * time.Hour, nil, 1},
		{11, 1, 2 * time.Hour, 10, 0x30000000},
		{12, 1, 1 * time.Hour, 11, 8},
		{13, 2, 30 * time.Minute, 12, 0},
		{14, 3, 48 * time.Hour, 0, 1},
	}
	for _, v := range visits {
		_, err := db.Exec(
			`INSERT INTO visits (id, url, visit_time, from_visit, transition) VALUES (?, ?, ?, ?, ?)`,
			v.id, v.url, ToWebKit(fixtureNow.Add(-v.ago)), v.from, v.transition,
		)
		require.NoError(t, err)
	}

	return path
}

func openFixture(t *testing.T) *SQLiteHistory {
	t.Helper()
	h, err := OpenHistory(writeHistoryFixture(t))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestOpenHistory_Missing(t *testing.T) {
	_, err := OpenHistory(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrHistoryNotFound)
}

func TestOpenHistory_NotAHistoryDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sqlx.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE events (id TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = OpenHistory(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a browser history database")
}

func TestRecentURLs_WindowAndOrder(t *testing.T) {
	h := openFixture(t)
	since := ToWebKit(fixtureNow.Add(-7 * 24 * time.Hour))

	rows, err := h.RecentURLs(context.Background(), since, 100)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "https://github.com/golang/go", rows[0].URL)
	assert.Equal(t, "https://google.com/search?q=go", rows[1].URL)
	assert.Equal(t, "https://news.ycombinator.com/", rows[2].URL)
	assert.Equal(t, "", rows[2].Title)
	assert.Equal(t, int64(3), rows[1].VisitCount)
	assert.Equal(t, fixtureNow.Add(-30*time.Minute), rows[0].LastVisit())
}

func TestRecentURLs_Limit(t *testing.T) {
	h := openFixture(t)

	rows, err := h.RecentURLs(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = h.RecentURLs(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestVisits_OldestFirst(t *testing.T) {
	h := openFixture(t)

	visits, err := h.Visits(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, visits, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{visits[0].ID, visits[1].ID, visits[2].ID})
	assert.Equal(t, int64(0), visits[0].FromVisit)
	assert.Equal(t, int64(10), visits[1].FromVisit)
	assert.Equal(t, int64(1), visits[0].URLID)
}

func TestVisits_UnknownURL(t *testing.T) {
	h := openFixture(t)

	visits, err := h.Visits(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestClose_RemovesCopy(t *testing.T) {
	path := writeHistoryFixture(t)
	h, err := OpenHistory(path)
	require.NoError(t, err)
	copyPath := h.copyPath
	require.NotEqual(t, path, copyPath)

	require.NoError(t, h.Close())

	_, err = os.Stat(copyPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenHistory_ReadOnly(t *testing.T) {
	h := openFixture(t)

	_, err := h.db.Exec(`DELETE FROM urls`)
	assert.Error(t, err)
}

func TestWebKitConversions(t *testing.T) {
	unixZero := int64(11644473600 * 1_000_000)

	assert.Equal(t, time.Unix(0, 0).UTC(), FromWebKit(unixZero))
	assert.True(t, FromWebKit(0).IsZero())
	assert.Equal(t, unixZero, ToWebKit(time.Unix(0, 0)))
	assert.Equal(t, 1500.5, WebKitToUnixMillis(unixZero+1_500_500))

	now := time.Date(2025, 1, 15, 8, 30, 0, 123000, time.UTC)
	assert.Equal(t, now, FromWebKit(ToWebKit(now)))
}

func TestTransitionName(t *testing.T) {
	assert.Equal(t, "link", TransitionName(0))
	assert.Equal(t, "typed", TransitionName(1))
	assert.Equal(t, "reload", TransitionName(8))
	assert.Equal(t, "link", TransitionName(0x30000000))
	assert.Equal(t, "typed", TransitionName(0x30000001))
	assert.Equal(t, "link", TransitionName(200))
}
