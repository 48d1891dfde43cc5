package storage

import "time"

// webkitEpochOffset is the number of seconds between 1601-01-01 and
// 1970-01-01, the two epochs Chromium and Unix count from.
const webkitEpochOffset = 11644473600

// URLRow is one row of the browser's urls table.
type URLRow struct {
	ID            int64  `db:"id"`
	URL           string `db:"url"`
	Title         string `db:"title"`
	VisitCount    int64  `db:"visit_count"`
	LastVisitTime int64  `db:"last_visit_time"`
}

// LastVisit returns LastVisitTime as a time.Time.
func (r URLRow) LastVisit() time.Time {
	return FromWebKit(r.LastVisitTime)
}

// VisitRow is one row of the browser's visits table.
type VisitRow struct {
	ID         int64 `db:"id"`
	URLID      int64 `db:"url"`
	VisitTime  int64 `db:"visit_time"`
	FromVisit  int64 `db:"from_visit"`
	Transition int64 `db:"transition"`
}

// FromWebKit converts microseconds since 1601-01-01 UTC to a time.Time.
// Zero maps to the zero time.
func FromWebKit(us int64) time.Time {
	if us == 0 {
		return time.Time{}
	}
	return time.UnixMicro(us - webkitEpochOffset*1_000_000).UTC()
}

// ToWebKit converts t to microseconds since 1601-01-01 UTC.
func ToWebKit(t time.Time) int64 {
	return t.UnixMicro() + webkitEpochOffset*1_000_000
}

// WebKitToUnixMillis converts a WebKit timestamp to fractional
// milliseconds since the Unix epoch.
func WebKitToUnixMillis(us int64) float64 {
	return float64(us-webkitEpochOffset*1_000_000) / 1000
}

var transitionNames = [...]string{
	"link",
	"typed",
	"auto_bookmark",
	"auto_subframe",
	"manual_subframe",
	"generated",
	"auto_toplevel",
	"form_submit",
	"reload",
	"keyword",
	"keyword_generated",
}

// TransitionName returns the name of the core transition type encoded in
// the low byte of t. Qualifier bits are ignored.
func TransitionName(t int64) string {
	core := t & 0xFF
	if core >= 0 && int(core) < len(transitionNames) {
		return transitionNames[core]
	}
	return "link"
}
