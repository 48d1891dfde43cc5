package analytics

// DomainRecord is the visit volume for one host.
type DomainRecord struct {
	Domain     string  `json:"domain" validate:"required"`
	Visits     int     `json:"visits" validate:"gte=0"`
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

// CategoryRecord aggregates all domains sharing a category.
type CategoryRecord struct {
	Category   string  `json:"category"`
	Visits     int     `json:"visits" validate:"gte=0"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

// Snapshot is one complete analytics response. DomainFrequency is ordered
// by descending visits as sent by the backend; that order is kept.
//
// A Snapshot is never modified after decoding. A new fetch replaces it
// wholesale.
type Snapshot struct {
	DomainFrequency   []DomainRecord   `json:"domain_frequency" validate:"dive"`
	CategoryBreakdown []CategoryRecord `json:"category_breakdown" validate:"unique=Category,dive"`
}

// Empty reports whether the snapshot carries no records at all.
func (s *Snapshot) Empty() bool {
	return s == nil || (len(s.DomainFrequency) == 0 && len(s.CategoryBreakdown) == 0)
}

// TotalVisits sums visits over the category breakdown.
func (s *Snapshot) TotalVisits() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, c := range s.CategoryBreakdown {
		total += c.Visits
	}
	return total
}
