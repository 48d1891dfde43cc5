package analytics

// SampleSnapshot returns the demonstration dataset shown when the backend
// cannot be reached. Each call returns a fresh copy.
func SampleSnapshot() *Snapshot {
	return &Snapshot{
		DomainFrequency: []DomainRecord{
			{Domain: "google.com", Visits: 50, Category: "Search", Percentage: 25},
			{Domain: "github.com", Visits: 40, Category: "Technology", Percentage: 20},
			{Domain: "stackoverflow.com", Visits: 30, Category: "Technology", Percentage: 15},
			{Domain: "medium.com", Visits: 25, Category: "News & Media", Percentage: 12.5},
			{Domain: "youtube.com", Visits: 20, Category: "Entertainment", Percentage: 10},
			{Domain: "linkedin.com", Visits: 15, Category: "Social Media", Percentage: 7.5},
			{Domain: "reddit.com", Visits: 12, Category: "Social Media", Percentage: 6},
			{Domain: "twitter.com", Visits: 8, Category: "Social Media", Percentage: 4},
		},
		CategoryBreakdown: []CategoryRecord{
			{Category: "Technology", Visits: 70, Percentage: 35},
			{Category: "Search", Visits: 50, Percentage: 25},
			{Category: "Social Media", Visits: 35, Percentage: 17.5},
			{Category: "News & Media", Visits: 25, Percentage: 12.5},
			{Category: "Entertainment", Visits: 20, Percentage: 10},
		},
	}
}
