package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AnalyticsCommand fetches the analytics snapshot and prints both charts.
type AnalyticsCommand struct {
	Backend string `long:"backend" description:"Override backend base URL"`
	Limit   int    `long:"limit" description:"Number of domains to chart (default from config)"`

	globals *GlobalFlags
	version string
}

// ChartCommand renders one analytics chart to an image file.
type ChartCommand struct {
	Kind    string `long:"kind" description:"Which chart to render" choice:"category" choice:"domain" default:"category"`
	Format  string `long:"format" description:"Image format: png | svg" default:"png"`
	Output  string `short:"o" long:"output" description:"Output file" required:"true"`
	Backend string `long:"backend" description:"Override backend base URL"`
	Limit   int    `long:"limit" description:"Number of domains to chart (default from config)"`
	Width   int    `long:"width" description:"Image width in pixels (default from config)"`
	Height  int    `long:"height" description:"Image height in pixels (default from config)"`

	globals *GlobalFlags
	version string
}

// InsightsCommand queries insights for one calendar date.
type InsightsCommand struct {
	Date    string `long:"date" description:"Date to query as YYYY-MM-DD (default today)"`
	Backend string `long:"backend" description:"Override backend base URL"`

	globals *GlobalFlags
	version string
}

// OverlayCommand evaluates where the floating icon goes for one focus event.
type OverlayCommand struct {
	Tag     string  `long:"tag" description:"Focused element tag" default:"input"`
	Type    string  `long:"type" description:"Focused element type attribute"`
	Top     float64 `long:"top" description:"Element top, relative to the viewport"`
	Left    float64 `long:"left" description:"Element left, relative to the viewport"`
	Width   float64 `long:"width" description:"Element width"`
	Height  float64 `long:"height" description:"Element height"`
	ScrollX float64 `long:"scroll-x" description:"Horizontal document scroll offset"`
	ScrollY float64 `long:"scroll-y" description:"Vertical document scroll offset"`

	globals *GlobalFlags
	version string
}

// CollectCommand reads recent browser history and submits it for ingestion.
type CollectCommand struct {
	Profile    string `long:"profile" description:"Path to the browser History database"`
	Days       int    `long:"days" description:"Window in days (default from config)"`
	MaxResults int    `long:"max-results" description:"Maximum URLs to collect (default from config)"`
	Ingest     string `long:"ingest" description:"Override ingestion base URL"`
	DryRun     bool   `long:"dry-run" description:"Collect and print the batch without submitting it"`

	globals *GlobalFlags
	version string
}

// ServeCommand serves the analytics file over HTTP.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`
	File string `long:"file" description:"Override analytics JSON file"`

	globals *GlobalFlags
	version string
}
