package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Analytics *AnalyticsCommand
	Chart     *ChartCommand
	Insights  *InsightsCommand
	Overlay   *OverlayCommand
	Collect   *CollectCommand
	Serve     *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "browseiq"
	parser.LongDescription = "Browsing analytics: collect history, chart where your time goes, and ask about a day."

	cmds := &commands{
		Analytics: &AnalyticsCommand{globals: &globals, version: version},
		Chart:     &ChartCommand{globals: &globals, version: version},
		Insights:  &InsightsCommand{globals: &globals, version: version},
		Overlay:   &OverlayCommand{globals: &globals, version: version},
		Collect:   &CollectCommand{globals: &globals, version: version},
		Serve:     &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("analytics", "Show category and domain charts", "Fetch the analytics snapshot from the backend and print the category and top-domain charts.", cmds.Analytics)
	parser.AddCommand("chart", "Render a chart image", "Render the category or domain pie chart to a PNG or SVG file.", cmds.Chart)
	parser.AddCommand("insights", "Show insights for a date", "Ask the backend for browsing insights on one calendar date.", cmds.Insights)
	parser.AddCommand("overlay", "Place the floating icon", "Compute whether and where the floating icon appears for a focused element.", cmds.Overlay)
	parser.AddCommand("collect", "Collect and submit recent history", "Read the last days of browser history with visit details and submit them as one batch.", cmds.Collect)
	parser.AddCommand("serve", "Serve the analytics file", "Serve the analytics JSON file, health and metrics over HTTP.", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the BrowseIQ CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// go-flags requires a subcommand, but --version is valid without one.
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("browseiq %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
