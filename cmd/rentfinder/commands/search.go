package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rentfinder/rentfinder/internal/fetcher"
	"github.com/rentfinder/rentfinder/internal/listing"
	"github.com/rentfinder/rentfinder/internal/logger"
	"github.com/rentfinder/rentfinder/internal/output"
	"github.com/rentfinder/rentfinder/internal/scraper"
)

// searchOptions is the validated flag surface of the search command.
type searchOptions struct {
	Location         string `validate:"required"`
	Day              string `validate:"omitempty,datetime=2006-01-02"`
	FilterPath       string
	SupplementalPath string
	Format           string `validate:"oneof=text json yaml"`
	FetchMode        string `validate:"oneof=static dynamic"`
	OutputPath       string
	BaseURL          string `validate:"omitempty,url"`
	UserAgent        string
	Timeout          time.Duration
	Delay            time.Duration
	MaxPages         int `validate:"gte=0"`
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a location for rental listings",
	Long: `Search crawls the result pages for a location, page by page, until a
page comes back empty. Each listing's detail page is fetched and the report
is printed as listings are found, in the site's own ranking order.

Examples:
  # Plain search
  rentfinder search -l collingwood-vic-3066

  # Only inspections on a specific day
  rentfinder search -l collingwood-vic-3066 -d 2026-08-29

  # Filtered, with manual corrections
  rentfinder search -l collingwood-vic-3066 -f filter.json -s overrides.json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	flags := searchCmd.Flags()

	flags.StringP("location", "l", "", "location slug used by the site, usually suburb-state-postcode (required)")
	flags.StringP("day", "d", "", "restrict to inspections on this day (yyyy-MM-dd)")
	flags.StringP("filter", "f", "", "path to a filter file")
	flags.StringP("supplemental-data", "s", "", "path to a supplemental data file")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, yaml")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.Duration("delay", 0, "delay between result-page fetches")
	flags.Int("max-pages", 0, "stop after this many result pages (0=until a page is empty)")

	_ = searchCmd.MarkFlagRequired("location")

	flags.String("base-url", "", "override the listings site base URL")
	flags.String("user-agent", "", "override the User-Agent header")

	// Bind to viper so these can come from config file or env too
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts, err := collectOptions(cmd)
	if err != nil {
		logger.Error("invalid options", "error", err)
		return err
	}

	// Filter and overrides load (and fail) before any network activity.
	var filter *listing.Filter
	if opts.FilterPath != "" {
		filter, err = listing.LoadFilter(opts.FilterPath)
		if err != nil {
			logger.Error("failed to load filter", "error", err)
			return err
		}
		logger.Debug("filter loaded", "path", opts.FilterPath)
	}

	var overrides listing.Overrides
	if opts.SupplementalPath != "" {
		overrides, err = listing.LoadOverrides(opts.SupplementalPath)
		if err != nil {
			logger.Error("failed to load supplemental data", "error", err)
			return err
		}
		logger.Debug("supplemental data loaded", "path", opts.SupplementalPath, "entries", len(overrides))
	}

	fetchCfg := fetcher.Config{
		UserAgent: opts.UserAgent,
		Timeout:   opts.Timeout,
	}

	var f fetcher.Fetcher
	switch opts.FetchMode {
	case "dynamic":
		f, err = fetcher.NewDynamic(fetchCfg)
		if err != nil {
			logger.Error("failed to create dynamic fetcher", "error", err)
			return err
		}
	default:
		f = fetcher.NewStatic(fetchCfg)
	}
	defer func() { _ = f.Close() }()

	outFile := os.Stdout
	if opts.OutputPath != "" {
		file, err := os.Create(opts.OutputPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", opts.OutputPath, "error", err)
			return err
		}
		defer func() { _ = file.Close() }()
		outFile = file
	}

	writer, err := output.NewWriter(outFile, output.Format(opts.Format))
	if err != nil {
		logger.Error("failed to create output writer", "format", opts.Format, "error", err)
		return err
	}

	s := scraper.New(f, filter, overrides, scraper.Config{
		BaseURL:  opts.BaseURL,
		Location: opts.Location,
		Day:      opts.Day,
		Delay:    opts.Delay,
		MaxPages: opts.MaxPages,
	})

	logger.Info("starting search", "location", opts.Location, "day", opts.Day)

	accepted := 0
	if err := s.Search(ctx, func(l *listing.Listing) error {
		accepted++
		return writer.Write(l)
	}); err != nil {
		logger.Error("search failed", "error", err)
		return err
	}

	if err := writer.Close(); err != nil {
		logger.Error("failed to finalize output", "error", err)
		return err
	}

	logger.Info("search complete", "accepted", accepted)
	return nil
}

// collectOptions gathers and validates the search flags.
func collectOptions(cmd *cobra.Command) (*searchOptions, error) {
	flags := cmd.Flags()

	opts := &searchOptions{}
	opts.Location, _ = flags.GetString("location")
	opts.Day, _ = flags.GetString("day")
	opts.FilterPath, _ = flags.GetString("filter")
	opts.SupplementalPath, _ = flags.GetString("supplemental-data")
	opts.Format, _ = flags.GetString("format")
	opts.FetchMode, _ = flags.GetString("fetch-mode")
	opts.OutputPath, _ = flags.GetString("output")
	opts.Timeout, _ = flags.GetDuration("timeout")
	opts.Delay, _ = flags.GetDuration("delay")
	opts.MaxPages, _ = flags.GetInt("max-pages")
	opts.BaseURL = viper.GetString("base_url")
	opts.UserAgent = viper.GetString("user_agent")

	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid search options: %w", err)
	}
	return opts, nil
}
