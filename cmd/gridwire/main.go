package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/oayrilmaz/gridwire/pkg/archive"
	"github.com/oayrilmaz/gridwire/pkg/config"
	"github.com/oayrilmaz/gridwire/pkg/enrich"
	"github.com/oayrilmaz/gridwire/pkg/feed"
	"github.com/oayrilmaz/gridwire/pkg/output"
	"github.com/oayrilmaz/gridwire/pkg/pipeline"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"gridwire.yml" description:"config file"`

	// pipeline overrides, each wins over the config file when set
	Feeds       string `long:"feeds" env:"FEEDS" description:"comma-separated feed URLs"`
	Channels    string `long:"channels" env:"YT_CHANNELS" description:"comma-separated YouTube channel IDs"`
	RecentHours int    `long:"recent-hours" env:"RECENT_HOURS" description:"article recent window in hours"`
	VideoHours  int    `long:"video-hours" env:"YT_HOURS" description:"video recent window in hours"`
	MaxEnrich   int    `long:"max-enrich" env:"MAX_ENRICH" description:"max image enrichment fetches per run"`
	Workers     int    `long:"workers" env:"WORKERS" description:"enrichment worker pool size"`
	Proxies     string `long:"proxies" env:"PROXIES" description:"comma-separated proxy URL templates with {url} placeholder"`
	OutDir      string `long:"out" env:"OUT_DIR" description:"output directory"`
	NoArchive   bool   `long:"no-archive" env:"NO_ARCHIVE" description:"disable the rolling archive"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting gridwire version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] run failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] done")
}

// run loads configuration, executes the pipeline and publishes artifacts.
// Only configuration errors and artifact write failures are fatal.
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(cfg, opts)

	fetcher := feed.NewHTTPFetcher(cfg.Collect.Timeout, cfg.Collect.UserAgent, cfg.Collect.Retries)
	client := feed.NewClient(fetcher, cfg.Collect.Proxies)

	extractor := enrich.NewImageExtractor(cfg.Enrich.Timeout, cfg.Collect.UserAgent)
	pool := enrich.NewPool(extractor, cfg.Enrich.Workers, cfg.Enrich.Delay)

	var archiver pipeline.Archiver
	if !opts.NoArchive && cfg.Archive.DSN != "" {
		store, aerr := archive.New(ctx, cfg.Archive.DSN)
		if aerr != nil {
			// archive trouble must not block publication
			log.Printf("[WARN] archive disabled: %v", aerr)
		} else {
			defer store.Close()
			archiver = store
		}
	}

	p := pipeline.New(pipeline.Params{
		Feeds:    cfg.Sources(),
		Channels: cfg.ChannelSources(),
		Fetcher:  client,
		Enricher: pool,
		Archiver: archiver,
		Windows: pipeline.Windows{
			Article: time.Duration(cfg.Windows.RecentHours) * time.Hour,
			Video:   time.Duration(cfg.Windows.VideoHours) * time.Hour,
			Weekly:  time.Duration(cfg.Windows.WeeklyHours) * time.Hour,
		},
		PerFeedLimit: cfg.Collect.PerFeedLimit,
		PerSourceMax: cfg.Collect.PerSourceMax,
		MaxEnrich:    cfg.Enrich.MaxItems,
		Delay:        cfg.Collect.Delay,
		Blacklist:    cfg.Collect.Blacklist,
		Retention:    time.Duration(cfg.Archive.RetentionDays) * 24 * time.Hour,
	})

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	writer := output.NewWriter(cfg.Output.Dir)
	if err := writer.WriteRecent(result.Recent); err != nil {
		return fmt.Errorf("write recent view: %w", err)
	}
	if err := writer.WriteWeekly(result.Weekly, result.Updated); err != nil {
		return fmt.Errorf("write weekly view: %w", err)
	}
	if err := writer.WriteShortlinks(result.Shortlinks); err != nil {
		return fmt.Errorf("write shortlinks: %w", err)
	}
	if err := writer.WriteShareRecords(result.Shortlinks); err != nil {
		return fmt.Errorf("write share records: %w", err)
	}

	return nil
}

// applyOverrides folds the enumerated CLI/env overrides into the config
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Feeds != "" {
		cfg.Feeds = nil
		for _, u := range splitList(opts.Feeds) {
			cfg.Feeds = append(cfg.Feeds, config.FeedConfig{URL: u, Weight: 1.0})
		}
	}
	if opts.Channels != "" {
		cfg.Channels = nil
		for _, id := range splitList(opts.Channels) {
			// bare IDs get the permissive policy: OEM and vendor channels
			// are narrowly on-topic by construction
			cfg.Channels = append(cfg.Channels, config.ChannelConfig{ID: id})
		}
	}
	if opts.RecentHours > 0 {
		cfg.Windows.RecentHours = opts.RecentHours
	}
	if opts.VideoHours > 0 {
		cfg.Windows.VideoHours = opts.VideoHours
	}
	if opts.MaxEnrich > 0 {
		cfg.Enrich.MaxItems = opts.MaxEnrich
	}
	if opts.Workers > 0 {
		cfg.Enrich.Workers = opts.Workers
	}
	if opts.Proxies != "" {
		cfg.Collect.Proxies = splitList(opts.Proxies)
	}
	if opts.OutDir != "" {
		cfg.Output.Dir = opts.OutDir
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
