package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"dutchie-extractor/browser"
	"dutchie-extractor/crawler"
	"dutchie-extractor/internal/config"
	"dutchie-extractor/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var (
		urlFlag      = flag.String("url", "", "Menu URL to crawl (required)")
		menuTypeFlag = flag.String("menu-type", cfg.MenuType, "Menu type tag: med or rec (auto-inferred from the URL when empty)")
		timeoutFlag  = flag.Duration("timeout", cfg.NavigationTimeout, "Navigation timeout per page")
		maxPagesFlag = flag.Int("max-pages", cfg.MaxPages, "Maximum pages to crawl per category")
		headlessFlag = flag.Bool("headless", cfg.Headless, "Run the browser headless")
		outputFlag   = flag.String("output", "", "Output file path (default: stdout)")
		verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "the -url flag is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg.MenuType = *menuTypeFlag
	cfg.NavigationTimeout = *timeoutFlag
	cfg.MaxPages = *maxPagesFlag
	cfg.Headless = *headlessFlag

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verboseFlag {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	result := run(cfg, *urlFlag, logger)

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to marshal result: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Result written to %s", *outputFlag)
	} else {
		fmt.Println(string(jsonData))
	}

	logger.Infof("Crawl complete: %d rows, %d responses captured, %d categories",
		len(result.Rows), result.Diagnostics.CapturedCount, len(result.Diagnostics.Categories))
}

// run owns the browser session for one crawl. A session that cannot start
// is fatal for the crawl but not for the process: the result is an empty
// table with a diagnostic note, never a partial or corrupt one.
func run(cfg *types.Config, menuURL string, logger types.Logger) *types.CrawlResult {
	buffer := browser.NewCaptureBuffer(logger)

	session, err := browser.NewSession(context.Background(), cfg, buffer, logger)
	if err != nil {
		logger.Errorf("Browser session unavailable: %v", err)
		diag := types.NewDiagnostics()
		diag.Note(fmt.Sprintf("browser session unavailable: %v", err))
		return &types.CrawlResult{Rows: []types.ProductRow{}, Diagnostics: diag}
	}
	defer session.Close()

	return crawler.New(cfg, session, buffer, logger).Crawl(menuURL)
}
