// Package main provides the merger command that combines subscription sources
// into a deduplicated node list and its base64 subscription file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"submerge/internal/config"
	"submerge/internal/fetcher"
	"submerge/internal/logger"
	"submerge/internal/output"
	"submerge/internal/pipeline"
	"submerge/internal/report"
	"submerge/internal/sources"
)

const defaultConfig = "configs/merger.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)

	stop()
	os.Exit(code)
}

// run executes one merge and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("merger", flag.ContinueOnError)
	fs.SetOutput(stdout)

	configFile := fs.String("config", "", "Path to YAML configuration file (default "+defaultConfig+" if present)")
	sourcesFile := fs.String("sources", "", "Source list file (overrides config)")
	plainPath := fs.String("plain", "", "Plaintext node list output path (overrides config)")
	base64Path := fs.String("base64", "", "Base64 subscription output path (overrides config)")
	reportPath := fs.String("report", "", "Markdown run report output path (optional)")
	timeout := fs.Int("timeout", 0, "Per-source timeout in seconds (overrides config)")
	proxyURL := fs.String("proxy", "", "Upstream proxy: http://, https://, socks5:// or socks5h:// (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	showUsage := fs.Bool("help", false, "Show usage information")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showUsage {
		printUsage(fs, stdout)

		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stdout, "❌ Failed to load config: %v\n", err)

		return 1
	}

	m := &cfg.Merger

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sources":
			m.SourcesFile = *sourcesFile
		case "plain":
			m.Output.PlainPath = *plainPath
		case "base64":
			m.Output.Base64Path = *base64Path
		case "report":
			m.Output.ReportPath = *reportPath
		case "timeout":
			m.Fetch.TimeoutSec = *timeout
		case "proxy":
			m.Fetch.Proxy = *proxyURL
		case "log-level":
			m.Logging.Level = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stdout, "❌ Invalid configuration: %v\n", err)

		return 1
	}

	runID := uuid.New().String()
	log := logger.NewLoggerWithWriter(m.Logging.Level, stdout).With("run_id", runID)

	log.Info(fmt.Sprintf("Starting merger: %s", cfg))

	list, err := sources.Load(m.SourcesFile)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to load sources: %v", err))

		return 1
	}

	log.Info(fmt.Sprintf("Loaded %d sources from %s", len(list), m.SourcesFile))

	f, err := fetcher.New(fetcher.Options{
		Headers:      m.Fetch.Headers,
		UserAgent:    m.Fetch.UserAgent,
		Proxy:        m.Fetch.Proxy,
		Timeout:      m.Fetch.GetTimeout(),
		MaxBodyBytes: m.Fetch.GetMaxBodyBytes(),
	})
	if err != nil {
		log.Error(fmt.Sprintf("Failed to create fetcher: %v", err))

		return 1
	}

	p := pipeline.New(f, log, pipeline.Options{HTMLSelector: m.Extract.HTMLSelector})

	summary, err := p.Run(ctx, list)
	if errors.Is(err, context.Canceled) {
		log.Warn("Interrupted, writing the nodes collected so far")
	}

	summary.RunID = runID

	art, err := output.Write(output.Options{
		PlainPath:    m.Output.PlainPath,
		Base64Path:   m.Output.Base64Path,
		CreateBackup: m.Output.CreateBackup,
	}, summary.Nodes)
	if err != nil {
		log.Error(fmt.Sprintf("Failed to write output: %v", err))

		return 1
	}

	log.Info(fmt.Sprintf("Wrote %s and %s", m.Output.PlainPath, m.Output.Base64Path))

	if m.Output.ReportPath != "" {
		summary.Checksum = art.Checksum

		if err := output.WriteFile(m.Output.ReportPath, report.Render(summary)); err != nil {
			log.Error(fmt.Sprintf("Failed to write report: %v", err))

			return 1
		}
	}

	fmt.Fprintf(stdout, "Done. Nodes: %d\n", art.NodeCount)

	return 0
}

// loadConfig reads path, or the default config file when path is empty and
// that file exists, or falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}

	if _, err := os.Stat(defaultConfig); err == nil {
		return config.LoadConfig(defaultConfig)
	}

	return config.Default(), nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: ./bin/merger [OPTIONS]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reads source URLs (one per line, # for comments), fetches each one, and writes")
	fmt.Fprintln(w, "the deduplicated node list plus its base64 subscription file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  ./bin/merger")
	fmt.Fprintln(w, "  ./bin/merger -config configs/merger.yaml")
	fmt.Fprintln(w, "  ./bin/merger -sources sources.txt -plain nodes.txt -base64 sub.txt -report report.md")
	fmt.Fprintln(w, "  ./bin/merger -proxy socks5h://127.0.0.1:1080 -timeout 15")
}
