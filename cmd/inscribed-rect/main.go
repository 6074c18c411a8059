package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironsheep/inscribed-rect-mcp/internal/config"
	"github.com/ironsheep/inscribed-rect-mcp/internal/imaging"
	"github.com/ironsheep/inscribed-rect-mcp/internal/report"
	"github.com/ironsheep/inscribed-rect-mcp/internal/segment"
	"github.com/ironsheep/inscribed-rect-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("inscribed-rect %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "inscribed-rect: %v\n", err)
		os.Exit(2)
	}

	// Log to stderr; stdout is for MCP protocol and reports
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "find":
			if err := runFind(ctx, cfg, os.Args[2:], os.Stdout); err != nil {
				logger.Error("find failed", "error", err)
				os.Exit(1)
			}
			return
		case "config":
			data, err := cfg.YAML()
			if err != nil {
				logger.Error("config failed", "error", err)
				os.Exit(1)
			}
			os.Stdout.Write(data)
			return
		}
	}

	logger.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

	srv := server.New(cfg, logger, Version)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "inscribed-rect - find the largest rectangle inside a shape")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  inscribed-rect                     Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  inscribed-rect find [flags] IMAGE  Print the largest inscribed rectangle")
	fmt.Fprintln(w, "  inscribed-rect config              Print the effective configuration as YAML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  INSCRIBED_CONFIG=path.yaml     Load settings from a YAML file")
	fmt.Fprintln(w, "  INSCRIBED_STEP=5               Sampling grid spacing")
	fmt.Fprintln(w, "  INSCRIBED_MODE=dark            dark, light or color")
	fmt.Fprintln(w, "  INSCRIBED_THRESHOLD=50         Luminance cut for dark/light")
	fmt.Fprintln(w, "  INSCRIBED_KEY_COLOR=#RRGGBB    Color for color mode")
	fmt.Fprintln(w, "  INSCRIBED_WORKERS=1            Parallel anchor columns")
	fmt.Fprintln(w, "  INSCRIBED_MAX_CHECKS=0         Containment test budget (0 = unlimited)")
	fmt.Fprintln(w, "  INSCRIBED_TIMEOUT=0s           Analysis time budget (0 = unlimited)")
	fmt.Fprintln(w, "  INSCRIBED_LOG_LEVEL=debug      Enable debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A .env file in the working directory is read first.")
	fmt.Fprintln(w, "Run 'inscribed-rect find -h' for find flags.")
}

// runFind implements the find subcommand.
func runFind(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	fs.SetOutput(stdout)

	step := fs.Int("step", cfg.Step, "Sampling grid spacing in pixels")
	mode := fs.String("mode", string(cfg.Segment.Mode), "Segmentation mode: dark, light, color")
	threshold := fs.Int("threshold", int(cfg.Segment.Threshold), "Luminance cut 0-255 for dark and light modes")
	key := fs.String("key", cfg.Segment.KeyColor, "Key color for color mode, e.g. #FF00FF")
	tolerance := fs.Float64("tolerance", cfg.Segment.Tolerance, "Lab distance tolerance for color mode")
	blurRadius := fs.Float64("blur", cfg.Segment.BlurRadius, "Gaussian blur radius before segmentation")
	keepAll := fs.Bool("keep-all", cfg.Segment.KeepAll, "Keep every classified pixel instead of the largest shape")
	workers := fs.Int("workers", cfg.Workers, "Parallel anchor columns")
	maxChecks := fs.Int64("max-checks", cfg.MaxChecks, "Containment test budget (0 = unlimited)")
	timeout := fs.Duration("timeout", cfg.Timeout, "Analysis time budget (0 = unlimited)")
	out := fs.String("out", "", "Write an overlay image with the rectangle drawn")
	asJSON := fs.Bool("json", false, "Print the result as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("find needs exactly one image path, got %d", fs.NArg())
	}
	if *threshold < 0 || *threshold > 255 {
		return fmt.Errorf("threshold must be in [0, 255], got %d", *threshold)
	}

	segMode, err := segment.ParseMode(*mode)
	if err != nil {
		return err
	}
	segOpts := segment.Options{
		Mode:       segMode,
		Threshold:  uint8(*threshold),
		KeyColor:   *key,
		Tolerance:  *tolerance,
		BlurRadius: *blurRadius,
		KeepAll:    *keepAll,
	}
	opts := cfg.SearchOptions()
	opts.Step = *step
	opts.Workers = max(1, *workers)
	opts.MaxChecks = *maxChecks

	path := fs.Arg(0)
	cache := imaging.NewCache()
	img, err := cache.Load(path)
	if err != nil {
		return err
	}

	start := time.Now()
	an, err := server.Analyze(ctx, img, segOpts, opts, *timeout)
	if err != nil {
		return err
	}
	slog.Debug("search finished", "path", path, "status", an.Search.Status,
		"checks", an.Search.Checks, "elapsed", time.Since(start))

	if *out != "" {
		ov := imaging.DefaultOverlayOptions()
		ov.LineColor = cfg.Overlay.LineColor
		ov.LineWidth = cfg.Overlay.LineWidth
		rendered, err := imaging.DrawOverlay(img, an.Search.Rect, ov)
		if err != nil {
			return err
		}
		if err := imaging.Save(rendered, *out); err != nil {
			return err
		}
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report.Summarize(an.Search))
	}
	_, err = fmt.Fprintln(stdout, report.Text(an.Search))
	return err
}
