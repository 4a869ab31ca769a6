// Package main provides the runbar terminal toolbar.
// It loads a workspace manifest and lets the user pick run configurations and
// launch project actions for the current project.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/runbar/internal/config"
	"github.com/Cyclone1070/runbar/internal/eventloop"
	"github.com/Cyclone1070/runbar/internal/executor"
	"github.com/Cyclone1070/runbar/internal/ui"
	uiservices "github.com/Cyclone1070/runbar/internal/ui/services"
	"github.com/Cyclone1070/runbar/internal/workspace"
	"github.com/charmbracelet/bubbles/spinner"
)

// Dependencies holds the components required to run the application.
type Dependencies struct {
	Config *config.Config
	Host   *workspace.Host
	Logger *slog.Logger
}

type options struct {
	manifest   string
	configPath string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("runbar", flag.ContinueOnError)
	fs.StringVar(&opts.manifest, "workspace", "", "workspace manifest (default ./<manifest_name>)")
	fs.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/runbar/config.json)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.manifest == "" && fs.NArg() > 0 {
		opts.manifest = fs.Arg(0)
	}
	return opts, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.NewLoader().LoadFile(path)
	}
	return config.Load()
}

// manifestPath resolves the manifest to open. A directory argument is searched
// for the configured manifest name.
func manifestPath(arg string, cfg *config.Config) (string, error) {
	if arg == "" {
		arg = "."
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("workspace manifest not found: %w", err)
	}
	if info.IsDir() {
		arg = filepath.Join(arg, cfg.Workspace.ManifestName)
		if _, err := os.Stat(arg); err != nil {
			return "", fmt.Errorf("workspace manifest not found: %w", err)
		}
	}
	return filepath.Abs(arg)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logFile returns where logs go. The terminal belongs to the UI, so logs never
// go to stderr while it runs.
func logFile(cfg *config.Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "runbar", "runbar.log")
}

func createLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	path := logFile(cfg)
	if path == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)})
	return slog.New(handler), f
}

func createRealUI(deps Dependencies, queue *eventloop.Queue) *ui.UI {
	renderer := uiservices.NewGlamourRenderer()
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(ui.Dependencies{
		Config:         deps.Config,
		Host:           deps.Host,
		Queue:          queue,
		Renderer:       renderer,
		SpinnerFactory: spinnerFactory,
		Logger:         deps.Logger,
	})
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// Load configuration (from defaults + ~/.config/runbar/config.json)
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	logger, closer := createLogger(cfg)
	defer closer.Close()

	path, err := manifestPath(opts.manifest, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Cancelled when the UI exits so running actions stop with it
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	host, err := workspace.Load(ctx, path, executor.NewOSCommandExecutor(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(Dependencies{Config: cfg, Host: host, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(deps Dependencies) error {
	if deps.Config.Workspace.WatchManifest {
		w, err := deps.Host.Watch()
		if err != nil {
			deps.Logger.Warn("manifest watch disabled", "error", err)
		} else {
			defer w.Close()
		}
	}

	queue := eventloop.NewQueue()
	return createRealUI(deps, queue).Start()
}
