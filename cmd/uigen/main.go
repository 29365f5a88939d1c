package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jask/uigen/internal/agent"
	"github.com/jask/uigen/internal/codegen"
	"github.com/jask/uigen/internal/config"
	"github.com/jask/uigen/internal/database"
	"github.com/jask/uigen/internal/preview"
	"github.com/jask/uigen/internal/service"
	"github.com/jask/uigen/internal/tui"
)

type options struct {
	configPath  string
	prompt      string
	dump        string
	width       int
	writeConfig bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "uigen: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var o options
	flags := pflag.NewFlagSet("uigen", pflag.ContinueOnError)
	flags.StringVar(&o.configPath, "config", config.Path(), "config file")
	flags.StringVarP(&o.prompt, "prompt", "p", "", "generate once and print the result instead of starting the TUI")
	flags.StringVar(&o.dump, "dump", "", "with --prompt, print the plan as json or yaml")
	flags.IntVar(&o.width, "width", 80, "with --prompt, preview width in columns")
	flags.BoolVar(&o.writeConfig, "write-config", false, "write the effective config to --config and exit")
	config.RegisterFlags(flags)

	if err := flags.Parse(args); err != nil {
		return o, nil, err
	}
	switch o.dump {
	case "", "json", "yaml":
	default:
		return o, nil, fmt.Errorf("--dump must be json or yaml, got %q", o.dump)
	}
	if o.dump != "" && strings.TrimSpace(o.prompt) == "" {
		return o, nil, errors.New("--dump needs --prompt")
	}
	if o.width <= 0 {
		return o, nil, fmt.Errorf("--width must be positive, got %d", o.width)
	}
	return o, flags, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithFlags(opts.configPath, flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if opts.writeConfig {
		if err := config.Save(cfg, opts.configPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.configPath)
		return nil
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	history, closeHistory, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		// The app still works without history.
		logger.Warn("history unavailable", "path", cfg.History.Path, "err", err)
	}
	defer closeHistory()

	gen := &agent.Agent{
		Planner: &agent.ScenarioPlanner{Delay: cfg.Agent.Delay, Sleep: agent.Sleep, Fuzzy: cfg.Agent.Fuzzy},
		Logger:  logger,
	}

	if opts.prompt != "" {
		return headless(ctx, stdout, gen, history, opts)
	}

	app, err := tui.New(ctx, cfg, gen, history, logger)
	if err != nil {
		return fmt.Errorf("keybindings: %w", err)
	}
	logger.Info("starting tui", "config", opts.configPath, "history", history.Enabled())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// headless runs one generation and prints it: the plan as json or yaml
// when dump is set, else the code, the reasoning and the preview.
func headless(ctx context.Context, w io.Writer, gen *agent.Agent, history *service.HistoryService, opts options) error {
	res, err := gen.Generate(ctx, opts.prompt, nil)
	if err != nil {
		return err
	}
	if history.Enabled() {
		if err := history.Record(ctx, res); err != nil {
			fmt.Fprintf(os.Stderr, "uigen: %v\n", err)
		}
	}

	switch opts.dump {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Plan)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res.Plan); err != nil {
			return err
		}
		return enc.Close()
	}

	code := strings.TrimPrefix(res.Code, "\n")
	if code == "" {
		code = codegen.InitialCode
	}
	sections := []string{
		"# GeneratedComponent.tsx", code, "",
		"# AGENT REASONING", res.Explanation, "",
		"# Live Preview", preview.Render(res.Plan, preview.Options{Width: opts.width}),
	}
	_, err = fmt.Fprintln(w, strings.Join(sections, "\n"))
	return err
}

func openLogger(c config.LogConfig) (*slog.Logger, func(), error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

// openHistory returns a nil service when history is disabled. A store left
// dirty by a failed migration is refused. The close func is always safe to
// call.
func openHistory(ctx context.Context, c config.HistoryConfig, logger *slog.Logger) (*service.HistoryService, func(), error) {
	if !c.Enabled {
		return nil, func() {}, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := database.OpenMigrated(c.Path)
	if err != nil {
		return nil, func() {}, err
	}
	version, dirty, err := database.SchemaVersion(c.Path)
	if err == nil && dirty {
		err = fmt.Errorf("schema version %d is dirty", version)
	}
	if err != nil {
		_ = db.Close()
		return nil, func() {}, fmt.Errorf("history schema: %w", err)
	}
	svc := &service.HistoryService{DB: db, Limit: c.Limit, Logger: logger}
	entries, err := svc.Count(ctx)
	if err != nil {
		_ = db.Close()
		return nil, func() {}, err
	}
	logger.Info("history opened", "path", c.Path, "schema", version, "entries", entries)
	return svc, func() { _ = db.Close() }, nil
}
