package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mhpenta/slidegen"
	"github.com/mhpenta/slidegen/internal/config"
	"github.com/mhpenta/slidegen/present"
	"github.com/mhpenta/slidegen/provider/gemini"
	"github.com/mhpenta/slidegen/render"
)

// deckTitle heads exported HTML decks.
const deckTitle = "Robot hikayesi"

var opts struct {
	configPath  string
	interactive bool
	model       string
	outputDir   string
	htmlPath    string
	metricsAddr string
	logLevel    string
	noStream    bool
}

// app is everything one invocation runs with.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	session  *slidegen.Session
	deck     *present.HTMLDeck
	registry *prometheus.Registry
}

func run(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	if question == "" && !opts.interactive {
		return errors.New("a question is required unless --interactive is set")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	provider, err := gemini.New(ctx, &gemini.Config{APIKey: cfg.APIKey})
	if err != nil {
		return err
	}
	defer provider.Close()

	a, err := newApp(cfg, logger, provider, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.MetricsAddr, a.registry, logger)
		})
	}

	g.Go(func() error {
		defer cancel()
		if opts.interactive {
			return runREPL(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return a.ask(ctx, question)
	})

	return g.Wait()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model = opts.model
	}
	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("html") {
		cfg.HTMLPath = opts.htmlPath
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	return cfg, cfg.Validate()
}

func newApp(cfg *config.Config, logger *slog.Logger, provider slidegen.ChatProvider, cmd *cobra.Command) (*app, error) {
	renderer, err := render.NewTerminal(cfg.Style, 0)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	var presenter slidegen.Presenter = present.NewTerminal(cmd.OutOrStdout())
	if cfg.HTMLPath != "" {
		a.deck = present.NewHTMLDeck(deckTitle, render.NewHTML())
		presenter = present.Tee{presenter, a.deck}
	}

	genCfg := slidegen.DefaultConfig().WithModel(slidegen.Model(cfg.Model))
	genCfg.WaitOnRateLimit = cfg.WaitOnRateLimit
	genCfg.MaxWaitDuration = cfg.MaxRateLimitWait

	sessionOpts := []slidegen.SessionOption{
		slidegen.WithLogger(logger),
		slidegen.WithRenderer(renderer),
		slidegen.WithMetrics(slidegen.NewMetrics(a.registry)),
		slidegen.WithTimeout(cfg.Timeout),
		slidegen.WithScrollDelay(cfg.ScrollDelay),
		slidegen.WithGenerateConfig(genCfg),
	}
	if opts.noStream {
		sessionOpts = append(sessionOpts, slidegen.WithCoordinatorOptions(slidegen.WithStreaming(false)))
	}

	a.session = slidegen.NewSession(provider.StartChat(genCfg), presenter, sessionOpts...)
	return a, nil
}

// ask submits one question and exports the result.
func (a *app) ask(ctx context.Context, question string) error {
	_, err := a.session.Submit(ctx, question)
	if err != nil {
		if slidegen.IsUserFacing(err) {
			return shownError{err}
		}
		return err
	}
	return a.export(ctx)
}

// export writes the current slides to the configured output directory and
// HTML deck.
func (a *app) export(ctx context.Context) error {
	if a.cfg.OutputDir != "" {
		state := a.session.State()
		results, err := slidegen.SaveSlides(ctx, slidegen.DirStorage{Root: a.cfg.OutputDir}, state.Slides, "slide")
		if err != nil {
			return fmt.Errorf("saving slides: %w", err)
		}
		for _, r := range results {
			a.logger.Info("saved illustration", "slide", r.Index+1, "url", r.URL, "size", r.Size)
		}
	}

	if a.deck != nil && a.deck.Len() > 0 {
		if err := a.writeDeck(); err != nil {
			return err
		}
		a.logger.Info("wrote HTML deck", "path", a.cfg.HTMLPath)
	}
	return nil
}

func (a *app) writeDeck() (err error) {
	f, err := os.Create(a.cfg.HTMLPath)
	if err != nil {
		return fmt.Errorf("creating HTML deck: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	_, err = a.deck.WriteTo(f)
	return err
}
