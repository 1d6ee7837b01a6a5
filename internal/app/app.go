package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ducktail/internal/config"
	"github.com/five82/ducktail/internal/engine"
	"github.com/five82/ducktail/internal/logtail"
	"github.com/five82/ducktail/internal/prefs"
	"github.com/five82/ducktail/internal/server"
	"github.com/five82/ducktail/internal/state"
	"github.com/five82/ducktail/internal/ui"
)

// Options configure the ducktail application. Zero values fall back to the
// config file and then to built-in defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ducktail/prefs.toml
	LogPath    string
	PollEvery  int    // seconds; zero uses the config value
	Listen     string // dashboard address; Run serves it only when set
	DebugLog   string // file receiving log output while the TUI owns the terminal
}

// Settings resolves the effective configuration for opts.
func Settings(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.LogPath != "" {
		logPath, err := config.ExpandPath(opts.LogPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("log path: %w", err)
		}
		cfg.LogPath = logPath
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	return cfg, nil
}

type runtime struct {
	cfg   config.Config
	store *state.Store
	loop  *engine.Loop
}

func newRuntime(cfg config.Config) *runtime {
	store := &state.Store{}
	loop := engine.NewLoop(engine.Options{
		Resource:  logtail.NewFile(cfg.LogPath),
		Publisher: store,
		Interval:  cfg.PollInterval,
		Debounce:  cfg.Debounce,
	})
	return &runtime{cfg: cfg, store: store, loop: loop}
}

func (rt *runtime) dashboard() (*server.Server, error) {
	return server.New(server.Options{
		Controller:   rt.loop,
		Store:        rt.store,
		LogPath:      rt.cfg.LogPath,
		PollInterval: rt.cfg.PollInterval,
	})
}

// Run boots the TUI until the user quits or ctx is cancelled. When
// opts.Listen is set the web dashboard is served alongside it.
func Run(ctx context.Context, opts Options) error {
	cfg, err := Settings(opts)
	if err != nil {
		return err
	}

	restoreLog, err := redirectLog(opts.DebugLog)
	if err != nil {
		return err
	}
	defer restoreLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := newRuntime(cfg)
	StartLoop(ctx, rt.loop)

	if opts.Listen != "" {
		srv, err := rt.dashboard()
		if err != nil {
			return err
		}
		ln, err := net.Listen("tcp", cfg.Listen)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Listen, err)
		}
		go func() {
			if err := srv.Serve(ctx, ln); err != nil {
				log.Printf("dashboard stopped: %v", err)
			}
		}()
	}

	events, unsubscribe := rt.store.Subscribe()
	defer unsubscribe()

	userPrefs := prefs.Load(opts.PrefsPath)
	return ui.Run(ctx, ui.Options{
		Controller:   rt.loop,
		Events:       events,
		LogPath:      cfg.LogPath,
		PollInterval: cfg.PollInterval,
		ThemeName:    userPrefs.Theme,
		PrefsPath:    opts.PrefsPath,
	})
}

// Serve runs only the web dashboard until ctx is cancelled. onListen, when
// set, is called with the bound address before serving starts.
func Serve(ctx context.Context, opts Options, onListen func(addr string)) error {
	cfg, err := Settings(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := newRuntime(cfg)
	srv, err := rt.dashboard()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}
	if onListen != nil {
		onListen(ln.Addr().String())
	}

	StartLoop(ctx, rt.loop)
	return srv.Serve(ctx, ln)
}

// ClearLog empties the configured log file once, outside any poll loop.
func ClearLog(ctx context.Context, opts Options) (string, error) {
	cfg, err := Settings(opts)
	if err != nil {
		return "", err
	}
	if err := logtail.NewFile(cfg.LogPath).Truncate(ctx); err != nil {
		return cfg.LogPath, err
	}
	return cfg.LogPath, nil
}

// redirectLog keeps background log output off the alternate screen. It
// returns a function restoring the previous destination.
func redirectLog(path string) (func(), error) {
	prev, prefix := log.Writer(), log.Prefix()
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}
	f, err := tea.LogToFile(path, "ducktail")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() {
		log.SetOutput(prev)
		log.SetPrefix(prefix)
		_ = f.Close()
	}, nil
}
