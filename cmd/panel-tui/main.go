package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"builders-panel/config"
	formatterUC "builders-panel/internal/formatter/usecase"
	"builders-panel/internal/notification"
	"builders-panel/internal/poller"
	pollerUC "builders-panel/internal/poller/usecase"
	"builders-panel/internal/tui"
	"builders-panel/pkg/log"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	appName     = "builders-panel"
	logFileName = "panel-tui.log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	logPath, err := resolveLogPath(cfg.TUI)
	if err != nil {
		fmt.Println("Failed to resolve log file:", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Println("Failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
		Name:     "panel-tui.user." + strconv.FormatInt(cfg.Panel.UserID, 10),
		Output:   logFile,
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, stop, logger, cfg); err != nil {
		logger.Errorf(ctx, "cmd.panel-tui.main: %v", err)
		fmt.Println("Error:", err)
		stop()
		os.Exit(1)
	}
}

// resolveLogPath creates the XDG state directory when no log file is configured.
func resolveLogPath(cfg config.TUIConfig) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

func run(ctx context.Context, stop context.CancelFunc, logger log.Logger, cfg *config.Config) error {
	loc, err := cfg.Panel.Location()
	if err != nil {
		return err
	}

	repo, _, err := notification.NewRepository(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer notification.CloseRepository(ctx)

	bridge := tui.NewBridge()
	panel, err := pollerUC.New(logger, repo, formatterUC.New(logger, nil), bridge, poller.Options{
		UserID:                cfg.Panel.UserID,
		Interval:              cfg.Panel.PollInterval,
		ToastDuration:         cfg.Panel.ToastDuration,
		SuppressInitialToasts: cfg.Panel.SuppressInitialToasts,
	}, nil)
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		tui.New(ctx, panel, tui.Options{UserID: cfg.Panel.UserID, Location: loc}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge.Attach(program)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := panel.Run(ctx); err != nil {
			logger.Errorf(ctx, "cmd.panel-tui.run.Poller: %v", err)
		}
	}()

	_, err = program.Run()
	stop()
	wg.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
