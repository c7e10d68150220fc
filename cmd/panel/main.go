package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"builders-panel/config"
	configNATS "builders-panel/config/nats"
	configRedis "builders-panel/config/redis"
	configTracing "builders-panel/config/tracing"
	"builders-panel/internal/alert"
	alertUC "builders-panel/internal/alert/usecase"
	formatterUC "builders-panel/internal/formatter/usecase"
	"builders-panel/internal/httpserver"
	"builders-panel/internal/notification"
	"builders-panel/internal/poller"
	pollerUC "builders-panel/internal/poller/usecase"
	"builders-panel/internal/relay"
	relayNATS "builders-panel/internal/relay/nats"
	relayRedis "builders-panel/internal/relay/redis"
	"builders-panel/internal/websocket"
	wsRedis "builders-panel/internal/websocket/delivery/redis"
	wsUC "builders-panel/internal/websocket/usecase"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"
	"builders-panel/pkg/telegram"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		Name:         "panel.user." + strconv.FormatInt(cfg.Panel.UserID, 10),
	})
	defer func() { _ = logger.Sync() }()

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Errorf(ctx, "cmd.panel.main: %v", err)
		stop()
		os.Exit(1)
	}
	logger.Info(ctx, "Builders panel stopped gracefully")
}

func run(ctx context.Context, logger log.Logger, cfg *config.Config) error {
	logger.Infof(ctx, "Starting builders panel for user %d (source=%s, interval=%s)",
		cfg.Panel.UserID, cfg.Panel.Source, cfg.Panel.PollInterval)

	shutdownTracing, err := configTracing.Init(ctx, logger, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warnf(flushCtx, "cmd.panel.run.Tracing: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var checks []httpserver.Check

	// Discord webhook (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.Configured() {
		d, err := discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken, discord.DefaultConfig())
		if err != nil {
			logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
		} else {
			defer d.Close()
			discordClient = d
			logger.Info(ctx, "Discord webhook initialized")
		}
	}

	// Notification source
	repo, ping, err := notification.NewRepository(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer notification.CloseRepository(ctx)
	if ping != nil {
		checks = append(checks, httpserver.Check{Name: cfg.Panel.Source, Ping: ping})
	}

	parseMetrics := formatterUC.NewMetricsCollector()
	parser := formatterUC.New(logger, parseMetrics)
	builder := relay.NewBuilder(cfg.Panel.UserID)

	wsUseCase := wsUC.New(logger, builder, websocket.Options{
		MaxConnections:        cfg.WebSocket.MaxConnections,
		MaxConnectionsPerUser: cfg.WebSocket.MaxConnectionsPerUser,
		ConnectsPerMinute:     cfg.WebSocket.ConnectsPerMinute,
		PingInterval:          cfg.WebSocket.PingInterval,
		PongWait:              cfg.WebSocket.PongWait,
		WriteWait:             cfg.WebSocket.WriteWait,
		MaxMessageSize:        cfg.WebSocket.MaxMessageSize,
	})

	// Listeners. With Redis the browsers are fed through the relay so every
	// instance delivers the same events exactly once.
	var listeners poller.Listeners
	var subscriber wsRedis.Subscriber
	if cfg.Redis.Enabled {
		redisClient, err := configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer configRedis.Disconnect()
		checks = append(checks, httpserver.Check{Name: "redis", Ping: func(ctx context.Context) error {
			_, err := redisClient.Ping(ctx)
			return err
		}})

		subscriber = wsRedis.New(logger, redisClient, wsUseCase)
		listeners = append(listeners, relayRedis.New(logger, redisClient, builder))
		logger.Info(ctx, "Redis relay enabled")
	} else {
		listeners = append(listeners, wsUseCase)
	}

	if cfg.NATS.Enabled {
		nc, err := configNATS.Connect(ctx, logger, cfg.NATS)
		if err != nil {
			return err
		}
		defer func() { _ = configNATS.Disconnect() }()
		checks = append(checks, httpserver.Check{Name: "nats", Ping: configNATS.HealthCheck})

		listeners = append(listeners, relayNATS.New(logger, nc, cfg.NATS.SubjectPrefix, builder))
		logger.Infof(ctx, "NATS export enabled on %s.user.%d.*", cfg.NATS.SubjectPrefix, cfg.Panel.UserID)
	}

	var telegramClient telegram.ITelegram
	if cfg.Telegram.Configured() {
		tg, err := telegram.New(logger, telegram.Config{
			Token:    cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			ThreadID: cfg.Telegram.ThreadID,
			Timeout:  cfg.Telegram.Timeout,
			APIURL:   cfg.Telegram.APIURL,
		})
		if err != nil {
			logger.Warnf(ctx, "Telegram chat not configured (optional): %v", err)
		} else {
			defer tg.Close()
			telegramClient = tg
		}
	}

	var alerts alert.UseCase
	if cfg.Alert.Enabled && (discordClient != nil || telegramClient != nil) {
		alerts, err = alertUC.New(logger, discordClient, telegramClient, alert.Options{
			UserID: cfg.Panel.UserID,
			Every:  cfg.Alert.Every,
			Burst:  cfg.Alert.Burst,
		})
		if err != nil {
			return err
		}
		listeners = append(listeners, alerts)
		logger.Info(ctx, "Failure escalation enabled")
	}

	panel, err := pollerUC.New(logger, repo, parser, listeners, poller.Options{
		UserID:                cfg.Panel.UserID,
		Interval:              cfg.Panel.PollInterval,
		ToastDuration:         cfg.Panel.ToastDuration,
		SuppressInitialToasts: cfg.Panel.SuppressInitialToasts,
	}, reg)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(logger, httpserver.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Mode:         cfg.Server.Mode,
		Environment:  cfg.Environment.Name,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Panel:        panel,
		ParseMetrics: parseMetrics,
		Alert:        alerts,
		WebSocket:    wsUseCase,
		WSConfig:     cfg.WebSocket,
		Checks:       checks,
		Discord:      discordClient,
		Registry:     reg,
	})
	if err != nil {
		return err
	}

	// Background services
	go wsUseCase.Run()
	if subscriber != nil {
		if err := subscriber.Start(ctx); err != nil {
			return err
		}
	}

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := panel.Run(pollCtx); err != nil {
			logger.Errorf(ctx, "cmd.panel.run.Poller: %v", err)
		}
	}()

	go watchdog(ctx, logger)
	notify(ctx, logger, daemon.SdNotifyReady)

	serveErr := srv.Run(ctx)

	notify(ctx, logger, daemon.SdNotifyStopping)
	logger.Info(ctx, "Shutting down gracefully...")
	stopPolling()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if subscriber != nil {
		if err := subscriber.Shutdown(shutdownCtx); err != nil {
			logger.Errorf(shutdownCtx, "Error shutting down Redis subscriber: %v", err)
		}
	}
	if err := wsUseCase.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "Error shutting down WebSocket hub: %v", err)
	}
	wg.Wait()

	return serveErr
}
