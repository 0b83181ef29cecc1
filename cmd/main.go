package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"proberegistry/adapters/myredis"
	"proberegistry/adapters/nopcache"
	"proberegistry/adapters/promcollector"
	"proberegistry/domain"
	"proberegistry/handlers"
	"proberegistry/interfaces"
	"proberegistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, logLevel(config.Verbose))

	level.Info(logger).Log("msg", "Starting probe registry")
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"config_file", config.ConfigFile,
		"listen_addr", config.ListenAddr(),
		"default_group", config.Group,
		"default_keepalive", config.KeepaliveSeconds,
		"sweep_interval", config.SweepInterval,
		"redis_addr", config.RedisAddr,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	store := service.NewProbeStore(timeProvider)
	metrics := service.NewMetricsHolder(timeProvider.Now())

	var mirror interfaces.Cache[domain.ProbeRecord]
	if config.RedisAddr == "" {
		mirror = nopcache.New[domain.ProbeRecord]()
		level.Info(logger).Log("msg", "Redis mirror disabled")
	} else {
		redisClient, err := myredis.NewRedisUniversalClient(config.RedisAddr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		mirror = myredis.NewProbeCache(redisClient)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		promcollector.NewCollector(metrics),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Create HTTPServer
	var httpServer handlers.ServerInterface
	{
		httpServer = handlers.NewHTTPServer(store, mirror, metrics, handlers.RegistryOptions{
			DefaultGroup:            config.Group,
			DefaultKeepaliveSeconds: config.KeepaliveSeconds,
			SweepInterval:           config.SweepInterval,
		}, logger)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.JSONSerializer = service.SonicJSONSerializer{}
		service.RegisterErrorHandler(e, logger)

		doc, err := handlers.LoadOpenAPI(ctx)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}
		validator, err := handlers.NewRequestValidator(doc)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create request validator", "err", err)
			os.Exit(1)
		}
		e.Use(validator)

		handlers.RegisterHandlers(e, httpServer)
		handlers.RegisterPrometheusHandler(e, registry)
	}

	// Start the sweeper
	var wg sync.WaitGroup
	sweeper := service.NewSweeper(store, mirror, metrics, timeProvider, config.SweepInterval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	// Start server in a goroutine
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", config.ListenAddr())
		if err := e.Start(config.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}
	wg.Wait()

	level.Info(logger).Log("msg", "Server stopped")
}

func logLevel(verbose bool) level.Option {
	if verbose {
		return level.AllowDebug()
	}
	return level.AllowInfo()
}
