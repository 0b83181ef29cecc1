// Command probe keeps one service registered with the probe registry until it is stopped.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proberegistry/adapters/registryclient"
	"proberegistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	if config.Verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := registryclient.New(config.RegistryURL, &http.Client{Timeout: 10 * time.Second})
	heartbeat := service.NewHeartbeat(client, config.Registration(), config.Interval, logger)

	level.Info(logger).Log(
		"msg", "Starting probe heartbeat",
		"registry", config.RegistryURL,
		"port", config.Port,
		"interval", heartbeat.Interval(),
	)
	heartbeat.Run(ctx)
	level.Info(logger).Log("msg", "Probe heartbeat stopped")
}
