package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusPath exposes the registry metrics in Prometheus text format. GET /metrics keeps
// serving the JSON snapshot.
const PrometheusPath = "/metrics/prometheus"

// RegisterPrometheusHandler serves gatherer on PrometheusPath.
func RegisterPrometheusHandler(router EchoRouter, gatherer prometheus.Gatherer) {
	router.GET(PrometheusPath, echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
