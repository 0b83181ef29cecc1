// Package promcollector exposes the registry metrics snapshot to Prometheus.
package promcollector

import (
	"proberegistry/helpers"
	"proberegistry/interfaces"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "probe_registry"

// collector reads the metrics holder on every scrape, so Prometheus and GET /metrics always
// report the same sweep.
type collector struct {
	holder interfaces.MetricsHolder

	probes        *prometheus.Desc
	storeSize     *prometheus.Desc
	lastRemoved   *prometheus.Desc
	sweepDuration *prometheus.Desc
	uptime        *prometheus.Desc
	startTime     *prometheus.Desc
	lastSweep     *prometheus.Desc
	sweepsTotal   *prometheus.Desc
	removedTotal  *prometheus.Desc
}

// NewCollector creates a prometheus.Collector over holder. Panics on nil holder.
func NewCollector(holder interfaces.MetricsHolder) prometheus.Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &collector{
		holder:        helpers.NilPanic(holder, "adapters.promcollector.collector.go: holder is required"),
		probes:        desc("probes", "Probes registered after the last sweep."),
		storeSize:     desc("store_size_bytes", "Approximate memory held by the registry store after the last sweep."),
		lastRemoved:   desc("last_sweep_removed_probes", "Probes evicted by the last sweep."),
		sweepDuration: desc("last_sweep_duration_seconds", "Duration of the last sweep."),
		uptime:        desc("uptime_seconds", "Seconds from start to the last sweep."),
		startTime:     desc("start_time_seconds", "Start time of the registry since unix epoch."),
		lastSweep:     desc("last_sweep_timestamp_seconds", "Time of the last sweep since unix epoch, 0 before the first sweep."),
		sweepsTotal:   desc("sweeps_total", "Completed sweep cycles."),
		removedTotal:  desc("removed_probes_total", "Probes evicted since start."),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.probes
	ch <- c.storeSize
	ch <- c.lastRemoved
	ch <- c.sweepDuration
	ch <- c.uptime
	ch <- c.startTime
	ch <- c.lastSweep
	ch <- c.sweepsTotal
	ch <- c.removedTotal
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	s := c.holder.Snapshot()

	var lastSweep float64
	if !s.LastSweepAt.IsZero() {
		lastSweep = float64(s.LastSweepAt.UnixNano()) / 1e9
	}

	ch <- prometheus.MustNewConstMetric(c.probes, prometheus.GaugeValue, float64(s.ProbeCount))
	ch <- prometheus.MustNewConstMetric(c.storeSize, prometheus.GaugeValue, float64(s.StoreSizeBytes))
	ch <- prometheus.MustNewConstMetric(c.lastRemoved, prometheus.GaugeValue, float64(s.ProbesRemoved))
	ch <- prometheus.MustNewConstMetric(c.sweepDuration, prometheus.GaugeValue, s.SweepDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, s.Uptime.Seconds())
	ch <- prometheus.MustNewConstMetric(c.startTime, prometheus.GaugeValue, float64(s.StartTime.UnixNano())/1e9)
	ch <- prometheus.MustNewConstMetric(c.lastSweep, prometheus.GaugeValue, lastSweep)
	ch <- prometheus.MustNewConstMetric(c.sweepsTotal, prometheus.CounterValue, float64(s.SweepsTotal))
	ch <- prometheus.MustNewConstMetric(c.removedTotal, prometheus.CounterValue, float64(s.ProbesRemovedTotal))
}
