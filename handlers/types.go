package handlers

import "time"

// RegisterRequest is the body of POST /api/v1/register. Optional fields are pointers so that
// an explicit zero keepalive is distinguishable from an omitted one.
type RegisterRequest struct {
	Port      *int           `json:"port"`
	Keepalive *int           `json:"keepalive,omitempty"`
	Group     *string        `json:"group,omitempty"`
	Meta      map[string]any `json:"meta"`
}

// ProbeResponse is the wire form of one registered probe.
type ProbeResponse struct {
	Id         string         `json:"id"`
	Address    string         `json:"address"`
	Port       int            `json:"port"`
	Group      string         `json:"group"`
	Keepalive  int            `json:"keepalive"`
	Meta       map[string]any `json:"meta"`
	CreateDate time.Time      `json:"create_date"`
}

// ListResponse maps probe id to probe.
type ListResponse map[string]ProbeResponse

// IPAddressResponse is the body of GET /api/v1/my_ip_address.
type IPAddressResponse struct {
	Ip string `json:"ip"`
}

// MetricsResponse is the body of GET /metrics. Durations are in seconds.
type MetricsResponse struct {
	StartTime          time.Time  `json:"start_time"`
	ProbeRemoved       int        `json:"probe_removed"`
	ProbeCount         int        `json:"probe_count"`
	DatabaseSizeBytes  int        `json:"database_size_bytes"`
	CleanRuntime       float64    `json:"clean_runtime"`
	Uptime             float64    `json:"uptime"`
	MetricsTimestamp   *time.Time `json:"metrics_timestamp,omitempty"`
	SweepsTotal        int        `json:"sweeps_total"`
	ProbesRemovedTotal int        `json:"probes_removed_total"`
}
