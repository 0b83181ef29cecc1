package handlers

import (
	"proberegistry/domain"
)

// toProbeResponse converts a stored record to its wire form.
func toProbeResponse(r domain.ProbeRecord) ProbeResponse {
	meta := r.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return ProbeResponse{
		Id:         r.ID,
		Address:    r.Address,
		Port:       r.Port,
		Group:      r.Group,
		Keepalive:  r.KeepaliveSeconds,
		Meta:       meta,
		CreateDate: r.CreatedAt,
	}
}

// toListResponse converts a store snapshot to API response. An empty store gives an empty object.
func toListResponse(records map[string]domain.ProbeRecord) ListResponse {
	out := make(ListResponse, len(records))
	for id, r := range records {
		out[id] = toProbeResponse(r)
	}
	return out
}

func toMetricsResponse(s domain.MetricsSnapshot) MetricsResponse {
	out := MetricsResponse{
		StartTime:          s.StartTime,
		ProbeRemoved:       s.ProbesRemoved,
		ProbeCount:         s.ProbeCount,
		DatabaseSizeBytes:  s.StoreSizeBytes,
		CleanRuntime:       s.SweepDuration.Seconds(),
		Uptime:             s.Uptime.Seconds(),
		SweepsTotal:        s.SweepsTotal,
		ProbesRemovedTotal: s.ProbesRemovedTotal,
	}
	if !s.LastSweepAt.IsZero() {
		lastSweepAt := s.LastSweepAt
		out.MetricsTimestamp = &lastSweepAt
	}
	return out
}
