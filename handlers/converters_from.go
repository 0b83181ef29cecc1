package handlers

import (
	"fmt"
	"net"
	"net/http"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/service"
)

const maxPort = 65535

// fromRegisterRequest converts RegisterRequest to domain.ProbeRecord for a probe calling from address.
// Omitted group and keepalive take the registry defaults.
// Returns service.BadParameterError on validation failure.
func fromRegisterRequest(req RegisterRequest, address string, options RegistryOptions) (domain.ProbeRecord, error) {
	if address == "" {
		return domain.ProbeRecord{}, service.NewBadParameterError("peer address is unknown", nil)
	}
	if req.Port == nil {
		return domain.ProbeRecord{}, service.NewBadParameterError("port is required", nil)
	}
	if *req.Port < 1 || *req.Port > maxPort {
		return domain.ProbeRecord{}, service.NewBadParameterError("port must be between 1 and 65535", nil)
	}
	keepalive := helpers.Value(req.Keepalive, options.DefaultKeepaliveSeconds)
	if keepalive < 0 {
		return domain.ProbeRecord{}, service.NewBadParameterError("keepalive must not be negative", nil)
	}
	if keepalive > domain.MaxKeepaliveSeconds {
		return domain.ProbeRecord{}, service.NewBadParameterError(fmt.Sprintf("keepalive must not exceed %d", domain.MaxKeepaliveSeconds), nil)
	}
	if req.Meta == nil {
		return domain.ProbeRecord{}, service.NewBadParameterError("meta is required", nil)
	}
	if _, ok := req.Meta["version"].(string); !ok {
		return domain.ProbeRecord{}, service.NewBadParameterError("meta.version is required", nil)
	}

	return domain.ProbeRecord{
		Address:          address,
		Port:             *req.Port,
		Group:            helpers.Value(req.Group, options.DefaultGroup),
		KeepaliveSeconds: keepalive,
		Meta:             req.Meta,
	}, nil
}

// peerAddress returns the host part of the direct TCP peer. Forwarding headers are ignored.
func peerAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
