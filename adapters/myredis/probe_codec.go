package myredis

import (
	"time"

	"proberegistry/domain"
	"proberegistry/interfaces"
	"proberegistry/service"

	"github.com/go-redis/redis/v8"
)

// ProbePrefix is the key prefix of mirrored probes: "probe:<address>:<port>".
const ProbePrefix = "probe"

// mirroredProbe is the JSON stored in Redis. It uses the field names of the HTTP API so that
// outside readers see the same shape as GET /api/v1/list.
type mirroredProbe struct {
	ID         string         `json:"id"`
	Address    string         `json:"address"`
	Port       int            `json:"port"`
	Group      string         `json:"group"`
	Keepalive  int            `json:"keepalive"`
	Meta       map[string]any `json:"meta"`
	CreateDate time.Time      `json:"create_date"`
}

// MarshalProbe encodes a record for the mirror.
func MarshalProbe(p domain.ProbeRecord) ([]byte, error) {
	return service.MarshalJSON(mirroredProbe{
		ID:         p.ID,
		Address:    p.Address,
		Port:       p.Port,
		Group:      p.Group,
		Keepalive:  p.KeepaliveSeconds,
		Meta:       p.Meta,
		CreateDate: p.CreatedAt,
	})
}

// UnmarshalProbe decodes a mirrored record.
func UnmarshalProbe(b []byte) (domain.ProbeRecord, error) {
	m, err := service.UnmarshalJSON[mirroredProbe](b)
	if err != nil {
		return domain.ProbeRecord{}, err
	}
	return domain.ProbeRecord{
		ID:               m.ID,
		Address:          m.Address,
		Port:             m.Port,
		Group:            m.Group,
		KeepaliveSeconds: m.Keepalive,
		Meta:             m.Meta,
		CreatedAt:        m.CreateDate,
	}, nil
}

// NewProbeCache creates the Redis mirror of registry records.
func NewProbeCache(client redis.UniversalClient) interfaces.Cache[domain.ProbeRecord] {
	return NewCache[domain.ProbeRecord](client, ProbePrefix, MarshalProbe, UnmarshalProbe)
}
