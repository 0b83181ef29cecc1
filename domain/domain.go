package domain

import (
	"math"
	"strconv"
	"time"
)

// MaxKeepaliveSeconds is the largest keepalive a probe may register with (ten years).
const MaxKeepaliveSeconds = 10 * 365 * 24 * 60 * 60

// maxDurationSeconds is the largest whole number of seconds a time.Duration holds.
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// ProbeRecord represents a registered probe stored by the registry.
// Fields match API: id, address, port, group, keepalive, meta, create_date.
type ProbeRecord struct {
	ID               string // "<Address>:<Port>", unique key
	Address          string // peer address observed at registration time
	Port             int    // probe listening port
	Group            string
	KeepaliveSeconds int            // max seconds between registrations
	Meta             map[string]any // always carries a "version" string
	CreatedAt        time.Time      // set by the registry on every registration
}

// ProbeID builds the registry key for a probe.
func ProbeID(address string, port int) string {
	return address + ":" + strconv.Itoa(port)
}

// Keepalive returns the keepalive budget as a duration.
func (p ProbeRecord) Keepalive() time.Duration {
	return KeepaliveDuration(p.KeepaliveSeconds)
}

// KeepaliveDuration converts keepalive seconds to a duration, saturating at the largest
// time.Duration instead of overflowing.
func KeepaliveDuration(seconds int) time.Duration {
	if int64(seconds) > maxDurationSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}

// Age returns how long ago the probe last registered.
func (p ProbeRecord) Age(now time.Time) time.Duration {
	return now.Sub(p.CreatedAt)
}

// Valid reports whether the record carries enough information to judge its age.
// Records that are not valid are never evicted.
func (p ProbeRecord) Valid() bool {
	return !p.CreatedAt.IsZero() && p.KeepaliveSeconds >= 0
}

// Expired reports whether the probe outlived its keepalive budget at now.
func (p ProbeRecord) Expired(now time.Time) bool {
	return p.Valid() && p.Age(now) > p.Keepalive()
}

// Registration is what a probe sends to the registry. Nil KeepaliveSeconds and
// empty Group let the registry apply its defaults.
type Registration struct {
	Port             int
	Group            string
	KeepaliveSeconds *int
	Meta             map[string]any
}
