package handlers

import (
	"net/http/httptest"
	"testing"

	"proberegistry/domain"
	"proberegistry/helpers"
	"proberegistry/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRegisterRequest(t *testing.T) {
	options := RegistryOptions{DefaultGroup: "none", DefaultKeepaliveSeconds: 86400}
	meta := map[string]any{"version": "1.0"}

	tests := []struct {
		name          string
		request       RegisterRequest
		address       string
		expected      domain.ProbeRecord
		expectedError string
	}{
		{
			name: "valid",
			request: RegisterRequest{
				Port:      helpers.Ptr(8100),
				Keepalive: helpers.Ptr(5),
				Group:     helpers.Ptr("edge"),
				Meta:      meta,
			},
			address: "10.0.0.5",
			expected: domain.ProbeRecord{
				Address:          "10.0.0.5",
				Port:             8100,
				Group:            "edge",
				KeepaliveSeconds: 5,
				Meta:             meta,
			},
		},
		{
			name:    "defaults",
			request: RegisterRequest{Port: helpers.Ptr(8100), Meta: meta},
			address: "10.0.0.5",
			expected: domain.ProbeRecord{
				Address:          "10.0.0.5",
				Port:             8100,
				Group:            "none",
				KeepaliveSeconds: 86400,
				Meta:             meta,
			},
		},
		{
			name:    "explicit zero keepalive",
			request: RegisterRequest{Port: helpers.Ptr(8100), Keepalive: helpers.Ptr(0), Meta: meta},
			address: "10.0.0.5",
			expected: domain.ProbeRecord{
				Address:          "10.0.0.5",
				Port:             8100,
				Group:            "none",
				KeepaliveSeconds: 0,
				Meta:             meta,
			},
		},
		{
			name:          "missing port",
			request:       RegisterRequest{Meta: meta},
			address:       "10.0.0.5",
			expectedError: "port is required",
		},
		{
			name:          "port out of range",
			request:       RegisterRequest{Port: helpers.Ptr(70000), Meta: meta},
			address:       "10.0.0.5",
			expectedError: "port must be between 1 and 65535",
		},
		{
			name:          "negative keepalive",
			request:       RegisterRequest{Port: helpers.Ptr(8100), Keepalive: helpers.Ptr(-1), Meta: meta},
			address:       "10.0.0.5",
			expectedError: "keepalive must not be negative",
		},
		{
			name:          "keepalive above ten years",
			request:       RegisterRequest{Port: helpers.Ptr(8100), Keepalive: helpers.Ptr(domain.MaxKeepaliveSeconds + 1), Meta: meta},
			address:       "10.0.0.5",
			expectedError: "keepalive must not exceed 315360000",
		},
		{
			name:          "missing meta",
			request:       RegisterRequest{Port: helpers.Ptr(8100)},
			address:       "10.0.0.5",
			expectedError: "meta is required",
		},
		{
			name:          "missing meta.version",
			request:       RegisterRequest{Port: helpers.Ptr(8100), Meta: map[string]any{"zone": "a"}},
			address:       "10.0.0.5",
			expectedError: "meta.version is required",
		},
		{
			name:          "numeric meta.version",
			request:       RegisterRequest{Port: helpers.Ptr(8100), Meta: map[string]any{"version": 1.0}},
			address:       "10.0.0.5",
			expectedError: "meta.version is required",
		},
		{
			name:          "unknown address",
			request:       RegisterRequest{Port: helpers.Ptr(8100), Meta: meta},
			expectedError: "peer address is unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromRegisterRequest(tt.request, tt.address, options)
			if tt.expectedError != "" {
				require.Error(t, err)
				myErr := service.ToMyError(err)
				require.NotNil(t, myErr)
				assert.Equal(t, service.ErrBadParameter, myErr.Code)
				assert.Equal(t, tt.expectedError, myErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPeerAddress(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"ipv4", "10.0.0.5:53211", "", "10.0.0.5"},
		{"ipv6", "[2001:db8::1]:53211", "", "2001:db8::1"},
		{"no port", "10.0.0.5", "", "10.0.0.5"},
		{"forwarding header ignored", "10.0.0.5:53211", "203.0.113.7", "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, peerAddress(req))
		})
	}
}
