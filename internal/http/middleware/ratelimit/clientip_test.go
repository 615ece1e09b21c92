package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{name: "host port", remoteAddr: "10.1.2.3:51234", want: "10.1.2.3"},
		{name: "no port falls back to remote addr", remoteAddr: "not-a-hostport", want: "not-a-hostport"},
		{name: "empty remote addr", remoteAddr: "", want: "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "http://example/", nil)
			r.RemoteAddr = tc.remoteAddr
			require.Equal(t, tc.want, clientIP(r))
		})
	}
}
