package webhook

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/webitel/wlog"
)

func testLogger() *wlog.Logger {
	return wlog.NewLogger(&wlog.LoggerConfiguration{
		EnableConsole: true,
		ConsoleLevel:  "error",
	})
}

func TestGateVerify(t *testing.T) {
	testCases := []struct {
		name        string
		expected    string
		headerValue string
		want        bool
	}{
		{
			name:        "matching token",
			expected:    "secret",
			headerValue: "secret",
			want:        true,
		},
		{
			name:     "missing header",
			expected: "secret",
			want:     false,
		},
		{
			name:        "mismatched token",
			expected:    "secret",
			headerValue: "guess",
			want:        false,
		},
		{
			name:        "expected token unset",
			headerValue: "secret",
			want:        false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := http.Header{}
			if tc.headerValue != "" {
				header.Set(AuthHeader, tc.headerValue)
			}

			gate := NewGate(testLogger(), tc.expected)
			assert.Equal(t, tc.want, gate.Verify(header))
		})
	}
}
