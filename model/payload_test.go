package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadDecode(t *testing.T) {
	body := `{
		"events": [
			{"app": "Checkout", "name": "HighLatency", "message": "p99 > 2s", "deeplink": "http://x/1"}
		],
		"triageEmailList": ["a@x.com", "b@x.com"]
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	require.Len(t, p.Events, 1)
	assert.Equal(t, "Checkout", p.Events[0].App)
	assert.Equal(t, "HighLatency", p.Events[0].Name)
	assert.Equal(t, "p99 > 2s", p.Events[0].Message)
	assert.Equal(t, "http://x/1", p.Events[0].Deeplink)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, p.TriageEmailList)
}

func TestPayloadValidate(t *testing.T) {
	testCases := []struct {
		name    string
		payload Payload
		wantErr error
	}{
		{
			name:    "valid",
			payload: Payload{Events: []Event{{App: "Checkout"}}},
		},
		{
			name:    "no events",
			payload: Payload{TriageEmailList: []string{"a@x.com"}},
			wantErr: ErrNoEvents,
		},
		{
			name:    "empty application name",
			payload: Payload{Events: []Event{{Name: "HighLatency"}}},
			wantErr: ErrNoApplication,
		},
		{
			name:    "blank application name",
			payload: Payload{Events: []Event{{App: "   "}}},
			wantErr: ErrNoApplication,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPayloadFirst(t *testing.T) {
	p := Payload{Events: []Event{{App: "Checkout"}, {App: "Billing"}}}
	assert.Equal(t, "Checkout", p.First().App)
}
