package webhook

import (
	"crypto/subtle"
	"net/http"

	"github.com/webitel/wlog"
)

// AuthHeader carries the shared-secret token the monitoring controller
// attaches to every request it sends at the bot.
const AuthHeader = "Triage-Auth-Token"

// Gate validates the shared-secret token on inbound requests. It fails
// closed: an unset expected token rejects everything. Token values never
// reach the log, only the match outcome does.
type Gate struct {
	log   *wlog.Logger
	token string
}

func NewGate(log *wlog.Logger, token string) *Gate {
	return &Gate{
		log:   log,
		token: token,
	}
}

// Verify reports whether the request carries a header equal byte-for-byte
// to the expected token.
func (g *Gate) Verify(header http.Header) bool {
	if g.token == "" {
		g.log.Error("webhook token is not configured, rejecting request")

		return false
	}

	got := header.Get(AuthHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(g.token)) != 1 {
		g.log.Info("request did not carry the expected triage token")

		return false
	}

	g.log.Info("request carried the expected triage token")

	return true
}
