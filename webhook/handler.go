// Package webhook is the inbound surface of the bot: the shared-secret
// gate and the two /triage handlers. Callers always get the same plain
// acknowledgment; everything the bot actually did is visible only in the
// logs, so a failing provisioning pass never turns into a retry storm on
// the monitoring side.
package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/webitel/wlog"

	"github.com/incidentops/triagebot/config"
	"github.com/incidentops/triagebot/model"
	"github.com/incidentops/triagebot/server"
	"github.com/incidentops/triagebot/triage"
)

const ack = "Ok"

type Handler struct {
	log   *wlog.Logger
	creds *config.Credentials
	gate  *Gate
	cli   triage.RoomClient
}

func NewHandler(log *wlog.Logger, creds *config.Credentials, cli triage.RoomClient) *Handler {
	return &Handler{
		log:   log,
		creds: creds,
		gate:  NewGate(log, creds.WebhookToken),
		cli:   cli,
	}
}

func (h *Handler) Register(srv *server.Server) {
	srv.HandleFunc(http.MethodPost, "/triage", h.handleProvision)
	srv.HandleFunc(http.MethodDelete, "/triage", h.handleTeardown)
}

// acknowledge answers every request identically, whatever happened inside.
func acknowledge(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ack))
}

func (h *Handler) handleProvision(w http.ResponseWriter, r *http.Request) {
	defer acknowledge(w)

	log := h.requestLog(r)
	if !h.authorized(r, log) {
		return
	}

	var payload model.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Error("decode triage payload", wlog.Err(err))

		return
	}

	report, err := triage.NewProvisioner(log, h.cli).Provision(r.Context(), &payload)
	if err != nil {
		log.Error("provision triage room", wlog.Err(err))
	}

	report.Log(log)
}

func (h *Handler) handleTeardown(w http.ResponseWriter, r *http.Request) {
	defer acknowledge(w)

	log := h.requestLog(r)
	if !h.authorized(r, log) {
		return
	}

	report, err := triage.NewReaper(log, h.cli).Reap(r.Context())
	if err != nil {
		log.Error("reap triage rooms", wlog.Err(err))
	}

	report.Log(log)
}

// authorized runs the gate, but first refuses outright when either secret
// is missing so the bot never serves unauthenticated.
func (h *Handler) authorized(r *http.Request, log *wlog.Logger) bool {
	if !h.creds.Complete() {
		log.Error("credentials are incomplete, rejecting request")

		return false
	}

	return h.gate.Verify(r.Header)
}

func (h *Handler) requestLog(r *http.Request) *wlog.Logger {
	return h.log.With(wlog.String("request_id", uuid.Must(uuid.NewRandom()).String()), wlog.String("method", r.Method))
}
