package model

import (
	"errors"
	"strings"
)

var (
	ErrNoEvents      = errors.New("payload contains no events")
	ErrNoApplication = errors.New("first event carries no application name")
)

// Event is a single application event reported by the monitoring source.
type Event struct {
	App      string `json:"app"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Deeplink string `json:"deeplink"`
}

// Payload is the inbound alert body posted by the monitoring source. The
// controller may batch several events into one payload; only the first one
// is ever posted to the triage room.
type Payload struct {
	Events          []Event  `json:"events"`
	TriageEmailList []string `json:"triageEmailList"`
}

// Validate reports whether the payload can produce a meaningful triage
// room. It is checked before any remote call is made.
func (p *Payload) Validate() error {
	if len(p.Events) == 0 {
		return ErrNoEvents
	}

	if strings.TrimSpace(p.Events[0].App) == "" {
		return ErrNoApplication
	}

	return nil
}

// First returns the event the room is built around.
func (p *Payload) First() Event {
	return p.Events[0]
}

func (e Event) String() string {
	return strings.Join([]string{e.App, e.Name, e.Message}, ": ")
}
