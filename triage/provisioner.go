// Package triage holds the two orchestrations of the bot: provisioning a
// room for an inbound alert and reaping every room the service account is
// in. Both drive the collaboration platform through RoomClient and favor
// partial results over all-or-nothing semantics; an under-populated room
// is still useful to responders.
package triage

import (
	"context"
	"fmt"

	"github.com/webitel/wlog"

	"github.com/incidentops/triagebot/model"
)

// RoomClient is the capability set the orchestrations need from the
// collaboration platform.
type RoomClient interface {
	CreateRoom(ctx context.Context, title string) (string, error)
	AddMember(ctx context.Context, roomID, email string) error
	PostMessage(ctx context.Context, roomID, markdown string) error
	ListMemberships(ctx context.Context) ([]string, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type State string

const (
	StateIdle             State = "idle"
	StateRoomCreated      State = "room_created"
	StateMembersPopulated State = "members_populated"
	StateMessagePosted    State = "message_posted"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// RoomTitle derives the room title from the application name.
func RoomTitle(app string) string {
	return fmt.Sprintf("AppD: %s Triage", app)
}

// EventMarkdown formats the alert summary posted into the room.
func EventMarkdown(e model.Event) string {
	return fmt.Sprintf("## **%s** Had a Major Application Event!! \n\n * **Application Event:**  _%s_\n\n* **Event Summary:** %s\n\n * The event can be found here: %s",
		e.App, e.Name, e.Message, e.Deeplink)
}

// Provisioner walks one alert payload through room creation, member
// population and the initial alert message. A Provisioner is single use;
// every inbound alert gets a fresh one.
//
// Only room creation is fatal: a member or message failure is recorded
// and the sequence keeps going.
type Provisioner struct {
	log *wlog.Logger
	cli RoomClient

	state  State
	roomID string
}

func NewProvisioner(log *wlog.Logger, cli RoomClient) *Provisioner {
	return &Provisioner{
		log:   log,
		cli:   cli,
		state: StateIdle,
	}
}

func (p *Provisioner) State() State {
	return p.state
}

// RoomID returns the platform-issued room id, empty until the room exists.
func (p *Provisioner) RoomID() string {
	return p.roomID
}

// Provision runs the full call sequence for one payload. The returned
// report always describes every attempted step; the error is non-nil only
// when the pass aborted early (malformed payload or room creation failed).
func (p *Provisioner) Provision(ctx context.Context, payload *model.Payload) (*Report, error) {
	report := &Report{}

	if err := payload.Validate(); err != nil {
		p.state = StateFailed
		return report, fmt.Errorf("malformed payload: %w", err)
	}

	event := payload.First()

	roomID, err := p.cli.CreateRoom(ctx, RoomTitle(event.App))
	report.add(StepCreateRoom, event.App, err)
	if err != nil {
		p.state = StateFailed
		return report, fmt.Errorf("create room: %w", err)
	}

	p.roomID = roomID
	p.state = StateRoomCreated
	p.log.Info("triage room created", wlog.String("room_id", roomID), wlog.String("app", event.App))

	for _, email := range payload.TriageEmailList {
		err := p.cli.AddMember(ctx, roomID, email)
		report.add(StepAddMember, email, err)
		if err != nil {
			p.log.Error("add member to triage room", wlog.Err(err), wlog.String("room_id", roomID), wlog.String("email", email))
		}
	}

	p.state = StateMembersPopulated

	// Only the first event goes into the room, even when several arrive.
	err = p.cli.PostMessage(ctx, roomID, EventMarkdown(event))
	report.add(StepPostMessage, roomID, err)
	p.state = StateMessagePosted
	if err != nil {
		p.log.Error("post event message to triage room", wlog.Err(err), wlog.String("room_id", roomID))
	}

	p.state = StateDone

	return report, nil
}
