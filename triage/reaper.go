package triage

import (
	"context"
	"fmt"

	"github.com/webitel/wlog"
)

// Reaper tears down every room the service account belongs to. It has no
// notion of which alert spawned which room; teardown is account-wide, and
// deleting a room implicitly removes all of its memberships.
type Reaper struct {
	log *wlog.Logger
	cli RoomClient
}

func NewReaper(log *wlog.Logger, cli RoomClient) *Reaper {
	return &Reaper{
		log: log,
		cli: cli,
	}
}

// Reap lists the account's memberships once and deletes each distinct
// room. One failed deletion does not halt the remaining ones; the error
// is non-nil only when the membership listing itself failed.
func (r *Reaper) Reap(ctx context.Context) (*Report, error) {
	report := &Report{}

	rooms, err := r.cli.ListMemberships(ctx)
	report.add(StepListMemberships, "", err)
	if err != nil {
		return report, fmt.Errorf("list memberships: %w", err)
	}

	r.log.Info("reaping triage rooms", wlog.Int("memberships", len(rooms)))

	seen := make(map[string]struct{}, len(rooms))
	for _, roomID := range rooms {
		if _, ok := seen[roomID]; ok {
			continue
		}
		seen[roomID] = struct{}{}

		err := r.cli.DeleteRoom(ctx, roomID)
		report.add(StepDeleteRoom, roomID, err)
		if err != nil {
			r.log.Error("delete triage room", wlog.Err(err), wlog.String("room_id", roomID))
		}
	}

	return report, nil
}
