package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incidentops/triagebot/spark"
	"github.com/incidentops/triagebot/triage/mock"
)

func TestReapDeletesEveryRoom(t *testing.T) {
	cli := mock.NewRoomClientMock()
	cli.Rooms = []string{"room-1", "room-2", "room-3"}

	report, err := NewReaper(testLogger(), cli).Reap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, cli.ListMembershipsCalls)
	assert.Equal(t, []string{"room-1", "room-2", "room-3"}, cli.DeleteRoomCalls)
	assert.Equal(t, 3, report.Count(StepDeleteRoom))
	assert.Empty(t, report.Failed())
}

func TestReapContinuesOnDeleteFailure(t *testing.T) {
	cli := mock.NewRoomClientMock()
	cli.Rooms = []string{"room-1", "room-2", "room-3"}
	cli.FailDeletes["room-2"] = true

	report, err := NewReaper(testLogger(), cli).Reap(context.Background())
	require.NoError(t, err)

	assert.Len(t, cli.DeleteRoomCalls, 3)

	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, StepDeleteRoom, failed[0].Step)
	assert.Equal(t, "room-2", failed[0].Target)
}

func TestReapDeduplicatesRooms(t *testing.T) {
	cli := mock.NewRoomClientMock()
	cli.Rooms = []string{"room-1", "room-1", "room-2"}

	_, err := NewReaper(testLogger(), cli).Reap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"room-1", "room-2"}, cli.DeleteRoomCalls)
}

func TestReapListFailureAborts(t *testing.T) {
	cli := mock.NewRoomClientMock()
	cli.FailListMemberships = true

	report, err := NewReaper(testLogger(), cli).Reap(context.Background())

	var statusErr *spark.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Empty(t, cli.DeleteRoomCalls)
	assert.Len(t, report.Failed(), 1)
}

func TestReapNothingToDelete(t *testing.T) {
	cli := mock.NewRoomClientMock()

	report, err := NewReaper(testLogger(), cli).Reap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, cli.ListMembershipsCalls)
	assert.Empty(t, cli.DeleteRoomCalls)
	assert.Equal(t, 0, report.Count(StepDeleteRoom))
}
