// Package mock imitates the collaboration platform client for tests. It
// records every call in order and fails selected operations on demand.
package mock

import (
	"context"
	"net/http"

	"github.com/incidentops/triagebot/spark"
)

type MembershipCall struct {
	RoomID string
	Email  string
}

type MessageCall struct {
	RoomID   string
	Markdown string
}

type RoomClientMock struct {
	// Rooms is what ListMemberships returns.
	Rooms []string

	// Failure switches for individual operations.
	FailCreateRoom      bool
	FailListMemberships bool
	FailPostMessage     bool
	FailMembers         map[string]bool // email -> fail
	FailDeletes         map[string]bool // room id -> fail

	// NextRoomID is handed out by CreateRoom.
	NextRoomID string

	CreateRoomCalls      []string // titles, in call order
	AddMemberCalls       []MembershipCall
	PostMessageCalls     []MessageCall
	ListMembershipsCalls int
	DeleteRoomCalls      []string
}

func NewRoomClientMock() *RoomClientMock {
	return &RoomClientMock{
		NextRoomID:  "room-1",
		FailMembers: make(map[string]bool),
		FailDeletes: make(map[string]bool),
	}
}

func (m *RoomClientMock) CreateRoom(ctx context.Context, title string) (string, error) {
	m.CreateRoomCalls = append(m.CreateRoomCalls, title)
	if m.FailCreateRoom {
		return "", &spark.StatusError{Op: "create room", Code: http.StatusServiceUnavailable}
	}

	return m.NextRoomID, nil
}

func (m *RoomClientMock) AddMember(ctx context.Context, roomID, email string) error {
	m.AddMemberCalls = append(m.AddMemberCalls, MembershipCall{RoomID: roomID, Email: email})
	if m.FailMembers[email] {
		return &spark.StatusError{Op: "add member", Code: http.StatusConflict}
	}

	return nil
}

func (m *RoomClientMock) PostMessage(ctx context.Context, roomID, markdown string) error {
	m.PostMessageCalls = append(m.PostMessageCalls, MessageCall{RoomID: roomID, Markdown: markdown})
	if m.FailPostMessage {
		return &spark.StatusError{Op: "post message", Code: http.StatusBadRequest}
	}

	return nil
}

func (m *RoomClientMock) ListMemberships(ctx context.Context) ([]string, error) {
	m.ListMembershipsCalls++
	if m.FailListMemberships {
		return nil, &spark.StatusError{Op: "list memberships", Code: http.StatusUnauthorized}
	}

	return m.Rooms, nil
}

func (m *RoomClientMock) DeleteRoom(ctx context.Context, roomID string) error {
	m.DeleteRoomCalls = append(m.DeleteRoomCalls, roomID)
	if m.FailDeletes[roomID] {
		return &spark.StatusError{Op: "delete room", Code: http.StatusForbidden}
	}

	return nil
}
