// Package spark is a thin client for the collaboration platform REST API:
// the five room operations the triage workflow needs and nothing else.
// Every call is a single attempt; the caller decides what a failure means.
package spark

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/webitel/wlog"
)

// StatusError reports a non-success response from the platform, carrying
// enough for the caller's per-operation policy (fatal vs. logged).
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("spark: %s: unexpected status code %d", e.Op, e.Code)
}

type Options struct {
	URL                *url.URL
	Token              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

type Client struct {
	log        *wlog.Logger
	options    *Options
	connection *fasthttp.Client
}

func New(log *wlog.Logger, options *Options) (*Client, error) {
	if options.URL == nil {
		return nil, fmt.Errorf("spark: api url is required")
	}

	if options.Timeout == 0 {
		options.Timeout = 10 * time.Second
	}

	cli := fasthttp.Client{
		TLSConfig: &tls.Config{
			InsecureSkipVerify: options.InsecureSkipVerify,
		},
	}

	return &Client{
		log:        log,
		options:    options,
		connection: &cli,
	}, nil
}

type createRoomRequest struct {
	Title string `json:"title"`
}

type createRoomResponse struct {
	ID string `json:"id"`
}

type membershipRequest struct {
	RoomID      string `json:"roomId"`
	PersonEmail string `json:"personEmail"`
}

type messageRequest struct {
	RoomID   string `json:"roomId"`
	Markdown string `json:"markdown"`
}

type membership struct {
	RoomID string `json:"roomId"`
}

type membershipList struct {
	Items []membership `json:"items"`
}

// CreateRoom creates a room with the given title and returns the
// platform-issued room id.
func (c *Client) CreateRoom(ctx context.Context, title string) (string, error) {
	var resp createRoomResponse
	if err := c.request(ctx, "create room", fasthttp.MethodPost, "/rooms", createRoomRequest{Title: title}, &resp, http.StatusOK); err != nil {
		return "", err
	}

	return resp.ID, nil
}

// AddMember invites one email address into the room.
func (c *Client) AddMember(ctx context.Context, roomID, email string) error {
	return c.request(ctx, "add member", fasthttp.MethodPost, "/memberships", membershipRequest{RoomID: roomID, PersonEmail: email}, nil, http.StatusOK)
}

// PostMessage posts a markdown-formatted message into the room.
func (c *Client) PostMessage(ctx context.Context, roomID, markdown string) error {
	return c.request(ctx, "post message", fasthttp.MethodPost, "/messages", messageRequest{RoomID: roomID, Markdown: markdown}, nil, http.StatusOK)
}

// ListMemberships returns the room id of every room the service account
// currently participates in.
func (c *Client) ListMemberships(ctx context.Context) ([]string, error) {
	var resp membershipList
	if err := c.request(ctx, "list memberships", fasthttp.MethodGet, "/memberships", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	rooms := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		rooms = append(rooms, item.RoomID)
	}

	return rooms, nil
}

// DeleteRoom deletes the room and, with it, all of its memberships. The
// platform signals success with 204 No Content.
func (c *Client) DeleteRoom(ctx context.Context, roomID string) error {
	return c.request(ctx, "delete room", fasthttp.MethodDelete, path.Join("/rooms", roomID), nil, nil, http.StatusNoContent)
}

func (c *Client) request(ctx context.Context, op, requestMethod, requestPath string, requestPayload, responseStruct any, wantStatus int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	u := *c.options.URL
	u.Path = path.Join(u.Path, requestPath)
	req.SetRequestURI(u.String())
	req.Header.SetMethod(requestMethod)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.options.Token)

	if requestPayload != nil {
		payload, err := json.Marshal(requestPayload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", op, err)
		}

		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.connection.DoTimeout(req, resp, c.options.Timeout); err != nil {
		return fmt.Errorf("%s %s: %w", op, req.URI(), err)
	}

	c.log.Debug("spark request", wlog.String("op", op), wlog.String("method", requestMethod),
		wlog.String("path", requestPath), wlog.Int("status", resp.StatusCode()))

	if resp.StatusCode() != wantStatus {
		return &StatusError{Op: op, Code: resp.StatusCode()}
	}

	if responseStruct == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), responseStruct); err != nil {
		return fmt.Errorf("unmarshal %s response: %w", op, err)
	}

	return nil
}
