package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webitel/wlog"

	"github.com/incidentops/triagebot/config"
)

func testLogger() *wlog.Logger {
	return wlog.NewLogger(&wlog.LoggerConfiguration{
		EnableConsole: true,
		ConsoleLevel:  "error",
	})
}

func TestHandleFuncRespectsRootAndMethod(t *testing.T) {
	srv, err := New(testLogger(), &config.HttpServer{Bind: "127.0.0.1:0", Root: "/api"})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Stop(context.Background()) })

	srv.HandleFunc(http.MethodGet, "/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", rr.Body.String())

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestNewBadBind(t *testing.T) {
	_, err := New(testLogger(), &config.HttpServer{Bind: "not-a-valid-bind"})
	assert.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	srv, err := New(testLogger(), &config.HttpServer{Bind: "127.0.0.1:0", Root: "/hooks", PublicURL: "https://bot.example.com"})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Stop(context.Background()) })

	assert.Equal(t, "https://bot.example.com/hooks", srv.PublicURL())
}
