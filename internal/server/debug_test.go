package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/aethersim/aether/internal/core/engine"
	"github.com/aethersim/aether/internal/core/observability/log"
)

func newTestServer(t *testing.T) (*DebugServer, *httptest.Server) {
	t.Helper()
	s := NewDebugServer(log.Nop(), "")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, s *DebugServer, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count never reached %d", want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublishReachesConnectedInspector(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)
	waitForClients(t, s, 1)

	s.Publish(engine.Snapshot{Ticks: 42, Elapsed: 1.5})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.EqualValues(t, 42, snap.Ticks)
	require.InDelta(t, 1.5, snap.Elapsed, 1e-9)
}

func TestLateInspectorGetsLatestSnapshot(t *testing.T) {
	s, ts := newTestServer(t)
	s.Publish(engine.Snapshot{Ticks: 7})

	conn := dial(t, ts)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	require.EqualValues(t, 7, snap.Ticks)
}

func TestSnapshotEndpoint(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	s.Publish(engine.Snapshot{Ticks: 3})

	resp, err = http.Get(ts.URL + "/snapshot")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var snap engine.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.EqualValues(t, 3, snap.Ticks)
}

func TestClosedInspectorIsReaped(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dial(t, ts)
	waitForClients(t, s, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, s, 0)

	// Publishing with no clients just refreshes the cached snapshot.
	s.Publish(engine.Snapshot{Ticks: 1})
}
