package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"mute-bridge/internal/bridge"
	"mute-bridge/internal/hub"
	"mute-bridge/internal/store"
)

const testSecret = "test-secret"

type testEnv struct {
	store *store.MemoryStore
	hub   *hub.Hub
	ts    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemoryStore()
	h := hub.New()
	srv := New(bridge.New(st, h), h, testSecret)

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: srv.Handler()},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return &testEnv{store: st, hub: h, ts: ts}
}

func (e *testEnv) wsURL() string {
	return "ws" + strings.TrimPrefix(e.ts.URL, "http") + "/ws"
}

func dialConsumer(t *testing.T, e *testEnv, token string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(e.wsURL(), header)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func joinGroup(t *testing.T, e *testEnv, conn *websocket.Conn, group string) {
	t.Helper()
	want := e.hub.GroupSize(group) + 1
	frame := map[string]any{"event": "room", "data": group}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("group join write failed: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e.hub.GroupSize(group) >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("group %s never reached %d members", group, want)
}

func postEvent(t *testing.T, e *testEnv, token string, body any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+"/api/events", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func readFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var f struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("bad frame %s: %v", raw, err)
	}
	return f.Event, f.Data
}

func expectNoFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	if _, raw, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected frame %s", raw)
	}
}
