package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sourceclub/door-monitor/internal/state"
	"github.com/sourceclub/door-monitor/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		Pin:        21,
		DebounceMs: 1000,
		Timezone:   "Europe/Helsinki",
		RolloverAt: "00:01",
		Broker:     "tcp://192.168.1.200:1883",
		Collection: "door_data",
		HTTPAddr:   ":8080",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(state.CurrentStatus{IsOpen: true, LastOpened: 100, LastClosed: 90}, "2024-01-01", 3)
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Door != "OPEN" {
		t.Errorf("door: got %q, want OPEN", sj.Status.Door)
	}
	if sj.Status.OpeningsToday != 3 {
		t.Errorf("openings_today: got %d, want 3", sj.Status.OpeningsToday)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.Config.Pin != 21 {
		t.Errorf("config.pin: got %d, want 21", sj.Status.Config.Pin)
	}
}

func TestIndexPage(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(state.CurrentStatus{IsOpen: true, LastOpened: 1704110400}, "2024-01-01", 2)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	html := string(body)

	if !strings.Contains(html, "Door Monitor") {
		t.Error("missing page title")
	}
	if !strings.Contains(html, "OPEN") {
		t.Error("missing door state")
	}
	if !strings.Contains(html, "2024-01-01") {
		t.Error("missing aggregate date")
	}
	if !strings.Contains(html, "Europe/Helsinki") {
		t.Error("missing timezone")
	}
}

func TestIndexPageClosedDoor(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(state.CurrentStatus{}, "2024-01-01", 0)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "CLOSED") {
		t.Error("missing closed state")
	}
	if !strings.Contains(string(body), "never") {
		t.Error("zero timestamps should render as never")
	}
}

func TestUnknownPathIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
