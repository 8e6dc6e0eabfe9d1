package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/rs/zerolog"
)

func TestHTTPHandlers(t *testing.T) {
	now := &clock{t: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)}
	ledger := &memLedger{profile: model.Profile{Income: 31000}}
	s, _ := newTestService(t, ledger, now)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/whatif", "application/json", strings.NewReader(`{"amount":600}`))
	if err != nil {
		t.Fatalf("POST whatif: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("whatif before first poll = %d, want 503", resp.StatusCode)
	}

	s.pollOnce(context.Background())

	resp, err = http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz = %d", resp.StatusCode)
	}

	var st Status
	getJSON(t, srv.URL+"/v1/status", &st)
	if st.PollCount != 1 || st.Summary.Confidence == 0 {
		t.Fatalf("status = %+v", st)
	}

	var snap model.DerivedMetrics
	getJSON(t, srv.URL+"/v1/snapshot", &snap)
	if snap.SpendableMonth != 31000 || snap.SafeSpendToday == nil || *snap.SafeSpendToday != 1000 {
		t.Fatalf("snapshot spendable=%d safe=%v", snap.SpendableMonth, snap.SafeSpendToday)
	}

	var conf model.ConfidenceScore
	getJSON(t, srv.URL+"/v1/confidence", &conf)
	if conf.Score < 0 || conf.Score > 100 || conf.Reason == "" {
		t.Fatalf("confidence = %+v", conf)
	}

	resp, err = http.Post(srv.URL+"/v1/whatif", "application/json", strings.NewReader(`{"amount":1500,"category":"Food"}`))
	if err != nil {
		t.Fatalf("POST whatif: %v", err)
	}
	var res model.WhatIfResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode whatif: %v", err)
	}
	_ = resp.Body.Close()
	if res.Status != model.StatusRisky {
		t.Fatalf("whatif status = %s, want RISKY", res.Status)
	}

	resp, err = http.Post(srv.URL+"/v1/whatif", "application/json", strings.NewReader(`{"amount":`))
	if err != nil {
		t.Fatalf("POST whatif: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed whatif = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/v1/whatif")
	if err != nil {
		t.Fatalf("GET whatif: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("GET whatif = %d, want 405", resp.StatusCode)
	}

	var events []Event
	getJSON(t, srv.URL+"/v1/events", &events)
	if len(events) != 1 || events[0].Type != EventSnapshot {
		t.Fatalf("events = %+v, want one snapshot event", events)
	}
}

func TestWhatIfBadBodyLogsRequest(t *testing.T) {
	now := &clock{t: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)}
	s, _ := newTestService(t, &memLedger{}, now)
	var buf bytes.Buffer
	s.log = zerolog.New(&buf).Level(zerolog.InfoLevel)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/v1/whatif", "application/json", strings.NewReader(`{"amount":"lots"}`))
	if err != nil {
		t.Fatalf("POST whatif: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad whatif = %d, want 400", resp.StatusCode)
	}

	var entry map[string]any
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("log output %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" || entry["message"] != "bad whatif body" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["method"] != http.MethodPost || entry["path"] != "/v1/whatif" {
		t.Fatalf("request fields = %v", entry)
	}
}

func getJSON(t *testing.T, url string, v any) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s = %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}
