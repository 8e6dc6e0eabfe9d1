package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/wisespend/internal/daemon"
)

func TestPrintDaemonStatusNotRunning(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "wisespendd.pid")

	var out bytes.Buffer
	if err := printDaemonStatus(&out, pidFile, "", http.DefaultClient); err != nil {
		t.Fatalf("printDaemonStatus: %v", err)
	}
	if !strings.Contains(out.String(), "not running") {
		t.Fatalf("output = %q, want not running", out.String())
	}

	if err := os.WriteFile(pidFile, []byte("garbage\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	_ = printDaemonStatus(&out, pidFile, "", http.DefaultClient)
	if !strings.Contains(out.String(), "not running") {
		t.Fatalf("output = %q for a corrupt pid file, want not running", out.String())
	}
}

func TestPrintDaemonStatusReportsSummary(t *testing.T) {
	safe := int64(1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/status" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(daemon.Status{
			PollCount:  4,
			AlertCount: 2,
			LastPollAt: time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC),
			Summary: daemon.Summary{
				Transactions:   3,
				SpentThisMonth: 2500,
				SafeSpendToday: &safe,
				OverBudget:     1,
				Confidence:     82,
			},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	pidFile := filepath.Join(dir, "wisespendd.pid")
	if err := writePID(pidFile, os.Getpid()); err != nil {
		t.Fatal(err)
	}
	rt := daemonRuntimeState{
		PID:    os.Getpid(),
		Addr:   strings.TrimPrefix(srv.URL, "http://"),
		DBPath: "/data/ledger.db",
	}
	if err := writeState(statePath(pidFile), rt); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := printDaemonStatus(&out, pidFile, "127.0.0.1:1", srv.Client()); err != nil {
		t.Fatalf("printDaemonStatus: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Daemon PID: " + strconv.Itoa(os.Getpid()),
		"Address: " + srv.URL,
		"Ledger: /data/ledger.db",
		"Poll count: 4",
		"Alerts: 2",
		"Transactions: 3",
		"Spent this month: ₹2,500",
		"Safe today: ₹1,000",
		"Over budget: 1 categories",
		"Confidence: 82",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintDaemonStatusAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	pidFile := filepath.Join(t.TempDir(), "wisespendd.pid")
	if err := writePID(pidFile, os.Getpid()); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	_ = printDaemonStatus(&out, pidFile, strings.TrimPrefix(srv.URL, "http://"), srv.Client())
	if !strings.Contains(out.String(), "API status: HTTP 500") {
		t.Fatalf("output = %q, want HTTP 500", out.String())
	}
}

func TestStopDaemonNotRunning(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "wisespendd.pid")
	if _, err := stopDaemon(pidFile, time.Second); err == nil || err.Error() != "daemon is not running" {
		t.Fatalf("stopDaemon = %v, want not running", err)
	}
}

func TestStopDaemonTerminatesProcess(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	child := exec.Command(sleep, "30")
	if err := child.Start(); err != nil {
		t.Fatalf("start child: %v", err)
	}
	done := make(chan struct{})
	go func() {
		_ = child.Wait()
		close(done)
	}()
	defer func() {
		_ = child.Process.Kill()
		<-done
	}()

	pidFile := filepath.Join(t.TempDir(), "wisespendd.pid")
	if err := writePID(pidFile, child.Process.Pid); err != nil {
		t.Fatal(err)
	}
	if err := writeState(statePath(pidFile), daemonRuntimeState{PID: child.Process.Pid}); err != nil {
		t.Fatal(err)
	}

	pid, err := stopDaemon(pidFile, 5*time.Second)
	if err != nil {
		t.Fatalf("stopDaemon: %v", err)
	}
	if pid != child.Process.Pid {
		t.Fatalf("pid = %d, want %d", pid, child.Process.Pid)
	}
	for _, p := range []string{pidFile, statePath(pidFile)} {
		if _, err := os.Stat(p); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s still present (err %v)", p, err)
		}
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", "x", "--detach=true"})
	if strings.Join(got, " ") != "daemon --addr x" {
		t.Fatalf("filterDetachArg = %v", got)
	}
}
