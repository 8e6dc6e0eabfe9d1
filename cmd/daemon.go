package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/config"
	"github.com/theirongolddev/wisespend/internal/daemon"
	"github.com/theirongolddev/wisespend/internal/logger"
	"github.com/theirongolddev/wisespend/internal/notify"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type daemonRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

var (
	flagDaemonAddr         string
	flagDaemonInterval     time.Duration
	flagDaemonDetach       bool
	flagDaemonPIDFile      string
	flagDaemonLogFile      string
	flagDaemonEventsBuffer int
	flagDaemonChild        bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the background watcher with HTTP/SSE endpoints",
	RunE:  runDaemon,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon process and API status",
	RunE:  runDaemonStatus,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running daemon",
	RunE:  runDaemonStop,
}

func init() {
	defaultPID := filepath.Join(config.DataDir(), "wisespendd.pid")
	defaultLog := filepath.Join(config.DataDir(), "wisespendd.log")

	daemonCmd.PersistentFlags().StringVar(&flagDaemonAddr, "addr", "", "HTTP listen address (default from config)")
	daemonCmd.PersistentFlags().DurationVar(&flagDaemonInterval, "interval", 0, "Polling interval (default from config)")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonPIDFile, "pid-file", defaultPID, "PID file path")
	daemonCmd.PersistentFlags().StringVar(&flagDaemonLogFile, "log-file", defaultLog, "Log file path for detached mode")
	daemonCmd.PersistentFlags().IntVar(&flagDaemonEventsBuffer, "events-buffer", 0, "Max in-memory events retained (default from config)")

	daemonCmd.Flags().BoolVar(&flagDaemonDetach, "detach", false, "Run daemon as a background process")
	daemonCmd.Flags().BoolVar(&flagDaemonChild, "child", false, "Internal: mark detached child process")
	_ = daemonCmd.Flags().MarkHidden("child")

	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	if flagDaemonDetach && flagDaemonChild {
		return errors.New("invalid daemon launch mode")
	}

	if flagDaemonDetach {
		return startDaemonDetached()
	}

	return runDaemonForeground()
}

func startDaemonDetached() error {
	if err := ensureDaemonNotRunning(flagDaemonPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagDaemonPIDFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagDaemonLogFile), 0o750); err != nil {
		return fmt.Errorf("create daemon log directory: %w", err)
	}

	//nolint:gosec // daemon log path is configured by the local user
	logf, err := os.OpenFile(flagDaemonLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open daemon log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached daemon: %w", err)
	}

	fmt.Printf("  Started daemon (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagDaemonPIDFile)
	fmt.Printf("  Log: %s\n", flagDaemonLogFile)
	return nil
}

func runDaemonForeground() error {
	if err := ensureDaemonNotRunning(flagDaemonPIDFile); err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(filepath.Dir(flagDaemonPIDFile), 0o750); err != nil {
		return fmt.Errorf("create daemon directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagDaemonPIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagDaemonPIDFile) }()

	cfg := daemonConfig(s.cfg)
	log := logger.NewJSON(os.Stderr)

	state := daemonRuntimeState{
		PID:       pid,
		Addr:      cfg.Addr,
		StartedAt: time.Now(),
		DBPath:    cfg.DBPath,
	}
	_ = writeState(statePath(flagDaemonPIDFile), state)
	defer func() { _ = os.Remove(statePath(flagDaemonPIDFile)) }()

	notifier, err := buildNotifier(s.cfg, log)
	if err != nil {
		return err
	}

	svc := daemon.New(cfg, s.ledger, notifier, log)

	fmt.Printf("  wisespend daemon listening on http://%s\n", cfg.Addr)
	fmt.Printf("  Polling every %s from %s\n", cfg.Interval, cfg.DBPath)
	fmt.Printf("  Stop with: wisespend daemon stop --pid-file %s\n", flagDaemonPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(logger.WithContext(ctx, log)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// daemonConfig merges config file values with command-line overrides.
func daemonConfig(c config.Config) daemon.Config {
	cfg := daemon.Config{
		DBPath:            flagDB,
		Interval:          c.Daemon.PollInterval(),
		Addr:              c.Daemon.Addr,
		EventsBuffer:      c.Daemon.EventsBuffer,
		RecurringSchedule: c.Daemon.RecurringSchedule,
		FatigueThreshold:  c.Insights.FatigueThreshold,
		FatigueWindow:     c.Insights.FatigueWindow(),
		AlertCooldown:     c.Insights.AlertCooldown(),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = config.DBPath(c)
	}
	if flagDaemonAddr != "" {
		cfg.Addr = flagDaemonAddr
	}
	if flagDaemonInterval > 0 {
		cfg.Interval = flagDaemonInterval
	}
	if flagDaemonEventsBuffer > 0 {
		cfg.EventsBuffer = flagDaemonEventsBuffer
	}
	return cfg
}

// buildNotifier always logs alerts and adds SMTP delivery when enabled.
func buildNotifier(c config.Config, log zerolog.Logger) (notify.Notifier, error) {
	notifiers := notify.Multi{notify.NewLog(log)}

	ec := c.Notify.Email
	if ec.Enabled {
		mailer, err := notify.NewEmail(notify.EmailSettings{
			Host:     ec.Host,
			Port:     ec.Port,
			Username: ec.Username,
			Password: config.SMTPPassword(c),
			From:     ec.From,
			To:       ec.To,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("email notifier: %w", err)
		}
		notifiers = append(notifiers, mailer)
	}
	return notifiers, nil
}

func runDaemonStatus(_ *cobra.Command, _ []string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	return printDaemonStatus(os.Stdout, flagDaemonPIDFile, flagDaemonAddr, client)
}

// printDaemonStatus reports the process behind pidFile and, while it is
// alive, the ledger summary its API serves. addr is used when the state
// file does not record one.
func printDaemonStatus(w io.Writer, pidFile, addr string, client *http.Client) error {
	pid, err := readPID(pidFile)
	if err != nil {
		fmt.Fprintln(w, "  Daemon: not running (pid file not found)")
		return nil
	}
	if !processAlive(pid) {
		fmt.Fprintf(w, "  Daemon: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	rt, rtErr := readState(statePath(pidFile))
	if rtErr == nil && rt.Addr != "" {
		addr = rt.Addr
	}
	if addr == "" {
		addr = config.DefaultConfig().Daemon.Addr
	}

	fmt.Fprintf(w, "  Daemon PID: %d\n", pid)
	fmt.Fprintf(w, "  Address: http://%s\n", addr)
	if rtErr == nil && rt.DBPath != "" {
		fmt.Fprintf(w, "  Ledger: %s\n", rt.DBPath)
	}

	st, err := fetchDaemonStatus(client, addr)
	if err != nil {
		fmt.Fprintf(w, "  API status: %v\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Fprintln(w, "  Last poll: pending")
	} else {
		fmt.Fprintf(w, "  Last poll: %s\n", st.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Fprintf(w, "  Poll count: %d\n", st.PollCount)
	fmt.Fprintf(w, "  Alerts: %d\n", st.AlertCount)
	fmt.Fprintf(w, "  Transactions: %d\n", st.Summary.Transactions)
	fmt.Fprintf(w, "  Spent this month: %s\n", cli.FormatMoney(st.Summary.SpentThisMonth))
	fmt.Fprintf(w, "  Safe today: %s\n", cli.FormatSafeSpend(st.Summary.SafeSpendToday))
	if st.Summary.OverBudget > 0 {
		fmt.Fprintf(w, "  Over budget: %d categories\n", st.Summary.OverBudget)
	}
	fmt.Fprintf(w, "  Confidence: %d\n", st.Summary.Confidence)
	if st.LastError != "" {
		fmt.Fprintf(w, "  Last error: %s\n", st.LastError)
	}
	return nil
}

func fetchDaemonStatus(client *http.Client, addr string) (daemon.Status, error) {
	var st daemon.Status
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		return st, fmt.Errorf("unreachable (%w)", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return st, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return st, fmt.Errorf("malformed response (%w)", err)
	}
	return st, nil
}

func runDaemonStop(_ *cobra.Command, _ []string) error {
	pid, err := stopDaemon(flagDaemonPIDFile, 8*time.Second)
	if err != nil {
		return err
	}
	fmt.Printf("  Stopped daemon (pid %d)\n", pid)
	return nil
}

// stopDaemon sends SIGTERM to the process behind pidFile and waits up to
// timeout for it to exit. The pid and state files are removed once it has.
func stopDaemon(pidFile string, timeout time.Duration) (int, error) {
	pid, err := readPID(pidFile)
	if err != nil {
		return 0, errors.New("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return pid, fmt.Errorf("find daemon process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("signal daemon process: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(pidFile)
			_ = os.Remove(statePath(pidFile))
			return pid, nil
		}
		time.Sleep(150 * time.Millisecond)
	}
	return pid, fmt.Errorf("daemon (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureDaemonNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("daemon already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // daemon pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st daemonRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (daemonRuntimeState, error) {
	var st daemonRuntimeState
	//nolint:gosec // daemon state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
