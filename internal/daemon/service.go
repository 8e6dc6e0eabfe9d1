// Package daemon provides the long-running ledger watcher service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/logger"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/notify"
	"github.com/theirongolddev/wisespend/internal/pipeline"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Ledger is the storage the daemon reads snapshots from and writes
// materialized recurring transactions and notifications to.
type Ledger interface {
	pipeline.Ledger
	ApplyRecurring(ctx context.Context, created []model.Transaction, updated []model.RecurringRule) error
	AddNotification(ctx context.Context, n model.Notification) error
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath            string
	Interval          time.Duration
	Addr              string
	EventsBuffer      int
	RecurringSchedule string
	FatigueThreshold  int
	FatigueWindow     time.Duration
	AlertCooldown     time.Duration
	Now               func() time.Time
}

// Summary is a compact view of the latest snapshot for status/event payloads.
type Summary struct {
	At                 time.Time `json:"at"`
	Transactions       int       `json:"transactions"`
	SpentThisMonth     int64     `json:"spent_this_month"`
	SpentToday         int64     `json:"spent_today"`
	RemainingSpendable int64     `json:"remaining_spendable"`
	SafeSpendToday     *int64    `json:"safe_spend_today"`
	ProjectedRemaining int64     `json:"projected_remaining"`
	OverBudget         int       `json:"over_budget"`
	Confidence         int       `json:"confidence"`
}

// Delta captures summary changes between polls.
type Delta struct {
	Transactions       int   `json:"transactions"`
	SpentThisMonth     int64 `json:"spent_this_month"`
	SpentToday         int64 `json:"spent_today"`
	RemainingSpendable int64 `json:"remaining_spendable"`
}

func (d Delta) isZero() bool {
	return d.Transactions == 0 &&
		d.SpentThisMonth == 0 &&
		d.SpentToday == 0 &&
		d.RemainingSpendable == 0
}

// Event types published to /v1/events and /v1/stream.
const (
	EventSnapshot     = "snapshot"
	EventSummaryDelta = "summary_delta"
	EventAlert        = "alert"
	EventRecurringRun = "recurring_run"
)

// Event is emitted whenever the ledger state changes or an alert fires.
type Event struct {
	ID        int64               `json:"id"`
	Type      string              `json:"type"`
	Timestamp time.Time           `json:"timestamp"`
	Summary   Summary             `json:"summary"`
	Delta     Delta               `json:"delta"`
	Alert     *model.Notification `json:"alert,omitempty"`
	Created   int                 `json:"created,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt        time.Time `json:"started_at"`
	LastPollAt       time.Time `json:"last_poll_at"`
	LastRecurringRun time.Time `json:"last_recurring_run,omitempty"`
	PollIntervalSec  int       `json:"poll_interval_sec"`
	PollCount        int64     `json:"poll_count"`
	AlertCount       int64     `json:"alert_count"`
	DBPath           string    `json:"db_path"`
	Summary          Summary   `json:"summary"`
	LastError        string    `json:"last_error,omitempty"`
	EventCount       int       `json:"event_count"`
	SubscriberCount  int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg      Config
	ledger   Ledger
	notifier notify.Notifier
	watcher  *insights.Watcher
	log      zerolog.Logger

	mu               sync.RWMutex
	startedAt        time.Time
	lastPollAt       time.Time
	lastRecurringRun time.Time
	pollCount        int64
	alertCount       int64
	lastError        string
	hasSnapshot      bool
	snapshot         model.DerivedMetrics
	summary          Summary
	nextEventID      int64
	events           []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service. A nil notifier disables delivery;
// notifications are still persisted.
func New(cfg Config, ledger Ledger, notifier notify.Notifier, log zerolog.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if notifier == nil {
		notifier = notify.Multi{}
	}

	return &Service{
		cfg:       cfg,
		ledger:    ledger,
		notifier:  notifier,
		watcher:   insights.NewWatcher(cfg.AlertCooldown, cfg.Now),
		log:       log,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints, the recurring schedule and polling until ctx
// is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sched := cron.New()
	if s.cfg.RecurringSchedule != "" {
		if _, err := sched.AddFunc(s.cfg.RecurringSchedule, func() { s.runRecurring(ctx) }); err != nil {
			return fmt.Errorf("parsing recurring schedule %q: %w", s.cfg.RecurringSchedule, err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", s.cfg.Addr).Dur("interval", s.cfg.Interval).Msg("daemon started")

	// Catch up on rules that came due while the daemon was down, then seed
	// the snapshot so status is useful immediately.
	s.runRecurring(ctx)
	sched.Start()
	defer sched.Stop()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.log.Info().Msg("daemon stopping")
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.cfg.Now()
	res, err := pipeline.Load(ctx, s.ledger)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("poll failed")
		return
	}

	snap := res.Snapshot(now)
	sum := summarize(snap, len(res.Transactions))

	alerts := s.watcher.OnSnapshot(snap)
	alerts = append(alerts, s.watcher.Dispatch(s.detect(res, now))...)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.summary
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.summary = sum
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		ev = Event{Type: EventSnapshot, Timestamp: now, Summary: sum}
		publish = true
	} else if delta := diffSummaries(prev, sum); !delta.isZero() {
		ev = Event{Type: EventSummaryDelta, Timestamp: now, Summary: sum, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
	for _, alert := range alerts {
		s.emit(ctx, alert, sum, now)
	}
}

// detect runs the ledger-level detectors whose results go through the
// watcher's cooldown rather than its edge detection.
func (s *Service) detect(res *pipeline.LoadResult, now time.Time) []model.InsightEvent {
	var events []model.InsightEvent
	fatigue := insights.DetectFatigue(res.Transactions, s.cfg.FatigueThreshold, s.cfg.FatigueWindow, now)
	if fatigue.Detected {
		events = append(events, insights.FatigueEvent(fatigue, s.cfg.FatigueWindow))
	}
	if rule, ok := insights.DetectRecurring(res.Transactions, res.Rules); ok {
		events = append(events, insights.RecurringEvent(rule))
	}
	return events
}

func (s *Service) emit(ctx context.Context, alert model.InsightEvent, sum Summary, now time.Time) {
	n := model.Notification{
		ID:        uuid.NewString(),
		Type:      alert.Type,
		Title:     alert.Title,
		Message:   alert.Message,
		CreatedAt: now,
	}
	log := logger.WithFields(s.log, map[string]any{"alert": alert.Key})

	if err := s.ledger.AddNotification(ctx, n); err != nil {
		log.Error().Err(err).Msg("persisting notification")
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Msg("delivering notification")
	}

	s.mu.Lock()
	s.alertCount++
	s.mu.Unlock()

	s.publishEvent(Event{Type: EventAlert, Timestamp: now, Summary: sum, Alert: &n})
	log.Info().Str("title", n.Title).Msg("alert emitted")
}

// runRecurring materializes due rules and refreshes the snapshot.
func (s *Service) runRecurring(ctx context.Context) {
	now := s.cfg.Now()
	rules, err := s.ledger.ListRules(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listing recurring rules")
		s.pollOnce(ctx)
		return
	}

	created, updated := pipeline.RunDue(rules, now)
	if err := s.ledger.ApplyRecurring(ctx, created, updated); err != nil {
		s.log.Error().Err(err).Msg("applying recurring rules")
		s.pollOnce(ctx)
		return
	}

	s.mu.Lock()
	s.lastRecurringRun = now
	s.mu.Unlock()

	if len(created) > 0 {
		s.log.Info().Int("created", len(created)).Msg("recurring rules materialized")
	}
	s.pollOnce(ctx)

	if len(created) > 0 {
		s.mu.RLock()
		sum := s.summary
		s.mu.RUnlock()
		s.publishEvent(Event{Type: EventRecurringRun, Timestamp: now, Summary: sum, Created: len(created)})
	}
}

func summarize(snap model.DerivedMetrics, txCount int) Summary {
	over, _ := pipeline.OverBudgetCount(snap.BudgetStatuses)
	return Summary{
		At:                 snap.At,
		Transactions:       txCount,
		SpentThisMonth:     snap.SpentThisMonth,
		SpentToday:         snap.SpentToday,
		RemainingSpendable: snap.RemainingSpendable,
		SafeSpendToday:     snap.SafeSpendToday,
		ProjectedRemaining: snap.ProjectedRemainingSigned,
		OverBudget:         over,
		Confidence:         insights.ComputeConfidence(snap).Score,
	}
}

func diffSummaries(prev, curr Summary) Delta {
	return Delta{
		Transactions:       curr.Transactions - prev.Transactions,
		SpentThisMonth:     curr.SpentThisMonth - prev.SpentThisMonth,
		SpentToday:         curr.SpentToday - prev.SpentToday,
		RemainingSpendable: curr.RemainingSpendable - prev.RemainingSpendable,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	if ev.ID == 0 {
		s.nextEventID++
		ev.ID = s.nextEventID
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:        s.startedAt,
		LastPollAt:       s.lastPollAt,
		LastRecurringRun: s.lastRecurringRun,
		PollIntervalSec:  int(s.cfg.Interval.Seconds()),
		PollCount:        s.pollCount,
		AlertCount:       s.alertCount,
		DBPath:           s.cfg.DBPath,
		Summary:          s.summary,
		LastError:        s.lastError,
		EventCount:       len(s.events),
		SubscriberCount:  len(s.subs),
	}
}

func (s *Service) currentSnapshot() (model.DerivedMetrics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.hasSnapshot
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
