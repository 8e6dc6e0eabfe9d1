package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/config"
	"github.com/theirongolddev/wisespend/internal/logger"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
	"github.com/theirongolddev/wisespend/internal/source"
	"github.com/theirongolddev/wisespend/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDB    string
	flagAt    string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:           "wisespend",
	Short:         "Personal spending insights",
	Long:          "Track expenses against your monthly plan: safe-to-spend, budgets, projections and alerts.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAt, "at", "", "Evaluate as of this time (RFC3339 or YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// session bundles what every ledger-backed command needs.
type session struct {
	cfg    config.Config
	ledger *store.Ledger
	log    zerolog.Logger
	now    time.Time
}

// openSession loads config, opens the ledger and resolves the clock.
// Callers must Close the returned session.
func openSession() (*session, error) {
	log := logger.New(flagQuiet)

	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("config unreadable, using defaults")
		cfg = config.DefaultConfig()
	}
	if cfg.General.CurrencySymbol != "" {
		cli.Currency = cfg.General.CurrencySymbol
	}

	now, err := resolveNow(flagAt, time.Now())
	if err != nil {
		return nil, err
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	ledger, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", dbPath).Time("now", now).Msg("ledger opened")

	return &session{cfg: cfg, ledger: ledger, log: log, now: now}, nil
}

func (s *session) Close() error {
	return s.ledger.Close()
}

// load reads the full ledger and computes the snapshot at s.now.
func (s *session) load(ctx context.Context) (*pipeline.LoadResult, model.DerivedMetrics, error) {
	res, err := pipeline.Load(ctx, s.ledger)
	if err != nil {
		return nil, model.DerivedMetrics{}, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %s transactions\n", cli.FormatNumber(int64(len(res.Transactions))))
	}
	return res, res.Snapshot(s.now), nil
}

// resolveNow parses the --at flag; empty means fallback.
func resolveNow(at string, fallback time.Time) (time.Time, error) {
	if at == "" {
		return fallback, nil
	}
	t, err := source.ParseTime(at)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: %w", err)
	}
	return t, nil
}

// parseCategory is stricter than NormalizeCategory: a typo on the command
// line is an error rather than a silent Other.
func parseCategory(raw string) (model.Category, error) {
	raw = strings.TrimSpace(raw)
	c := model.NormalizeCategory(raw)
	if c == model.Other && !strings.EqualFold(raw, string(model.Other)) {
		return "", fmt.Errorf("unknown category %q (one of %v)", raw, model.Categories)
	}
	return c, nil
}

func maskSecret(s string) string {
	if len(s) > 8 {
		return s[:2] + "..." + s[len(s)-2:]
	}
	if s == "" {
		return ""
	}
	return "****"
}
