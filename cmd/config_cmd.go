// Package cmd implements the wisespend CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wisespend/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Ledger:          %s\n", dbPath)
	fmt.Printf("    Currency:        %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Recent count:    %d\n", cfg.General.RecentCount)
	fmt.Println()

	fmt.Println("  [Insights]")
	fmt.Printf("    Fatigue:         %d expenses in %s\n", cfg.Insights.FatigueThreshold, cfg.Insights.FatigueWindow())
	fmt.Printf("    Alert cooldown:  %s\n", cfg.Insights.AlertCooldown())
	fmt.Printf("    Top categories:  %d\n", cfg.Insights.TopCategories)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:         %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Poll interval:   %s\n", cfg.Daemon.PollInterval())
	fmt.Printf("    Recurring runs:  %s\n", cfg.Daemon.RecurringSchedule)
	fmt.Printf("    Events buffer:   %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Notify.Email]")
	email := cfg.Notify.Email
	if !email.Enabled {
		fmt.Println("    Email alerts: disabled")
	} else {
		fmt.Printf("    SMTP:     %s:%d\n", email.Host, email.Port)
		fmt.Printf("    From:     %s\n", email.From)
		fmt.Printf("    To:       %s\n", strings.Join(email.To, ", "))
		if pw := config.SMTPPassword(cfg); pw != "" {
			fmt.Printf("    Password: %s\n", maskSecret(pw))
		} else {
			fmt.Println("    Password: not configured")
		}
	}
	fmt.Println()

	fmt.Println("  Run `wisespend setup` to reconfigure.")
	return nil
}
