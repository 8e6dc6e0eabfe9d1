package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/wisespend/internal/config"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	p, err := s.ledger.GetProfile(ctx)
	if err != nil {
		return err
	}
	cfg := s.cfg

	income := amountField(p.Income)
	fixed := amountField(p.FixedExpenses)
	subs := amountField(p.MonthlySubscriptions)
	goal := amountField(p.SavingsGoal)
	currency := cfg.General.CurrencySymbol
	fatigue := strconv.Itoa(cfg.Insights.FatigueThreshold)

	validate := func(s string) error {
		if s == "" {
			return nil
		}
		_, err := source.ParseAmount(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to wisespend!").
				Description("Your monthly plan decides how much is safe to spend each day.\nLeave a field blank for 0."),
			huh.NewInput().Title("Monthly income").Value(&income).Validate(validate),
			huh.NewInput().Title("Fixed expenses (rent, EMIs)").Value(&fixed).Validate(validate),
			huh.NewInput().Title("Subscriptions").Value(&subs).Validate(validate),
			huh.NewInput().Title("Savings goal").Value(&goal).Validate(validate),
		),
		huh.NewGroup(
			huh.NewInput().Title("Currency symbol").Value(&currency),
			huh.NewSelect[string]().
				Title("Spend fatigue alert after").
				Options(
					huh.NewOption("3 expenses in 12h", "3"),
					huh.NewOption("4 expenses in 12h", "4"),
					huh.NewOption("6 expenses in 12h", "6"),
				).
				Value(&fatigue),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return err
	}

	p = model.Profile{
		Income:               parseAmountOrZero(income),
		FixedExpenses:        parseAmountOrZero(fixed),
		MonthlySubscriptions: parseAmountOrZero(subs),
		SavingsGoal:          parseAmountOrZero(goal),
	}
	if err := s.ledger.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if currency != "" {
		cfg.General.CurrencySymbol = currency
	}
	if n, err := strconv.Atoi(fatigue); err == nil {
		cfg.Insights.FatigueThreshold = n
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	printProfile(p)
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `wisespend setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func amountField(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func parseAmountOrZero(s string) int64 {
	v, err := source.ParseAmount(s)
	if err != nil {
		return 0
	}
	return v
}
