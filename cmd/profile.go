package cmd

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagProfileIncome        string
	flagProfileFixed         string
	flagProfileSubscriptions string
	flagProfileGoal          string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the monthly plan (income, fixed costs, savings goal)",
	RunE:  runProfile,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields given as flags",
	RunE:  runProfileSet,
}

func init() {
	profileSetCmd.Flags().StringVar(&flagProfileIncome, "income", "", "Monthly income")
	profileSetCmd.Flags().StringVar(&flagProfileFixed, "fixed", "", "Fixed monthly expenses")
	profileSetCmd.Flags().StringVar(&flagProfileSubscriptions, "subscriptions", "", "Monthly subscriptions")
	profileSetCmd.Flags().StringVar(&flagProfileGoal, "goal", "", "Monthly savings goal")
	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.ledger.GetProfile(cmd.Context())
	if err != nil {
		return err
	}
	printProfile(p)
	return nil
}

func printProfile(p model.Profile) {
	spendable := p.Income - p.FixedExpenses - p.MonthlySubscriptions - p.SavingsGoal
	if spendable < 0 {
		spendable = 0
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Profile",
		Headers: []string{"Field", "Monthly"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(p.Income)},
			{"Fixed expenses", cli.FormatMoney(p.FixedExpenses)},
			{"Subscriptions", cli.FormatMoney(p.MonthlySubscriptions)},
			{"Savings goal", cli.FormatMoney(p.SavingsGoal)},
			{"---"},
			{"Spendable", cli.FormatMoney(spendable)},
		},
	}))
	if !p.Configured() {
		fmt.Println(cli.Warn("  Income is not set; safe-to-spend stays unavailable."))
	}
	fmt.Println()
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
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

	fields := []struct {
		flag string
		raw  string
		dst  *int64
	}{
		{"income", flagProfileIncome, &p.Income},
		{"fixed", flagProfileFixed, &p.FixedExpenses},
		{"subscriptions", flagProfileSubscriptions, &p.MonthlySubscriptions},
		{"goal", flagProfileGoal, &p.SavingsGoal},
	}
	changed := 0
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := source.ParseAmount(f.raw)
		if err != nil {
			return fmt.Errorf("--%s: %w", f.flag, err)
		}
		*f.dst = v
		changed++
	}
	if changed == 0 {
		return fmt.Errorf("nothing to set; pass --income, --fixed, --subscriptions or --goal")
	}

	if err := s.ledger.SaveProfile(ctx, p); err != nil {
		return err
	}
	printProfile(p)
	return nil
}
