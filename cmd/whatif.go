package cmd

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/source"

	"github.com/spf13/cobra"
)

var flagWhatIfCategory string

var whatifCmd = &cobra.Command{
	Use:   "whatif AMOUNT",
	Short: "Preview the effect of a purchase without logging it",
	Args:  cobra.ExactArgs(1),
	RunE:  runWhatIf,
}

func init() {
	whatifCmd.Flags().StringVarP(&flagWhatIfCategory, "category", "c", "Other", "Category of the purchase")
	rootCmd.AddCommand(whatifCmd)
}

func runWhatIf(cmd *cobra.Command, args []string) error {
	amount, err := source.ParseAmount(args[0])
	if err != nil {
		return err
	}
	category, err := parseCategory(flagWhatIfCategory)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, snap, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	res := insights.SimulateWhatIf(snap, amount, category)
	safe, _ := snap.SafeSpend()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WHAT IF  %s on %s", cli.FormatMoney(res.Amount), res.Category)))
	fmt.Println()
	fmt.Printf("  Verdict: %s\n\n", cli.StatusStyle(res.Status).Render(string(res.Status)))

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", "Now", "After", "Change"},
		Rows: [][]string{
			{"Safe today", cli.FormatMoney(safe), cli.FormatMoney(res.NewValues.SafeSpendToday), cli.FormatDelta(res.Deltas.SafeSpendToday)},
			{"Remaining", cli.FormatMoney(snap.RemainingSpendable), cli.FormatMoney(res.NewValues.RemainingSpendable), cli.FormatDelta(res.Deltas.RemainingSpendable)},
			{"This week", cli.FormatMoney(snap.WeekSpent), cli.FormatMoney(res.NewValues.WeekSpent), cli.FormatDelta(res.Deltas.WeekSpent)},
			{"This month", cli.FormatMoney(snap.SpentThisMonth), cli.FormatMoney(res.NewValues.SpentThisMonth), cli.FormatDelta(res.Deltas.SpentThisMonth)},
			{string(res.Category), cli.FormatMoney(res.NewValues.CategorySpent - res.Amount), cli.FormatMoney(res.NewValues.CategorySpent), cli.FormatDelta(res.Deltas.CategorySpent)},
		},
	}))
	fmt.Println()

	if res.GoalDelayDays > 0 {
		fmt.Printf("  Delays your savings goal by about %d day(s)\n", res.GoalDelayDays)
	}
	if res.ExceedsBudget {
		fmt.Println(cli.Warn(fmt.Sprintf("  Takes %s to %s of its budget", res.Category, cli.FormatPercent(res.BudgetRatio))))
	}
	if snap.SafeSpendToday == nil {
		fmt.Println(cli.Muted("  No income set, so there is no daily headroom to compare against."))
	}
	fmt.Println()
	return nil
}
