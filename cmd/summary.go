package cmd

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month-to-date spending summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, snap, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("WISESPEND  %s  (day %d of %d)",
		s.now.Format("January 2006"), snap.DayOfMonth, snap.DaysInMonth)))
	fmt.Println()

	if !res.Profile.Configured() {
		fmt.Println(cli.Warn("  No income set. Run `wisespend setup` to get safe-to-spend figures."))
		fmt.Println()
	}

	rows := [][]string{
		{"Income", cli.FormatMoney(snap.Income)},
		{"Fixed + subscriptions", cli.FormatMoney(snap.FixedTotal)},
		{"Savings goal", cli.FormatMoney(snap.SavingsGoal)},
		{"Spendable this month", cli.FormatMoney(snap.SpendableMonth)},
		{"---"},
		{"Spent this month", cli.FormatMoney(snap.SpentThisMonth)},
		{"Remaining", cli.FormatMoney(snap.RemainingSpendable)},
		{"Safe to spend today", cli.FormatSafeSpend(snap.SafeSpendToday)},
		{"Spent today", cli.FormatMoney(snap.SpentToday)},
		{"---"},
		{"Spent this week", cli.FormatMoney(snap.WeekSpent)},
		{"Expected by now", cli.FormatMoney(snap.ExpectedThisWeek)},
		{"Week pace", cli.FormatDelta(snap.WeekDelta)},
		{"Safe rest of week", cli.FormatMoney(snap.SafeSpendRestOfWeek)},
		{"---"},
		{"Projected month spend", cli.FormatMoney(snap.ProjectedMonthSpend)},
		{"Projected remaining", cli.FormatMoney(snap.ProjectedRemainingSigned)},
		{"Spend vs expected", cli.FormatDelta(snap.SpendVsExpected)},
		{"Utilization", cli.FormatPercent(snap.Utilization)},
		{"No-spend streak", fmt.Sprintf("%d days", snap.NoSpendStreak)},
	}
	if snap.TotalIncomeThisMonth > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Income logged", cli.FormatMoney(snap.TotalIncomeThisMonth)},
			[]string{"Net this month", cli.FormatDelta(snap.NetThisMonth)},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	topN := s.cfg.Insights.TopCategories
	if topN <= 0 {
		topN = pipeline.TopCategoryCount
	}
	if top := pipeline.TopCategories(snap.TopCategories, topN); len(top) > 0 {
		var catRows [][]string
		for _, ct := range top {
			share := 0.0
			if snap.SpentThisMonth > 0 {
				share = float64(ct.Total) / float64(snap.SpentThisMonth)
			}
			catRows = append(catRows, []string{string(ct.Category), cli.FormatMoney(ct.Total), cli.FormatPercent(share)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Categories",
			Headers: []string{"Category", "Spent", "Share"},
			Rows:    catRows,
		}))
		fmt.Println()
	}

	if _, budgeted := pipeline.OverBudgetCount(snap.BudgetStatuses); budgeted > 0 {
		printBudgetBars(snap.BudgetStatuses, true)
		fmt.Println()
	}

	goals, err := s.ledger.ListGoals(cmd.Context())
	if err != nil {
		return err
	}
	if len(goals) > 0 {
		printGoalBars(pipeline.RankGoals(goals, s.now), 3)
		fmt.Println()
	}

	fmt.Println(cli.Muted("  Last 7 days"))
	fmt.Println(cli.RenderLast7(snap.Last7))
	fmt.Println()

	score := insights.ComputeConfidence(snap)
	fmt.Printf("  Confidence: %d  %s\n\n", score.Score, cli.Muted(score.Reason))

	return nil
}

// printBudgetBars renders one bar per category. budgetedOnly hides
// categories without a cap.
func printBudgetBars(statuses []model.BudgetStatus, budgetedOnly bool) {
	fmt.Println(cli.Muted("  Budgets"))
	for _, st := range statuses {
		if budgetedOnly && !st.HasBudget {
			continue
		}
		fmt.Println("  " + cli.RenderBudgetBar(st, 14, 24))
	}
}
