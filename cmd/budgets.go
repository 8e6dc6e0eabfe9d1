package cmd

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
	"github.com/theirongolddev/wisespend/internal/source"

	"github.com/spf13/cobra"
)

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Category budgets and this month's utilization",
	RunE:  runBudgets,
}

var budgetsSetCmd = &cobra.Command{
	Use:   "set CATEGORY AMOUNT",
	Short: "Set a monthly category cap (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetsSet,
}

func init() {
	budgetsCmd.AddCommand(budgetsSetCmd)
	rootCmd.AddCommand(budgetsCmd)
}

func runBudgets(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, snap, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	// Show every category that has a cap or spend this month.
	caps := make(model.CategoryBudgets)
	for c, total := range snap.CategoryTotals {
		if total > 0 {
			caps[c] = 0
		}
	}
	for c, limit := range snap.Budgets {
		caps[c] = limit
	}
	statuses := pipeline.TrackBudgets(snap.CategoryTotals, caps)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  %s", s.now.Format("January 2006"))))
	fmt.Println()

	if len(statuses) == 0 {
		fmt.Println("  No budgets or spending yet this month.")
		fmt.Println("  Set one with: wisespend budgets set Food 5000")
		fmt.Println()
		return nil
	}

	printBudgetBars(statuses, false)
	fmt.Println()

	over, budgeted := pipeline.OverBudgetCount(statuses)
	if over > 0 {
		fmt.Println(cli.Warn(fmt.Sprintf("  %d of %d budgets exceeded", over, budgeted)))
		fmt.Println()
	}
	return nil
}

func runBudgetsSet(cmd *cobra.Command, args []string) error {
	category, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	amount, err := source.ParseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ledger.SetBudget(cmd.Context(), category, amount); err != nil {
		return err
	}

	if amount == 0 {
		fmt.Printf("  Removed %s budget\n", category)
	} else {
		fmt.Printf("  %s budget set to %s/month\n", category, cli.FormatMoney(amount))
	}
	return nil
}
