package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
	"github.com/theirongolddev/wisespend/internal/source"
	"github.com/theirongolddev/wisespend/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagGoalBy   string
	flagGoalType string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goals for specific purchases",
	RunE:  runGoalsList,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals and their progress",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add NAME AMOUNT",
	Short: "Create a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsContributeCmd = &cobra.Command{
	Use:   "contribute ID AMOUNT",
	Short: "Add money saved towards a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsContribute,
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a goal and its contributions",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsDelete,
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalBy, "by", "", "Target date, e.g. 2025-12-31")
	goalsAddCmd.Flags().StringVarP(&flagGoalType, "type", "t", string(model.ContributeMonthly), "monthly or flexible")

	goalsCmd.AddCommand(goalsListCmd)
	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsContributeCmd)
	goalsCmd.AddCommand(goalsDeleteCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	goals, err := s.ledger.ListGoals(cmd.Context())
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("\n  No goals yet. Create one with: wisespend goals add Laptop 80000 --by 2025-12-31")
		return nil
	}

	ranked := pipeline.RankGoals(goals, s.now)
	fmt.Println()
	printGoalBars(ranked, 0)
	fmt.Println()

	var rows [][]string
	for _, p := range ranked {
		due, left := "-", "-"
		if p.Goal.TargetDate != nil {
			due = p.Goal.TargetDate.Format("2006-01-02")
			left = fmt.Sprintf("%d", *p.DaysLeft)
		}
		rows = append(rows, []string{
			p.Goal.Name, cli.FormatMoney(p.Remaining), due, left, string(p.Goal.ContributionType), p.Goal.ID,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings Goals",
		Headers: []string{"Goal", "Remaining", "Target date", "Days left", "Type", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := newGoal(args[0], args[1], flagGoalBy, flagGoalType, s.now)
	if err != nil {
		return err
	}
	if err := s.ledger.SaveGoal(cmd.Context(), g); err != nil {
		return err
	}

	p := pipeline.GoalProgressAt(g, s.now)
	fmt.Printf("  Created goal %s: %s", g.Name, cli.FormatMoney(g.TargetAmount))
	if p.MonthlyNeeded != nil {
		fmt.Printf(", %s/month to reach it by %s", cli.FormatMoney(*p.MonthlyNeeded), g.TargetDate.Format("2006-01-02"))
	}
	fmt.Println()
	return nil
}

func runGoalsContribute(cmd *cobra.Command, args []string) error {
	amount, err := source.ParseAmount(args[1])
	if err != nil {
		return err
	}
	if amount <= 0 {
		return errors.New("amount must be greater than 0")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	c := model.Contribution{ID: uuid.NewString(), GoalID: args[0], Amount: amount, CreatedAt: s.now}
	if err := s.ledger.AddContribution(ctx, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no goal with id %s", args[0])
		}
		return err
	}

	goals, err := s.ledger.ListGoals(ctx)
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.ID != c.GoalID {
			continue
		}
		p := pipeline.GoalProgressAt(g, s.now)
		fmt.Printf("  Added %s to %s\n", cli.FormatMoney(amount), g.Name)
		fmt.Println("  " + cli.RenderGoalBar(p, len(g.Name), 24))
	}
	return nil
}

func runGoalsDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ledger.DeleteGoal(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no goal with id %s", args[0])
		}
		return err
	}
	fmt.Printf("  Deleted goal %s\n", args[0])
	return nil
}

// newGoal validates command-line input into a goal created at now.
func newGoal(name, amount, by, kind string, now time.Time) (model.SavingsGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavingsGoal{}, errors.New("goal name is required")
	}
	target, err := source.ParseAmount(amount)
	if err != nil {
		return model.SavingsGoal{}, err
	}
	if target <= 0 {
		return model.SavingsGoal{}, errors.New("target must be greater than 0")
	}
	ct, ok := model.ParseContributionType(strings.ToLower(strings.TrimSpace(kind)))
	if !ok {
		return model.SavingsGoal{}, fmt.Errorf("unknown contribution type %q (monthly or flexible)", kind)
	}

	g := model.SavingsGoal{
		ID:               uuid.NewString(),
		Name:             name,
		TargetAmount:     target,
		ContributionType: ct,
		CreatedAt:        now,
	}
	if by != "" {
		due, err := source.ParseTime(by)
		if err != nil {
			return model.SavingsGoal{}, fmt.Errorf("--by: %w", err)
		}
		if pipeline.StartOfDay(due).Before(pipeline.StartOfDay(now)) {
			return model.SavingsGoal{}, errors.New("--by is in the past")
		}
		g.TargetDate = &due
	}
	return g, nil
}

// printGoalBars renders one bar per goal; limit 0 shows all of them.
func printGoalBars(goals []model.GoalProgress, limit int) {
	if limit > 0 && len(goals) > limit {
		goals = goals[:limit]
	}
	labelW := 0
	for _, p := range goals {
		labelW = max(labelW, len(p.Goal.Name))
	}
	fmt.Println(cli.Muted("  Goals"))
	for _, p := range goals {
		fmt.Println("  " + cli.RenderGoalBar(p, min(labelW, 20), 24))
	}
}
