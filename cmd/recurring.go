package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
	"github.com/theirongolddev/wisespend/internal/source"
	"github.com/theirongolddev/wisespend/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagRecurTitle    string
	flagRecurCategory string
	flagRecurCadence  string
	flagRecurType     string
	flagRecurNext     string
	flagRecurSave     bool
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring transactions",
	RunE:  runRecurringList,
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring rules",
	RunE:  runRecurringList,
}

var recurringAddCmd = &cobra.Command{
	Use:   "add AMOUNT",
	Short: "Add a recurring rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringAdd,
}

var recurringDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a recurring rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecurringDelete,
}

var recurringRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Materialize every due rule now",
	RunE:  runRecurringRun,
}

var recurringSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a rule from repeated expenses",
	RunE:  runRecurringSuggest,
}

func init() {
	recurringAddCmd.Flags().StringVar(&flagRecurTitle, "title", "", "Rule title (used as the transaction note)")
	recurringAddCmd.Flags().StringVarP(&flagRecurCategory, "category", "c", string(model.Bills), "Category")
	recurringAddCmd.Flags().StringVar(&flagRecurCadence, "cadence", string(model.Monthly), "daily, weekly, monthly or yearly")
	recurringAddCmd.Flags().StringVarP(&flagRecurType, "type", "t", string(model.Expense), "expense or income")
	recurringAddCmd.Flags().StringVar(&flagRecurNext, "next", "", "First run date (default: now)")
	recurringSuggestCmd.Flags().BoolVar(&flagRecurSave, "save", false, "Save the suggestion as an active rule")

	recurringCmd.AddCommand(recurringListCmd)
	recurringCmd.AddCommand(recurringAddCmd)
	recurringCmd.AddCommand(recurringDeleteCmd)
	recurringCmd.AddCommand(recurringRunCmd)
	recurringCmd.AddCommand(recurringSuggestCmd)
	rootCmd.AddCommand(recurringCmd)
}

func runRecurringList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rules, err := s.ledger.ListRules(cmd.Context())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Println("\n  No recurring rules. Add one with: wisespend recurring add 499 --title Netflix --category Entertainment")
		return nil
	}

	var rows [][]string
	for _, r := range rules {
		state := "active"
		if !r.Active {
			state = "paused"
		}
		rows = append(rows, []string{
			r.Title, string(r.Category), cli.FormatMoney(r.Amount), string(r.Cadence),
			r.NextRunDate.Format("2006-01-02"), state, r.ID,
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recurring Rules",
		Headers: []string{"Title", "Category", "Amount", "Cadence", "Next", "State", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runRecurringAdd(cmd *cobra.Command, args []string) error {
	amount, err := source.ParseAmount(args[0])
	if err != nil {
		return err
	}
	category, err := parseCategory(flagRecurCategory)
	if err != nil {
		return err
	}
	cadence, ok := model.ParseCadence(strings.ToLower(flagRecurCadence))
	if !ok {
		return fmt.Errorf("unknown cadence %q", flagRecurCadence)
	}
	txType, err := parseTxType(flagRecurType)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	next, err := resolveNow(flagRecurNext, s.now)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(flagRecurTitle)
	if title == "" {
		title = string(category)
	}

	rule := model.RecurringRule{
		ID:          uuid.NewString(),
		Title:       title,
		Amount:      amount,
		Category:    category,
		Cadence:     cadence,
		NextRunDate: next,
		Active:      true,
		Type:        txType,
		CreatedAt:   s.now,
	}
	if err := s.ledger.SaveRule(cmd.Context(), rule); err != nil {
		return err
	}
	fmt.Printf("  Added %s %s %s, next on %s\n", rule.Cadence, rule.Title, cli.FormatMoney(rule.Amount), next.Format("2006-01-02"))
	return nil
}

func runRecurringDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ledger.DeleteRule(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no recurring rule with id %s", args[0])
		}
		return err
	}
	fmt.Printf("  Deleted rule %s\n", args[0])
	return nil
}

func runRecurringRun(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	rules, err := s.ledger.ListRules(ctx)
	if err != nil {
		return err
	}
	created, updated := pipeline.RunDue(rules, s.now)
	if len(created) == 0 {
		fmt.Println("  No rules due.")
		return nil
	}
	if err := s.ledger.ApplyRecurring(ctx, created, updated); err != nil {
		return err
	}

	fmt.Printf("  Materialized %d transaction(s)\n", len(created))
	for _, tx := range created {
		fmt.Printf("    %s  %s  %s\n", cli.FormatDate(tx.CreatedAt), tx.Note, cli.FormatMoney(tx.Amount))
	}
	return nil
}

func runRecurringSuggest(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	res, _, err := s.load(cmd.Context())
	if err != nil {
		return err
	}

	rule, ok := insights.DetectRecurring(res.Transactions, res.Rules)
	if !ok {
		fmt.Println("  No repeating expenses found that aren't already covered by a rule.")
		return nil
	}

	ev := insights.RecurringEvent(rule)
	fmt.Printf("  %s\n", ev.Message)
	fmt.Printf("  %s %s %s, next on %s\n", rule.Cadence, rule.Category, cli.FormatMoney(rule.Amount), rule.NextRunDate.Format("2006-01-02"))

	if !flagRecurSave {
		fmt.Println(cli.Muted("  Re-run with --save to keep it."))
		return nil
	}
	rule.CreatedAt = s.now
	if err := s.ledger.SaveRule(cmd.Context(), rule); err != nil {
		return err
	}
	fmt.Printf("  Saved rule %s\n", rule.ID)
	return nil
}
