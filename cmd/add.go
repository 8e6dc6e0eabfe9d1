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

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	flagAddCategory string
	flagAddType     string
	flagAddNote     string
	flagAddIntent   string
)

var addCmd = &cobra.Command{
	Use:   "add [AMOUNT]",
	Short: "Log a transaction (interactive without AMOUNT)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", string(model.Other), "Category")
	addCmd.Flags().StringVarP(&flagAddType, "type", "t", string(model.Expense), "expense or income")
	addCmd.Flags().StringVar(&flagAddNote, "note", "", "Free-text note")
	addCmd.Flags().StringVar(&flagAddIntent, "intent", "", "Essential, Comfort or Impulse")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	var (
		tx  model.Transaction
		err error
	)
	if len(args) == 0 {
		tx, err = promptTransaction()
	} else {
		tx, err = transactionFromFlags(args[0])
	}
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	tx.ID = uuid.NewString()
	tx.CreatedAt = s.now

	before, prev, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := s.ledger.AddTransaction(ctx, tx); err != nil {
		return err
	}

	txs := append(before.Transactions, tx)
	next := pipeline.ComputeSnapshot(txs, before.Profile, before.Budgets, s.now)

	fmt.Printf("  Logged %s %s (%s)\n", tx.Type, cli.FormatMoney(tx.Amount), tx.Category)
	fmt.Printf("  Safe to spend today: %s\n", cli.FormatSafeSpend(next.SafeSpendToday))

	for _, ev := range insights.DetectCrossings(prev, next) {
		fmt.Println(cli.Warn(fmt.Sprintf("  %s: %s", ev.Title, ev.Message)))
	}
	if tx.IsExpense() {
		window := s.cfg.Insights.FatigueWindow()
		if res := insights.DetectFatigue(txs, s.cfg.Insights.FatigueThreshold, window, s.now); res.Detected {
			ev := insights.FatigueEvent(res, window)
			fmt.Println(cli.Warn(fmt.Sprintf("  %s: %s", ev.Title, ev.Message)))
		}
	}
	fmt.Printf("  %s\n", cli.Muted("id "+tx.ID))
	return nil
}

func transactionFromFlags(amountArg string) (model.Transaction, error) {
	amount, err := source.ParseAmount(amountArg)
	if err != nil {
		return model.Transaction{}, err
	}
	category, err := parseCategory(flagAddCategory)
	if err != nil {
		return model.Transaction{}, err
	}
	txType, err := parseTxType(flagAddType)
	if err != nil {
		return model.Transaction{}, err
	}
	intent, err := parseIntent(flagAddIntent)
	if err != nil {
		return model.Transaction{}, err
	}
	if txType == model.Income {
		intent = ""
	}
	return model.Transaction{
		Amount:   amount,
		Type:     txType,
		Category: category,
		Note:     strings.TrimSpace(flagAddNote),
		Intent:   intent,
	}, nil
}

func promptTransaction() (model.Transaction, error) {
	var (
		amountStr string
		category  = string(model.Food)
		txType    = string(model.Expense)
		intent    string
		note      string
	)

	categories := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = string(c)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Value(&amountStr).
				Validate(func(s string) error {
					_, err := source.ParseAmount(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&txType),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(categories...)...).
				Value(&category),
			huh.NewSelect[string]().
				Title("Intent").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Essential", string(model.IntentEssential)),
					huh.NewOption("Comfort", string(model.IntentComfort)),
					huh.NewOption("Impulse", string(model.IntentImpulse)),
				).
				Value(&intent),
			huh.NewInput().
				Title("Note").
				Value(&note),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return model.Transaction{}, errors.New("cancelled")
		}
		return model.Transaction{}, err
	}

	amount, _ := source.ParseAmount(amountStr)
	tx := model.Transaction{
		Amount:   amount,
		Type:     model.TxType(txType),
		Category: model.NormalizeCategory(category),
		Note:     strings.TrimSpace(note),
	}
	if tx.IsExpense() {
		tx.Intent = model.Intent(intent)
	}
	return tx, nil
}

func parseTxType(s string) (model.TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense":
		return model.Expense, nil
	case "income":
		return model.Income, nil
	}
	return "", fmt.Errorf("unknown type %q (expense or income)", s)
}

func parseIntent(s string) (model.Intent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, in := range []model.Intent{model.IntentEssential, model.IntentComfort, model.IntentImpulse} {
		if strings.EqualFold(string(in), s) {
			return in, nil
		}
	}
	return "", fmt.Errorf("unknown intent %q", s)
}
