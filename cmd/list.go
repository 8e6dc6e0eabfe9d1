package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
	"github.com/theirongolddev/wisespend/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagListDays     int
	flagListCategory string
	flagListLimit    int
	flagListExpenses bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	listCmd.Flags().IntVarP(&flagListDays, "days", "n", 30, "Time window in days (0 for all)")
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Filter to category")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 50, "Max rows")
	listCmd.Flags().BoolVar(&flagListExpenses, "expenses", false, "Only expenses")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	txs, err := s.ledger.ListTransactions(cmd.Context())
	if err != nil {
		return err
	}

	if flagListDays > 0 {
		txs = pipeline.FilterByTime(txs, s.now.AddDate(0, 0, -flagListDays), s.now.Add(1))
	}
	if flagListCategory != "" {
		category, err := parseCategory(flagListCategory)
		if err != nil {
			return err
		}
		txs = pipeline.FilterByCategory(txs, category)
	}
	if flagListExpenses {
		txs = pipeline.Expenses(txs)
	}
	txs = pipeline.Recent(txs, flagListLimit)

	if len(txs) == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	fmt.Println()
	fmt.Print(renderTransactions("Transactions", txs, true))
	fmt.Println()
	return nil
}

func renderTransactions(title string, txs []model.Transaction, withID bool) string {
	headers := []string{"When", "Category", "Amount", "Intent", "Note"}
	if withID {
		headers = append(headers, "ID")
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		amount := cli.FormatMoney(tx.Amount)
		if tx.Type == model.Income {
			amount = "+" + amount
		}
		row := []string{cli.FormatDate(tx.CreatedAt), string(tx.Category), amount, string(tx.Intent), tx.Note}
		if withID {
			row = append(row, tx.ID)
		}
		rows = append(rows, row)
	}
	return cli.RenderTable(cli.Table{Title: title, Headers: headers, Rows: rows})
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ledger.DeleteTransaction(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no transaction with id %s", args[0])
		}
		return err
	}
	fmt.Printf("  Deleted %s\n", args[0])
	return nil
}
