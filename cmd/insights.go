package cmd

import (
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/insights"
	"github.com/theirongolddev/wisespend/internal/pipeline"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Confidence score, patterns and recent activity",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
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
	fmt.Println(cli.RenderTitle("INSIGHTS"))
	fmt.Println()

	score := insights.ComputeConfidence(snap)
	fmt.Printf("  Confidence  %d/100\n", score.Score)
	fmt.Printf("  %s\n\n", cli.Muted(score.Reason))

	if sens, ok := insights.TimeSensitivity(snap); ok {
		fmt.Println(cli.Warn("  " + sens.Label))
		fmt.Printf("  %s\n\n", cli.Muted(sens.Message))
	}

	window := s.cfg.Insights.FatigueWindow()
	if f := insights.DetectFatigue(res.Transactions, s.cfg.Insights.FatigueThreshold, window, s.now); f.Detected {
		ev := insights.FatigueEvent(f, window)
		fmt.Println(cli.Warn("  " + ev.Title))
		fmt.Printf("  %s\n\n", cli.Muted(ev.Message))
	}

	if rule, ok := insights.DetectRecurring(res.Transactions, res.Rules); ok {
		ev := insights.RecurringEvent(rule)
		fmt.Println("  " + ev.Title)
		fmt.Printf("  %s\n", cli.Muted(ev.Message))
		fmt.Printf("  %s\n\n", cli.Muted("Save it with: wisespend recurring suggest --save"))
	}

	spikes := insights.DetectSpikes(res.Transactions, s.now)
	if len(spikes.Spikes) > 0 {
		var rows [][]string
		for _, tx := range spikes.Spikes {
			rows = append(rows, []string{cli.FormatDate(tx.CreatedAt), string(tx.Category), cli.FormatMoney(tx.Amount), tx.Note})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Spending Spikes (above %s)", cli.FormatMoney(spikes.Threshold)),
			Headers: []string{"When", "Category", "Amount", "Note"},
			Rows:    rows,
		}))
		fmt.Println()
	}
	if d := spikes.MostExpensiveDay; d != nil {
		fmt.Printf("  Most expensive day: %s %s (%s)\n\n",
			cli.FormatDayOfWeek(int(d.Date.Weekday())), d.YMD, cli.FormatMoney(d.Total))
	}

	recentN := s.cfg.General.RecentCount
	if recentN <= 0 {
		recentN = 6
	}
	if recent := pipeline.Recent(res.Transactions, recentN); len(recent) > 0 {
		fmt.Print(renderTransactions("Recent", recent, false))
		fmt.Println()
	}
	return nil
}
