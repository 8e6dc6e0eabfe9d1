package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/wisespend/internal/cli"
	"github.com/theirongolddev/wisespend/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagNotifUnread bool
	flagNotifLimit  int
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"alerts"},
	Short:   "Alerts raised by the daemon",
	RunE:    runNotifications,
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read [ID]",
	Short: "Mark one notification, or all of them, as read",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNotificationsRead,
}

func init() {
	notificationsCmd.Flags().BoolVarP(&flagNotifUnread, "unread", "u", false, "Only unread notifications")
	notificationsCmd.Flags().IntVarP(&flagNotifLimit, "limit", "l", 20, "Max rows")
	notificationsCmd.AddCommand(notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func runNotifications(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.ledger.ListNotifications(cmd.Context(), flagNotifUnread, flagNotifLimit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("\n  No notifications.")
		return nil
	}

	var rows [][]string
	for _, n := range list {
		mark := "•"
		if n.Read {
			mark = ""
		}
		rows = append(rows, []string{mark, cli.FormatDate(n.CreatedAt), string(n.Type), n.Title, n.Message, n.ID})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Notifications",
		Headers: []string{"", "When", "Type", "Title", "Message", "ID"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runNotificationsRead(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	if len(args) == 0 {
		n, err := s.ledger.MarkAllRead(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("  Marked %d notification(s) as read\n", n)
		return nil
	}

	if err := s.ledger.MarkRead(ctx, args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no notification with id %s", args[0])
		}
		return err
	}
	fmt.Printf("  Marked %s as read\n", args[0])
	return nil
}
