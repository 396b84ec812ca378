package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notes"},
		Short:   "Read your notifications",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your notifications, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			list, err := newClient().Notifications(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), list, func() {
				rows := make([][]string, 0, len(list))
				for _, n := range list {
					rows = append(rows, []string{n.ID, yesNo(n.Read), n.Message, formatTime(n.CreatedAt)})
				}
				printTable(cmd.OutOrStdout(), "No notifications", []string{"ID", "Read", "Message", "Created"}, rows)
			})
		},
	}

	unread := &cobra.Command{
		Use:   "unread",
		Short: "Count your unread notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			n, err := newClient().UnreadCount(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), map[string]int{"unreadCount": n}, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", n)
			})
		},
	}

	read := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().MarkRead(cmd.Context(), args[0])
			})
		},
	}

	readAll := &cobra.Command{
		Use:   "read-all",
		Short: "Mark all your notifications read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			return printMessage(cmd, func() (string, error) {
				return newClient().MarkAllRead(cmd.Context(), user)
			})
		},
	}

	cmd.AddCommand(list, unread, read, readAll)
	return cmd
}
