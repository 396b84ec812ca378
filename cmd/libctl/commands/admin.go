package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Review requests, see who holds what and mark books returned",
	}

	var status string
	requests := &cobra.Command{
		Use:   "requests",
		Short: "List every request, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := newClient().ListRequests(cmd.Context(), status)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), list, func() {
				rows := make([][]string, 0, len(list))
				for _, r := range list {
					rows = append(rows, []string{r.ID, r.Username, r.BookTitle, r.Status, formatTime(r.RequestedAt), formatTimePtr(r.ApprovedAt), formatTimePtr(r.RejectedAt)})
				}
				printTable(cmd.OutOrStdout(), "No requests", []string{"ID", "User", "Title", "Status", "Requested", "Approved", "Rejected"}, rows)
			})
		},
	}
	requests.Flags().StringVar(&status, "status", "", "Only show pending, approved or rejected requests")

	approve := &cobra.Command{
		Use:   "approve <request-id>",
		Short: "Approve a pending request and issue the book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().ApproveRequest(cmd.Context(), args[0])
			})
		},
	}

	reject := &cobra.Command{
		Use:   "reject <request-id>",
		Short: "Reject a pending request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().RejectRequest(cmd.Context(), args[0])
			})
		},
	}

	borrowers := &cobra.Command{
		Use:   "borrowers",
		Short: "Show every user holding books, most books first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().Borrowers(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), stats, func() {
				rows := make([][]string, 0, len(stats))
				for _, s := range stats {
					titles := make([]string, 0, len(s.Books))
					for _, b := range s.Books {
						titles = append(titles, b.Title)
					}
					rows = append(rows, []string{s.Username, itoa(s.TotalBorrowed), strings.Join(titles, "\n")})
				}
				printTable(cmd.OutOrStdout(), "Nobody is holding any books", []string{"User", "Books", "Titles"}, rows)
			})
		},
	}

	ret := &cobra.Command{
		Use:   "return <book-id> <username>",
		Short: "Mark a borrowed book returned and notify the borrower",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().ReturnBook(cmd.Context(), args[0], args[1])
			})
		},
	}

	cmd.AddCommand(requests, approve, reject, borrowers, ret)
	return cmd
}
