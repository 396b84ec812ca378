package commands

import (
	"github.com/spf13/cobra"
)

func newMyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my",
		Short: "Show the current user's requests, borrowed books and favorites",
	}

	requests := &cobra.Command{
		Use:   "requests",
		Short: "List your requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			list, err := newClient().MyRequests(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), list, func() {
				rows := make([][]string, 0, len(list))
				for _, r := range list {
					rows = append(rows, []string{r.ID, r.BookTitle, r.BookAuthor, r.Status, formatTime(r.RequestedAt)})
				}
				printTable(cmd.OutOrStdout(), "No requests", []string{"ID", "Title", "Author", "Status", "Requested"}, rows)
			})
		},
	}

	borrowed := &cobra.Command{
		Use:   "borrowed",
		Short: "List the books you currently hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			list, err := newClient().MyBorrowed(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), list, func() {
				rows := make([][]string, 0, len(list))
				for _, b := range list {
					rows = append(rows, []string{b.BookID, b.Book.Title, b.Book.Author, formatTime(b.BorrowedAt)})
				}
				printTable(cmd.OutOrStdout(), "No borrowed books", []string{"Book ID", "Title", "Author", "Borrowed"}, rows)
			})
		},
	}

	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			books, err := newClient().MyFavorites(cmd.Context(), user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), books, func() {
				printBooks(cmd, books)
			})
		},
	}

	cmd.AddCommand(requests, borrowed, favorites)
	return cmd
}
