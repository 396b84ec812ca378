package commands

import (
	"fmt"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/models"
	"github.com/spf13/cobra"
)

func newBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage the catalog",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List books, optionally filtered by title or author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := newClient().ListBooks(cmd.Context(), search)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), books, func() {
				printBooks(cmd, books)
			})
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Match title or author")

	add := &cobra.Command{
		Use:   "add <title> <author>",
		Short: "Add a book to the catalog",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := newClient().AddBook(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("Book added successfully (%s)", id))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <book-id>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().DeleteBook(cmd.Context(), args[0])
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle-issue <book-id>",
		Short: "Flip a book between issued and available without a borrow record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMessage(cmd, func() (string, error) {
				return newClient().ToggleIssue(cmd.Context(), args[0])
			})
		},
	}

	request := &cobra.Command{
		Use:   "request <book-id>",
		Short: "Ask to borrow a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			return printMessage(cmd, func() (string, error) {
				return newClient().RequestBook(cmd.Context(), args[0], user)
			})
		},
	}

	favorite := &cobra.Command{
		Use:   "favorite <book-id>",
		Short: "Add a book to, or remove it from, your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser()
			if err != nil {
				return err
			}
			resp, err := newClient().ToggleFavorite(cmd.Context(), args[0], user)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), resp, func() {
				printSuccess(cmd.OutOrStdout(), resp.Message)
			})
		},
	}

	cmd.AddCommand(list, add, del, toggle, request, favorite)
	return cmd
}

func printBooks(cmd *cobra.Command, books []*models.Book) {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{b.ID, b.Title, b.Author, yesNo(b.Issued)})
	}
	printTable(cmd.OutOrStdout(), "No books found", []string{"ID", "Title", "Author", "Issued"}, rows)
}

// printMessage runs a call that answers with a bare message and prints it.
func printMessage(cmd *cobra.Command, call func() (string, error)) error {
	msg, err := call()
	if err != nil {
		return err
	}
	return printResult(cmd.OutOrStdout(), map[string]string{"message": msg}, func() {
		printSuccess(cmd.OutOrStdout(), msg)
	})
}
