package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = readPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			resp, err := newClient().Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), resp, func() {
				printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s (logged in as %s, role %s)", resp.Message, resp.Username, resp.Role))
			})
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted for when omitted)")

	return cmd
}

func newRegisterCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a student account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				password, err = readPassword(cmd, "New password: ")
				if err != nil {
					return err
				}
			}

			msg, err := newClient().Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted for when omitted)")

	return cmd
}

// readPassword reads a password without echo from a terminal, or a single line
// from piped input.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", errors.Wrap(err, "failed to read password")
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read password")
	}
	return strings.TrimSpace(line), nil
}
