package commands

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/client"
	"github.com/TanzidTowfiq/Library-Management-Software/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	username   string
	jsonOutput bool
	timeout    time.Duration
)

// NewRootCommand builds the libctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "libctl",
		Short: "Command-line client for the library API",
		Long: `libctl talks to a running library API server.

Students request, borrow and favorite books and read their notifications.
Admins manage the catalog, approve or reject requests and mark books returned.
The acting user is passed with --user; the API trusts it as given.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&serverURL, "server", envOr("LIBCTL_SERVER", "http://localhost:5000"), "Base URL of the library API")
	root.PersistentFlags().StringVarP(&username, "user", "u", os.Getenv("LIBCTL_USER"), "Username to act as")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of tables")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	root.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newBooksCommand(),
		newMyCommand(),
		newAdminCommand(),
		newNotificationsCommand(),
		newHealthCommand(),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(serverURL, client.WithHTTPClient(&http.Client{Timeout: timeout}))
}

func requireUser() (string, error) {
	if username == "" {
		return "", errors.New("a username is required: pass --user or set LIBCTL_USER")
	}
	return username, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newClient().Health(cmd.Context()); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is healthy", serverURL))
			return nil
		},
	}
}
