package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/TanzidTowfiq/Library-Management-Software/pkg/client"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+msg)
}

func printError(w io.Writer, err error) {
	var apiErr *client.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(w, errorStyle.Render("✗ ")+apiErr.Message+mutedStyle.Render(fmt.Sprintf(" (%d)", apiErr.StatusCode)))
		if apiErr.Detail != "" {
			fmt.Fprintln(w, mutedStyle.Render("  "+apiErr.Detail))
		}
		return
	}
	fmt.Fprintln(w, errorStyle.Render("✗ ")+err.Error())
}

func printMuted(w io.Writer, msg string) {
	fmt.Fprintln(w, mutedStyle.Render(msg))
}

func printJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return errors.WithStack(err)
}

// printTable renders rows under headers, or a muted placeholder when there are
// no rows.
func printTable(w io.Writer, empty string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		printMuted(w, empty)
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.String())
}

// printResult prints v as JSON when --json is set and calls render otherwise.
func printResult(w io.Writer, v interface{}, render func()) error {
	if jsonOutput {
		return printJSON(w, v)
	}
	render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
