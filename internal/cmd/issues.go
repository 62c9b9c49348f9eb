package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:     "issues",
	Aliases: []string{"jira"},
	Short:   "Fetch issues from the issue tracker",
	Long: `Run the default issue search against Jira and print the response
verbatim, line by line.`,
	Example: `  $ ohs-cli issues
  $ ohs-cli jira | jq '.issues[].key'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newIssueClient("Fetching issues")
		if err != nil {
			return err
		}

		body, err := client.FetchIssues(commandContext(cmd))
		if err != nil {
			return err
		}
		defer body.Close() //nolint:errcheck // response body read-only

		// Buffer first so a failed read never leaves partial output.
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("issue search failed: %w", err)
		}
		return newPrinter(cmd).Lines(bytes.NewReader(data))
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}
