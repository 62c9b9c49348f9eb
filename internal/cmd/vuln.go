package cmd

import (
	"github.com/spf13/cobra"
)

var vulnCmd = &cobra.Command{
	Use:   "vuln",
	Short: "Look up vulnerabilities in the knowledge base",
}

var vulnInfoCmd = &cobra.Command{
	Use:     "info <vuln_id>",
	Short:   "Show knowledge base details for a vulnerability",
	Long:    `Look up one vulnerability (QID) in the scanner knowledge base and print it as one line of JSON.`,
	Example: `  $ ohs-cli vuln info 38170`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newScannerClient("Fetching vulnerability " + args[0])
		if err != nil {
			return err
		}

		info, err := client.VulnerabilityInfo(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).JSON(info)
	},
}

func init() {
	vulnCmd.AddCommand(vulnInfoCmd)
	rootCmd.AddCommand(vulnCmd)
}
