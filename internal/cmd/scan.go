package cmd

import (
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Inspect vulnerability scans",
	Long:  `List finished Qualys scans and fetch the results of a single scan.`,
	Example: `  # List finished scans
  ohs-cli scan list

  # Fetch the extended results of one scan
  ohs-cli scan details 1709287200.12345`,
}

var scanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished scans",
	Long:  `List finished scans and print the scanner's XML response as one line of JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newScannerClient("Listing scans")
		if err != nil {
			return err
		}

		scans, err := client.ListFinishedScans(commandContext(cmd))
		if err != nil {
			return err
		}
		return newPrinter(cmd).JSON(scans)
	},
}

var scanDetailsCmd = &cobra.Command{
	Use:   "details <scan_id>",
	Short: "Fetch the results of a scan",
	Long: `Fetch the extended results of one scan and print them as one line of JSON.
Large reports can take a long time; the download is not time limited once
connected.`,
	Example: `  $ ohs-cli scan details 1709287200.12345`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newScannerClient("Fetching scan " + args[0])
		if err != nil {
			return err
		}

		details, err := client.ScanDetails(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).JSON(details)
	},
}

func init() {
	scanCmd.AddCommand(scanListCmd)
	scanCmd.AddCommand(scanDetailsCmd)
	rootCmd.AddCommand(scanCmd)
}
