package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ohs-security/ohs-cli/internal/api"
	"github.com/ohs-security/ohs-cli/internal/auth"
	"github.com/ohs-security/ohs-cli/internal/cli"
	"github.com/ohs-security/ohs-cli/internal/httpclient"
	"github.com/ohs-security/ohs-cli/internal/output"
	"github.com/ohs-security/ohs-cli/internal/progress"
)

const (
	themeAuto  = "auto"
	themeDark  = "dark"
	themeLight = "light"
)

var (
	debug      bool
	colorFlag  string
	themeFlag  string
	noProgress bool

	version = "dev"
	commit  = "none"
	date    = "unknown"

	logger = hclog.NewNullLogger()

	// lookupEnv reads credential variables. Tests replace it.
	lookupEnv auth.LookupFunc = os.LookupEnv

	// newTransport builds the transport for one request. Tests replace it
	// with a stub to observe or forbid outbound calls.
	newTransport = func(description string) httpclient.Doer {
		return httpclient.NewClient(httpclient.Config{
			Logger: logger,
			BodyWrapper: func(body io.ReadCloser, size int64) io.ReadCloser {
				return progress.NewReader(body, size, description, noProgress)
			},
		})
	}
)

var rootCmd = &cobra.Command{
	Use:   "ohs-cli",
	Short: "Query the issue tracker and the vulnerability scanner",
	Long: `Query Jira issues and Qualys scans from the command line.

Every command sends exactly one request and prints the result on standard
output: raw lines for issues, a single line of JSON for everything else.
Credentials are read from JIRA_USERNAME/JIRA_PASSWORD and
QUALYS_USERNAME/QUALYS_PASSWORD.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := cli.ParseColorMode(colorFlag)
		if err != nil {
			return err
		}
		cli.InitColors(mode)

		switch themeFlag {
		case themeAuto:
		case themeDark:
			lipgloss.SetHasDarkBackground(true)
		case themeLight:
			lipgloss.SetHasDarkBackground(false)
		default:
			return fmt.Errorf("invalid --theme value %q: must be auto, dark, or light", themeFlag)
		}
		output.SyncStylesWithColorMode()

		logger = newLogger(debug)
		logger.Debug("starting", "command", cmd.CommandPath(), "version", version)
		return nil
	},
}

// SetVersion sets the version information reported by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// Execute runs the root command. SIGINT and SIGTERM cancel the request in
// flight. Errors are printed to stderr before being returned.
func Execute() error {
	ctx, cancel := NewSignalContext()
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("interrupted: %w", err)
		}
		cli.PrintError(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log requests and responses to stderr (credentials are masked)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", getEnvOrDefault("OHS_COLOR", "auto"), "Color output mode: auto, always, never (env: OHS_COLOR)")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", getEnvOrDefault("OHS_THEME", themeAuto), "Terminal background: auto, dark, light (env: OHS_THEME)")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable the download indicator")

	SetupHelp(rootCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newLogger(debug bool) hclog.Logger {
	level := hclog.Warn
	if debug {
		level = hclog.Debug
	}
	color := hclog.ColorOff
	if cli.ColorsEnabled() {
		color = hclog.AutoColor
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ohs-cli",
		Output: os.Stderr,
		Level:  level,
		Color:  color,
	})
}

// newIssueClient loads the issue tracker credentials and builds a client.
// Missing credentials fail before any transport is created.
func newIssueClient(description string) (*api.IssueClient, error) {
	creds, err := auth.IssueTrackerFromEnv(lookupEnv)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded issue tracker credentials", "user", creds.Username)
	return api.NewIssueClient(api.IssueTrackerBaseURL, auth.NewBasicProvider(creds), newTransport(description),
		api.WithLogger(logger))
}

// newScannerClient loads the scanner credentials and builds a client.
func newScannerClient(description string) (*api.ScannerClient, error) {
	creds, err := auth.ScannerFromEnv(lookupEnv)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scanner credentials", "user", creds.Username)
	return api.NewScannerClient(api.ScannerBaseURL, auth.NewBasicProvider(creds), newTransport(description),
		api.WithLogger(logger))
}

// newPrinter writes to the command's stdout, highlighting JSON only when
// colors are enabled and stdout is a terminal.
func newPrinter(cmd *cobra.Command) *output.Printer {
	w := cmd.OutOrStdout()
	highlight := false
	if f, ok := w.(*os.File); ok {
		highlight = cli.ColorsEnabled() && cli.IsTerminal(f)
	}
	return output.NewPrinter(w, highlight)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
