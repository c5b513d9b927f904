package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pin-actions <directory>",
	Short: "Pin GitHub Actions workflow references to commit hashes",
	Long: `pin-actions rewrites GitHub Actions workflow files so that every
action reference uses a full commit hash instead of a mutable tag,
keeping the released version visible in a trailing comment:

    uses: actions/checkout@v4

becomes

    uses: actions/checkout@11bd71901bbe5b1630ceea73d27597364c9af683 # v4.2.2

Commit hashes are resolved through the GitHub API and cached on disk
for 24 hours. Set GITHUB_TOKEN to authenticate and raise the API rate
limit.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runRoot,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// SetVersion sets the version string for the CLI.
func SetVersion(version string) {
	rootCmd.Version = version
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// printError prints a formatted error message to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "✗ Error: "+format+"\n", args...)
}
