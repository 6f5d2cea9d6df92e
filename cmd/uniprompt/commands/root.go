// Package commands provides the CLI commands for uniprompt.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uniprompt/uniprompt/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	flagDir   string
	printLogs bool
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "uniprompt",
	Short: "uniprompt - one prompt configuration, every AI editor",
	Long: `uniprompt renders a universal prompt configuration (uniprompt.yaml)
into the file formats of AI coding editors, and syncs edits made in
those files back into the universal configuration.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if !printLogs {
			level = "WARN"
		}
		logging.Setup(level, true, os.Stderr)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&printLogs, "print-logs", false, "Print logs to stderr")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("uniprompt %s (%s)\n", Version, BuildTime))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(variablesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(editorsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// workDir returns the project directory from the --dir flag or the
// current directory.
func workDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	return os.Getwd()
}

// parseOverrides parses -V NAME=value pairs.
func parseOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable override %q (expected NAME=value)", pair)
		}
		overrides[name] = value
	}
	return overrides, nil
}
