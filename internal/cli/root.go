// Package cli implements the techmarket command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the release reported by the CLI and the health endpoint.
const Version = "1.1.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "techmarket",
	Short: "Registration form and account statement service",
	Long: `techmarket serves the registration page backend and the account
statement ("extrato"): CPF and phone masking, registration validation,
statement rendering and a mock statement API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and exit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "techmarket v%s\n", Version)
	},
}

// errInvalid marks a command that ran but found invalid input.
var errInvalid = errors.New("validation failed")

// Execute runs the root command. Invalid input exits with 2, any other
// failure with 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, errInvalid) {
		return 2
	}
	return 1
}
