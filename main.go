package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/envseal/cmd"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envseal",
	Short: "envseal - seal env files with a passphrase.",
	Long: `envseal encrypts plaintext env files into artifacts that are safe to commit,
and opens them again with the same passphrase.

Usage:
  envseal <command> [flags]

Available Commands:
  vault      Seal, open, run and inspect env files
  config     Manage envseal configuration

Run 'envseal help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	Run: func(c *cobra.Command, args []string) {
		figure.NewFigure("envseal", "small", true).Print()
		fmt.Println()
		fmt.Println("Run 'envseal --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.VaultCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
