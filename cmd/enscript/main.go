package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"enscript/internal/driver"
	"enscript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "enscript",
	Short: "Enforce script analyzer",
	Long:  `enscript finds semantic and syntax issues in Enforce script sources`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("trace-level", "off", "engine trace verbosity (off|warn|info|debug)")
	rootCmd.PersistentFlags().Int("max-diagnostics", driver.DefaultMaxDiagnostics, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output terminal.
func useColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return mode == "on" || (mode == "auto" && isTerminal(os.Stdout)), nil
}
