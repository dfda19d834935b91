package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"luamend/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "luamend",
	Short: "Lua and Luau source transformation tool",
	Long:  `luamend parses Lua and Luau sources, applies rewrite rules and regenerates them with full formatting fidelity`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color persistent flag against the stream the
// output goes to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
