package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luamend/internal/driver"
	"luamend/internal/project"
	"luamend/internal/report"
)

var processCmd = &cobra.Command{
	Use:   "process [flags] path",
	Short: "Process Lua files through the configured rules",
	Long:  `Process parses each selected file, applies the configured rewrite rules and regenerates it. Path may be a single file or a directory.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().String("config", "", "configuration file (default: nearest luamend.toml)")
	processCmd.Flags().StringP("output", "o", "", "write results under this directory instead of in place")
	processCmd.Flags().Bool("no-token-fidelity", false, "drop original tokens and regenerate canonical formatting")
	processCmd.Flags().Bool("lenient", false, "skip statements that cannot be modeled instead of failing the file")
	processCmd.Flags().IntP("jobs", "j", 0, "parallel workers for directory runs (0 = GOMAXPROCS)")
	processCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	processCmd.Flags().Bool("no-cache", false, "bypass the output cache")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	configPath, _ := cmd.Flags().GetString("config")
	output, _ := cmd.Flags().GetString("output")
	noFidelity, _ := cmd.Flags().GetBool("no-token-fidelity")
	lenient, _ := cmd.Flags().GetBool("lenient")
	jobs, _ := cmd.Flags().GetInt("jobs")
	uiFlag, _ := cmd.Flags().GetString("ui")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	uiMode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	config, err := project.Resolve(configPath, path)
	if err != nil {
		return err
	}
	if output == "" {
		output = config.Output
	}
	// Validate the rule chain up front so a config typo fails the run
	// before any file is touched.
	if _, err := config.BuildRules(); err != nil {
		return err
	}

	runner := driver.NewRunner(config, driver.Options{
		HoldTokenData:     !noFidelity,
		LenientStatements: lenient,
		Jobs:              jobs,
		Output:            output,
		NoCache:           noCache,
	})

	summary, err := runWithUI(cmd, runner, path, uiMode)
	if err != nil {
		return err
	}

	reporter := report.New(os.Stderr, useColor(cmd, os.Stderr))
	for _, result := range summary.Results {
		if result.Err != nil {
			src := readSourceFor(result)
			reporter.Error(result.Path, src, result.Err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "processed %d file(s): %d ok (%d cached), %d failed\n",
		len(summary.Results), summary.Succeeded, summary.Cached, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}
	return nil
}

// readSourceFor re-reads a failed file so the reporter can show the
// offending line. The file may have vanished; the snippet is optional.
func readSourceFor(result driver.FileResult) string {
	data, err := os.ReadFile(result.InputPath)
	if err != nil {
		return ""
	}
	return string(data)
}
