package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luamend/internal/driver"
	"luamend/internal/nodepath"
	"luamend/internal/nodes"
	"luamend/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.lua",
	Short: "Dump the converted node tree of a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("lenient", false, "skip statements that cannot be modeled")
	parseCmd.Flags().String("at", "", "dump only the node at this path (e.g. 0/1:)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	lenient, _ := cmd.Flags().GetBool("lenient")
	at, _ := cmd.Flags().GetString("at")

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	src := string(data)

	block, err := driver.ParseSource(src, driver.Options{LenientStatements: lenient})
	if err != nil {
		report.New(os.Stderr, useColor(cmd, os.Stderr)).Error(path, src, err)
		return fmt.Errorf("parse failed")
	}

	target := nodes.Node(block)
	if at != "" {
		nodePath, err := nodepath.Parse(at)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", at, err)
		}
		resolved, ok := nodePath.Resolve(block)
		if !ok {
			return fmt.Errorf("path %q does not resolve in %s", at, path)
		}
		target = resolved
	}

	printer := &treePrinter{out: cmd.OutOrStdout()}
	printer.node(target)
	return nil
}
