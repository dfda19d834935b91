package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"luamend/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprintf(cmd.OutOrStdout(), "luamend %s\n", v)
			if version.GitCommit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", version.BuildDate)
			}
			return nil
		case "json":
			payload := struct {
				Tool      string `json:"tool"`
				Version   string `json:"version"`
				GitCommit string `json:"git_commit,omitempty"`
				BuildDate string `json:"build_date,omitempty"`
			}{"luamend", v, version.GitCommit, version.BuildDate}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}
