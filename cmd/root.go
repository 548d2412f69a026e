package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	configPath string
	groupPath  string
	outputPath string
	token      string
	delayMS    int
	verbose    bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "testing-farm-analyzer",
	Short: "Report Testing Farm adoption across a GitLab group",
	Long: `Scans every project in a GitLab group for fmf metadata files (the
marker of the Testing Farm / tmt test ecosystem) and reports how many
packages carry them.

The analyzer walks the group's project listing page by page, fetches each
project's file tree, prints a per-package verdict while it goes, and
finally writes a JSON report with the adoption numbers. Public groups are
scanned anonymously; a token only buys rate-limit headroom.`,
	RunE: runAnalyze,
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&groupPath, "group", "g", "",
		"GitLab group path to scan (e.g. redhat/centos-stream/rpms)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "",
		"Path of the JSON report")
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"GitLab token (inline or ${ENV_VAR}); anonymous access works for public groups")
	rootCmd.PersistentFlags().IntVar(&delayMS, "delay", 0,
		"Delay in milliseconds between API requests")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}
