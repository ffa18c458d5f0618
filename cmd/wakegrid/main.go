package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wakegrid/wakegrid/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wakegrid",
	Short: "wakegrid - dependency-ordered wake-on-LAN bring-up",
	Long: `wakegrid brings up a fleet of machines over the LAN in the right order.

Given a YAML list of nodes with dependencies and health checks, it
computes a safe activation order, sends a wake-on-LAN magic packet per
node, and verifies each node's health checks before waking anything
that depends on it.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"wakegrid version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON log output instead of console")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(orderCmd)
}

// initLogging configures the global logger from the persistent flags.
func initLogging(cmd *cobra.Command) {
	level, _ := cmd.Flags().GetString("log-level")
	jsonOut, _ := cmd.Flags().GetBool("json")

	log.Init(log.Config{
		Level:      log.Level(level),
		JSONOutput: jsonOut,
	})
}
