package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/wakegrid/wakegrid/pkg/config"
	"github.com/wakegrid/wakegrid/pkg/log"
	"github.com/wakegrid/wakegrid/pkg/metrics"
	"github.com/wakegrid/wakegrid/pkg/orchestrator"
	"github.com/wakegrid/wakegrid/pkg/types"
	"github.com/wakegrid/wakegrid/pkg/wol"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Wake all nodes in dependency order",
	Long: `Load the node list, resolve the dependency order, then wake and
verify each node before proceeding to its dependents.

Examples:
  # Bring up everything described in nodes.yaml
  wakegrid up -f nodes.yaml

  # Expose Prometheus metrics while the run is in progress
  wakegrid up -f nodes.yaml --metrics-addr :9090`,
	RunE: runUp,
}

func init() {
	upCmd.Flags().StringP("file", "f", "nodes.yaml", "YAML node list to bring up")
	upCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address during the run")
}

func runUp(cmd *cobra.Command, args []string) error {
	initLogging(cmd)
	filename, _ := cmd.Flags().GetString("file")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	nodes, err := config.Load(filename)
	if err != nil {
		return err
	}

	if metricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(metricsAddr, metrics.Handler()); err != nil {
				logger := log.WithComponent("metrics")
				logger.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	orch := orchestrator.New(nodes, wol.NewUDPWaker())
	results := orch.Run(cmd.Context())

	fmt.Println()
	failed := 0
	for _, r := range results {
		switch {
		case r.Skipped:
			failed++
			fmt.Printf("- %s: skipped (dependency not healthy)\n", r.Name)
		case r.Err != nil:
			failed++
			fmt.Printf("✗ %s: wake failed: %v\n", r.Name, r.Err)
		case r.Status == types.NodeStatusOk:
			fmt.Printf("✓ %s: ok\n", r.Name)
		default:
			failed++
			fmt.Printf("✗ %s: %s\n", r.Name, r.Status)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d nodes did not come up", failed, len(results))
	}
	return nil
}
