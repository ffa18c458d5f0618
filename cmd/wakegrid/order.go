package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wakegrid/wakegrid/pkg/config"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print the resolved activation order without waking anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging(cmd)
		filename, _ := cmd.Flags().GetString("file")

		nodes, err := config.Load(filename)
		if err != nil {
			return err
		}

		for i, node := range nodes {
			line := fmt.Sprintf("%2d. %s", i+1, node.Name)
			if len(node.Depends) > 0 {
				line += fmt.Sprintf("  (after %s)", strings.Join(node.Depends, ", "))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	orderCmd.Flags().StringP("file", "f", "nodes.yaml", "YAML node list to resolve")
}
