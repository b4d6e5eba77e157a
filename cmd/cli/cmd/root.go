// Package cmd provides the CLI commands for cost-optimizer.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cost-optimizer",
	Short: "Analyze AWS spend for a project and suggest savings",
	Long: `cost-optimizer runs the same analysis as the scheduled Lambda from a
workstation: it reads the last 30 days of Cost Explorer data for one project,
checks the project's EC2, RDS, S3 and EBS usage and prints the report.

Configuration comes from the same environment variables as the Lambda
(PROJECT_NAME, ENVIRONMENT, SNS_TOPIC_ARN, ...); flags override them.

Examples:
  cost-optimizer run --project shop --environment prod
  cost-optimizer run --notify
  cost-optimizer run --output ./reports/shop-prod`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cost-optimizer version %s\n", version)
	},
}
