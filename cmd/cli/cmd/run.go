package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"cost-optimizer/src/config"
	"cost-optimizer/src/logging"
	"cost-optimizer/src/optimizer"
	"cost-optimizer/src/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	project        string
	environment    string
	topicARN       string
	region         string
	thresholdsFile string
	outputPath     string
	logLevel       string
	notify         bool
	dynamoDB       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the cost analysis and print the report",
	RunE:  runAnalysis,
}

func init() {
	runCmd.Flags().StringVar(&project, "project", "", "project tag value (overrides PROJECT_NAME)")
	runCmd.Flags().StringVar(&environment, "environment", "", "environment label (overrides ENVIRONMENT)")
	runCmd.Flags().StringVar(&topicARN, "topic", "", "SNS topic ARN (overrides SNS_TOPIC_ARN)")
	runCmd.Flags().StringVar(&region, "region", "", "AWS region (overrides AWS_REGION)")
	runCmd.Flags().StringVar(&thresholdsFile, "thresholds", "", "YAML file overriding the spend thresholds")
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "also write recommendations to <path>.json and <path>.csv")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	runCmd.Flags().BoolVar(&notify, "notify", false, "publish the report to the SNS topic")
	runCmd.Flags().BoolVar(&dynamoDB, "dynamodb", false, "include the DynamoDB capacity analysis")
}

func flagEnv() func(string) string {
	overrides := map[string]string{
		"PROJECT_NAME":    project,
		"ENVIRONMENT":     environment,
		"SNS_TOPIC_ARN":   topicARN,
		"AWS_REGION":      region,
		"THRESHOLDS_FILE": thresholdsFile,
		"LOG_LEVEL":       logLevel,
		"LOG_FORMAT":      "console",
	}
	if dynamoDB {
		overrides["DYNAMODB_ANALYSIS"] = "true"
	}
	return func(key string) string {
		if v := overrides[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	}
}

func runAnalysis(cmd *cobra.Command, _ []string) error {
	load := config.FromEnvWithoutTopic
	if notify {
		load = config.FromEnv
	}
	cfg, err := load(flagEnv())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Logging)
	defer logger.Sync()

	opts, err := optimizer.DefaultOptions(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	if !notify {
		opts.Notifier = nil
	}

	result, err := optimizer.New(cfg, opts).Run(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), result.Report)

	if outputPath == "" {
		return nil
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := storage.WriteToJSON(outputPath, NewExport(cfg, result)); err != nil {
		return err
	}
	if err := storage.WriteToCSV(outputPath, result.Recommendations); err != nil {
		return err
	}
	logger.Info("wrote export", zap.String("path", outputPath))
	return nil
}
