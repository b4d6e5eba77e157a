package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PROJECT_NAME":  "shop",
		"ENVIRONMENT":   "prod",
		"SNS_TOPIC_ARN": "arn:aws:sns:us-east-1:123456789012:cost-reports",
	}))
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.ProjectName)
	assert.Equal(t, "prod", cfg.Environment)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:cost-reports", cfg.SNSTopicARN)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, "Project", cfg.ProjectTagKey)
	assert.Empty(t, cfg.MetricsNamespace)
	assert.False(t, cfg.DynamoDBAnalysis)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Thresholds.Compute.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.Thresholds.Database.Equal(decimal.NewFromInt(50)))
	assert.True(t, cfg.Thresholds.ObjectStorage.Equal(decimal.NewFromInt(20)))
	assert.True(t, cfg.Thresholds.BlockStorage.Equal(decimal.NewFromInt(30)))
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PROJECT_NAME":      "shop",
		"ENVIRONMENT":       "prod",
		"SNS_TOPIC_ARN":     "arn:topic",
		"AWS_REGION":        "eu-west-1",
		"PROJECT_TAG_KEY":   "app",
		"METRICS_NAMESPACE": "CostOptimizer",
		"DYNAMODB_ANALYSIS": "true",
		"LOG_LEVEL":         "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "app", cfg.ProjectTagKey)
	assert.Equal(t, "CostOptimizer", cfg.MetricsNamespace)
	assert.True(t, cfg.DynamoDBAnalysis)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestFromEnv_MissingRequired(t *testing.T) {
	_, err := FromEnv(env(nil))
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrMissingEnv))
	for _, name := range []string{"PROJECT_NAME", "ENVIRONMENT", "SNS_TOPIC_ARN"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestFromEnvWithoutTopic(t *testing.T) {
	cfg, err := FromEnvWithoutTopic(env(map[string]string{"PROJECT_NAME": "shop", "ENVIRONMENT": "dev"}))
	require.NoError(t, err)
	assert.Empty(t, cfg.SNSTopicARN)

	_, err = FromEnvWithoutTopic(env(map[string]string{"PROJECT_NAME": "shop"}))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SNS_TOPIC_ARN")
}

func TestFromEnv_BadBool(t *testing.T) {
	_, err := FromEnv(env(map[string]string{
		"PROJECT_NAME":      "shop",
		"ENVIRONMENT":       "prod",
		"SNS_TOPIC_ARN":     "arn:topic",
		"DYNAMODB_ANALYSIS": "sometimes",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DYNAMODB_ANALYSIS")
}

func TestParseThresholds(t *testing.T) {
	cfg := &Config{Thresholds: DefaultThresholds()}

	err := cfg.ParseThresholds([]byte("compute: 250\nobject_storage: 12.5\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Thresholds.Compute.Equal(decimal.NewFromInt(250)))
	assert.True(t, cfg.Thresholds.ObjectStorage.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, cfg.Thresholds.Database.Equal(decimal.NewFromInt(50)), "unset keys keep defaults")
}

func TestThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: 75\n"), 0644))

	cfg, err := FromEnv(env(map[string]string{
		"PROJECT_NAME":    "shop",
		"ENVIRONMENT":     "prod",
		"SNS_TOPIC_ARN":   "arn:topic",
		"THRESHOLDS_FILE": path,
	}))
	require.NoError(t, err)
	assert.True(t, cfg.Thresholds.Database.Equal(decimal.NewFromInt(75)))

	_, err = FromEnv(env(map[string]string{
		"PROJECT_NAME":    "shop",
		"ENVIRONMENT":     "prod",
		"SNS_TOPIC_ARN":   "arn:topic",
		"THRESHOLDS_FILE": filepath.Join(t.TempDir(), "missing.yaml"),
	}))
	assert.Error(t, err)
}

func TestParseThresholds_Exact(t *testing.T) {
	cfg := &Config{Thresholds: DefaultThresholds()}

	err := cfg.ParseThresholds([]byte("compute: 0.1\ndatabase: \"99.995\"\ndynamodb: 1e2\n"))
	require.NoError(t, err)

	assert.Equal(t, "0.1", cfg.Thresholds.Compute.String())
	assert.Equal(t, "99.995", cfg.Thresholds.Database.String())
	assert.True(t, cfg.Thresholds.DynamoDB.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.Thresholds.Compute.Add(decimal.RequireFromString("0.2")).Equal(decimal.RequireFromString("0.3")))
}

func TestParseThresholds_Invalid(t *testing.T) {
	cfg := &Config{Thresholds: DefaultThresholds()}
	assert.Error(t, cfg.ParseThresholds([]byte("compute: [1, 2]\n")))

	err := cfg.ParseThresholds([]byte("block_storage: lots\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block_storage")
	assert.True(t, cfg.Thresholds.BlockStorage.Equal(decimal.NewFromInt(30)))
}
