// Package config reads the analysis settings once at the process boundary.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"cost-optimizer/src/logging"
	"cost-optimizer/src/shared/constants"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrMissingEnv = errors.New("missing required environment variable")

// Thresholds are the spend levels (USD over the analysis window) above which
// an analyzer looks for recommendations.
type Thresholds struct {
	Compute       decimal.Decimal
	Database      decimal.Decimal
	ObjectStorage decimal.Decimal
	BlockStorage  decimal.Decimal
	DynamoDB      decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Compute:       decimal.NewFromInt(constants.COMPUTE_THRESHOLD),
		Database:      decimal.NewFromInt(constants.DATABASE_THRESHOLD),
		ObjectStorage: decimal.NewFromInt(constants.OBJECT_STORAGE_THRESHOLD),
		BlockStorage:  decimal.NewFromInt(constants.BLOCK_STORAGE_THRESHOLD),
		DynamoDB:      decimal.NewFromInt(constants.DYNAMODB_THRESHOLD),
	}
}

type Config struct {
	ProjectName string
	Environment string
	SNSTopicARN string

	Region           string
	ProjectTagKey    string
	MetricsNamespace string
	DynamoDBAnalysis bool

	Logging    logging.Config
	Thresholds Thresholds
}

// FromEnv builds a Config from getenv. All missing required variables are
// reported together.
func FromEnv(getenv func(string) string) (*Config, error) {
	return load(getenv, true)
}

// FromEnvWithoutTopic is FromEnv for runs that never notify, where
// SNS_TOPIC_ARN may be absent.
func FromEnvWithoutTopic(getenv func(string) string) (*Config, error) {
	return load(getenv, false)
}

func load(getenv func(string) string, requireTopic bool) (*Config, error) {
	cfg := &Config{
		ProjectName:      getenv("PROJECT_NAME"),
		Environment:      getenv("ENVIRONMENT"),
		SNSTopicARN:      getenv("SNS_TOPIC_ARN"),
		Region:           getenv("AWS_REGION"),
		ProjectTagKey:    getenv("PROJECT_TAG_KEY"),
		MetricsNamespace: getenv("METRICS_NAMESPACE"),
		Logging:          logging.DefaultConfig(),
		Thresholds:       DefaultThresholds(),
	}

	var errs []error
	required := []struct{ name, value string }{
		{"PROJECT_NAME", cfg.ProjectName},
		{"ENVIRONMENT", cfg.Environment},
	}
	if requireTopic {
		required = append(required, struct{ name, value string }{"SNS_TOPIC_ARN", cfg.SNSTopicARN})
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, r.name))
		}
	}

	if cfg.Region == "" {
		cfg.Region = constants.US_EAST_1
	}
	if cfg.ProjectTagKey == "" {
		cfg.ProjectTagKey = constants.PROJECT_TAG_KEY
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := getenv("DYNAMODB_ANALYSIS"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DYNAMODB_ANALYSIS: %w", err))
		}
		cfg.DynamoDBAnalysis = enabled
	}
	if path := getenv("THRESHOLDS_FILE"); path != "" {
		if err := cfg.LoadThresholds(path); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

type thresholdsFile struct {
	Compute       *string `yaml:"compute"`
	Database      *string `yaml:"database"`
	ObjectStorage *string `yaml:"object_storage"`
	BlockStorage  *string `yaml:"block_storage"`
	DynamoDB      *string `yaml:"dynamodb"`
}

// LoadThresholds overrides the thresholds present in the YAML file at path.
func (c *Config) LoadThresholds(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading thresholds file: %w", err)
	}
	return c.ParseThresholds(data)
}

func (c *Config) ParseThresholds(data []byte) error {
	var f thresholdsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing thresholds: %w", err)
	}

	overrides := []struct {
		key string
		dst *decimal.Decimal
		v   *string
	}{
		{"compute", &c.Thresholds.Compute, f.Compute},
		{"database", &c.Thresholds.Database, f.Database},
		{"object_storage", &c.Thresholds.ObjectStorage, f.ObjectStorage},
		{"block_storage", &c.Thresholds.BlockStorage, f.BlockStorage},
		{"dynamodb", &c.Thresholds.DynamoDB, f.DynamoDB},
	}
	for _, o := range overrides {
		if o.v == nil {
			continue
		}
		d, err := decimal.NewFromString(*o.v)
		if err != nil {
			return fmt.Errorf("parsing threshold %s: %w", o.key, err)
		}
		*o.dst = d
	}
	return nil
}
