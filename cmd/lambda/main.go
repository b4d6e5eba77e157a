package main

import (
	"context"
	"os"

	"cost-optimizer/src/config"
	"cost-optimizer/src/logging"
	"cost-optimizer/src/optimizer"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		logging.New(logging.DefaultConfig()).Error("invalid configuration", zap.Error(err))
		lambda.Start(optimizer.FailingHandler(err))
		return
	}

	logger := logging.New(cfg.Logging)
	defer logger.Sync()

	opts, err := optimizer.DefaultOptions(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("unable to build AWS clients", zap.Error(err))
		lambda.Start(optimizer.FailingHandler(err))
		return
	}

	lambda.Start(optimizer.New(cfg, opts).Handle)
}
