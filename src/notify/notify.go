// Package notify publishes the rendered report to an SNS topic.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topicARN, subject, message string) (string, error)
}

type Notifier struct {
	publisher Publisher
	topicARN  string
	logger    *zap.Logger
}

func New(publisher Publisher, topicARN string, logger *zap.Logger) *Notifier {
	return &Notifier{publisher: publisher, topicARN: topicARN, logger: logger}
}

func Subject(project, environment string) string {
	return fmt.Sprintf("Cost Optimization Report - %s (%s)", project, environment)
}

// Send publishes report once. Errors are returned for the caller to log.
func (n *Notifier) Send(ctx context.Context, report, project, environment string) error {
	messageID, err := n.publisher.Publish(ctx, n.topicARN, Subject(project, environment), report)
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	n.logger.Info("cost optimization report sent",
		zap.String("topic", n.topicARN),
		zap.String("message_id", messageID))
	return nil
}
