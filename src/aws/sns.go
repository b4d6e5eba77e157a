package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Publish sends message to topicARN and returns the SNS message id.
func (c *AWSClient) Publish(ctx context.Context, topicARN, subject, message string) (string, error) {
	out, err := c.SNS.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return "", fmt.Errorf("Publish to %s failed: %w", topicARN, err)
	}
	return aws.ToString(out.MessageId), nil
}
