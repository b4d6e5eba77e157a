package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

type DBInstance struct {
	ID                  string `json:"id"`
	Class               string `json:"class"`
	Engine              string `json:"engine"`
	BackupRetentionDays int32  `json:"backupRetentionDays"`
}

// ListDBInstances returns every DB instance in the region. RDS has no tag
// filter on DescribeDBInstances, so this is not scoped to a project.
func (c *AWSClient) ListDBInstances(ctx context.Context) ([]DBInstance, error) {
	paginator := rds.NewDescribeDBInstancesPaginator(c.RDS, &rds.DescribeDBInstancesInput{})

	var instances []DBInstance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeDBInstances failed: %w", err)
		}
		for _, inst := range page.DBInstances {
			instances = append(instances, DBInstance{
				ID:                  aws.ToString(inst.DBInstanceIdentifier),
				Class:               aws.ToString(inst.DBInstanceClass),
				Engine:              aws.ToString(inst.Engine),
				BackupRetentionDays: aws.ToInt32(inst.BackupRetentionPeriod),
			})
		}
	}
	return instances, nil
}
