package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

type InstanceState string

const (
	InstanceRunning InstanceState = "running"
	InstanceStopped InstanceState = "stopped"
)

type Instance struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	State string `json:"state"`
	Spot  bool   `json:"spot"`
}

type Volume struct {
	ID     string `json:"id"`
	SizeGB int32  `json:"sizeGB"`
	Type   string `json:"type"`
}

func tagFilter(tag Tag) types.Filter {
	return types.Filter{
		Name:   aws.String("tag:" + tag.Key),
		Values: []string{tag.Value},
	}
}

// ListInstances returns the instances in state carrying tag, in the order the
// API returns them.
func (c *AWSClient) ListInstances(ctx context.Context, state InstanceState, tag Tag) ([]Instance, error) {
	paginator := ec2.NewDescribeInstancesPaginator(c.EC2, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("instance-state-name"), Values: []string{string(state)}},
			tagFilter(tag),
		},
	})

	var instances []Instance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeInstances (%s) failed: %w", state, err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				i := Instance{
					ID:   aws.ToString(inst.InstanceId),
					Type: string(inst.InstanceType),
					Spot: inst.SpotInstanceRequestId != nil || inst.InstanceLifecycle == types.InstanceLifecycleTypeSpot,
				}
				if inst.State != nil {
					i.State = string(inst.State.Name)
				}
				instances = append(instances, i)
			}
		}
	}
	return instances, nil
}

// ListAvailableVolumes returns the unattached EBS volumes carrying tag.
func (c *AWSClient) ListAvailableVolumes(ctx context.Context, tag Tag) ([]Volume, error) {
	paginator := ec2.NewDescribeVolumesPaginator(c.EC2, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{Name: aws.String("status"), Values: []string{string(types.VolumeStateAvailable)}},
			tagFilter(tag),
		},
	})

	var volumes []Volume
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("DescribeVolumes failed: %w", err)
		}
		for _, v := range page.Volumes {
			volumes = append(volumes, Volume{
				ID:     aws.ToString(v.VolumeId),
				SizeGB: aws.ToInt32(v.Size),
				Type:   string(v.VolumeType),
			})
		}
	}
	return volumes, nil
}
