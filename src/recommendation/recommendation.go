// Package recommendation defines the records the analyzers emit.
package recommendation

import (
	"context"
	"strings"
	"unicode"

	"cost-optimizer/src/costs"
)

type Type string

const (
	EC2Rightsizing          Type = "EC2_RIGHTSIZING"
	EC2SpotInstances        Type = "EC2_SPOT_INSTANCES"
	RDSRightsizing          Type = "RDS_RIGHTSIZING"
	RDSBackupOptimization   Type = "RDS_BACKUP_OPTIMIZATION"
	S3LifecycleOptimization Type = "S3_LIFECYCLE_OPTIMIZATION"
	EBSOptimization         Type = "EBS_OPTIMIZATION"
	UnusedEC2Instance       Type = "UNUSED_EC2_INSTANCE"
	UnattachedEBSVolume     Type = "UNATTACHED_EBS_VOLUME"
	DynamoDBCapacityMode    Type = "DYNAMODB_CAPACITY_MODE"
)

// Title renders the type for humans: underscores become spaces, the first
// letter after any non-letter is upper case and the rest lower case, so
// EC2_SPOT_INSTANCES reads "Ec2 Spot Instances".
func (t Type) Title() string {
	var b strings.Builder
	prevLetter := false
	for _, r := range strings.ReplaceAll(string(t), "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Recommendation is a human-readable suggestion. Empty optional fields are
// treated as absent.
type Recommendation struct {
	Type             Type   `json:"type"`
	Resource         string `json:"resource,omitempty"`
	CurrentType      string `json:"current_type,omitempty"`
	CurrentClass     string `json:"current_class,omitempty"`
	CurrentRetention string `json:"current_retention,omitempty"`
	Size             string `json:"size,omitempty"`
	Recommendation   string `json:"recommendation"`
	PotentialSavings string `json:"potential_savings,omitempty"`
}

// Analyzer inspects costs (and possibly live inventory) and returns its
// recommendations. On error it may still return the recommendations it built
// before failing.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, costs *costs.ServiceCosts) ([]Recommendation, error)
}
