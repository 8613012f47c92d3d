package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
)

// instanceRegion asks the EC2 instance metadata service for the region the
// current instance runs in.
func instanceRegion(ctx context.Context, cfg aws.Config) (string, error) {
	resp, err := imds.NewFromConfig(cfg).GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", err
	}
	return resp.Region, nil
}
