package aws

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/aws/fake"
)

const (
	testRegion  = "us-east-1"
	testAccount = "123456789012"
)

type testClients struct {
	ec2   *fake.EC2Client
	ecs   *fake.ECSClient
	elbv2 *fake.ELBv2Client
	iam   *fake.IAMClient
	acm   *fake.ACMClient
	asg   *fake.AutoScalingClient
}

func newTestAdapter() (*Adapter, *testClients) {
	c := &testClients{
		ec2:   &fake.EC2Client{},
		ecs:   &fake.ECSClient{},
		elbv2: &fake.ELBv2Client{},
		iam:   fake.NewIAMClient(),
		acm:   fake.NewACMClient(nil, nil),
		asg:   &fake.AutoScalingClient{},
	}
	a := NewAdapterFromClients(testRegion, Clients{
		EC2:         c.ec2,
		ECS:         c.ecs,
		ELBV2:       c.elbv2,
		IAM:         c.iam,
		ACM:         c.acm,
		AutoScaling: c.asg,
	}).WithAccountNumber(testAccount)
	return a, c
}

func TestAdapterDefaults(t *testing.T) {
	a := NewAdapterFromClients(testRegion, Clients{})

	assert.Equal(t, testRegion, a.Region())
	assert.Equal(t, DefaultCertificateUpdateInterval, a.certUpdateInterval)
	assert.Equal(t, DefaultHealthCheckPath, a.healthCheckPath)
	assert.Equal(t, IPAddressTypeIPV4, a.ipAddressType)

	a.WithIpAddressType("bogus")
	assert.Equal(t, IPAddressTypeIPV4, a.ipAddressType)
	a.WithIpAddressType(IPAddressTypeDualstack)
	assert.Equal(t, IPAddressTypeDualstack, a.ipAddressType)

	a.WithCertificateBlacklist("arn:1", "arn:2").WithHealthCheckPath("/kube-system/healthz")
	assert.True(t, a.certBlacklist["arn:2"])
	assert.Equal(t, "/kube-system/healthz", a.healthCheckPath)
}

func TestAdapterSupportIsShared(t *testing.T) {
	a, _ := newTestAdapter()

	assert.Same(t, a.Containers(), a.Containers())
	assert.Same(t, a.Snapshots(), a.Snapshots())
	assert.Same(t, a.LoadBalancers(), a.LoadBalancers())
}

func TestAccountNumber(t *testing.T) {
	for _, test := range []struct {
		name    string
		iam     *fake.IAMClient
		want    string
		wantErr bool
	}{
		{
			name: "from user ARN",
			iam:  &fake.IAMClient{User: &iamtypes.User{Arn: aws.String("arn:aws:iam::210987654321:user/adapter")}},
			want: "210987654321",
		},
		{
			name:    "no user",
			iam:     &fake.IAMClient{},
			wantErr: true,
		},
		{
			name:    "malformed ARN",
			iam:     &fake.IAMClient{User: &iamtypes.User{Arn: aws.String("adapter")}},
			wantErr: true,
		},
		{
			name:    "access denied",
			iam:     &fake.IAMClient{Err: fake.APIError("AccessDenied", "nope")},
			wantErr: true,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			a := NewAdapterFromClients(testRegion, Clients{IAM: test.iam})
			got, err := a.AccountNumber(context.Background())
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)

			test.iam.Err = fake.ErrDummy
			cached, err := a.AccountNumber(context.Background())
			require.NoError(t, err)
			assert.Equal(t, test.want, cached)
		})
	}
}

func TestAccountNumberConfigured(t *testing.T) {
	a, _ := newTestAdapter()
	got, err := a.AccountNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAccount, got)
}
