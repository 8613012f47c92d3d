package aws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/linki/instrumented_http"
	log "github.com/sirupsen/logrus"
	"gopkg.in/go-playground/validator.v9"

	"github.com/zalando-incubator/aws-cloud-adapter/certs"
)

type EC2API interface {
	DescribeSnapshots(context.Context, *ec2.DescribeSnapshotsInput, ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DescribeSnapshotAttribute(context.Context, *ec2.DescribeSnapshotAttributeInput, ...func(*ec2.Options)) (*ec2.DescribeSnapshotAttributeOutput, error)
	ModifySnapshotAttribute(context.Context, *ec2.ModifySnapshotAttributeInput, ...func(*ec2.Options)) (*ec2.ModifySnapshotAttributeOutput, error)
	CreateSnapshot(context.Context, *ec2.CreateSnapshotInput, ...func(*ec2.Options)) (*ec2.CreateSnapshotOutput, error)
	CopySnapshot(context.Context, *ec2.CopySnapshotInput, ...func(*ec2.Options)) (*ec2.CopySnapshotOutput, error)
	DeleteSnapshot(context.Context, *ec2.DeleteSnapshotInput, ...func(*ec2.Options)) (*ec2.DeleteSnapshotOutput, error)
	CreateTags(context.Context, *ec2.CreateTagsInput, ...func(*ec2.Options)) (*ec2.CreateTagsOutput, error)
	DeleteTags(context.Context, *ec2.DeleteTagsInput, ...func(*ec2.Options)) (*ec2.DeleteTagsOutput, error)
}

type ECSAPI interface {
	ListClusters(context.Context, *ecs.ListClustersInput, ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	DescribeClusters(context.Context, *ecs.DescribeClustersInput, ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error)
	CreateCluster(context.Context, *ecs.CreateClusterInput, ...func(*ecs.Options)) (*ecs.CreateClusterOutput, error)
	DeleteCluster(context.Context, *ecs.DeleteClusterInput, ...func(*ecs.Options)) (*ecs.DeleteClusterOutput, error)
}

type ELBV2API interface {
	DescribeLoadBalancers(context.Context, *elbv2.DescribeLoadBalancersInput, ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
	CreateLoadBalancer(context.Context, *elbv2.CreateLoadBalancerInput, ...func(*elbv2.Options)) (*elbv2.CreateLoadBalancerOutput, error)
	DeleteLoadBalancer(context.Context, *elbv2.DeleteLoadBalancerInput, ...func(*elbv2.Options)) (*elbv2.DeleteLoadBalancerOutput, error)
	DescribeListeners(context.Context, *elbv2.DescribeListenersInput, ...func(*elbv2.Options)) (*elbv2.DescribeListenersOutput, error)
	CreateListener(context.Context, *elbv2.CreateListenerInput, ...func(*elbv2.Options)) (*elbv2.CreateListenerOutput, error)
	DescribeTargetGroups(context.Context, *elbv2.DescribeTargetGroupsInput, ...func(*elbv2.Options)) (*elbv2.DescribeTargetGroupsOutput, error)
	CreateTargetGroup(context.Context, *elbv2.CreateTargetGroupInput, ...func(*elbv2.Options)) (*elbv2.CreateTargetGroupOutput, error)
	ModifyTargetGroup(context.Context, *elbv2.ModifyTargetGroupInput, ...func(*elbv2.Options)) (*elbv2.ModifyTargetGroupOutput, error)
	DeleteTargetGroup(context.Context, *elbv2.DeleteTargetGroupInput, ...func(*elbv2.Options)) (*elbv2.DeleteTargetGroupOutput, error)
	RegisterTargets(context.Context, *elbv2.RegisterTargetsInput, ...func(*elbv2.Options)) (*elbv2.RegisterTargetsOutput, error)
	DeregisterTargets(context.Context, *elbv2.DeregisterTargetsInput, ...func(*elbv2.Options)) (*elbv2.DeregisterTargetsOutput, error)
	DescribeTargetHealth(context.Context, *elbv2.DescribeTargetHealthInput, ...func(*elbv2.Options)) (*elbv2.DescribeTargetHealthOutput, error)
	DescribeTags(context.Context, *elbv2.DescribeTagsInput, ...func(*elbv2.Options)) (*elbv2.DescribeTagsOutput, error)
}

type IAMAPI interface {
	GetUser(context.Context, *iam.GetUserInput, ...func(*iam.Options)) (*iam.GetUserOutput, error)
	ListServerCertificates(context.Context, *iam.ListServerCertificatesInput, ...func(*iam.Options)) (*iam.ListServerCertificatesOutput, error)
	GetServerCertificate(context.Context, *iam.GetServerCertificateInput, ...func(*iam.Options)) (*iam.GetServerCertificateOutput, error)
}

type ACMAPI interface {
	ListCertificates(context.Context, *acm.ListCertificatesInput, ...func(*acm.Options)) (*acm.ListCertificatesOutput, error)
	GetCertificate(context.Context, *acm.GetCertificateInput, ...func(*acm.Options)) (*acm.GetCertificateOutput, error)
}

type AutoScalingAPI interface {
	AttachLoadBalancerTargetGroups(context.Context, *autoscaling.AttachLoadBalancerTargetGroupsInput, ...func(*autoscaling.Options)) (*autoscaling.AttachLoadBalancerTargetGroupsOutput, error)
	DetachLoadBalancerTargetGroups(context.Context, *autoscaling.DetachLoadBalancerTargetGroupsInput, ...func(*autoscaling.Options)) (*autoscaling.DetachLoadBalancerTargetGroupsOutput, error)
}

// Clients groups the service clients used by an Adapter.
type Clients struct {
	EC2         EC2API
	ECS         ECSAPI
	ELBV2       ELBV2API
	IAM         IAMAPI
	ACM         ACMAPI
	AutoScaling AutoScalingAPI
}

// An Adapter maps the cloud resource model onto Amazon Web Services for a
// single account and region.
type Adapter struct {
	clients  Clients
	region   string
	validate *validator.Validate

	accountMu     sync.Mutex
	accountNumber string

	certUpdateInterval time.Duration
	certBlacklist      map[string]bool
	ipAddressType      string
	healthCheckPath    string

	containersOnce    sync.Once
	containers        *ContainerSupport
	snapshotsOnce     sync.Once
	snapshots         *SnapshotSupport
	loadBalancersOnce sync.Once
	loadBalancers     *LoadBalancerSupport
}

const (
	DefaultCertificateUpdateInterval = 30 * time.Minute
	DefaultHealthCheckPath           = "/"
	// DefaultIpAddressType sets IpAddressType to "ipv4", it is either ipv4 or dualstack
	DefaultIpAddressType = IPAddressTypeIPV4

	nameTag                     = "Name"
	LoadBalancerTypeApplication = "application"
	LoadBalancerTypeNetwork     = "network"
	IPAddressTypeIPV4           = "ipv4"
	IPAddressTypeDualstack      = "dualstack"
)

var (
	// ErrMissingRegion is used to signal that no region was configured and
	// none could be discovered from the instance metadata.
	ErrMissingRegion = errors.New("unable to determine AWS region")
	// ErrMissingAccountNumber is used to signal that the account number could
	// not be derived from the caller identity.
	ErrMissingAccountNumber = errors.New("unable to determine AWS account number")
)

// Config holds the settings NewAdapter uses to build the AWS configuration.
type Config struct {
	Region  string
	Profile string
	// Endpoint overrides the service endpoint of every client, for example
	// to talk to a local emulator.
	Endpoint string
	Timeout  time.Duration
}

// NewAdapter returns a new Adapter built from the default AWS configuration
// chain. The HTTP client is instrumented and the region falls back to the EC2
// instance metadata when it is not configured.
func NewAdapter(ctx context.Context, c Config) (*Adapter, error) {
	optFns := []func(*config.LoadOptions) error{
		config.WithHTTPClient(instrumented_http.NewClient(&http.Client{Timeout: c.Timeout}, nil)),
	}
	if c.Region != "" {
		optFns = append(optFns, config.WithRegion(c.Region))
	}
	if c.Profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(c.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if c.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(c.Endpoint)
	}

	if cfg.Region == "" {
		region, err := instanceRegion(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMissingRegion, err)
		}
		log.Debugf("using region %s from instance metadata", region)
		cfg.Region = region
	}

	return NewAdapterFromConfig(cfg), nil
}

// NewAdapterFromConfig returns an Adapter with service clients created from
// cfg.
func NewAdapterFromConfig(cfg aws.Config) *Adapter {
	return NewAdapterFromClients(cfg.Region, Clients{
		EC2:         ec2.NewFromConfig(cfg),
		ECS:         ecs.NewFromConfig(cfg),
		ELBV2:       elbv2.NewFromConfig(cfg),
		IAM:         iam.NewFromConfig(cfg),
		ACM:         acm.NewFromConfig(cfg),
		AutoScaling: autoscaling.NewFromConfig(cfg),
	})
}

// NewAdapterFromClients returns an Adapter using the given clients.
func NewAdapterFromClients(region string, clients Clients) *Adapter {
	return &Adapter{
		clients:            clients,
		region:             region,
		validate:           validator.New(),
		certUpdateInterval: DefaultCertificateUpdateInterval,
		certBlacklist:      make(map[string]bool),
		ipAddressType:      DefaultIpAddressType,
		healthCheckPath:    DefaultHealthCheckPath,
	}
}

// WithAccountNumber returns the receiver adapter after setting the account
// number. Without it the number is looked up from the IAM caller identity on
// first use.
func (a *Adapter) WithAccountNumber(account string) *Adapter {
	a.accountMu.Lock()
	a.accountNumber = account
	a.accountMu.Unlock()
	return a
}

// WithCertificateUpdateInterval returns the receiver adapter after changing
// the time certificates are cached for.
func (a *Adapter) WithCertificateUpdateInterval(interval time.Duration) *Adapter {
	a.certUpdateInterval = interval
	return a
}

// WithCertificateBlacklist returns the receiver adapter after setting the
// certificate IDs that are never returned from the certificate store.
func (a *Adapter) WithCertificateBlacklist(ids ...string) *Adapter {
	for _, id := range ids {
		a.certBlacklist[id] = true
	}
	return a
}

// WithIpAddressType returns the receiver with ipv4 or dualstack configuration, defaults to ipv4.
func (a *Adapter) WithIpAddressType(ipAddressType string) *Adapter {
	if ipAddressType == IPAddressTypeDualstack {
		a.ipAddressType = ipAddressType
	}
	return a
}

// WithHealthCheckPath returns the receiver adapter after changing the health
// check path used for new HTTP target groups.
func (a *Adapter) WithHealthCheckPath(path string) *Adapter {
	a.healthCheckPath = path
	return a
}

// Region returns the region all requests are sent to.
func (a *Adapter) Region() string {
	return a.region
}

// AccountNumber returns the configured account number or derives it from the
// ARN of the calling IAM user.
func (a *Adapter) AccountNumber(ctx context.Context) (string, error) {
	a.accountMu.Lock()
	defer a.accountMu.Unlock()
	if a.accountNumber != "" {
		return a.accountNumber, nil
	}

	resp, err := a.clients.IAM.GetUser(ctx, &iam.GetUserInput{})
	if err != nil {
		return "", wrapError("Adapter.accountNumber", err)
	}
	if resp.User == nil || resp.User.Arn == nil {
		return "", ErrMissingAccountNumber
	}
	parsed, err := arn.Parse(aws.ToString(resp.User.Arn))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingAccountNumber, err)
	}
	a.accountNumber = parsed.AccountID
	return a.accountNumber, nil
}

// Containers returns the ECS backed container support.
func (a *Adapter) Containers() *ContainerSupport {
	a.containersOnce.Do(func() {
		a.containers = &ContainerSupport{adapter: a, api: a.clients.ECS}
	})
	return a.containers
}

// Snapshots returns the EBS backed snapshot support.
func (a *Adapter) Snapshots() *SnapshotSupport {
	a.snapshotsOnce.Do(func() {
		a.snapshots = &SnapshotSupport{adapter: a, api: a.clients.EC2}
	})
	return a.snapshots
}

// LoadBalancers returns the ELBv2 backed load balancer support. Its SSL
// certificate store combines IAM server certificates and ACM certificates.
func (a *Adapter) LoadBalancers() *LoadBalancerSupport {
	a.loadBalancersOnce.Do(func() {
		a.loadBalancers = &LoadBalancerSupport{
			adapter: a,
			api:     a.clients.ELBV2,
			asg:     a.clients.AutoScaling,
			certs: certs.NewCachingProvider(
				a.certUpdateInterval,
				a.certBlacklist,
				a.NewIAMCertificateProvider(),
				a.NewACMCertificateProvider(),
			),
		}
	})
	return a.loadBalancers
}

func (a *Adapter) NewACMCertificateProvider() certs.CertificatesProvider {
	return newACMCertProvider(a.clients.ACM)
}

func (a *Adapter) NewIAMCertificateProvider() certs.CertificatesProvider {
	return newIAMCertProvider(a.clients.IAM)
}
