package aws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

const webSpec = `
name: web
description: public web
subnets: [subnet-a, subnet-b]
securityGroups: [sg-1]
ipVersions: [ipv4, ipv6]
listeners:
- protocol: http
  publicPort: 80
  privatePort: 8080
- protocol: HTTPS
  publicPort: 443
  privatePort: 8443
  sslCertificate: arn:cert
endpoints: [i-1]
healthCheck:
  protocol: HTTP
  path: /healthz
  interval: 15s
  timeout: 5s
  healthyCount: 2
  unhealthyCount: 3
`

func TestLoadBalancerSpec(t *testing.T) {
	spec, err := NewLoadBalancerSpecFromYAML([]byte(webSpec))
	require.NoError(t, err)

	opts, err := spec.CreateOptions()
	require.NoError(t, err)
	assert.Equal(t, &cloud.LoadBalancerCreateOptions{
		Name:           "web",
		Description:    "public web",
		IPVersions:     []cloud.IPVersion{cloud.IPVersion4, cloud.IPVersion6},
		SubnetIDs:      []string{"subnet-a", "subnet-b"},
		SecurityGroups: []string{"sg-1"},
		Listeners: []cloud.LbListener{
			{Algorithm: cloud.LbAlgorithmRoundRobin, Persistence: cloud.LbPersistenceNone, Protocol: cloud.LbProtocolHTTP, PublicPort: 80, PrivatePort: 8080},
			{Algorithm: cloud.LbAlgorithmRoundRobin, Persistence: cloud.LbPersistenceNone, Protocol: cloud.LbProtocolHTTPS, PublicPort: 443, PrivatePort: 8443, SSLCertificateID: "arn:cert"},
		},
		Endpoints: []string{"i-1"},
		HealthCheck: &cloud.HealthCheckOptions{
			Protocol:       cloud.LbProtocolHTTP,
			Path:           "/healthz",
			Interval:       15 * time.Second,
			Timeout:        5 * time.Second,
			HealthyCount:   2,
			UnhealthyCount: 3,
		},
		Tags: map[string]string{specHashTag: spec.Hash()},
	}, opts)
}

func TestLoadBalancerSpecHash(t *testing.T) {
	a, err := NewLoadBalancerSpecFromYAML([]byte(webSpec))
	require.NoError(t, err)
	b, err := NewLoadBalancerSpecFromYAML([]byte(webSpec))
	require.NoError(t, err)

	assert.Len(t, a.Hash(), 64)
	assert.Equal(t, a.Hash(), b.Hash())
	b.Internal = true
	assert.NotEqual(t, a.Hash(), b.Hash())

	opts, err := b.CreateOptions()
	require.NoError(t, err)
	assert.Equal(t, b.Hash(), opts.Tags[specHashTag])
}

func TestLoadBalancerSpecInvalid(t *testing.T) {
	for _, doc := range []string{
		"name: web\nlisteners:\n- protocol: udp\n  publicPort: 53\n  privatePort: 53\n",
		"name: web\nipVersions: [ipv5]\n",
		"name: web\nhealthCheck:\n  interval: often\n",
		"name: web\nhealthCheck:\n  protocol: icmp\n",
	} {
		spec, err := NewLoadBalancerSpecFromYAML([]byte(doc))
		require.NoError(t, err, doc)
		_, err = spec.CreateOptions()
		assert.ErrorIs(t, err, cloud.ErrInvalidArgument, doc)
	}

	_, err := NewLoadBalancerSpecFromYAML([]byte("listeners: {"))
	assert.Error(t, err)
}

func TestHealthCheckSpec(t *testing.T) {
	spec, err := NewHealthCheckSpecFromYAML([]byte("protocol: tcp\nport: 9000\ninterval: 30s\n"))
	require.NoError(t, err)

	hc, err := spec.Options()
	require.NoError(t, err)
	assert.Equal(t, &cloud.HealthCheckOptions{
		Protocol: cloud.LbProtocolRawTCP,
		Port:     9000,
		Interval: 30 * time.Second,
	}, hc)
}
