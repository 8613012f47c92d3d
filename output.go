package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

type printer struct {
	w      io.Writer
	format string
}

func (p *printer) print(v interface{}) error {
	var (
		buf []byte
		err error
	)
	switch p.format {
	case outputYAML:
		buf, err = yaml.Marshal(v)
	default:
		buf, err = json.MarshalIndent(v, "", "  ")
		buf = append(buf, '\n')
	}
	if err != nil {
		return fmt.Errorf("unable to encode output: %w", err)
	}
	_, err = p.w.Write(buf)
	return err
}

// result wraps scalar results so every command prints an object.
type result struct {
	ID         string `json:"id,omitempty"`
	Public     *bool  `json:"public,omitempty"`
	Subscribed *bool  `json:"subscribed,omitempty"`
}

type capabilities struct {
	Containers    containerCapabilities    `json:"containers"`
	Snapshots     snapshotCapabilities     `json:"snapshots"`
	LoadBalancers loadBalancerCapabilities `json:"loadBalancers"`
}

type containerCapabilities struct {
	Cluster   string `json:"cluster"`
	Scheduler string `json:"scheduler"`
	Task      string `json:"task"`
}

type snapshotCapabilities struct {
	Snapshot      string `json:"snapshot"`
	Copying       bool   `json:"copying"`
	Sharing       bool   `json:"sharing"`
	PublicSharing bool   `json:"publicSharing"`
	MaxNameLength int    `json:"maxNameLength"`
}

type loadBalancerCapabilities struct {
	LoadBalancer     string                 `json:"loadBalancer"`
	AddressType      string                 `json:"addressType"`
	MaxPublicPorts   int                    `json:"maxPublicPorts"`
	Protocols        []cloud.LbProtocol     `json:"protocols"`
	Algorithms       []cloud.LbAlgorithm    `json:"algorithms"`
	IPVersions       []cloud.IPVersion      `json:"ipVersions"`
	EndpointTypes    []cloud.LbEndpointType `json:"endpointTypes"`
	AddingEndpoints  bool                   `json:"addingEndpoints"`
	CertificateStore bool                   `json:"certificateStore"`
	MaxNameLength    int                    `json:"maxNameLength"`
}

func newCapabilities(c cloud.ContainerCapabilities, s cloud.SnapshotCapabilities, l cloud.LoadBalancerCapabilities) capabilities {
	return capabilities{
		Containers: containerCapabilities{
			Cluster:   c.ProviderTermForCluster(),
			Scheduler: c.ProviderTermForScheduler(),
			Task:      c.ProviderTermForTask(),
		},
		Snapshots: snapshotCapabilities{
			Snapshot:      s.ProviderTermForSnapshot(),
			Copying:       s.SupportsSnapshotCopying(),
			Sharing:       s.SupportsSnapshotSharing(),
			PublicSharing: s.SupportsSnapshotSharingWithPublic(),
			MaxNameLength: s.SnapshotNamingConstraints().MaxLength,
		},
		LoadBalancers: loadBalancerCapabilities{
			LoadBalancer:     l.ProviderTermForLoadBalancer(),
			AddressType:      string(l.AddressType()),
			MaxPublicPorts:   l.MaxPublicPorts(),
			Protocols:        l.SupportedProtocols(),
			Algorithms:       l.SupportedAlgorithms(),
			IPVersions:       l.SupportedIPVersions(),
			EndpointTypes:    l.SupportedEndpointTypes(),
			AddingEndpoints:  l.SupportsAddingEndpoints(),
			CertificateStore: l.SupportsSSLCertificateStore(),
			MaxNameLength:    l.LoadBalancerNamingConstraints().MaxLength,
		},
	}
}
