package fake

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// IAMClient serves server certificates from Certs, keyed by name.
type IAMClient struct {
	User  *types.User
	Certs map[string]*types.ServerCertificate
	Err   error
}

func (m *IAMClient) GetUser(context.Context, *iam.GetUserInput, ...func(*iam.Options)) (*iam.GetUserOutput, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &iam.GetUserOutput{User: m.User}, nil
}

func (m *IAMClient) ListServerCertificates(context.Context, *iam.ListServerCertificatesInput, ...func(*iam.Options)) (*iam.ListServerCertificatesOutput, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := &iam.ListServerCertificatesOutput{}
	for _, c := range m.Certs {
		out.ServerCertificateMetadataList = append(out.ServerCertificateMetadataList, *c.ServerCertificateMetadata)
	}
	return out, nil
}

func (m *IAMClient) GetServerCertificate(_ context.Context, in *iam.GetServerCertificateInput, _ ...func(*iam.Options)) (*iam.GetServerCertificateOutput, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	name := aws.ToString(in.ServerCertificateName)
	c, ok := m.Certs[name]
	if !ok {
		return nil, fmt.Errorf("cert not found: %s", name)
	}
	return &iam.GetServerCertificateOutput{ServerCertificate: c}, nil
}

func NewIAMClient(certs ...*types.ServerCertificate) *IAMClient {
	m := &IAMClient{Certs: make(map[string]*types.ServerCertificate)}
	for _, c := range certs {
		m.Certs[aws.ToString(c.ServerCertificateMetadata.ServerCertificateName)] = c
	}
	return m
}

// IAMCertificate returns a server certificate named name with the PEM body.
func IAMCertificate(name, body string) *types.ServerCertificate {
	return &types.ServerCertificate{
		CertificateBody: aws.String(body),
		ServerCertificateMetadata: &types.ServerCertificateMetadata{
			Arn:                   aws.String("arn:aws:iam::123456789012:server-certificate/" + name),
			ServerCertificateName: aws.String(name),
			ServerCertificateId:   aws.String("ID" + name),
			Path:                  aws.String("/"),
		},
	}
}
