// Package aws maps the provider neutral resource model of package cloud onto
// Amazon Web Services. The exported Adapter gives access to ECS clusters, EBS
// snapshots and ELBv2 load balancers including their IAM and ACM certificate
// stores and Auto Scaling Group attachments.
package aws
