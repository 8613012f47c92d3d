package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

const (
	resourceCluster      = "cluster"
	resourceSnapshot     = "snapshot"
	resourceLoadBalancer = "load_balancer"
	resourceCertificate  = "certificate"
)

func (c *cli) clusterCommands(cmd *kingpin.CmdClause) {
	c.handle(cmd.Command("list", "List all clusters."), c.listClusters)

	get := c.handle(cmd.Command("get", "Show a cluster."), c.getCluster)
	get.Arg("id", "Cluster name or ARN.").Required().StringVar(&c.args.id)

	create := c.handle(cmd.Command("create", "Create a cluster."), c.createCluster)
	create.Arg("name", "Cluster name.").Required().StringVar(&c.args.name)

	remove := c.handle(cmd.Command("remove", "Delete a cluster."), c.removeCluster)
	remove.Arg("id", "Cluster name or ARN.").Required().StringVar(&c.args.id)

	c.handle(cmd.Command("subscribed", "Check whether the account can use ECS."), c.isSubscribed)
}

func (c *cli) listClusters(ctx context.Context, a *aws.Adapter) error {
	clusters, err := a.Containers().ListClusters(ctx)
	if err != nil {
		return err
	}
	c.metrics.listed(resourceCluster, len(clusters))
	return c.print(clusters)
}

func (c *cli) getCluster(ctx context.Context, a *aws.Adapter) error {
	cluster, err := a.Containers().GetCluster(ctx, c.args.id)
	if err != nil {
		return err
	}
	if cluster == nil {
		return fmt.Errorf("cluster %s %w", c.args.id, errNotFound)
	}
	return c.print(cluster)
}

func (c *cli) createCluster(ctx context.Context, a *aws.Adapter) error {
	id, err := a.Containers().CreateCluster(ctx, c.args.name)
	if err != nil {
		return err
	}
	c.metrics.changesTotal.created(resourceCluster)
	return c.print(result{ID: id})
}

func (c *cli) removeCluster(ctx context.Context, a *aws.Adapter) error {
	if err := a.Containers().RemoveCluster(ctx, c.args.id); err != nil {
		return err
	}
	c.metrics.changesTotal.deleted(resourceCluster)
	return nil
}

func (c *cli) isSubscribed(ctx context.Context, a *aws.Adapter) error {
	subscribed, err := a.Containers().IsSubscribed(ctx)
	if err != nil {
		return err
	}
	return c.print(result{Subscribed: &subscribed})
}

func (c *cli) snapshotCommands(cmd *kingpin.CmdClause) {
	list := c.handle(cmd.Command("list", "List snapshots."), c.listSnapshots)
	list.Flag("account", "Owner account. Defaults to the caller's account.").StringVar(&c.args.account)
	list.Flag("regex", "Regular expression matched against the snapshot name.").StringVar(&c.args.regex)
	list.Flag("tag", "Tag the snapshot must carry, as key=value. Can be repeated.").StringMapVar(&c.args.tags)
	list.Flag("any", "Match snapshots satisfying any criterion instead of all.").BoolVar(&c.args.matchAny)

	c.handle(cmd.Command("status", "List the state of all own snapshots."), c.listSnapshotStatus)

	get := c.handle(cmd.Command("get", "Show a snapshot."), c.getSnapshot)
	get.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	create := c.withWaitFlags(c.handle(cmd.Command("create", "Snapshot a volume."), c.createSnapshot), true)
	create.Flag("volume", "Volume to snapshot.").Required().StringVar(&c.args.volumeID)
	create.Flag("name", "Snapshot name.").Required().StringVar(&c.args.name)
	create.Flag("description", "Snapshot description.").StringVar(&c.args.description)
	create.Flag("tag", "Tag to set, as key=value. Can be repeated.").StringMapVar(&c.args.tags)

	cp := c.withWaitFlags(c.handle(cmd.Command("copy", "Copy a snapshot from another region."), c.copySnapshot), true)
	cp.Flag("source-region", "Region of the source snapshot.").Required().StringVar(&c.args.sourceRegion)
	cp.Flag("source-id", "ID of the source snapshot.").Required().StringVar(&c.args.sourceID)
	cp.Flag("name", "Snapshot name.").Required().StringVar(&c.args.name)
	cp.Flag("description", "Snapshot description.").StringVar(&c.args.description)
	cp.Flag("tag", "Tag to set, as key=value. Can be repeated.").StringMapVar(&c.args.tags)

	remove := c.handle(cmd.Command("remove", "Delete a snapshot."), c.removeSnapshot)
	remove.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	shares := c.handle(cmd.Command("shares", "List the accounts a snapshot is shared with."), c.listShares)
	shares.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	share := c.handle(cmd.Command("share", "Share a snapshot with an account."), c.shareSnapshot)
	share.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)
	share.Arg("account", "Account number.").Required().StringVar(&c.args.account)

	unshare := c.handle(cmd.Command("unshare", "Stop sharing a snapshot with an account."), c.unshareSnapshot)
	unshare.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)
	unshare.Arg("account", "Account number.").Required().StringVar(&c.args.account)

	unshareAll := c.handle(cmd.Command("unshare-all", "Remove every share of a snapshot, including the public one."), c.unshareAll)
	unshareAll.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	public := c.handle(cmd.Command("public", "Check whether a snapshot is public."), c.isPublic)
	public.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	publish := c.handle(cmd.Command("publish", "Make a snapshot public."), c.publishSnapshot)
	publish.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	unpublish := c.handle(cmd.Command("unpublish", "Make a snapshot private."), c.unpublishSnapshot)
	unpublish.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)

	tag := c.handle(cmd.Command("tag", "Set snapshot tags."), c.tagSnapshot)
	tag.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)
	tag.Arg("tags", "Tags as key=value.").Required().StringMapVar(&c.args.tags)

	untag := c.handle(cmd.Command("untag", "Remove snapshot tags."), c.untagSnapshot)
	untag.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)
	untag.Arg("keys", "Tag keys.").Required().StringsVar(&c.args.keys)

	wait := c.withWaitFlags(c.handle(cmd.Command("wait", "Wait until a snapshot is available."), c.waitSnapshot), false)
	wait.Arg("id", "Snapshot ID.").Required().StringVar(&c.args.id)
}

func (c *cli) listSnapshots(ctx context.Context, a *aws.Adapter) error {
	filter := cloud.NewSnapshotFilterOptions().
		WithAccountNumber(c.args.account).
		WithRegex(c.args.regex)
	if len(c.args.tags) > 0 {
		filter.WithTags(c.args.tags)
	}
	if c.args.matchAny {
		filter.MatchingAny()
	}

	snapshots, err := a.Snapshots().ListSnapshots(ctx, filter)
	if err != nil {
		return err
	}
	c.metrics.listed(resourceSnapshot, len(snapshots))
	return c.print(snapshots)
}

func (c *cli) listSnapshotStatus(ctx context.Context, a *aws.Adapter) error {
	status, err := a.Snapshots().ListSnapshotStatus(ctx)
	if err != nil {
		return err
	}
	return c.print(status)
}

func (c *cli) getSnapshot(ctx context.Context, a *aws.Adapter) error {
	s, err := a.Snapshots().GetSnapshot(ctx, c.args.id)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("snapshot %s %w", c.args.id, errNotFound)
	}
	return c.print(s)
}

func (c *cli) createSnapshot(ctx context.Context, a *aws.Adapter) error {
	opts := cloud.NewSnapshotCreateOptions(c.args.volumeID, c.args.name, c.args.description)
	return c.newSnapshot(ctx, a, opts)
}

func (c *cli) copySnapshot(ctx context.Context, a *aws.Adapter) error {
	opts := cloud.NewSnapshotCopyOptions(c.args.sourceRegion, c.args.sourceID, c.args.name, c.args.description)
	return c.newSnapshot(ctx, a, opts)
}

func (c *cli) newSnapshot(ctx context.Context, a *aws.Adapter, opts *cloud.SnapshotCreateOptions) error {
	if len(c.args.tags) > 0 {
		opts.WithTags(c.args.tags)
	}
	id, err := a.Snapshots().CreateSnapshot(ctx, opts)
	if err != nil {
		return err
	}
	c.metrics.changesTotal.created(resourceSnapshot)

	if c.args.wait {
		ctx, cancel := c.waitContext(ctx)
		defer cancel()
		if err := c.waiter().wait(ctx, "snapshot "+id, snapshotAvailable(a.Snapshots(), id)); err != nil {
			return err
		}
	}
	return c.print(result{ID: id})
}

func (c *cli) removeSnapshot(ctx context.Context, a *aws.Adapter) error {
	if err := a.Snapshots().Remove(ctx, c.args.id); err != nil {
		return err
	}
	c.metrics.changesTotal.deleted(resourceSnapshot)
	return nil
}

func (c *cli) listShares(ctx context.Context, a *aws.Adapter) error {
	shares, err := a.Snapshots().ListShares(ctx, c.args.id)
	if err != nil {
		return err
	}
	return c.print(shares)
}

func (c *cli) shareSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().AddSnapshotShare(ctx, c.args.id, c.args.account))
}

func (c *cli) unshareSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().RemoveSnapshotShare(ctx, c.args.id, c.args.account))
}

func (c *cli) unshareAll(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().RemoveAllSnapshotShares(ctx, c.args.id))
}

func (c *cli) isPublic(ctx context.Context, a *aws.Adapter) error {
	public, err := a.Snapshots().IsPublic(ctx, c.args.id)
	if err != nil {
		return err
	}
	return c.print(result{ID: c.args.id, Public: &public})
}

func (c *cli) publishSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().AddPublicShare(ctx, c.args.id))
}

func (c *cli) unpublishSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().RemovePublicShare(ctx, c.args.id))
}

func (c *cli) tagSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().UpdateTags(ctx, c.args.id, c.args.tags))
}

func (c *cli) untagSnapshot(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceSnapshot, a.Snapshots().RemoveTags(ctx, c.args.id, c.args.keys...))
}

func (c *cli) waitSnapshot(ctx context.Context, a *aws.Adapter) error {
	ctx, cancel := c.waitContext(ctx)
	defer cancel()
	return c.waiter().wait(ctx, "snapshot "+c.args.id, snapshotAvailable(a.Snapshots(), c.args.id))
}

// updated counts a successful update of resourceType.
func (c *cli) updated(resourceType string, err error) error {
	if err != nil {
		return err
	}
	c.metrics.changesTotal.updated(resourceType)
	return nil
}

func (c *cli) loadBalancerCommands(cmd *kingpin.CmdClause) {
	c.handle(cmd.Command("list", "List all load balancers."), c.listLoadBalancers)
	c.handle(cmd.Command("status", "List the state of all load balancers."), c.listLoadBalancerStatus)

	get := c.handle(cmd.Command("get", "Show a load balancer."), c.getLoadBalancer)
	get.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)

	create := c.withWaitFlags(c.handle(cmd.Command("create", "Create a load balancer from a YAML document."), c.createLoadBalancer), true)
	create.Flag("file", "Load balancer document.").Short('f').Required().ExistingFileVar(&c.args.file)

	remove := c.handle(cmd.Command("remove", "Delete a load balancer and its target groups."), c.removeLoadBalancer)
	remove.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)

	add := c.handle(cmd.Command("add-servers", "Register instances with a load balancer."), c.addServers)
	add.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
	add.Arg("instances", "Instance IDs.").Required().StringsVar(&c.args.serverIDs)

	rm := c.handle(cmd.Command("remove-servers", "Deregister instances from a load balancer."), c.removeServers)
	rm.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
	rm.Arg("instances", "Instance IDs.").Required().StringsVar(&c.args.serverIDs)

	endpoints := c.handle(cmd.Command("endpoints", "List the endpoints of a load balancer."), c.listEndpoints)
	endpoints.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)

	health := c.handle(cmd.Command("health-check", "Show the health check of a load balancer."), c.getHealthCheck)
	health.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)

	modify := c.handle(cmd.Command("modify-health-check", "Change the health check from a YAML document."), c.modifyHealthCheck)
	modify.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
	modify.Flag("file", "Health check document.").Short('f').Required().ExistingFileVar(&c.args.file)

	attach := c.handle(cmd.Command("attach-asg", "Attach an auto scaling group to the target groups of a load balancer."), c.attachAutoScalingGroup)
	attach.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
	attach.Arg("asg", "Auto scaling group name.").Required().StringVar(&c.args.asg)

	detach := c.handle(cmd.Command("detach-asg", "Detach an auto scaling group from the target groups of a load balancer."), c.detachAutoScalingGroup)
	detach.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
	detach.Arg("asg", "Auto scaling group name.").Required().StringVar(&c.args.asg)

	wait := c.withWaitFlags(c.handle(cmd.Command("wait", "Wait until a load balancer is active."), c.waitLoadBalancer), false)
	wait.Arg("id", "Load balancer name or ARN.").Required().StringVar(&c.args.id)
}

func (c *cli) listLoadBalancers(ctx context.Context, a *aws.Adapter) error {
	lbs, err := a.LoadBalancers().ListLoadBalancers(ctx)
	if err != nil {
		return err
	}
	c.metrics.listed(resourceLoadBalancer, len(lbs))
	return c.print(lbs)
}

func (c *cli) listLoadBalancerStatus(ctx context.Context, a *aws.Adapter) error {
	status, err := a.LoadBalancers().ListLoadBalancerStatus(ctx)
	if err != nil {
		return err
	}
	return c.print(status)
}

func (c *cli) getLoadBalancer(ctx context.Context, a *aws.Adapter) error {
	lb, err := a.LoadBalancers().GetLoadBalancer(ctx, c.args.id)
	if err != nil {
		return err
	}
	if lb == nil {
		return fmt.Errorf("load balancer %s %w", c.args.id, errNotFound)
	}
	return c.print(lb)
}

func (c *cli) createLoadBalancer(ctx context.Context, a *aws.Adapter) error {
	b, err := os.ReadFile(c.args.file)
	if err != nil {
		return err
	}
	spec, err := aws.NewLoadBalancerSpecFromYAML(b)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", c.args.file, err)
	}
	opts, err := spec.CreateOptions()
	if err != nil {
		return err
	}

	id, err := a.LoadBalancers().CreateLoadBalancer(ctx, opts)
	if err != nil {
		return err
	}
	c.metrics.changesTotal.created(resourceLoadBalancer)

	if c.args.wait {
		ctx, cancel := c.waitContext(ctx)
		defer cancel()
		if err := c.waiter().wait(ctx, "load balancer "+id, loadBalancerActive(a.LoadBalancers(), id)); err != nil {
			return err
		}
	}
	return c.print(result{ID: id})
}

func (c *cli) removeLoadBalancer(ctx context.Context, a *aws.Adapter) error {
	if err := a.LoadBalancers().RemoveLoadBalancer(ctx, c.args.id); err != nil {
		return err
	}
	c.metrics.changesTotal.deleted(resourceLoadBalancer)
	return nil
}

func (c *cli) addServers(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceLoadBalancer, a.LoadBalancers().AddServers(ctx, c.args.id, c.args.serverIDs...))
}

func (c *cli) removeServers(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceLoadBalancer, a.LoadBalancers().RemoveServers(ctx, c.args.id, c.args.serverIDs...))
}

func (c *cli) listEndpoints(ctx context.Context, a *aws.Adapter) error {
	endpoints, err := a.LoadBalancers().ListEndpoints(ctx, c.args.id)
	if err != nil {
		return err
	}
	return c.print(endpoints)
}

func (c *cli) getHealthCheck(ctx context.Context, a *aws.Adapter) error {
	hc, err := a.LoadBalancers().GetHealthCheck(ctx, c.args.id)
	if err != nil {
		return err
	}
	if hc == nil {
		return fmt.Errorf("health check of %s %w", c.args.id, errNotFound)
	}
	return c.print(hc)
}

func (c *cli) modifyHealthCheck(ctx context.Context, a *aws.Adapter) error {
	b, err := os.ReadFile(c.args.file)
	if err != nil {
		return err
	}
	spec, err := aws.NewHealthCheckSpecFromYAML(b)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", c.args.file, err)
	}
	hc, err := spec.Options()
	if err != nil {
		return err
	}
	return c.updated(resourceLoadBalancer, a.LoadBalancers().ModifyHealthCheck(ctx, c.args.id, hc))
}

func (c *cli) attachAutoScalingGroup(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceLoadBalancer, a.LoadBalancers().AttachAutoScalingGroup(ctx, c.args.id, c.args.asg))
}

func (c *cli) detachAutoScalingGroup(ctx context.Context, a *aws.Adapter) error {
	return c.updated(resourceLoadBalancer, a.LoadBalancers().DetachAutoScalingGroup(ctx, c.args.id, c.args.asg))
}

func (c *cli) waitLoadBalancer(ctx context.Context, a *aws.Adapter) error {
	ctx, cancel := c.waitContext(ctx)
	defer cancel()
	return c.waiter().wait(ctx, "load balancer "+c.args.id, loadBalancerActive(a.LoadBalancers(), c.args.id))
}

func (c *cli) certificateCommands(cmd *kingpin.CmdClause) {
	c.handle(cmd.Command("list", "List all certificates."), c.listCertificates)

	get := c.handle(cmd.Command("get", "Show a certificate by name or ARN."), c.getCertificate)
	get.Arg("id", "Certificate name or ARN.").Required().StringVar(&c.args.id)

	find := c.handle(cmd.Command("find", "Find the best certificate for a hostname."), c.findCertificate)
	find.Arg("hostname", "Hostname.").Required().StringVar(&c.args.hostname)
}

func (c *cli) listCertificates(ctx context.Context, a *aws.Adapter) error {
	certificates, err := a.LoadBalancers().ListSSLCertificates(ctx)
	if err != nil {
		return err
	}
	c.metrics.listed(resourceCertificate, len(certificates))
	return c.print(certificates)
}

func (c *cli) getCertificate(ctx context.Context, a *aws.Adapter) error {
	cert, err := a.LoadBalancers().GetSSLCertificate(ctx, c.args.id)
	if err != nil {
		return err
	}
	if cert == nil {
		return fmt.Errorf("certificate %s %w", c.args.id, errNotFound)
	}
	return c.print(cert)
}

func (c *cli) findCertificate(ctx context.Context, a *aws.Adapter) error {
	cert, err := a.LoadBalancers().FindSSLCertificate(ctx, c.args.hostname)
	if err != nil {
		return err
	}
	if cert == nil {
		return fmt.Errorf("certificate for %s %w", c.args.hostname, errNotFound)
	}
	return c.print(cert)
}

func (c *cli) printCapabilities(_ context.Context, a *aws.Adapter) error {
	return c.print(newCapabilities(
		a.Containers().Capabilities(),
		a.Snapshots().Capabilities(),
		a.LoadBalancers().Capabilities(),
	))
}
