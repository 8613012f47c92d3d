package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

var (
	errSnapshotGone     = errors.New("snapshot does not exist")
	errLoadBalancerGone = errors.New("load balancer does not exist")
	errLoadBalancer     = errors.New("load balancer failed")
	errInvalidInterval  = errors.New("poll interval must be positive")
)

type checkFunc func(ctx context.Context) (done bool, err error)

type waiter struct {
	interval time.Duration
	metrics  *metrics
}

func waitForTerminationSignals(signals ...os.Signal) chan os.Signal {
	c := make(chan os.Signal, 1)
	signal.Notify(c, signals...)
	return c
}

// wait runs check every interval until it is done, fails, ctx ends or the
// process receives a termination signal.
func (w *waiter) wait(ctx context.Context, what string, check checkFunc) error {
	if w.interval <= 0 {
		return fmt.Errorf("%w: %s", errInvalidInterval, w.interval)
	}

	signals := waitForTerminationSignals(syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(signals)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		done, err := check(ctx)
		w.metrics.waitPollsTotal.Inc()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		log.Debugf("waiting %s for %s", w.interval, what)

		select {
		case <-ctx.Done():
			return fmt.Errorf("stopped waiting for %s: %w", what, ctx.Err())
		case s := <-signals:
			return fmt.Errorf("stopped waiting for %s: received %s", what, s)
		case <-ticker.C:
		}
	}
}

func snapshotAvailable(snapshots cloud.SnapshotSupport, id string) checkFunc {
	return func(ctx context.Context) (bool, error) {
		s, err := snapshots.GetSnapshot(ctx, id)
		if err != nil {
			return false, err
		}
		if s == nil || s.State == cloud.SnapshotStateDeleted {
			return false, fmt.Errorf("%w: %s", errSnapshotGone, id)
		}
		log.Infof("snapshot %s is %s %s", id, s.State, s.Progress)
		return s.State == cloud.SnapshotStateAvailable, nil
	}
}

func loadBalancerActive(lbs cloud.LoadBalancerSupport, id string) checkFunc {
	return func(ctx context.Context) (bool, error) {
		lb, err := lbs.GetLoadBalancer(ctx, id)
		if err != nil {
			return false, err
		}
		switch {
		case lb == nil || lb.State == cloud.LoadBalancerStateTerminated:
			return false, fmt.Errorf("%w: %s", errLoadBalancerGone, id)
		case lb.State == cloud.LoadBalancerStateError:
			return false, fmt.Errorf("%w: %s", errLoadBalancer, id)
		}
		log.Infof("load balancer %s is %s", id, lb.State)
		return lb.State == cloud.LoadBalancerStateActive, nil
	}
}
