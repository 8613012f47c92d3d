package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
)

var (
	version = "dev"

	errNotFound = errors.New("not found")
)

const (
	defaultWaitInterval = 10 * time.Second
	defaultWaitTimeout  = 30 * time.Minute
)

type handler func(ctx context.Context, a *aws.Adapter) error

// args holds the positional arguments and command flags. Only the fields of
// the parsed command are set.
type args struct {
	id           string
	name         string
	description  string
	account      string
	hostname     string
	asg          string
	file         string
	volumeID     string
	sourceRegion string
	sourceID     string
	regex        string
	matchAny     bool
	serverIDs    []string
	keys         []string
	tags         map[string]string
	wait         bool
	interval     time.Duration
	waitTimeout  time.Duration
}

type cli struct {
	app        *kingpin.Application
	cfg        config
	args       args
	out        io.Writer
	metrics    *metrics
	handlers   map[string]handler
	newAdapter func(ctx context.Context, cfg *config) (*aws.Adapter, error)
}

func newCLI(out io.Writer) *cli {
	c := &cli{
		app:        kingpin.New("aws-cloud-adapter", "Manages ECS clusters, EBS snapshots and ELBv2 load balancers."),
		args:       args{tags: make(map[string]string)},
		out:        out,
		metrics:    newMetrics(),
		handlers:   make(map[string]handler),
		newAdapter: defaultAdapter,
	}
	c.app.Version(version)
	c.cfg.bind(c.app)

	c.clusterCommands(c.app.Command("cluster", "ECS clusters."))
	c.snapshotCommands(c.app.Command("snapshot", "EBS snapshots."))
	c.loadBalancerCommands(c.app.Command("lb", "ELBv2 load balancers."))
	c.certificateCommands(c.app.Command("cert", "SSL certificates from IAM and ACM."))
	c.handle(c.app.Command("capabilities", "Prints what the adapter supports."), c.printCapabilities)
	return c
}

func defaultAdapter(ctx context.Context, cfg *config) (*aws.Adapter, error) {
	a, err := aws.NewAdapter(ctx, cfg.adapterConfig())
	if err != nil {
		return nil, err
	}
	return cfg.configure(a), nil
}

func (c *cli) handle(cmd *kingpin.CmdClause, h handler) *kingpin.CmdClause {
	c.handlers[cmd.FullCommand()] = h
	return cmd
}

func (c *cli) run(ctx context.Context, arguments []string) error {
	command, err := c.app.Parse(arguments)
	if err != nil {
		return err
	}
	c.cfg.configureLogging()

	h, ok := c.handlers[command]
	if !ok {
		return fmt.Errorf("unknown command %q", command)
	}

	if c.cfg.metricsAddress != "" {
		go c.metrics.serve(c.cfg.metricsAddress)
	}

	adapter, err := c.newAdapter(ctx, &c.cfg)
	if err != nil {
		return err
	}
	log.Debugf("running %q in region %s", command, adapter.Region())

	if err := h(ctx, adapter); err != nil {
		return err
	}
	c.metrics.lastRunTimestamp.SetToCurrentTime()
	return nil
}

func (c *cli) print(v interface{}) error {
	p := &printer{w: c.out, format: c.cfg.output}
	return p.print(v)
}

func (c *cli) waiter() *waiter {
	return &waiter{interval: c.args.interval, metrics: c.metrics}
}

// withWaitFlags adds the polling settings to cmd. When optional is set the
// command only waits if --wait is given.
func (c *cli) withWaitFlags(cmd *kingpin.CmdClause, optional bool) *kingpin.CmdClause {
	if optional {
		cmd.Flag("wait", "Wait until the resource is ready.").BoolVar(&c.args.wait)
	}
	cmd.Flag("interval", "Time between two state polls.").
		Default(defaultWaitInterval.String()).DurationVar(&c.args.interval)
	cmd.Flag("wait-timeout", "Maximum time to wait.").
		Default(defaultWaitTimeout.String()).DurationVar(&c.args.waitTimeout)
	return cmd
}

func (c *cli) waitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.args.waitTimeout)
}

func main() {
	if err := loadEnvFile(); err != nil {
		log.Fatalf("unable to load environment file: %v", err)
	}

	if err := newCLI(os.Stdout).run(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
