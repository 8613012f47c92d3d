package main

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/zalando-incubator/aws-cloud-adapter/aws"
)

const (
	defaultEnvFile        = ".env"
	envFileVariable       = "AWS_CLOUD_ADAPTER_ENV_FILE"
	defaultMetricsAddress = ""
	defaultTimeout        = 30 * time.Second

	outputJSON = "json"
	outputYAML = "yaml"
)

type config struct {
	region             string
	profile            string
	endpoint           string
	accountNumber      string
	timeout            time.Duration
	certUpdateInterval time.Duration
	certBlacklist      []string
	ipAddressType      string
	healthCheckPath    string

	logLevel       string
	logFormat      string
	output         string
	metricsAddress string
}

func (c *config) bind(app *kingpin.Application) {
	app.Flag("region", "AWS region. Falls back to the shared config and the EC2 instance metadata.").
		Envar("AWS_REGION").StringVar(&c.region)
	app.Flag("profile", "Shared config profile.").
		Envar("AWS_PROFILE").StringVar(&c.profile)
	app.Flag("endpoint", "Overrides the endpoint of every AWS service, e.g. for a local emulator.").
		Envar("AWS_CLOUD_ADAPTER_ENDPOINT").StringVar(&c.endpoint)
	app.Flag("account-number", "AWS account number. Looked up from IAM when empty.").
		Envar("AWS_CLOUD_ADAPTER_ACCOUNT_NUMBER").StringVar(&c.accountNumber)
	app.Flag("timeout", "Timeout of a single HTTP request to AWS.").
		Envar("AWS_CLOUD_ADAPTER_TIMEOUT").Default(defaultTimeout.String()).DurationVar(&c.timeout)
	app.Flag("cert-update-interval", "Time SSL certificates are cached for.").
		Envar("AWS_CLOUD_ADAPTER_CERT_UPDATE_INTERVAL").Default(aws.DefaultCertificateUpdateInterval.String()).DurationVar(&c.certUpdateInterval)
	app.Flag("cert-blacklist", "ARN of a certificate never returned from the certificate store. Can be repeated.").
		Envar("AWS_CLOUD_ADAPTER_CERT_BLACKLIST").StringsVar(&c.certBlacklist)
	app.Flag("ip-address-type", "IP address type of new load balancers.").
		Envar("AWS_CLOUD_ADAPTER_IP_ADDRESS_TYPE").Default(aws.DefaultIpAddressType).
		EnumVar(&c.ipAddressType, aws.IPAddressTypeIPV4, aws.IPAddressTypeDualstack)
	app.Flag("health-check-path", "Health check path of new HTTP target groups.").
		Envar("AWS_CLOUD_ADAPTER_HEALTH_CHECK_PATH").Default(aws.DefaultHealthCheckPath).StringVar(&c.healthCheckPath)

	app.Flag("log-level", "Log level.").
		Envar("AWS_CLOUD_ADAPTER_LOG_LEVEL").Default(log.InfoLevel.String()).
		EnumVar(&c.logLevel, "debug", "info", "warning", "error")
	app.Flag("log-format", "Log format.").
		Envar("AWS_CLOUD_ADAPTER_LOG_FORMAT").Default("text").EnumVar(&c.logFormat, "text", "json")
	app.Flag("output", "Output format of results.").Short('o').
		Envar("AWS_CLOUD_ADAPTER_OUTPUT").Default(outputJSON).EnumVar(&c.output, outputJSON, outputYAML)
	app.Flag("metrics-address", "Serve Prometheus metrics on this address while the command runs.").
		Envar("AWS_CLOUD_ADAPTER_METRICS_ADDRESS").Default(defaultMetricsAddress).StringVar(&c.metricsAddress)
}

// loadEnvFile loads variables missing from the environment from the file
// named by AWS_CLOUD_ADAPTER_ENV_FILE or from .env. A missing default file is
// not an error.
func loadEnvFile() error {
	name, explicit := os.LookupEnv(envFileVariable)
	if !explicit {
		name = defaultEnvFile
	}
	err := godotenv.Load(name)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *config) configureLogging() {
	if c.logFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func (c *config) adapterConfig() aws.Config {
	return aws.Config{
		Region:   c.region,
		Profile:  c.profile,
		Endpoint: c.endpoint,
		Timeout:  c.timeout,
	}
}

// configure applies the adapter settings of c.
func (c *config) configure(a *aws.Adapter) *aws.Adapter {
	if c.accountNumber != "" {
		a = a.WithAccountNumber(c.accountNumber)
	}
	return a.
		WithCertificateUpdateInterval(c.certUpdateInterval).
		WithCertificateBlacklist(c.certBlacklist...).
		WithIpAddressType(c.ipAddressType).
		WithHealthCheckPath(c.healthCheckPath)
}
