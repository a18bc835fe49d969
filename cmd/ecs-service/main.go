package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"
	ecsservice "github.com/sockerless/ecs-service"
)

func main() {
	state := flag.String("state", "", "desired state (present, absent, deleting)")
	name := flag.String("name", "", "service name")
	cluster := flag.String("cluster", "", "cluster name (default cluster when empty)")
	taskDefinition := flag.String("task-definition", "", "task definition the service runs")
	loadBalancers := flag.String("load-balancers", "", "load balancers as name:container:port, comma-separated")
	desiredCount := flag.Int("desired-count", -1, "desired task count (-1 means unspecified)")
	clientToken := flag.String("client-token", "", "idempotency token for create")
	role := flag.String("role", "", "IAM role for load balancer registration")
	delay := flag.Int("delay", 10, "seconds between deletion checks")
	repeat := flag.Int("repeat", 10, "number of deletion checks")
	dryRun := flag.Bool("dry-run", false, "report what would change without mutating")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", "ecs-service").
		Logger()

	mode, err := ecsservice.ParseMode(*state)
	if err != nil {
		fail(logger, err)
	}

	lbs, err := ecsservice.ParseLoadBalancers(*loadBalancers)
	if err != nil {
		fail(logger, err)
	}

	spec := ecsservice.DesiredSpec{
		Name:          *name,
		Cluster:       *cluster,
		LoadBalancers: lbs,
		Delay:         time.Duration(*delay) * time.Second,
		Repeat:        *repeat,
	}
	if *taskDefinition != "" {
		spec.TaskDefinition = aws.String(*taskDefinition)
	}
	if *desiredCount >= 0 {
		spec.DesiredCount = aws.Int32(int32(*desiredCount))
	}
	if *clientToken != "" {
		spec.ClientToken = aws.String(*clientToken)
	}
	if *role != "" {
		spec.Role = aws.String(*role)
	}
	if err := spec.Validate(); err != nil {
		fail(logger, err)
	}

	ctx := context.Background()
	cfg := ecsservice.ConfigFromEnv()

	clients, err := ecsservice.NewAWSClients(ctx, cfg.Region, cfg.EndpointURL)
	if err != nil {
		fail(logger, err)
	}
	if err := ecsservice.VerifyCredentials(ctx, clients.STS, logger); err != nil {
		fail(logger, err)
	}

	reconciler := ecsservice.New(clients.ECS, logger, *dryRun)
	result, err := reconciler.Reconcile(ctx, mode, spec)
	if err != nil {
		fail(logger, err)
	}

	emit(result)
}

// fail writes the failure result document to stdout and exits non-zero.
func fail(logger zerolog.Logger, err error) {
	logger.Error().Err(err).Msg("reconciliation failed")
	emit(&ecsservice.Result{Changed: false, Error: err.Error()})
	os.Exit(1)
}

func emit(result *ecsservice.Result) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)
}
