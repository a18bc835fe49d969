package ecsservice

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/rs/zerolog"
)

const (
	statusActive   = "ACTIVE"
	statusInactive = "INACTIVE"
)

// Reconciler moves one service toward its desired state with at most one
// mutating call per pass.
type Reconciler struct {
	ecs    ECSAPI
	logger zerolog.Logger
	dryRun bool
	sleep  func(time.Duration)
}

// New creates a Reconciler. With dryRun set, classification still runs but no
// mutating call is ever issued.
func New(api ECSAPI, logger zerolog.Logger, dryRun bool) *Reconciler {
	return &Reconciler{
		ecs:    api,
		logger: logger,
		dryRun: dryRun,
		sleep:  time.Sleep,
	}
}

// Reconcile runs one reconciliation pass: a single fetch of current state,
// then the workflow selected by mode.
func (r *Reconciler) Reconcile(ctx context.Context, mode Mode, spec DesiredSpec) (*Result, error) {
	existing, err := r.Lookup(ctx, spec.Cluster, spec.Name)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModePresent:
		return r.ensurePresent(ctx, spec, existing)
	case ModeAbsent:
		return r.ensureAbsent(ctx, spec, existing)
	case ModeDeleting:
		return r.waitForDeletion(ctx, spec, existing)
	}
	return nil, fmt.Errorf("invalid mode %q", mode)
}

type action int

const (
	actionNone action = iota
	actionCreate
	actionUpdate
)

// classify decides the single mutation (if any) this pass needs. A service
// that is absent or no longer ACTIVE is created fresh; deleted names can be
// reused but never resurrected.
func classify(spec DesiredSpec, existing LookupResult) action {
	if !existing.Found || aws.ToString(existing.Service.Status) != statusActive {
		return actionCreate
	}
	if matches(spec, existing.Service) {
		return actionNone
	}
	return actionUpdate
}

// matches reports whether the existing service already satisfies the spec.
// An unset task definition never matches; unset load balancers and desired
// count compare as empty and zero. Load balancer entries are compared in
// order, exactly as the remote returns them.
func matches(spec DesiredSpec, existing *ecstypes.Service) bool {
	if spec.TaskDefinition == nil || *spec.TaskDefinition != aws.ToString(existing.TaskDefinition) {
		return false
	}
	if !sameLoadBalancers(spec.LoadBalancers, existing.LoadBalancers) {
		return false
	}
	if aws.ToInt32(spec.DesiredCount) != existing.DesiredCount {
		return false
	}
	return true
}

func sameLoadBalancers(want []LoadBalancer, have []ecstypes.LoadBalancer) bool {
	if len(want) != len(have) {
		return false
	}
	for i, lb := range want {
		if lb.Name != aws.ToString(have[i].LoadBalancerName) {
			return false
		}
		if lb.ContainerName != aws.ToString(have[i].ContainerName) {
			return false
		}
		if lb.ContainerPort != aws.ToInt32(have[i].ContainerPort) {
			return false
		}
	}
	return true
}

func (r *Reconciler) ensurePresent(ctx context.Context, spec DesiredSpec, existing LookupResult) (*Result, error) {
	switch classify(spec, existing) {
	case actionNone:
		r.logger.Debug().Str("service", spec.Name).Msg("service matches desired state")
		return &Result{Changed: false, Service: snapshotService(existing.Service)}, nil

	case actionUpdate:
		if r.dryRun {
			r.logger.Info().Str("service", spec.Name).Msg("dry run: service would be updated")
			return &Result{Changed: true, Service: snapshotService(existing.Service)}, nil
		}
		svc, err := r.updateService(ctx, spec)
		if err != nil {
			return nil, err
		}
		r.logger.Info().Str("service", spec.Name).Msg("updated service")
		return &Result{Changed: true, Service: snapshotService(svc)}, nil

	default:
		if r.dryRun {
			r.logger.Info().Str("service", spec.Name).Msg("dry run: service would be created")
			return &Result{Changed: true}, nil
		}
		if spec.DesiredCount == nil {
			return nil, &MissingRequiredFieldError{Field: "desired count"}
		}
		if spec.TaskDefinition == nil {
			return nil, &MissingRequiredFieldError{Field: "task definition"}
		}
		svc, err := r.createService(ctx, spec)
		if err != nil {
			return nil, err
		}
		r.logger.Info().Str("service", spec.Name).Str("arn", aws.ToString(svc.ServiceArn)).Msg("created service")
		return &Result{Changed: true, Service: snapshotService(svc)}, nil
	}
}

func (r *Reconciler) ensureAbsent(ctx context.Context, spec DesiredSpec, existing LookupResult) (*Result, error) {
	if !existing.Found {
		r.logger.Debug().Str("service", spec.Name).Msg("service already absent")
		return &Result{Changed: false}, nil
	}

	// The deployments and events sub-collections are presentation-only and
	// excluded from the deletion report.
	snap := snapshotService(existing.Service)
	snap.Deployments = nil
	snap.Events = nil

	if aws.ToString(existing.Service.Status) == statusInactive {
		return &Result{Changed: false, Service: snap}, nil
	}

	if r.dryRun {
		r.logger.Info().Str("service", spec.Name).Msg("dry run: service would be deleted")
		return &Result{Changed: true, Service: snap}, nil
	}

	input := &awsecs.DeleteServiceInput{
		Service: aws.String(spec.Name),
	}
	if spec.Cluster != "" {
		input.Cluster = aws.String(spec.Cluster)
	}
	if _, err := r.ecs.DeleteService(ctx, input); err != nil {
		return nil, &DeleteFailedError{Service: spec.Name, Err: err}
	}

	r.logger.Info().Str("service", spec.Name).Msg("deleted service")
	return &Result{Changed: true, Service: snap}, nil
}

// createService includes optional fields only when the spec provides them:
// the remote API treats an absent list differently from an empty one.
func (r *Reconciler) createService(ctx context.Context, spec DesiredSpec) (*ecstypes.Service, error) {
	input := &awsecs.CreateServiceInput{
		ServiceName:    aws.String(spec.Name),
		TaskDefinition: spec.TaskDefinition,
		DesiredCount:   spec.DesiredCount,
	}
	if spec.Cluster != "" {
		input.Cluster = aws.String(spec.Cluster)
	}
	if spec.LoadBalancers != nil {
		input.LoadBalancers = toSDKLoadBalancers(spec.LoadBalancers)
	}
	if spec.ClientToken != nil {
		input.ClientToken = spec.ClientToken
	}
	if spec.Role != nil {
		input.Role = spec.Role
	}

	out, err := r.ecs.CreateService(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create service %q: %w", spec.Name, err)
	}
	return out.Service, nil
}

// updateService sends a partial update: fields the spec leaves unset keep
// their remote values.
func (r *Reconciler) updateService(ctx context.Context, spec DesiredSpec) (*ecstypes.Service, error) {
	input := &awsecs.UpdateServiceInput{
		Service: aws.String(spec.Name),
	}
	if spec.Cluster != "" {
		input.Cluster = aws.String(spec.Cluster)
	}
	if spec.TaskDefinition != nil {
		input.TaskDefinition = spec.TaskDefinition
	}
	if spec.DesiredCount != nil {
		input.DesiredCount = spec.DesiredCount
	}

	out, err := r.ecs.UpdateService(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("update service %q: %w", spec.Name, err)
	}
	return out.Service, nil
}
