package ecsservice

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type waitOutcome int

const (
	exhaustedAttempts waitOutcome = iota
	reachedTerminal
)

// waitForDeletion polls until the service reaches INACTIVE. Each attempt
// sleeps first, then fetches; the worst case issues exactly spec.Repeat
// fetches before giving up.
func (r *Reconciler) waitForDeletion(ctx context.Context, spec DesiredSpec, existing LookupResult) (*Result, error) {
	if !existing.Found {
		return nil, &NotFoundPreconditionError{Service: spec.Name}
	}

	outcome := exhaustedAttempts
	for attempt := 1; attempt <= spec.Repeat; attempt++ {
		r.sleep(spec.Delay)

		current, err := r.Lookup(ctx, spec.Cluster, spec.Name)
		if err != nil {
			return nil, err
		}
		if !current.Found {
			// A deleted service stays INACTIVE; vanishing mid-poll is
			// ambiguity, not success.
			return nil, &UnknownServiceStateError{Service: spec.Name, Reason: "service disappeared while waiting for deletion"}
		}

		status := aws.ToString(current.Service.Status)
		r.logger.Debug().Str("service", spec.Name).Int("attempt", attempt).Str("status", status).Msg("polled service")
		if status == statusInactive {
			existing = current
			outcome = reachedTerminal
			break
		}
	}

	if outcome == exhaustedAttempts {
		return nil, &TimeoutError{Attempts: spec.Repeat, Delay: spec.Delay}
	}
	return &Result{Changed: true, Service: snapshotService(existing.Service)}, nil
}
