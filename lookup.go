package ecsservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// reasonMissing is the per-service failure reason ECS reports for a service
// that does not exist.
const reasonMissing = "MISSING"

// LookupResult is the outcome of resolving (cluster, name) against the
// control plane. Found is false when the service definitively does not exist;
// ambiguous describe responses come back as an UnknownServiceStateError
// instead.
type LookupResult struct {
	Found   bool
	Service *ecstypes.Service
}

// Lookup describes the named service. ARNs embed region and account, so
// entries in both the failures and services lists are matched by suffix
// against the supplied name, never by exact string.
func (r *Reconciler) Lookup(ctx context.Context, cluster, name string) (LookupResult, error) {
	input := &awsecs.DescribeServicesInput{
		Services: []string{name},
	}
	if cluster != "" {
		input.Cluster = aws.String(cluster)
	}

	out, err := r.ecs.DescribeServices(ctx, input)
	if err != nil {
		return LookupResult{}, fmt.Errorf("describe service %q: %w", name, err)
	}

	for _, f := range out.Failures {
		if !strings.HasSuffix(aws.ToString(f.Arn), name) {
			continue
		}
		if aws.ToString(f.Reason) == reasonMissing {
			return LookupResult{}, nil
		}
		return LookupResult{}, &UnknownServiceStateError{Service: name, Reason: aws.ToString(f.Reason)}
	}

	for i := range out.Services {
		if strings.HasSuffix(aws.ToString(out.Services[i].ServiceArn), name) {
			return LookupResult{Found: true, Service: &out.Services[i]}, nil
		}
	}

	return LookupResult{}, &UnknownServiceStateError{Service: name, Reason: "no matching service in describe response"}
}
