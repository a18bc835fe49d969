package ecsservice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// Mode selects the reconciliation workflow.
type Mode string

const (
	// ModePresent creates or updates the service to match the desired spec.
	ModePresent Mode = "present"
	// ModeAbsent deletes the service if it exists.
	ModeAbsent Mode = "absent"
	// ModeDeleting waits for an in-flight deletion to reach INACTIVE.
	ModeDeleting Mode = "deleting"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePresent, ModeAbsent, ModeDeleting:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid state %q: must be present, absent or deleting", s)
}

// LoadBalancer fronts a service container. Entries are compared field-exact
// against the remote list, in order, with no normalization.
type LoadBalancer struct {
	Name          string `json:"loadBalancerName"`
	ContainerName string `json:"containerName"`
	ContainerPort int32  `json:"containerPort"`
}

// DesiredSpec is the desired state of a service. Optional scalars are
// pointers: the remote API distinguishes absent fields from zero values, so
// nil means "not specified" and is omitted from requests.
type DesiredSpec struct {
	Name           string
	Cluster        string
	TaskDefinition *string
	LoadBalancers  []LoadBalancer
	DesiredCount   *int32
	ClientToken    *string
	Role           *string
	Delay          time.Duration
	Repeat         int
}

// Validate checks required fields common to all modes.
func (s DesiredSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if s.Delay <= 0 {
		return fmt.Errorf("delay must be positive")
	}
	if s.Repeat <= 0 {
		return fmt.Errorf("repeat must be positive")
	}
	return nil
}

// ParseLoadBalancers parses a comma-separated list of name:container:port
// entries. An empty string yields nil (no load balancers specified).
func ParseLoadBalancers(s string) ([]LoadBalancer, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	result := make([]LoadBalancer, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields := strings.Split(p, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("invalid load balancer %q: want name:container:port", p)
		}
		port, err := strconv.ParseInt(fields[2], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid load balancer port %q: %w", fields[2], err)
		}
		result = append(result, LoadBalancer{
			Name:          fields[0],
			ContainerName: fields[1],
			ContainerPort: int32(port),
		})
	}
	return result, nil
}

func toSDKLoadBalancers(lbs []LoadBalancer) []ecstypes.LoadBalancer {
	out := make([]ecstypes.LoadBalancer, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, ecstypes.LoadBalancer{
			LoadBalancerName: aws.String(lb.Name),
			ContainerName:    aws.String(lb.ContainerName),
			ContainerPort:    aws.Int32(lb.ContainerPort),
		})
	}
	return out
}

func fromSDKLoadBalancers(lbs []ecstypes.LoadBalancer) []LoadBalancer {
	out := make([]LoadBalancer, 0, len(lbs))
	for _, lb := range lbs {
		out = append(out, LoadBalancer{
			Name:          aws.ToString(lb.LoadBalancerName),
			ContainerName: aws.ToString(lb.ContainerName),
			ContainerPort: aws.ToInt32(lb.ContainerPort),
		})
	}
	return out
}
