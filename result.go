package ecsservice

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
)

// Result is the document a reconciliation pass produces.
type Result struct {
	Changed bool             `json:"changed"`
	Service *ServiceSnapshot `json:"service,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ServiceSnapshot is a remote service rendered for output, using the ECS
// wire field names. Timestamps are strings so the document marshals cleanly.
type ServiceSnapshot struct {
	ServiceArn     string               `json:"serviceArn,omitempty"`
	ServiceName    string               `json:"serviceName,omitempty"`
	ClusterArn     string               `json:"clusterArn,omitempty"`
	Status         string               `json:"status,omitempty"`
	TaskDefinition string               `json:"taskDefinition,omitempty"`
	DesiredCount   int32                `json:"desiredCount"`
	RunningCount   int32                `json:"runningCount"`
	PendingCount   int32                `json:"pendingCount"`
	RoleArn        string               `json:"roleArn,omitempty"`
	LoadBalancers  []LoadBalancer       `json:"loadBalancers"`
	Deployments    []DeploymentSnapshot `json:"deployments,omitempty"`
	Events         []EventSnapshot      `json:"events,omitempty"`
}

// DeploymentSnapshot is one time-stamped service deployment.
type DeploymentSnapshot struct {
	ID             string `json:"id,omitempty"`
	Status         string `json:"status,omitempty"`
	TaskDefinition string `json:"taskDefinition,omitempty"`
	DesiredCount   int32  `json:"desiredCount"`
	RunningCount   int32  `json:"runningCount"`
	PendingCount   int32  `json:"pendingCount"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// EventSnapshot is one time-stamped service event.
type EventSnapshot struct {
	ID        string `json:"id,omitempty"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func snapshotService(svc *ecstypes.Service) *ServiceSnapshot {
	if svc == nil {
		return nil
	}

	snap := &ServiceSnapshot{
		ServiceArn:     aws.ToString(svc.ServiceArn),
		ServiceName:    aws.ToString(svc.ServiceName),
		ClusterArn:     aws.ToString(svc.ClusterArn),
		Status:         aws.ToString(svc.Status),
		TaskDefinition: aws.ToString(svc.TaskDefinition),
		DesiredCount:   svc.DesiredCount,
		RunningCount:   svc.RunningCount,
		PendingCount:   svc.PendingCount,
		RoleArn:        aws.ToString(svc.RoleArn),
		LoadBalancers:  fromSDKLoadBalancers(svc.LoadBalancers),
	}

	for _, d := range svc.Deployments {
		snap.Deployments = append(snap.Deployments, DeploymentSnapshot{
			ID:             aws.ToString(d.Id),
			Status:         aws.ToString(d.Status),
			TaskDefinition: aws.ToString(d.TaskDefinition),
			DesiredCount:   d.DesiredCount,
			RunningCount:   d.RunningCount,
			PendingCount:   d.PendingCount,
			CreatedAt:      formatTime(d.CreatedAt),
			UpdatedAt:      formatTime(d.UpdatedAt),
		})
	}
	for _, e := range svc.Events {
		snap.Events = append(snap.Events, EventSnapshot{
			ID:        aws.ToString(e.Id),
			Message:   aws.ToString(e.Message),
			CreatedAt: formatTime(e.CreatedAt),
		})
	}
	return snap
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
