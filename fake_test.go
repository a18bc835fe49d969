package ecsservice

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsecs "github.com/aws/aws-sdk-go-v2/service/ecs"
	ecstypes "github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/rs/zerolog"
)

// fakeECS scripts describe responses and records every call. Describe
// outputs are consumed in order; the last one repeats.
type fakeECS struct {
	describeOutputs []*awsecs.DescribeServicesOutput
	describeErr     error
	describeInputs  []*awsecs.DescribeServicesInput

	createOutput *awsecs.CreateServiceOutput
	createErr    error
	createInputs []*awsecs.CreateServiceInput

	updateOutput *awsecs.UpdateServiceOutput
	updateErr    error
	updateInputs []*awsecs.UpdateServiceInput

	deleteErr    error
	deleteInputs []*awsecs.DeleteServiceInput
}

func (f *fakeECS) DescribeServices(_ context.Context, params *awsecs.DescribeServicesInput, _ ...func(*awsecs.Options)) (*awsecs.DescribeServicesOutput, error) {
	f.describeInputs = append(f.describeInputs, params)
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	if len(f.describeOutputs) == 0 {
		return &awsecs.DescribeServicesOutput{}, nil
	}
	out := f.describeOutputs[0]
	if len(f.describeOutputs) > 1 {
		f.describeOutputs = f.describeOutputs[1:]
	}
	return out, nil
}

func (f *fakeECS) CreateService(_ context.Context, params *awsecs.CreateServiceInput, _ ...func(*awsecs.Options)) (*awsecs.CreateServiceOutput, error) {
	f.createInputs = append(f.createInputs, params)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOutput != nil {
		return f.createOutput, nil
	}
	return &awsecs.CreateServiceOutput{
		Service: &ecstypes.Service{
			ServiceArn:     aws.String("arn:aws:ecs:us-east-1:123456789012:service/" + aws.ToString(params.ServiceName)),
			ServiceName:    params.ServiceName,
			Status:         aws.String(statusActive),
			TaskDefinition: params.TaskDefinition,
			DesiredCount:   aws.ToInt32(params.DesiredCount),
			LoadBalancers:  params.LoadBalancers,
		},
	}, nil
}

func (f *fakeECS) UpdateService(_ context.Context, params *awsecs.UpdateServiceInput, _ ...func(*awsecs.Options)) (*awsecs.UpdateServiceOutput, error) {
	f.updateInputs = append(f.updateInputs, params)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateOutput != nil {
		return f.updateOutput, nil
	}
	return &awsecs.UpdateServiceOutput{
		Service: &ecstypes.Service{
			ServiceArn:     aws.String("arn:aws:ecs:us-east-1:123456789012:service/" + aws.ToString(params.Service)),
			ServiceName:    params.Service,
			Status:         aws.String(statusActive),
			TaskDefinition: params.TaskDefinition,
			DesiredCount:   aws.ToInt32(params.DesiredCount),
		},
	}, nil
}

func (f *fakeECS) DeleteService(_ context.Context, params *awsecs.DeleteServiceInput, _ ...func(*awsecs.Options)) (*awsecs.DeleteServiceOutput, error) {
	f.deleteInputs = append(f.deleteInputs, params)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &awsecs.DeleteServiceOutput{}, nil
}

func (f *fakeECS) mutatingCalls() int {
	return len(f.createInputs) + len(f.updateInputs) + len(f.deleteInputs)
}

// service builds a remote-side service with the ARN shape real describe
// responses carry (region and account embedded).
func service(name, status, taskDef string, count int32, lbs ...ecstypes.LoadBalancer) ecstypes.Service {
	return ecstypes.Service{
		ServiceArn:     aws.String("arn:aws:ecs:us-east-1:123456789012:service/" + name),
		ServiceName:    aws.String(name),
		ClusterArn:     aws.String("arn:aws:ecs:us-east-1:123456789012:cluster/default"),
		Status:         aws.String(status),
		TaskDefinition: aws.String(taskDef),
		DesiredCount:   count,
		LoadBalancers:  lbs,
	}
}

func describeFound(svc ecstypes.Service) *awsecs.DescribeServicesOutput {
	return &awsecs.DescribeServicesOutput{Services: []ecstypes.Service{svc}}
}

func describeMissing(name string) *awsecs.DescribeServicesOutput {
	return &awsecs.DescribeServicesOutput{
		Failures: []ecstypes.Failure{
			{
				Arn:    aws.String("arn:aws:ecs:us-east-1:123456789012:service/" + name),
				Reason: aws.String(reasonMissing),
			},
		},
	}
}

func newTestReconciler(f *fakeECS, dryRun bool) *Reconciler {
	r := New(f, zerolog.Nop(), dryRun)
	r.sleep = func(time.Duration) {}
	return r
}
