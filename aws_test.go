package ecsservice

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSTS struct {
	arn string
	err error
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Arn: aws.String(f.arn)}, nil
}

func TestVerifyCredentials(t *testing.T) {
	err := VerifyCredentials(ctx, &fakeSTS{arn: "arn:aws:iam::123456789012:user/deploy"}, zerolog.Nop())
	assert.NoError(t, err)
}

func TestVerifyCredentials_FailureIsAuthError(t *testing.T) {
	cause := errors.New("no EC2 IMDS role found")
	err := VerifyCredentials(ctx, &fakeSTS{err: cause}, zerolog.Nop())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "can't authorize connection")
}
