package aws

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zalando-incubator/aws-cloud-adapter/aws/fake"
	"github.com/zalando-incubator/aws-cloud-adapter/cloud"
)

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError("op", nil))

	err := wrapError("Snapshots.getSnapshot", fake.APIError("InvalidSnapshot.NotFound", "gone"))
	var cerr *cloud.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "Snapshots.getSnapshot", cerr.Op)
	assert.Equal(t, "InvalidSnapshot.NotFound", cerr.Code)
	assert.Equal(t, "gone", cerr.Message)
	assert.True(t, cloud.IsCode(err, "InvalidSnapshot.NotFound"))

	again := wrapError("other", err)
	assert.Same(t, err, again)

	plain := wrapError("op", cloud.ErrNotCreated)
	assert.ErrorIs(t, plain, cloud.ErrNotCreated)
	assert.Equal(t, "", errorCode(plain))
}

func TestErrorCodes(t *testing.T) {
	for _, code := range accessDeniedCodes {
		assert.True(t, isAccessDenied(fake.APIError(code, "")), code)
		assert.True(t, isAccessDenied(wrapError("op", fake.APIError(code, ""))), code)
	}
	assert.False(t, isAccessDenied(fake.APIError("Throttling", "")))
	assert.False(t, isAccessDenied(fake.ErrDummy))
	assert.False(t, hasErrorCode(fake.ErrDummy))
	assert.True(t, hasErrorCode(fake.APIError("B", ""), "A", "B"))
}
