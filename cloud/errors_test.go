package cloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	for _, ti := range []struct {
		err  *Error
		want string
	}{
		{&Error{Op: "Snapshots.getSnapshot", Code: "InvalidSnapshot.NotFound", Message: "gone"}, "Snapshots.getSnapshot: InvalidSnapshot.NotFound: gone"},
		{&Error{Op: "Snapshots.getSnapshot", Code: "Throttling"}, "Snapshots.getSnapshot: Throttling"},
		{&Error{Op: "Containers.createCluster", Err: cause}, "Containers.createCluster: boom"},
		{&Error{Op: "Containers.createCluster", Message: "no arn"}, "Containers.createCluster: no arn"},
	} {
		assert.Equal(t, ti.want, ti.err.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Op: "op", Code: "Throttling", Err: ErrNotCreated})
	assert.True(t, errors.Is(err, ErrNotCreated))
	assert.True(t, IsCode(err, "Throttling"))
	assert.False(t, IsCode(err, "Other"))
	assert.False(t, IsCode(errors.New("plain"), "Throttling"))
}
