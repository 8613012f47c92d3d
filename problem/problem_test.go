package problem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	var p List
	assert.False(t, p.Any())
	assert.NoError(t, p.Join())

	cause := errors.New("ResourceInUse")
	p.Add("deleting target group %s: %w", "tg-1", cause).Add("deleting target group %s: %w", "tg-2", cause)

	assert.True(t, p.Any())
	assert.Len(t, p.Errors(), 2)
	err := p.Join()
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "deleting target group tg-1: ResourceInUse\ndeleting target group tg-2: ResourceInUse")
}
