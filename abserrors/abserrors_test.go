package abserrors_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/go-sparta/sparta/abserrors"
)

func TestInvalidArgumentIsSentinel(t *testing.T) {
	err := abserrors.InvalidArgument("universe", "must be positive")
	assert.True(t, errors.Is(err, abserrors.ErrInvalidArgument))
	assert.False(t, errors.Is(err, abserrors.ErrInternal))
	assert.Contains(t, err.Error(), "universe")
	assert.Contains(t, err.Error(), "must be positive")
}

func TestUndefinedOperationIsSentinel(t *testing.T) {
	err := abserrors.UndefinedOperation("unwrap", "lifted value is bottom")
	assert.True(t, errors.Is(err, abserrors.ErrUndefinedOperation))
}

func TestInternalIsSentinel(t *testing.T) {
	err := abserrors.Internal("branch invariant violated")
	assert.True(t, errors.Is(err, abserrors.ErrInternal))
}

func TestInvalidAbstractValueIsSentinel(t *testing.T) {
	err := abserrors.InvalidAbstractValue("kind() disagrees with stored tag")
	assert.True(t, errors.Is(err, abserrors.ErrInvalidAbstractValue))
}
