package mock

import (
	"testing"
	"time"

	"github.com/helia-ci/sable"
	"github.com/stretchr/testify/assert"
)

func TestFunctionContext(t *testing.T) {
	assert.Implements(t, (*sable.FunctionContext)(nil), &FunctionContext{})

	t.Run("NewFunctionContextPopulatesDefaults", func(t *testing.T) {
		fc := NewFunctionContext("processor")
		assert.Equal(t, "processor", fc.FunctionName())
		assert.Contains(t, fc.InvokedIdentity(), "processor")
		assert.Equal(t, 5*time.Minute, fc.RemainingTime())
	})

	t.Run("SetRemainingOverridesBudget", func(t *testing.T) {
		fc := NewFunctionContext("processor").SetRemaining(3 * time.Second)
		assert.Equal(t, 3*time.Second, fc.RemainingTime())
	})
}
