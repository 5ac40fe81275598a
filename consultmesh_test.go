package consultmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/consultmesh/config"
	"github.com/hupe1980/consultmesh/consult"
	"github.com/hupe1980/consultmesh/model"
)

func TestServiceProcessTaskRouting(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.QueueResponse("Capacity answer.")
	llm.QueueResponse("Fallback-routed answer.")

	svc, err := New(config.Default(), func(o *Options) { o.Model = llm })
	require.NoError(t, err)

	env := svc.ProcessTask(context.Background(), "capacity", "hello", nil, "s1")
	assert.Equal(t, consult.StatusSuccess, env.Status)
	assert.Equal(t, "Capacity answer.", env.Message)
	assert.Equal(t, "capacity_analysis", env.Data["agent_type"])

	// Unknown persona keys route to the strategic consultant.
	env = svc.ProcessTask(context.Background(), "nonsense", "hello", nil, "s2")
	assert.Equal(t, "Fallback-routed answer.", env.Message)
	assert.NotContains(t, env.Data, "agent_type")
}

func TestServiceManagers(t *testing.T) {
	svc, err := New(config.Default(), func(o *Options) {
		o.Model = model.NewMockModel("test", "mock")
	})
	require.NoError(t, err)

	for _, key := range []string{"strategic", "capacity", "risk", "engagement"} {
		assert.NotNil(t, svc.Manager(key), key)
	}
	assert.Nil(t, svc.Manager("unknown"))
}

func TestServiceBuildsMockProviderWithoutCredentials(t *testing.T) {
	svc, err := New(config.Default())
	require.NoError(t, err)

	env := svc.ProcessTask(context.Background(), "strategic", "hello", nil, "")
	assert.Equal(t, consult.StatusSuccess, env.Status)
	assert.NotEmpty(t, env.SessionID)
}
