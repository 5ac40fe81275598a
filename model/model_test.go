package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/consultmesh/core"
)

func drain(t *testing.T, respCh <-chan Response, errCh <-chan error) ([]Response, error) {
	t.Helper()
	var responses []Response
	for r := range respCh {
		responses = append(responses, r)
	}
	return responses, <-errCh
}

func TestMockModelCannedResponse(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("hello", "G'day!")

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserText("hello")},
	})
	responses, err := drain(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "G'day!", responses[0].Content.Text())
	assert.False(t, responses[0].Partial)
}

func TestMockModelQueueTakesPriority(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.AddResponse("hello", "canned")
	m.QueueResponse("first scripted")
	m.QueueResponse("second scripted")

	for _, want := range []string{"first scripted", "second scripted", "canned"} {
		respCh, errCh := m.Generate(context.Background(), Request{
			Contents: []core.Content{core.NewUserText("hello")},
		})
		responses, err := drain(t, respCh, errCh)
		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, want, responses[0].Content.Text())
	}
}

func TestMockModelStreamingEmitsPartials(t *testing.T) {
	m := NewMockModel("test", "mock")
	m.QueueResponse("hi")

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserText("x")},
		Stream:   true,
	})
	responses, err := drain(t, respCh, errCh)
	require.NoError(t, err)
	require.Len(t, responses, 3) // two char chunks + final

	assert.True(t, responses[0].Partial)
	assert.True(t, responses[1].Partial)
	assert.False(t, responses[2].Partial)
	assert.Equal(t, "hi", responses[2].Content.Text())
}

func TestMockModelFailWith(t *testing.T) {
	m := NewMockModel("test", "mock")
	boom := errors.New("backend down")
	m.FailWith(boom)

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserText("hello")},
	})
	responses, err := drain(t, respCh, errCh)
	assert.Empty(t, responses)
	assert.ErrorIs(t, err, boom)
}

func TestMockModelNoContents(t *testing.T) {
	m := NewMockModel("test", "mock")

	respCh, errCh := m.Generate(context.Background(), Request{})
	responses, err := drain(t, respCh, errCh)
	assert.Empty(t, responses)
	assert.Error(t, err)
}
