package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/model"
	"github.com/hupe1980/consultmesh/session"
)

var _ core.Runner = (*Runner)(nil)

func collect(t *testing.T, eventsCh <-chan core.Event, errorsCh <-chan error) ([]core.Event, error) {
	t.Helper()
	var events []core.Event
	var runErr error
	for eventsCh != nil || errorsCh != nil {
		select {
		case ev, ok := <-eventsCh:
			if !ok {
				eventsCh = nil
				continue
			}
			events = append(events, ev)
		case err, ok := <-errorsCh:
			if !ok {
				errorsCh = nil
				continue
			}
			if err != nil {
				runErr = err
			}
		}
	}
	return events, runErr
}

func TestRunnerDeliversFinalResponse(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.QueueResponse("Hello! How can I help with your priorities today?")

	store := session.NewInMemoryStore()
	r := New("riley", llm, func(o *Options) {
		o.SessionStore = store
		o.EnableStreaming = false
	})

	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}
	runID, eventsCh, errorsCh, err := r.Run(context.Background(), key, core.NewUserText("hi"))
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	events, runErr := collect(t, eventsCh, errorsCh)
	require.NoError(t, runErr)
	require.Len(t, events, 1)
	assert.Equal(t, "riley", events[0].Author)
	assert.True(t, events[0].IsFinalResponse())
	assert.Equal(t, "Hello! How can I help with your priorities today?", events[0].Text())
}

func TestRunnerPersistsUserAndFinalTurns(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.QueueResponse("response text")

	store := session.NewInMemoryStore()
	r := New("riley", llm, func(o *Options) {
		o.SessionStore = store
		o.EnableStreaming = true
	})

	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}
	_, eventsCh, errorsCh, err := r.Run(context.Background(), key, core.NewUserText("hi"))
	require.NoError(t, err)

	events, runErr := collect(t, eventsCh, errorsCh)
	require.NoError(t, runErr)

	partials := 0
	for _, ev := range events {
		if ev.IsPartial() {
			partials++
		}
	}
	assert.Greater(t, partials, 0)

	sess, err := store.Get(key)
	require.NoError(t, err)
	history := sess.History()
	// Partial chunks never reach the session history.
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Content.Role)
	assert.Equal(t, "response text", history[1].Text())
}

func TestRunnerSurfacesModelError(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	llm.FailWith(errors.New("backend down"))

	r := New("riley", llm, func(o *Options) { o.EnableStreaming = false })

	key := core.SessionKey{App: "consult", User: "u1", ID: "s1"}
	_, eventsCh, errorsCh, err := r.Run(context.Background(), key, core.NewUserText("hi"))
	require.NoError(t, err)

	events, runErr := collect(t, eventsCh, errorsCh)
	assert.Empty(t, events)
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "model generation failed")
}

func TestRunnerConcurrentSessions(t *testing.T) {
	llm := model.NewMockModel("test", "mock")
	store := session.NewInMemoryStore()
	r := New("riley", llm, func(o *Options) {
		o.SessionStore = store
		o.EnableStreaming = false
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := core.SessionKey{App: "consult", User: "u1", ID: string(rune('a' + n))}
			_, eventsCh, errorsCh, err := r.Run(context.Background(), key, core.NewUserText("hi"))
			if err != nil {
				t.Error(err)
				return
			}
			events, runErr := collect(t, eventsCh, errorsCh)
			if runErr != nil || len(events) != 1 {
				t.Errorf("session %d: events=%d err=%v", n, len(events), runErr)
			}
		}(i)
	}
	wg.Wait()
}
