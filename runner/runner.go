// Package runner bridges sessions and language models. A Runner executes one
// model invocation per Run call: it persists the incoming user turn, drives
// the model's event stream and relays generation events to the caller while
// appending final responses to the session history.
package runner

import (
	"context"
	"fmt"

	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/logging"
	"github.com/hupe1980/consultmesh/model"
	"github.com/hupe1980/consultmesh/session"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// EnableStreaming toggles partial event relay vs final-only.
	EnableStreaming bool
	// EventBufferSize sets channel buffering for events.
	EventBufferSize int
	// SessionStore persists conversation history.
	SessionStore core.SessionStore
	// Logger receives diagnostic output.
	Logger logging.Logger
}

// Runner coordinates model execution for a named agent. Public methods are
// safe for concurrent use; independent sessions never block one another.
// Concurrent runs against the same session key are not serialized.
type Runner struct {
	name string
	llm  model.Model

	enableStreaming bool
	eventBufferSize int

	sessionStore core.SessionStore
	logger       logging.Logger
}

// New constructs a Runner for the named agent with optional overrides.
func New(name string, llm model.Model, optFns ...func(o *Options)) *Runner {
	opts := Options{
		EnableStreaming: true,
		EventBufferSize: 100,
		SessionStore:    session.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Runner{
		name:            name,
		llm:             llm,
		enableStreaming: opts.EnableStreaming,
		eventBufferSize: opts.EventBufferSize,
		sessionStore:    opts.SessionStore,
		logger:          opts.Logger,
	}
}

// Name returns the agent name events are authored under.
func (r *Runner) Name() string { return r.name }

// SessionStore exposes the backing store, e.g. for best-effort session
// pre-creation by orchestrators.
func (r *Runner) SessionStore() core.SessionStore { return r.sessionStore }

// Run starts an asynchronous model invocation. See core.Runner for channel
// semantics.
func (r *Runner) Run(
	ctx context.Context,
	key core.SessionKey,
	userContent core.Content,
) (string, <-chan core.Event, <-chan error, error) {
	if _, err := r.sessionStore.Get(key); err != nil {
		return "", nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	runID := core.NewID()

	userEvent := core.NewUserContentEvent(runID, &userContent)
	if err := r.sessionStore.AppendEvent(key, userEvent); err != nil {
		return "", nil, nil, fmt.Errorf("failed to append user event: %w", err)
	}

	eventsCh := make(chan core.Event, r.eventBufferSize)
	errorsCh := make(chan error, 1)

	go func() {
		defer func() { close(eventsCh); close(errorsCh) }()

		req := model.Request{
			Contents: []core.Content{userContent},
			Stream:   r.enableStreaming,
		}

		respCh, errCh := r.llm.Generate(ctx, req)
		r.processResponses(ctx, key, runID, respCh, errCh, eventsCh, errorsCh)
	}()

	return runID, eventsCh, errorsCh, nil
}

// processResponses converts model responses to events, persisting finals and
// relaying everything to the caller in order.
func (r *Runner) processResponses(
	ctx context.Context,
	key core.SessionKey,
	runID string,
	respCh <-chan model.Response,
	errCh <-chan error,
	eventsCh chan<- core.Event,
	errorsCh chan<- error,
) {
	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return
		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			ev := r.toEvent(runID, resp)
			if !ev.IsPartial() {
				if err := r.sessionStore.AppendEvent(key, ev); err != nil {
					select {
					case <-ctx.Done():
					case errorsCh <- fmt.Errorf("failed to append event to session: %w", err):
					}
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case eventsCh <- ev:
				r.logger.Debug("runner delivered event", "event_id", ev.ID, "session", key.String())
			}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				select {
				case <-ctx.Done():
				case errorsCh <- fmt.Errorf("model generation failed: %w", err):
				}
				return
			}
		}
	}
}

// toEvent converts a model response into a runner-authored event.
func (r *Runner) toEvent(runID string, resp model.Response) core.Event {
	ev := core.NewEvent(runID, r.name)
	content := resp.Content
	ev.Content = &content
	if resp.Partial {
		partial := true
		ev.Partial = &partial
	} else {
		complete := true
		ev.TurnComplete = &complete
	}
	return ev
}
