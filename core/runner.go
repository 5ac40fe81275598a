package core

import "context"

// Runner defines the orchestration contract for executing a model invocation
// within a conversational session.
//
// Semantics & Guarantees:
//   - Event Ordering: events emitted within a single run are delivered in the
//     order produced by the underlying model stream.
//   - Channel Lifecycle: the returned events channel is closed after the run
//     completes (success, error, or cancellation). The error channel carries
//     at most one terminal error then closes (buffered size 1).
//   - Cancellation: context cancellation stops further event emission. The
//     runner imposes no deadline of its own.
//   - Partial Events: implementations MAY emit partial events; consumers
//     should rely on IsPartial()/IsFinalResponse() to pick the final reply.
type Runner interface {
	// Run initiates an asynchronous model invocation bound to the session key
	// using the provided userContent as the sole new input turn. It returns:
	//   runID    - stable identifier for tracking
	//   eventsCh - ordered stream of events (closed on completion)
	//   errorsCh - terminal error channel (size 1, closed after send/none)
	// The immediate error return covers startup failures (e.g. session load).
	Run(ctx context.Context, key SessionKey, userContent Content) (string, <-chan Event, <-chan error, error)
}
