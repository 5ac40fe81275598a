// Package core defines the shared primitives of consultmesh: events,
// role-based content parts, sessions scoped by (app, user, session) and the
// store/runner contracts the rest of the system is built against. It contains
// no consultation logic of its own; stage classification and prompt assembly
// live in the consult package, model invocation plumbing in runner.
package core
