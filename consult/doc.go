// Package consult implements the consultation domain: persona definitions,
// conversation stage classification, prompt assembly, response classification
// and the per-persona TaskManager orchestrating a single process-task request
// against the model runner.
//
// The stage classifiers are deliberately heuristic keyword machines - they
// make no claim of understanding user intent beyond substring membership, and
// every stage decision is recomputed from scratch on each call so no stage
// state is ever stored.
package consult
