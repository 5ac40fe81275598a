// Package model defines the language model abstraction used by the runner.
// Providers adapt their native APIs onto the Model interface; the rest of the
// system only ever sees normalized Request/Response values.
package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/consultmesh/core"
)

// Request captures the normalized model input produced by the runner. The
// assembled consultation prompt travels in Instructions-free form: it is the
// sole user content turn, matching how the upstream runtime is driven.
type Request struct {
	Instructions string         `json:"instructions,omitempty"` // Optional system instructions
	Contents     []core.Content `json:"contents"`               // Conversation turns converted to provider messages
	Stream       bool           `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model.
type Response struct {
	ID           string       `json:"id"`
	Partial      bool         `json:"partial"`
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "ollama", "mock"
}

// Model is the minimal interface required to drive generation. Generate
// returns buffered channels; the response channel is closed after the final
// chunk, the error channel carries at most one terminal error.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses resolve in priority order: an injected error, the scripted queue,
// a canned per-prompt response, then a generic echo.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	queue     []string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// QueueResponse appends a scripted completion consumed in FIFO order
// regardless of input, which suits long composite prompts.
func (m *MockModel) QueueResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, response)
}

// FailWith makes every subsequent Generate call emit err and no content.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Generate implements Model; emits optional streaming char chunks then the
// final response.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		m.mu.Lock()
		injected := m.err
		var full string
		if len(m.queue) > 0 {
			full = m.queue[0]
			m.queue = m.queue[1:]
		}
		m.mu.Unlock()

		if injected != nil {
			errCh <- injected
			return
		}
		if len(req.Contents) == 0 {
			errCh <- fmt.Errorf("no contents provided")
			return
		}

		if full == "" {
			last := req.Contents[len(req.Contents)-1]
			inputText := last.Text()
			m.mu.Lock()
			full = m.responses[inputText]
			m.mu.Unlock()
			if full == "" {
				full = fmt.Sprintf("Mock response to: %s", inputText)
			}
		}

		if req.Stream {
			for _, r := range full {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{
					Partial: true,
					Content: core.Content{
						Role:  core.RoleModel,
						Parts: []core.Part{core.TextPart{Text: string(r)}},
					},
				}:
				}
			}
		}
		respCh <- Response{
			Content: core.Content{
				Role:  core.RoleModel,
				Parts: []core.Part{core.TextPart{Text: full}},
			},
			FinishReason: "stop",
		}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
