// Package ollama provides a model wrapper for a local Ollama runtime,
// allowing consultations to run against open-source models without any
// hosted API dependency.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/model"
)

// DefaultHostURL is used when no Ollama server URL is configured or the
// configured URL fails to parse.
const DefaultHostURL = "http://localhost:11434"

// Options configures the Ollama model adapter.
type Options struct {
	Model       string
	HostURL     string
	Temperature float64
	NumPredict  int
}

// Model wraps the Ollama chat API behind the generic model.Model interface.
type Model struct {
	client *api.Client
	opts   Options
}

// NewModel creates a new Ollama model. An invalid HostURL falls back to the
// local default rather than failing construction.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       "llama3.1",
		HostURL:     DefaultHostURL,
		Temperature: 0.7,
		NumPredict:  4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	parsedURL, err := url.Parse(opts.HostURL)
	if err != nil || parsedURL.Host == "" {
		parsedURL, _ = url.Parse(DefaultHostURL)
	}

	return &Model{
		client: api.NewClient(parsedURL, http.DefaultClient),
		opts:   opts,
	}
}

// Generate implements generation against the Ollama chat endpoint. Partial
// chunks are forwarded when req.Stream is set, followed by the accumulated
// final response.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		chatReq := &api.ChatRequest{
			Model:    m.opts.Model,
			Messages: m.buildMessages(req),
			Stream:   &req.Stream,
			Options: map[string]any{
				"temperature": m.opts.Temperature,
				"num_predict": m.opts.NumPredict,
			},
		}

		var textBuilder strings.Builder
		err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			if resp.Message.Content != "" {
				textBuilder.WriteString(resp.Message.Content)
				if req.Stream && !resp.Done {
					out <- model.Response{
						Partial: true,
						Content: core.Content{
							Role:  core.RoleModel,
							Parts: []core.Part{core.TextPart{Text: resp.Message.Content}},
						},
					}
				}
			}
			if resp.Done {
				out <- model.Response{
					Content: core.Content{
						Role:  core.RoleModel,
						Parts: []core.Part{core.TextPart{Text: textBuilder.String()}},
					},
					FinishReason: doneReason(resp),
				}
			}
			return nil
		})
		if err != nil {
			errCh <- fmt.Errorf("ollama api error: %w", err)
		}
	}()

	return out, errCh
}

// buildMessages converts consultmesh contents to Ollama's message format.
func (m *Model) buildMessages(req model.Request) []api.Message {
	var messages []api.Message
	if req.Instructions != "" {
		messages = append(messages, api.Message{Role: "system", Content: req.Instructions})
	}
	for _, c := range req.Contents {
		text := c.Text()
		if text == "" {
			continue
		}
		switch c.Role {
		case "system":
			messages = append(messages, api.Message{Role: "system", Content: text})
		case core.RoleModel:
			messages = append(messages, api.Message{Role: "assistant", Content: text})
		default:
			messages = append(messages, api.Message{Role: "user", Content: text})
		}
	}
	return messages
}

func doneReason(resp api.ChatResponse) string {
	if resp.DoneReason != "" {
		return resp.DoneReason
	}
	return "stop"
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "ollama"}
}
