// Package consultmesh provides a high-level façade over the consultation
// service: persona task managers, model backends, session and artifact stores
// wired together from a single configuration. Most applications interact with
// this package by:
//  1. Creating a Service via New() (optionally overriding default in-memory stores)
//  2. Processing tasks directly (ProcessTask) or serving HTTP (NewServer)
//
// All defaults are safe for local development: the mock model backend answers
// without credentials and all state lives in memory.
package consultmesh

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/consultmesh/artifact"
	"github.com/hupe1980/consultmesh/config"
	"github.com/hupe1980/consultmesh/consult"
	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/logging"
	"github.com/hupe1980/consultmesh/model"
	"github.com/hupe1980/consultmesh/model/anthropic"
	"github.com/hupe1980/consultmesh/model/ollama"
	"github.com/hupe1980/consultmesh/model/openai"
	"github.com/hupe1980/consultmesh/runner"
	"github.com/hupe1980/consultmesh/server"
	"github.com/hupe1980/consultmesh/session"
)

// Options configures the Service instance.
type Options struct {
	// Stores (defaults to in-memory implementations if not provided)
	SessionStore  core.SessionStore
	ArtifactStore core.ArtifactStore

	// Model overrides the backend selected from the configuration. Useful for
	// tests that inject a MockModel.
	Model model.Model

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Service aggregates the persona task managers sharing one model backend and
// one set of stores.
type Service struct {
	cfg       config.Config
	managers  map[string]*consult.TaskManager
	strategic *consult.TaskManager
	artifacts core.ArtifactStore
	logger    logging.Logger
}

// New creates a Service from configuration with optional overrides. Any unset
// store is initialized with an in-memory implementation.
func New(cfg config.Config, optFns ...func(o *Options)) (*Service, error) {
	opts := Options{
		SessionStore:  session.NewInMemoryStore(),
		ArtifactStore: artifact.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	llm := opts.Model
	if llm == nil {
		built, err := buildModel(cfg)
		if err != nil {
			return nil, err
		}
		llm = built
	}

	s := &Service{
		cfg:       cfg,
		managers:  map[string]*consult.TaskManager{},
		artifacts: opts.ArtifactStore,
		logger:    opts.Logger,
	}

	personas := []consult.Persona{
		consult.NewStrategicPersona(),
		consult.NewCapacityPersona(),
		consult.NewRiskPersona(),
		consult.NewEngagementPersona(),
	}
	for _, p := range personas {
		r := runner.New(p.AgentName, llm, func(o *runner.Options) {
			o.SessionStore = opts.SessionStore
			o.EnableStreaming = false
			o.Logger = opts.Logger
		})
		tm := consult.NewTaskManager(p, r, opts.SessionStore, cfg.AppName, func(o *consult.TaskManagerOptions) {
			o.Artifacts = opts.ArtifactStore
			o.Logger = opts.Logger
		})
		s.managers[p.Key] = tm
		if p.Key == "strategic" {
			s.strategic = tm
		}
	}

	return s, nil
}

// Manager returns the task manager for a persona key ("strategic",
// "capacity", "risk", "engagement") or nil when unknown.
func (s *Service) Manager(key string) *consult.TaskManager { return s.managers[key] }

// ProcessTask routes one message to the named persona. An unknown persona key
// falls back to the strategic consultant.
func (s *Service) ProcessTask(ctx context.Context, personaKey, message string, rawContext map[string]any, sessionID string) consult.Envelope {
	tm := s.managers[personaKey]
	if tm == nil {
		tm = s.strategic
	}
	return tm.ProcessTask(ctx, message, rawContext, sessionID)
}

// NewServer builds the HTTP surface serving all personas, with the strategic
// consultant on the default run endpoint.
func (s *Service) NewServer() *server.Server {
	var extra []*consult.TaskManager
	for key, tm := range s.managers {
		if key != "strategic" {
			extra = append(extra, tm)
		}
	}
	return server.New(s.cfg.AppName, s.strategic, extra, func(o *server.Options) {
		o.Artifacts = s.artifacts
		o.Logger = s.logger
		o.Addr = s.cfg.Addr()
	})
}

// buildModel selects the model backend from configuration. Credentials are
// taken from the provider SDK's environment conventions.
func buildModel(cfg config.Config) (model.Model, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return model.NewMockModel("mock-consultant", "mock"), nil
	case config.ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
		}), nil
	case config.ProviderOllama:
		return ollama.NewModel(func(o *ollama.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			if cfg.OllamaHost != "" {
				o.HostURL = cfg.OllamaHost
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
