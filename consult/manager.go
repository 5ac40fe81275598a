package consult

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/logging"
)

// TaskManagerOptions configure optional TaskManager collaborators.
type TaskManagerOptions struct {
	// Artifacts, when set, persists generated action plan text so it can be
	// fetched later through the artifact routes.
	Artifacts core.ArtifactStore
	Logger    logging.Logger
}

// TaskManager drives one persona's consultation loop: classify the stage,
// assemble the prompt, execute the runner, pick the final response and wrap
// everything in an Envelope. It holds no per-conversation state; all state
// lives in the session store and the caller-supplied context bag.
type TaskManager struct {
	persona   Persona
	runner    core.Runner
	store     core.SessionStore
	artifacts core.ArtifactStore
	appName   string
	logger    logging.Logger
}

// NewTaskManager wires a persona to a runner and session store.
func NewTaskManager(persona Persona, runner core.Runner, store core.SessionStore, appName string, optFns ...func(o *TaskManagerOptions)) *TaskManager {
	opts := TaskManagerOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &TaskManager{
		persona:   persona,
		runner:    runner,
		store:     store,
		artifacts: opts.Artifacts,
		appName:   appName,
		logger:    opts.Logger,
	}
}

// Persona returns the persona this manager serves.
func (tm *TaskManager) Persona() Persona { return tm.persona }

// ProcessTask handles a single user message end to end and always returns an
// Envelope: any panic or failure inside the pipeline degrades to an error
// envelope rather than propagating to the transport layer.
func (tm *TaskManager) ProcessTask(ctx context.Context, message string, rawContext map[string]any, sessionID string) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			tm.logger.Error("task processing panicked", "persona", tm.persona.Key, "panic", r)
			env = tm.errorEnvelope(fmt.Errorf("%v", r), sessionID)
		}
	}()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	sc := ParseStakeholderContext(rawContext)
	stage := tm.persona.Classifier.Classify(message, sc.History)
	prompt := BuildPrompt(tm.persona, stage, sc, message)

	// Get creates the session lazily when absent, so repeat calls keep
	// accumulating the stored transcript. Persistence is best effort; the
	// consultation proceeds on the caller-supplied history alone.
	key := core.SessionKey{App: tm.appName, User: sc.UserID, ID: sessionID}
	if _, err := tm.store.Get(key); err != nil {
		tm.logger.Warn("session init failed", "session", key.String(), "error", err)
	}

	runID, events, errs, err := tm.runner.Run(ctx, key, core.NewUserText(prompt))
	if err != nil {
		tm.logger.Error("runner startup failed", "persona", tm.persona.Key, "error", err)
		return tm.errorEnvelope(err, sessionID)
	}

	generated := tm.collectFinalResponse(events, errs)
	if generated == "" {
		generated = tm.persona.Fallback
	}

	data := map[string]any{
		"conversation_stage": string(stage),
		"department":         sc.Department,
	}
	if tm.persona.AgentType != "" {
		data["agent_type"] = tm.persona.AgentType
	}
	if focus := tm.persona.FocusFor(message, sc.History); focus != "" {
		data["strategic_focus"] = focus
	}

	display := generated
	if tm.persona.InteractiveWidgets {
		if widget, clean := ExtractWidget(generated); widget != nil {
			data["interactive_widget"] = widget
			display = clean
			tm.recordWidget(key, runID, widget)
		}
	}

	if special := ClassifySpecialResponse(generated); special != nil {
		for k, v := range special.Fields {
			data[k] = v
		}
		if special.Kind == KindActionPlan && tm.artifacts != nil {
			tm.saveActionPlan(key, generated, data)
		}
	}

	return Envelope{
		Message:   display,
		Status:    StatusSuccess,
		Data:      data,
		SessionID: sessionID,
	}
}

// collectFinalResponse drains the event stream keeping the last final
// model-authored text. Stream errors are logged and yield "", which the
// caller converts into the persona fallback.
func (tm *TaskManager) collectFinalResponse(events <-chan core.Event, errs <-chan error) string {
	var last string
	for ev := range events {
		if ev.IsFinalResponse() && ev.Content != nil && ev.Content.Role == core.RoleModel {
			if text := ev.Text(); text != "" {
				last = text
			}
		}
	}
	if err, ok := <-errs; ok && err != nil {
		tm.logger.Warn("model stream failed, using fallback", "persona", tm.persona.Key, "error", err)
		return ""
	}
	return last
}

// recordWidget appends the structured widget payload to the stored session
// history so transcripts carry the interactive element alongside its text.
// Append failures are logged, never surfaced.
func (tm *TaskManager) recordWidget(key core.SessionKey, runID string, w *Widget) {
	ev := core.NewEvent(runID, tm.persona.AgentName)
	ev.Content = &core.Content{
		Role:  core.RoleModel,
		Parts: []core.Part{core.DataPart{Data: w.asData()}},
	}
	if err := tm.store.AppendEvent(key, ev); err != nil {
		tm.logger.Warn("widget event append failed", "session", key.String(), "error", err)
	}
}

// saveActionPlan persists the generated plan text and records its ID in the
// envelope data. Storage failures are logged, never surfaced to the caller.
func (tm *TaskManager) saveActionPlan(key core.SessionKey, generated string, data map[string]any) {
	artifactID := fmt.Sprintf("action_plan_%s", uuid.NewString())
	if err := tm.artifacts.Save(key, artifactID, []byte(generated)); err != nil {
		tm.logger.Warn("action plan artifact save failed", "session", key.String(), "error", err)
		return
	}
	data["action_plan_artifact"] = artifactID
}

func (tm *TaskManager) errorEnvelope(err error, sessionID string) Envelope {
	return Envelope{
		Message:   fmt.Sprintf("I apologise, but I encountered an error while processing your request: %v", err),
		Status:    StatusError,
		Data:      map[string]any{},
		SessionID: sessionID,
	}
}
