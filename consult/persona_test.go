package consult

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every stage a persona's classifier can produce must carry a directive so
// prompts never fall through to the generic default in normal operation.
func TestPersonaDirectiveCoverage(t *testing.T) {
	tests := []struct {
		name    string
		persona Persona
		stages  []Stage
	}{
		{
			name:    "strategic progression",
			persona: NewStrategicPersona(),
			stages: []Stage{
				StageInitialEngagement, StageRoleContext, StagePerformanceData,
				StageAnalysis, StageComplete,
			},
		},
		{
			name: "strategic message-only",
			persona: NewStrategicPersona(func(o *StrategicOptions) {
				o.MessageOnly = true
			}),
			stages: []Stage{
				StageIntroduction, StagePriorityDiscovery, StageStrategicAnalysis,
				StageActionPlanning, StageGeneralStrategy,
			},
		},
		{
			name:    "capacity",
			persona: NewCapacityPersona(),
			stages: []Stage{
				StageIntroduction, StageStaffingAssessment, StageSkillsAnalysis,
				StageWorkflowEfficiency, StageRecommendations,
			},
		},
		{
			name:    "risk",
			persona: NewRiskPersona(),
			stages: []Stage{
				StageIntroduction, StageRiskIdentification, StageRiskAnalysis,
				StageMitigationPlanning, StageRiskProfiling,
			},
		},
		{
			name:    "engagement",
			persona: NewEngagementPersona(),
			stages: []Stage{
				StageIntroduction, StageStakeholderMapping, StageEngagementStrategy,
				StageImplementationPlanning, StageStrategyRefinement,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, stage := range tt.stages {
				assert.NotEmpty(t, tt.persona.Directives[stage], "missing directive for stage %s", stage)
			}
			assert.NotEmpty(t, tt.persona.DefaultDirective)
			assert.NotEmpty(t, tt.persona.Fallback)
		})
	}
}

func TestStrategicClassifierModes(t *testing.T) {
	progression := NewStrategicPersona()
	messageOnly := NewStrategicPersona(func(o *StrategicOptions) { o.MessageOnly = true })

	// Same message, different strategies, different stage vocabularies.
	assert.Equal(t, StageInitialEngagement, progression.Classifier.Classify("action planning please", nil))
	assert.Equal(t, StageActionPlanning, messageOnly.Classifier.Classify("action planning please", nil))
}

func TestFocusForScansRecentHistory(t *testing.T) {
	p := NewStrategicPersona()

	history := []Turn{
		{Sender: "user", Message: "our budget keeps shrinking"},
		{Sender: "ai", Message: "Tell me more."},
	}
	assert.Equal(t, "resource_management", p.FocusFor("what should we do", history))

	// Turns older than the window are ignored.
	old := append([]Turn{}, history...)
	old = append(old,
		Turn{Sender: "user", Message: "anyway"},
		Turn{Sender: "ai", Message: "Go on."},
		Turn{Sender: "user", Message: "nothing specific"},
	)
	assert.Equal(t, "strategic_planning", p.FocusFor("what should we do", old))
}

func TestFocusForTableOrder(t *testing.T) {
	p := NewStrategicPersona()
	// Message hits both student and budget keywords; student rule is first.
	assert.Equal(t, "student_outcomes", p.FocusFor("student funding is tight", nil))
}

func TestFocusForWithoutFocusAreas(t *testing.T) {
	assert.Empty(t, NewCapacityPersona().FocusFor("student funding", nil))
}

func TestPersonaAgentTypes(t *testing.T) {
	assert.Empty(t, NewStrategicPersona().AgentType)
	assert.Equal(t, "capacity_analysis", NewCapacityPersona().AgentType)
	assert.Equal(t, "risk_assessment", NewRiskPersona().AgentType)
	assert.Equal(t, "engagement_planning", NewEngagementPersona().AgentType)
}
