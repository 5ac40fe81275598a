package consult

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier(t *testing.T) {
	classifier := KeywordClassifier{
		Rules: []KeywordRule{
			{Stage: StageIntroduction, Keywords: greetingKeywords},
			{Stage: StageStaffingAssessment, Keywords: []string{"staff", "workload"}},
			{Stage: StageSkillsAnalysis, Keywords: []string{"skill", "gap"}},
		},
		Default: StageGeneralCapacity,
	}

	t.Run("first match wins in rule order", func(t *testing.T) {
		// "skill" and "staff" both occur; the staffing rule is declared first.
		assert.Equal(t, StageStaffingAssessment, classifier.Classify("our staff lack skill coverage", nil))
	})

	t.Run("matching is case-insensitive substring", func(t *testing.T) {
		assert.Equal(t, StageSkillsAnalysis, classifier.Classify("SKILLS are the issue", nil))
	})

	t.Run("no match yields default", func(t *testing.T) {
		assert.Equal(t, StageGeneralCapacity, classifier.Classify("what is the weather", nil))
	})

	t.Run("history is ignored", func(t *testing.T) {
		long := make([]Turn, 40)
		for i := range long {
			long[i] = Turn{Sender: "user", Message: "skills and gaps everywhere"}
		}
		assert.Equal(t, StageIntroduction, classifier.Classify("hello again", nil))
		assert.Equal(t, StageIntroduction, classifier.Classify("hello again", long))
	})
}

func TestCapacityClassifierStages(t *testing.T) {
	p := NewCapacityPersona()

	tests := []struct {
		message string
		want    Stage
	}{
		{"Hello there", StageIntroduction},
		{"Can you rate staff recruitment challenges?", StageStaffingAssessment},
		{"We have a training gap in the team leads", StageStaffingAssessment},
		{"There is a competency shortfall", StageSkillsAnalysis},
		{"Our approval process has a bottleneck", StageWorkflowEfficiency},
		{"What would you recommend we change?", StageRecommendations},
		{"Tell me about capacity in general terms", StageGeneralCapacity},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Classifier.Classify(tt.message, nil), "message %q", tt.message)
	}
}

func TestRiskClassifierStages(t *testing.T) {
	p := NewRiskPersona()

	assert.Equal(t, StageIntroduction, p.Classifier.Classify("hi Alex", nil))
	assert.Equal(t, StageRiskIdentification, p.Classifier.Classify("we face a compliance threat", nil))
	assert.Equal(t, StageRiskAnalysis, p.Classifier.Classify("what is the likelihood of that", nil))
	assert.Equal(t, StageMitigationPlanning, p.Classifier.Classify("we need a contingency", nil))
	assert.Equal(t, StageGeneralRisk, p.Classifier.Classify("let's talk about our department", nil))
}

func TestEngagementClassifierStages(t *testing.T) {
	p := NewEngagementPersona()

	assert.Equal(t, StageIntroduction, p.Classifier.Classify("g'day Jordan", nil))
	assert.Equal(t, StageStakeholderMapping, p.Classifier.Classify("who are our key stakeholder groups", nil))
	assert.Equal(t, StageEngagementStrategy, p.Classifier.Classify("what communication channel suits them", nil))
	assert.Equal(t, StageImplementationPlanning, p.Classifier.Classify("draft a timeline with milestones", nil))
	assert.Equal(t, StageGeneralEngagement, p.Classifier.Classify("hmm not sure", nil))
}
