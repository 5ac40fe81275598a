package consult

import "strings"

// Stage labels the current step of a scripted consultation flow. It is a pure
// function of (current message, history), recomputed on every call.
type Stage string

// Stages of the history-aware strategic progression.
const (
	StageInitialEngagement Stage = "initial_engagement"
	StageRoleContext       Stage = "role_context_gathering"
	StagePerformanceData   Stage = "performance_data_gathering"
	StageAnalysis          Stage = "analysis_phase"
	StageComplete          Stage = "consultation_complete"
)

// Stages shared by the message-only classifiers.
const (
	StageIntroduction Stage = "INTRODUCTION"
)

// Capacity persona stages.
const (
	StageStaffingAssessment  Stage = "STAFFING_ASSESSMENT"
	StageSkillsAnalysis      Stage = "SKILLS_ANALYSIS"
	StageWorkflowEfficiency  Stage = "WORKFLOW_EFFICIENCY"
	StageRecommendations     Stage = "RECOMMENDATIONS"
	StageGeneralCapacity     Stage = "GENERAL_CAPACITY"
)

// Risk persona stages.
const (
	StageRiskIdentification Stage = "RISK_IDENTIFICATION"
	StageRiskAnalysis       Stage = "RISK_ANALYSIS"
	StageMitigationPlanning Stage = "MITIGATION_PLANNING"
	StageRiskProfiling      Stage = "RISK_PROFILING"
	StageGeneralRisk        Stage = "GENERAL_RISK"
)

// Engagement persona stages.
const (
	StageStakeholderMapping     Stage = "STAKEHOLDER_MAPPING"
	StageEngagementStrategy     Stage = "ENGAGEMENT_STRATEGY"
	StageImplementationPlanning Stage = "IMPLEMENTATION_PLANNING"
	StageStrategyRefinement     Stage = "STRATEGY_REFINEMENT"
	StageGeneralEngagement      Stage = "GENERAL_ENGAGEMENT"
)

// Strategic persona stages for its message-only alternate mode.
const (
	StagePriorityDiscovery Stage = "PRIORITY_DISCOVERY"
	StageStrategicAnalysis Stage = "STRATEGIC_ANALYSIS"
	StageActionPlanning    Stage = "ACTION_PLANNING"
	StageGeneralStrategy   Stage = "GENERAL_STRATEGY"
)

// Classifier maps (current message, conversation history) onto a Stage. It
// must be total: every input yields a valid stage, never an error.
type Classifier interface {
	Classify(message string, history []Turn) Stage
}

// KeywordRule pairs an ordered keyword list with the stage it selects.
type KeywordRule struct {
	Stage    Stage
	Keywords []string
}

// KeywordClassifier is the message-only strategy: it inspects solely the
// current message for keyword membership, evaluating rules in declaration
// order with first match winning. History is ignored entirely, so the same
// message always classifies identically regardless of conversation depth.
//
// Rule order is significant - keyword sets overlap across categories, so
// reordering rules changes observable stage outputs.
type KeywordClassifier struct {
	Rules   []KeywordRule
	Default Stage
}

// Classify implements Classifier. Matching is case-insensitive substring
// containment; no match yields the default stage.
func (c KeywordClassifier) Classify(message string, _ []Turn) Stage {
	lower := strings.ToLower(message)
	for _, rule := range c.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Stage
			}
		}
	}
	return c.Default
}

// greetingKeywords start every message-only table; a greeting re-enters the
// introduction stage at any depth.
var greetingKeywords = []string{"hello", "hi", "hey", "start", "begin", "g'day"}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
