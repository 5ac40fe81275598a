package consult

import "strings"

// SpecialResponse describes a generated response that carries completion
// semantics beyond plain text. Fields are merged into the envelope data
// alongside the always-present keys, never replacing them.
type SpecialResponse struct {
	Kind   string
	Fields map[string]any
}

// Special response kinds, in detection priority order.
const (
	KindAnalysis   = "analysis"
	KindActionPlan = "action_plan"
	KindClosing    = "closing"
)

// ClassifySpecialResponse inspects generated text for completion markers.
// Detection is priority ordered and first-match-wins:
//
//  1. analysis markers ("priority_analysis_tool" verbatim, or
//     "analysis_result" case-insensitively)
//  2. action plan markers ("generate_action_plan_tool" verbatim, or
//     "action_plan" case-insensitively)
//  3. closing markers ("consultation complete", "summary", "next steps",
//     all case-insensitively)
//
// A response containing both an action plan marker and a closing marker is an
// action plan. Returns nil for ordinary responses.
func ClassifySpecialResponse(generated string) *SpecialResponse {
	lower := strings.ToLower(generated)

	if strings.Contains(generated, "priority_analysis_tool") || strings.Contains(lower, "analysis_result") {
		return &SpecialResponse{
			Kind: KindAnalysis,
			Fields: map[string]any{
				"analysis_completed": true,
				"stage":              "ANALYSIS_COMPLETE",
			},
		}
	}

	if strings.Contains(generated, "generate_action_plan_tool") || strings.Contains(lower, "action_plan") {
		return &SpecialResponse{
			Kind: KindActionPlan,
			Fields: map[string]any{
				"action_plan_generated": true,
				"stage":                 "ACTION_PLAN_COMPLETE",
			},
		}
	}

	if containsAny(lower, []string{"consultation complete", "summary", "next steps"}) {
		return &SpecialResponse{
			Kind: KindClosing,
			Fields: map[string]any{
				"consultation_complete": true,
				"follow_up_recommended": true,
			},
		}
	}

	return nil
}
