package consult

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySpecialResponseOrdinary(t *testing.T) {
	assert.Nil(t, ClassifySpecialResponse("How many direct reports do you have?"))
	assert.Nil(t, ClassifySpecialResponse(""))
}

func TestClassifySpecialResponseAnalysis(t *testing.T) {
	sr := ClassifySpecialResponse("Invoking priority_analysis_tool with your priorities.")
	if assert.NotNil(t, sr) {
		assert.Equal(t, KindAnalysis, sr.Kind)
		assert.Equal(t, true, sr.Fields["analysis_completed"])
		assert.Equal(t, "ANALYSIS_COMPLETE", sr.Fields["stage"])
	}

	sr = ClassifySpecialResponse("Here is the ANALYSIS_RESULT you asked for.")
	if assert.NotNil(t, sr) {
		assert.Equal(t, KindAnalysis, sr.Kind)
	}
}

func TestClassifySpecialResponseActionPlan(t *testing.T) {
	sr := ClassifySpecialResponse("Your Action_Plan covers three initiatives.")
	if assert.NotNil(t, sr) {
		assert.Equal(t, KindActionPlan, sr.Kind)
		assert.Equal(t, true, sr.Fields["action_plan_generated"])
		assert.Equal(t, "ACTION_PLAN_COMPLETE", sr.Fields["stage"])
	}
}

func TestClassifySpecialResponseClosing(t *testing.T) {
	for _, text := range []string{
		"Consultation complete, it was a pleasure.",
		"Here is a summary of what we covered.",
		"These are your next steps.",
	} {
		sr := ClassifySpecialResponse(text)
		if assert.NotNil(t, sr, "text %q", text) {
			assert.Equal(t, KindClosing, sr.Kind)
			assert.Equal(t, true, sr.Fields["consultation_complete"])
			assert.Equal(t, true, sr.Fields["follow_up_recommended"])
		}
	}
}

func TestClassifySpecialResponsePrecedence(t *testing.T) {
	// Action plan markers outrank closing markers when both are present.
	sr := ClassifySpecialResponse("Here is your action_plan followed by a summary and next steps.")
	if assert.NotNil(t, sr) {
		assert.Equal(t, KindActionPlan, sr.Kind)
		assert.NotContains(t, sr.Fields, "consultation_complete")
	}

	// Analysis markers outrank everything.
	sr = ClassifySpecialResponse("analysis_result plus an action_plan and next steps")
	if assert.NotNil(t, sr) {
		assert.Equal(t, KindAnalysis, sr.Kind)
	}
}
