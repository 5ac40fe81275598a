package consult

import "strings"

// ProgressionClassifier is the history-aware strategy used by the strategic
// persona. It walks the full history to decide how far the scripted
// consultation has progressed:
//
//  1. Completion short-circuit (highest priority): if the most recent model
//     turn carried a closing marker AND the current message carries a
//     farewell marker, the consultation is complete.
//  2. Forced advance: once the history exceeds MaxExchanges turns the
//     classifier returns the analysis stage regardless of content, bounding
//     conversation length.
//  3. Otherwise the history is folded into per-question booleans: each model
//     turn is scanned for the required question fingerprints, counting at
//     most one match per category, and the counts are thresholded into the
//     gathering stages.
//
// The terminal stage is reachable only via rule 1; the analysis stage is a
// quasi-terminal absorption state - every later turn re-evaluates but rules
// 2 and 3 keep returning it unless a farewell is detected.
type ProgressionClassifier struct {
	// ClosingMarkers mark a model turn that wrapped up with deliverables.
	ClosingMarkers []string
	// FarewellMarkers mark a user message acknowledging the close.
	FarewellMarkers []string
	// RoleContextFingerprints identify the required context questions, one
	// substring per question category.
	RoleContextFingerprints []string
	// PerformanceFingerprints identify the follow-up performance questions.
	PerformanceFingerprints []string
	// MaxExchanges caps total history length before analysis is forced.
	MaxExchanges int
}

// NewStrategicProgressionClassifier returns the classifier configured with
// the strategic persona's scripted question sequence.
func NewStrategicProgressionClassifier() *ProgressionClassifier {
	return &ProgressionClassifier{
		ClosingMarkers: []string{
			"action plan",
			"strategic analysis",
			"recommendations for next steps",
			"pleasure helping",
		},
		FarewellMarkers: []string{
			"thanks", "thank you", "bye", "goodbye", "see you",
			"great", "perfect", "excellent",
		},
		RoleContextFingerprints: []string{
			"current position",
			"been with",
			"direct reports",
			"internal stakeholders",
			"external stakeholders",
		},
		PerformanceFingerprints: []string{
			"performance data",
			"additional data",
		},
		MaxExchanges: 16,
	}
}

// Classify implements Classifier. Empty history yields the initial stage.
func (c *ProgressionClassifier) Classify(message string, history []Turn) Stage {
	if len(history) == 0 {
		return StageInitialEngagement
	}

	msg := strings.ToLower(message)
	if containsAny(c.lastModelMessage(history), c.ClosingMarkers) && containsAny(msg, c.FarewellMarkers) {
		return StageComplete
	}

	if len(history) >= c.MaxExchanges {
		return StageAnalysis
	}

	contextAsked, performanceAsked := c.countAskedQuestions(history)
	switch {
	case contextAsked < len(c.RoleContextFingerprints):
		return StageRoleContext
	case performanceAsked < len(c.PerformanceFingerprints):
		return StagePerformanceData
	default:
		return StageAnalysis
	}
}

// lastModelMessage returns the lowercased text of the most recent model turn,
// or "" when the model has not spoken yet.
func (c *ProgressionClassifier) lastModelMessage(history []Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].IsModel() {
			return strings.ToLower(history[i].Message)
		}
	}
	return ""
}

// countAskedQuestions folds the history into per-category booleans so each
// turn is scanned once and each question counts at most once however many
// times the model repeated it.
func (c *ProgressionClassifier) countAskedQuestions(history []Turn) (int, int) {
	contextSeen := make([]bool, len(c.RoleContextFingerprints))
	performanceSeen := make([]bool, len(c.PerformanceFingerprints))

	for _, turn := range history {
		if !turn.IsModel() {
			continue
		}
		lower := strings.ToLower(turn.Message)
		for i, fp := range c.RoleContextFingerprints {
			if !contextSeen[i] && strings.Contains(lower, fp) {
				contextSeen[i] = true
			}
		}
		for i, fp := range c.PerformanceFingerprints {
			if !performanceSeen[i] && strings.Contains(lower, fp) {
				performanceSeen[i] = true
			}
		}
	}

	return countTrue(contextSeen), countTrue(performanceSeen)
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
