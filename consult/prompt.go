package consult

import (
	"fmt"
	"strings"
)

// historyWindow is how many trailing turns the prompt reproduces verbatim.
const historyWindow = 5

// noHistoryPlaceholder keeps the history section structurally present on the
// first turn so the model always sees the same prompt shape.
const noHistoryPlaceholder = "No previous conversation history."

// BuildPrompt assembles the full instruction text for one model call. The
// prompt is a deterministic function of its inputs: persona identity, the
// stakeholder snapshot, a trailing window of history, the stage directive,
// the persona's facts and guidelines, and the current message. Calling it
// twice with the same inputs yields byte-identical output.
func BuildPrompt(p Persona, stage Stage, sc StakeholderContext, message string) string {
	var b strings.Builder

	b.WriteString(p.Identity)
	b.WriteString("\n\nCONSULTATION CONTEXT:\n")
	b.WriteString("CURRENT SITUATION:\n")
	fmt.Fprintf(&b, "- Department: %s\n", sc.Department)
	fmt.Fprintf(&b, "- Stakeholder: %s (%s)\n", sc.DisplayName(), sc.Role)
	fmt.Fprintf(&b, "- User ID: %s\n", sc.UserID)
	fmt.Fprintf(&b, "- Conversation stage: %s\n", stage)
	if focus := p.FocusFor(message, sc.History); focus != "" {
		fmt.Fprintf(&b, "- Focus area: %s\n", focus)
	}

	b.WriteString("\nRECENT CONVERSATION:\n")
	b.WriteString(renderHistory(sc.History))

	b.WriteString("\nYOUR CURRENT TASK:\n")
	b.WriteString(p.DirectiveFor(stage))
	b.WriteString("\n")

	if p.Facts != "" {
		b.WriteString("\nBACKGROUND KNOWLEDGE:\n")
		b.WriteString(p.Facts)
		b.WriteString("\n")
	}
	if p.Guidelines != "" {
		b.WriteString("\nRESPONSE GUIDELINES:\n")
		b.WriteString(p.Guidelines)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCURRENT USER MESSAGE: %q\n", message)

	if forced, ok := p.ForcedDirectives[stage]; ok {
		b.WriteString("\n")
		b.WriteString(forced)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nRespond as %s would, staying in character and following the task above.", p.DisplayName)
	return b.String()
}

// renderHistory reproduces the last historyWindow turns as USER:/MODEL: lines.
func renderHistory(history []Turn) string {
	if len(history) == 0 {
		return noHistoryPlaceholder + "\n"
	}
	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, turn := range history[start:] {
		label := "USER"
		if turn.IsModel() {
			label = "MODEL"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Message)
	}
	return b.String()
}
