package consult

import "strings"

// Widget types surfaced in envelope data.
const (
	WidgetHTML   = "html"
	WidgetChoice = "choice"
)

// Widget is an interactive payload extracted from generated text for
// frontends that can render richer responses than plain prose.
type Widget struct {
	Type string `json:"type"`
	// HTML carries the complete document for WidgetHTML.
	HTML string `json:"html,omitempty"`
	// Question and Options carry the choice prompt for WidgetChoice.
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
}

const (
	radioOpen  = "[RADIO_BUTTONS]"
	radioClose = "[/RADIO_BUTTONS]"
)

// ExtractWidget scans generated text for interactive payloads. Two forms are
// recognized:
//
//   - A full HTML document (text starting with an HTML doctype, any case).
//     The document is passed through byte-for-byte; displayMessage is a short
//     stand-in since the raw document is not chat text.
//   - An inline [RADIO_BUTTONS]...[/RADIO_BUTTONS] block of hyphen-prefixed
//     options. The block is removed from the display text and the last
//     question sentence before the block becomes the widget question.
//
// Ordinary text returns (nil, text) unchanged.
func ExtractWidget(text string) (*Widget, string) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= len("<!doctype html") &&
		strings.EqualFold(trimmed[:len("<!doctype html")], "<!doctype html") {
		return &Widget{Type: WidgetHTML, HTML: text},
			"I've prepared an interactive view for you below."
	}

	open := strings.Index(text, radioOpen)
	if open < 0 {
		return nil, text
	}
	rest := text[open+len(radioOpen):]
	end := strings.Index(rest, radioClose)
	if end < 0 {
		return nil, text
	}

	options := parseRadioOptions(rest[:end])
	if len(options) == 0 {
		return nil, text
	}

	before := text[:open]
	after := rest[end+len(radioClose):]
	clean := strings.TrimSpace(strings.TrimSpace(before) + " " + strings.TrimSpace(after))

	return &Widget{
		Type:     WidgetChoice,
		Question: lastQuestion(before),
		Options:  options,
	}, clean
}

// asData flattens the widget into the key/value shape stored in structured
// event parts.
func (w *Widget) asData() map[string]any {
	data := map[string]any{"type": w.Type}
	if w.HTML != "" {
		data["html"] = w.HTML
	}
	if w.Question != "" {
		data["question"] = w.Question
	}
	if len(w.Options) > 0 {
		data["options"] = w.Options
	}
	return data
}

// parseRadioOptions collects hyphen-prefixed lines from a block body.
func parseRadioOptions(body string) []string {
	var options []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") {
			opt := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			if opt != "" {
				options = append(options, opt)
			}
		}
	}
	return options
}

// lastQuestion returns the final question-mark-terminated sentence in the
// text preceding a widget block, or "" when there is none.
func lastQuestion(before string) string {
	before = strings.TrimSpace(before)
	end := strings.LastIndex(before, "?")
	if end < 0 {
		return ""
	}
	start := 0
	for i := end - 1; i >= 0; i-- {
		if c := before[i]; c == '.' || c == '!' || c == '?' || c == '\n' {
			start = i + 1
			break
		}
	}
	return strings.TrimSpace(before[start : end+1])
}
