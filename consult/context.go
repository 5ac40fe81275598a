package consult

import "strings"

// Turn is one prior exchange supplied by the caller. Sender values are
// normalized loosely: "user" marks stakeholder turns, anything the frontend
// labels "ai", "model" or "assistant" marks generated turns.
type Turn struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// IsUser reports whether the turn originated from the stakeholder.
func (t Turn) IsUser() bool { return strings.EqualFold(t.Sender, "user") }

// IsModel reports whether the turn was generated by an agent.
func (t Turn) IsModel() bool {
	switch strings.ToLower(t.Sender) {
	case "ai", "model", "assistant":
		return true
	default:
		return false
	}
}

// Default values substituted for absent context keys. Missing keys degrade to
// these, never fail a request.
const (
	DefaultUserID     = "default_user"
	DefaultDepartment = "Unknown Department"
	DefaultRole       = "unknown"
	DefaultName       = "there"
)

// StakeholderContext is the parsed form of the free-form context bag callers
// attach to each request.
type StakeholderContext struct {
	UserID           string
	Name             string
	Role             string
	Department       string
	OrganisationType string
	History          []Turn

	// Raw preserves the original bag for keys this layer does not model.
	Raw map[string]any
}

// DisplayName returns the stakeholder's name or the neutral fallback used in
// prompts when the frontend supplied none.
func (sc StakeholderContext) DisplayName() string {
	if sc.Name == "" {
		return DefaultName
	}
	return sc.Name
}

// ParseStakeholderContext extracts the recognized keys (user_id, name, role,
// department, organisation_type, conversationHistory) applying documented
// defaults. It is total: any malformed value degrades to its default.
func ParseStakeholderContext(raw map[string]any) StakeholderContext {
	if raw == nil {
		raw = map[string]any{}
	}
	sc := StakeholderContext{
		UserID:           stringKey(raw, "user_id", DefaultUserID),
		Name:             stringKey(raw, "name", ""),
		Role:             stringKey(raw, "role", DefaultRole),
		Department:       stringKey(raw, "department", DefaultDepartment),
		OrganisationType: stringKey(raw, "organisation_type", ""),
		History:          parseHistory(raw["conversationHistory"]),
		Raw:              raw,
	}
	return sc
}

func stringKey(raw map[string]any, key, fallback string) string {
	if v, ok := raw[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// parseHistory tolerates both typed []Turn (Go callers) and the
// []any/map[string]any shape produced by JSON decoding.
func parseHistory(v any) []Turn {
	switch hist := v.(type) {
	case []Turn:
		out := make([]Turn, len(hist))
		copy(out, hist)
		return out
	case []any:
		out := make([]Turn, 0, len(hist))
		for _, item := range hist {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			turn := Turn{}
			if s, ok := m["sender"].(string); ok {
				turn.Sender = s
			}
			if s, ok := m["message"].(string); ok {
				turn.Message = s
			}
			out = append(out, turn)
		}
		return out
	default:
		return []Turn{}
	}
}
