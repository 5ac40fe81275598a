package consult

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStakeholderContextDefaults(t *testing.T) {
	sc := ParseStakeholderContext(nil)

	assert.Equal(t, DefaultUserID, sc.UserID)
	assert.Equal(t, DefaultDepartment, sc.Department)
	assert.Equal(t, DefaultRole, sc.Role)
	assert.Equal(t, DefaultName, sc.DisplayName())
	assert.Empty(t, sc.History)
}

func TestParseStakeholderContextValues(t *testing.T) {
	sc := ParseStakeholderContext(map[string]any{
		"user_id":    "u-42",
		"name":       "Sam",
		"role":       "Head Teacher",
		"department": "Engineering",
		"extra_key":  "kept",
	})

	assert.Equal(t, "u-42", sc.UserID)
	assert.Equal(t, "Sam", sc.DisplayName())
	assert.Equal(t, "Engineering", sc.Department)
	assert.Equal(t, "kept", sc.Raw["extra_key"])
}

func TestParseStakeholderContextMalformedValues(t *testing.T) {
	sc := ParseStakeholderContext(map[string]any{
		"department":          42,
		"user_id":             "",
		"conversationHistory": "not a list",
	})

	assert.Equal(t, DefaultDepartment, sc.Department)
	assert.Equal(t, DefaultUserID, sc.UserID)
	assert.Empty(t, sc.History)
}

func TestParseHistoryJSONShape(t *testing.T) {
	sc := ParseStakeholderContext(map[string]any{
		"conversationHistory": []any{
			map[string]any{"sender": "user", "message": "hello"},
			map[string]any{"sender": "ai", "message": "welcome"},
			"garbage entry",
			map[string]any{"sender": "assistant", "message": "more"},
		},
	})

	assert.Len(t, sc.History, 3)
	assert.True(t, sc.History[0].IsUser())
	assert.True(t, sc.History[1].IsModel())
	assert.True(t, sc.History[2].IsModel())
}

func TestParseHistoryTypedTurns(t *testing.T) {
	turns := []Turn{{Sender: "user", Message: "hi"}}
	sc := ParseStakeholderContext(map[string]any{"conversationHistory": turns})

	assert.Equal(t, turns, sc.History)
	// The parsed slice is a copy, not an alias.
	sc.History[0].Message = "changed"
	assert.Equal(t, "hi", turns[0].Message)
}
