package consult

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform result of processing one task. Status is success
// whenever a displayable message was produced, including fallback greetings;
// error is reserved for failures of the processing machinery itself.
type Envelope struct {
	Message   string         `json:"message"`
	Status    string         `json:"status"`
	Data      map[string]any `json:"data"`
	SessionID string         `json:"session_id"`
}
