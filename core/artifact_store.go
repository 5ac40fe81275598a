package core

// ArtifactStore persists opaque byte artifacts (e.g. generated action plans)
// scoped by session key. Implementations must be safe for concurrent use.
type ArtifactStore interface {
	// Save stores data under (key, id), overwriting any previous version.
	Save(key SessionKey, id string, data []byte) error
	// Get retrieves previously saved artifact bytes.
	Get(key SessionKey, id string) ([]byte, error)
	// List returns artifact IDs stored for the session in insertion order.
	List(key SessionKey) ([]string, error)
}
