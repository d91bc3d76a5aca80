package convoflow

// Metadata carries the flow-level settings persisted alongside the
// graph. It is independent of graph topology.
type Metadata struct {
	Voice        string `json:"voice" yaml:"voice"`
	Language     string `json:"language" yaml:"language"`
	GlobalPrompt string `json:"globalPrompt" yaml:"global_prompt"`
}

// DefaultMetadata returns the metadata assigned to new flows.
func DefaultMetadata() Metadata {
	return Metadata{Voice: "English", Language: "English"}
}

// IsZero reports whether every metadata field is empty. Persisted
// documents with empty metadata hydrate to DefaultMetadata.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Flow name defaults.
const (
	// DefaultFlowName is the display name of a brand-new designer session.
	DefaultFlowName = "Conversational Flow Agent"

	// UntitledFlowName is used when a persisted document carries no name.
	UntitledFlowName = "Untitled Agent"
)
