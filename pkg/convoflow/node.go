package convoflow

import (
	"github.com/randalmurphal/convoflow/pkg/convoflow/transition"
)

// NodeKind identifies the type of a node. The string values are the
// wire tags used in persisted flow documents.
type NodeKind string

// Node kinds.
const (
	KindBegin        NodeKind = "begin"
	KindConversation NodeKind = "conversation"
	KindFunction     NodeKind = "function"
	KindLogicSplit   NodeKind = "logic"
	KindEnding       NodeKind = "ending"
)

// Valid reports whether k is a recognized node kind.
func (k NodeKind) Valid() bool {
	switch k {
	case KindBegin, KindConversation, KindFunction, KindLogicSplit, KindEnding:
		return true
	}
	return false
}

// Position is a 2D canvas coordinate. It is persisted for layout only;
// no engine invariant depends on it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the kind-specific payload of a node. Exactly one concrete
// type exists per NodeKind. The interface is sealed: implementations
// live in this package only.
type NodeData interface {
	// DataKind returns the node kind this payload belongs to.
	DataKind() NodeKind
}

// BeginData is the (empty) payload of a begin node.
type BeginData struct{}

// DataKind implements NodeData.
func (BeginData) DataKind() NodeKind { return KindBegin }

// ConversationData is the payload of a conversation node: the bot
// message, a display name, and the ordered outgoing transitions.
type ConversationData struct {
	NodeName    string                  `json:"nodeName,omitempty"`
	Message     string                  `json:"message"`
	Transitions []transition.Transition `json:"transitions"`
}

// DataKind implements NodeData.
func (ConversationData) DataKind() NodeKind { return KindConversation }

// FunctionData is the payload of a function node.
type FunctionData struct {
	FunctionName string `json:"functionName"`
}

// DataKind implements NodeData.
func (FunctionData) DataKind() NodeKind { return KindFunction }

// LogicSplitData is the payload of a logic-split node. Conditions are
// free-text expressions evaluated in order by the consumer; ElseTarget
// names the node to route to when none match. The reference is not
// validated on write (see Validate).
type LogicSplitData struct {
	Conditions []string `json:"conditions"`
	ElseTarget string   `json:"elseTarget"`
}

// DataKind implements NodeData.
func (LogicSplitData) DataKind() NodeKind { return KindLogicSplit }

// EndingData is the payload of an ending node.
type EndingData struct {
	Label string `json:"label"`
}

// DataKind implements NodeData.
func (EndingData) DataKind() NodeKind { return KindEnding }

// DefaultEndingLabel is the label assigned to new ending nodes.
const DefaultEndingLabel = "End Call"

// Node is a vertex in the flow graph.
type Node struct {
	ID       string
	Kind     NodeKind
	Position Position
	// Selected is a transient UI flag. It is never persisted.
	Selected bool
	Data     NodeData
}

// DefaultData returns the default payload for a node kind.
// Returns ErrInvalidNodeKind for unrecognized kinds.
func DefaultData(kind NodeKind) (NodeData, error) {
	switch kind {
	case KindBegin:
		return BeginData{}, nil
	case KindConversation:
		// New conversation nodes start with a single empty prompt transition.
		return ConversationData{
			Transitions: transition.Add(nil, transition.Prompt),
		}, nil
	case KindFunction:
		return FunctionData{}, nil
	case KindLogicSplit:
		return LogicSplitData{Conditions: []string{}}, nil
	case KindEnding:
		return EndingData{Label: DefaultEndingLabel}, nil
	default:
		return nil, &KindError{Kind: string(kind)}
	}
}
