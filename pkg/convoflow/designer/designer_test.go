package designer_test

import (
	"context"
	"testing"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/designer"
	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
	"github.com/randalmurphal/convoflow/pkg/convoflow/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, opts ...designer.Option) *designer.Designer {
	t.Helper()
	return designer.New("agent-1", store.NewMemoryStore(), opts...)
}

// TestNewDefaults verifies a fresh session's snapshot.
func TestNewDefaults(t *testing.T) {
	d := newSession(t)
	snap := d.Snapshot()

	assert.Equal(t, convoflow.Initialize(), snap.Graph)
	assert.Equal(t, convoflow.DefaultMetadata(), snap.Metadata)
	assert.Equal(t, convoflow.DefaultFlowName, snap.FlowName)
	assert.Equal(t, "agent-1", snap.AgentID)
	assert.Empty(t, snap.FlowID)
	assert.Empty(t, snap.SelectedNodeID)
}

// TestNewWithOptions verifies initial name and metadata options.
func TestNewWithOptions(t *testing.T) {
	meta := convoflow.Metadata{Voice: "German", Language: "German"}
	d := newSession(t,
		designer.WithFlowName("Support Line"),
		designer.WithMetadata(meta),
	)
	snap := d.Snapshot()
	assert.Equal(t, "Support Line", snap.FlowName)
	assert.Equal(t, meta, snap.Metadata)
}

// TestAddNodeCommand verifies node creation through the session.
func TestAddNodeCommand(t *testing.T) {
	d := newSession(t)

	id, err := d.AddNode(convoflow.KindConversation)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	n, ok := d.Snapshot().Graph.Node(id)
	require.True(t, ok)
	assert.Equal(t, convoflow.KindConversation, n.Kind)

	_, err = d.AddNode(convoflow.NodeKind("bogus"))
	assert.ErrorIs(t, err, convoflow.ErrInvalidNodeKind)
	assert.Len(t, d.Snapshot().Graph.Nodes, 2, "failed command leaves the graph alone")
}

// TestDeleteNodeClearsSelection verifies deleting the selected node
// deselects it.
func TestDeleteNodeClearsSelection(t *testing.T) {
	d := newSession(t)
	id, err := d.AddNode(convoflow.KindEnding)
	require.NoError(t, err)

	require.NoError(t, d.Select(id))
	assert.Equal(t, id, d.Snapshot().SelectedNodeID)

	d.DeleteNode(id)
	snap := d.Snapshot()
	assert.Empty(t, snap.SelectedNodeID)
	_, ok := snap.Graph.Node(id)
	assert.False(t, ok)
}

// TestSelectUnknownNode verifies selection of a missing node fails.
func TestSelectUnknownNode(t *testing.T) {
	d := newSession(t)
	err := d.Select("ghost")
	assert.ErrorIs(t, err, convoflow.ErrNodeNotFound)
	assert.Empty(t, d.Snapshot().SelectedNodeID)
}

// TestClearSelection verifies explicit deselection.
func TestClearSelection(t *testing.T) {
	d := newSession(t)
	require.NoError(t, d.Select(convoflow.BeginNodeID))
	d.ClearSelection()
	assert.Empty(t, d.Snapshot().SelectedNodeID)
}

// TestConnectCommand verifies edge creation through the session.
func TestConnectCommand(t *testing.T) {
	d := newSession(t)
	id, err := d.AddNode(convoflow.KindConversation)
	require.NoError(t, err)

	d.Connect(convoflow.Connection{
		Source:       convoflow.BeginNodeID,
		SourceHandle: convoflow.BeginSourceHandle,
		Target:       id,
		TargetHandle: convoflow.TargetHandle(id),
	})
	assert.Len(t, d.Snapshot().Graph.Edges, 1)
}

// TestApplyNodeChangesClearsDanglingSelection verifies batch removal of
// the selected node clears the selection.
func TestApplyNodeChangesClearsDanglingSelection(t *testing.T) {
	d := newSession(t)
	id, err := d.AddNode(convoflow.KindEnding)
	require.NoError(t, err)
	require.NoError(t, d.Select(id))

	d.ApplyNodeChanges([]convoflow.NodeChange{
		{Type: convoflow.NodeChangeRemove, ID: id},
	})
	assert.Empty(t, d.Snapshot().SelectedNodeID)
}

// TestApplyEdgeChangesCommand verifies edge batches route through.
func TestApplyEdgeChangesCommand(t *testing.T) {
	d := newSession(t)
	id, err := d.AddNode(convoflow.KindEnding)
	require.NoError(t, err)
	d.Connect(convoflow.Connection{Source: convoflow.BeginNodeID, Target: id})

	edgeID := d.Snapshot().Graph.Edges[0].ID
	d.ApplyEdgeChanges([]convoflow.EdgeChange{
		{Type: convoflow.EdgeChangeRemove, ID: edgeID},
	})
	assert.Empty(t, d.Snapshot().Graph.Edges)
}

// TestSetMetadata verifies metadata replacement.
func TestSetMetadata(t *testing.T) {
	d := newSession(t)
	meta := convoflow.Metadata{Voice: "French", Language: "French", GlobalPrompt: "Be brief."}
	d.SetMetadata(meta)
	assert.Equal(t, meta, d.Snapshot().Metadata)
}

// renameRecorder records agent rename calls and optionally fails them.
type renameRecorder struct {
	calls []string
	err   error
}

func (r *renameRecorder) Rename(_ context.Context, agentID, name string) error {
	r.calls = append(r.calls, agentID+"="+name)
	return r.err
}

// TestSetNameRenamesAgent verifies the best-effort agent rename.
func TestSetNameRenamesAgent(t *testing.T) {
	rec := &renameRecorder{}
	d := newSession(t, designer.WithAgentStore(rec))

	d.SetName(context.Background(), "Support Line")
	assert.Equal(t, "Support Line", d.Snapshot().FlowName)
	assert.Equal(t, []string{"agent-1=Support Line"}, rec.calls)
}

// TestSetNameRenameFailureIsNonFatal verifies a failed agent rename
// never rolls back the flow name.
func TestSetNameRenameFailureIsNonFatal(t *testing.T) {
	rec := &renameRecorder{err: assert.AnError}
	d := newSession(t, designer.WithAgentStore(rec))

	d.SetName(context.Background(), "Support Line")
	assert.Equal(t, "Support Line", d.Snapshot().FlowName)
}

// TestSetNameWithoutAgentStore verifies renaming works with no agent
// store configured.
func TestSetNameWithoutAgentStore(t *testing.T) {
	d := newSession(t)
	d.SetName(context.Background(), "Solo")
	assert.Equal(t, "Solo", d.Snapshot().FlowName)
}

// TestSubscribe verifies snapshot notifications and unsubscribe.
func TestSubscribe(t *testing.T) {
	d := newSession(t)

	var got []designer.Snapshot
	unsubscribe := d.Subscribe(func(s designer.Snapshot) {
		got = append(got, s)
	})

	_, err := d.AddNode(convoflow.KindEnding)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Graph.Nodes, 2)

	unsubscribe()
	_, err = d.AddNode(convoflow.KindFunction)
	require.NoError(t, err)
	assert.Len(t, got, 1, "no notifications after unsubscribe")
}

// TestReset verifies the session returns to defaults but keeps the
// flow id.
func TestReset(t *testing.T) {
	d := newSession(t)
	require.NoError(t, d.Save(context.Background()))
	flowID := d.Snapshot().FlowID
	require.NotEmpty(t, flowID)

	_, err := d.AddNode(convoflow.KindConversation)
	require.NoError(t, err)
	d.SetName(context.Background(), "Renamed")
	require.NoError(t, d.Select(convoflow.BeginNodeID))

	d.Reset()
	snap := d.Snapshot()
	assert.Equal(t, convoflow.Initialize(), snap.Graph)
	assert.Equal(t, convoflow.DefaultMetadata(), snap.Metadata)
	assert.Equal(t, convoflow.UntitledFlowName, snap.FlowName)
	assert.Empty(t, snap.SelectedNodeID)
	assert.Equal(t, flowID, snap.FlowID, "next save updates the same document")
}

// TestTransitionCommands drives the transition editing surface end to
// end on a conversation node.
func TestTransitionCommands(t *testing.T) {
	d := newSession(t)
	id, err := d.AddNode(convoflow.KindConversation)
	require.NoError(t, err)

	transitions := func() []transition.Transition {
		n, ok := d.Snapshot().Graph.Node(id)
		require.True(t, ok)
		return n.Data.(convoflow.ConversationData).Transitions
	}

	// New conversation nodes carry one prompt transition.
	require.Len(t, transitions(), 1)

	require.NoError(t, d.SetTransitionLabel(id, 0, "User wants to book"))
	assert.Equal(t, "User wants to book", transitions()[0].Label)

	require.NoError(t, d.AddTransition(id, transition.Equation))
	require.Len(t, transitions(), 2)

	require.NoError(t, d.AddCondition(id, 1))
	require.NoError(t, d.UpdateCondition(id, 1, 0, transition.Condition{
		Variable: "age", Operator: transition.OpGreater, Value: "18",
	}))
	require.NoError(t, d.SetConditionMode(id, 1, transition.All))

	eq := transitions()[1]
	assert.Equal(t, transition.All, eq.Mode)
	require.Len(t, eq.Conditions, 1)
	assert.Equal(t, "age", eq.Conditions[0].Variable)

	require.NoError(t, d.RemoveCondition(id, 1, 0))
	assert.Empty(t, transitions()[1].Conditions)

	require.NoError(t, d.RemoveTransition(id, 0))
	require.Len(t, transitions(), 1)
	assert.Equal(t, transition.Equation, transitions()[0].Kind)
}

// TestTransitionCommandErrors verifies the error taxonomy of transition
// commands.
func TestTransitionCommandErrors(t *testing.T) {
	d := newSession(t)

	err := d.AddTransition("ghost", transition.Prompt)
	assert.ErrorIs(t, err, convoflow.ErrNodeNotFound)

	endID, err := d.AddNode(convoflow.KindEnding)
	require.NoError(t, err)
	err = d.AddTransition(endID, transition.Prompt)
	assert.ErrorIs(t, err, designer.ErrNotConversation)

	convID, err := d.AddNode(convoflow.KindConversation)
	require.NoError(t, err)
	err = d.RemoveTransition(convID, 7)
	assert.ErrorIs(t, err, transition.ErrIndexOutOfRange)
}
