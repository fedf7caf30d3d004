package domain

import "time"

// ActionType names a state transition of the node graph.
type ActionType string

const (
	// ActionCreateNode creates or replaces a node.
	ActionCreateNode ActionType = "CREATE_NODE"
	// ActionDeleteNode removes a node.
	ActionDeleteNode ActionType = "DELETE_NODE"
	// ActionTouchNode confirms that an existing node is still produced by its source.
	ActionTouchNode ActionType = "TOUCH_NODE"
	// ActionAPIFinished signals that a lifecycle hook finished across all plugins.
	ActionAPIFinished ActionType = "API_FINISHED"
)

// Action is an entry of the dispatcher's action log.
type Action struct {
	Type     ActionType `json:"type"`
	NodeID   string     `json:"nodeId,omitempty"`
	NodeType string     `json:"nodeType,omitempty"`
	Plugin   string     `json:"plugin,omitempty"`
	API      string     `json:"api,omitempty"`
	At       time.Time  `json:"at"`
}

// IngestEvent is a single line of the streaming ingestion protocol.
type IngestEvent struct {
	Type   ActionType `json:"type" validate:"required,oneof=CREATE_NODE DELETE_NODE"`
	Node   *Node      `json:"node" validate:"required"`
	Plugin *Plugin    `json:"plugin" validate:"required"`
}

// HookOptions are passed to every plugin invoked for a lifecycle hook.
type HookOptions struct {
	TraceID           string
	WebhookBody       map[string]any
	PluginName        string
	DeferNodeMutation bool
}
