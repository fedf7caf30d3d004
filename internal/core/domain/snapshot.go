package domain

import "time"

// Snapshot is a point-in-time dump of the node graph written after a build.
type Snapshot struct {
	TraceID    string            `json:"traceId"`
	CreatedAt  time.Time         `json:"createdAt"`
	TypeOwners map[string]string `json:"typeOwners"`
	Nodes      []*Node           `json:"nodes"`
}
