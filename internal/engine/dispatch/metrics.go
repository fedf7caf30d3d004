package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var nodeActions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "grove",
		Name:      "node_actions_total",
		Help:      "Node actions applied to the graph, by action and plugin.",
	},
	[]string{"action", "plugin"},
)
